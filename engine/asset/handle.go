package asset

import "sync"

// entry is one cache slot. done is closed once asset or err is set; both are immutable afterwards.
type entry struct {
	key  string
	mode Mode

	once  sync.Once
	done  chan struct{}
	asset *Asset
	err   error
}

func newEntry(key string, mode Mode) *entry {
	return &entry{key: key, mode: mode, done: make(chan struct{})}
}

func (e *entry) resolve(a *Asset, err error) {
	e.once.Do(func() {
		e.asset, e.err = a, err
		close(e.done)
	})
}

func (e *entry) ready() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

// Handle is an asynchronous view of one asset load.
type Handle interface {
	// Key returns the requested asset key.
	Key() string

	// Mode returns the requested consumption mode.
	Mode() Mode

	// Status returns the current load state. It never blocks.
	//
	// Returns:
	//   - Status: loading, ready or failed
	Status() Status

	// Asset returns the loaded asset once ready.
	//
	// Returns:
	//   - *Asset: the shared asset, or nil if not ready
	Asset() *Asset

	// Err returns ErrNotReady while loading and the *LoadError after a failure.
	//
	// Returns:
	//   - error: the load error, or nil when ready
	Err() error

	// Done returns a channel closed when the load finishes, successfully or not.
	Done() <-chan struct{}
}

var _ Handle = &entry{}

func (e *entry) Key() string {
	return e.key
}

func (e *entry) Mode() Mode {
	return e.mode
}

func (e *entry) Status() Status {
	if !e.ready() {
		return StatusLoading
	}
	if e.err != nil {
		return StatusFailed
	}
	return StatusReady
}

func (e *entry) Asset() *Asset {
	if !e.ready() {
		return nil
	}
	return e.asset
}

func (e *entry) Err() error {
	if !e.ready() {
		return ErrNotReady
	}
	return e.err
}

func (e *entry) Done() <-chan struct{} {
	return e.done
}
