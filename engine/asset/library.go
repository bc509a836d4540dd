package asset

import (
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/pkg/errors"
)

// cacheKey identifies one cache slot. Decorative and skinned variants of a key are cached apart.
type cacheKey struct {
	key  string
	mode Mode
}

// library is the implementation of the Library interface.
type library struct {
	mu sync.RWMutex

	source   Source
	backends []backend
	cache    map[cacheKey]*entry

	logger *log.Logger

	// loadPool runs asynchronous loads started by Request and Preload.
	loadPool    worker.DynamicWorkerPool
	loadWorkers int
	taskMu      sync.Mutex
	nextTaskID  int
}

// Library loads assets from a Source and caches them by key.
// The first load of a key and mode inserts a cache slot that every concurrent caller waits on,
// so each variant is produced at most once until it is evicted. Failed loads are cached as well.
type Library interface {
	// Load returns the skinned asset for key, loading it on first use.
	//
	// Parameters:
	//   - key: the asset key
	//
	// Returns:
	//   - *Asset: the shared, read-only asset
	//   - error: a *LoadError if the key cannot be resolved or decoded
	Load(key string) (*Asset, error)

	// LoadMode returns the asset for key in the given consumption mode, loading it on first use.
	// A decorative load reuses the cached skinned asset and centres its geometry once.
	//
	// Parameters:
	//   - key: the asset key
	//   - mode: the consumption mode
	//
	// Returns:
	//   - *Asset: the shared, read-only asset
	//   - error: a *LoadError if the key cannot be resolved or decoded
	LoadMode(key string, mode Mode) (*Asset, error)

	// Request starts loading key on the worker pool and returns immediately.
	//
	// Parameters:
	//   - key: the asset key
	//   - mode: the consumption mode
	//
	// Returns:
	//   - Handle: the asynchronous view of the load
	Request(key string, mode Mode) Handle

	// Preload loads every key concurrently in ModeSkinned and waits for all of them.
	//
	// Parameters:
	//   - keys: the asset keys
	//
	// Returns:
	//   - error: the first load failure, or nil
	Preload(keys ...string) error

	// Get returns the cached skinned asset for key without loading it.
	//
	// Parameters:
	//   - key: the asset key
	//
	// Returns:
	//   - *Asset: the asset, or nil if it is not loaded or failed
	Get(key string) *Asset

	// Assets returns every successfully loaded skinned asset keyed by asset key.
	//
	// Returns:
	//   - map[string]*Asset: a snapshot of the cache
	Assets() map[string]*Asset

	// Evict drops every cached variant of key, including a cached failure.
	// Instances already created from the asset are unaffected.
	//
	// Parameters:
	//   - key: the asset key
	Evict(key string)
}

var _ Library = &library{}

// NewLibrary creates a new Library with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of format backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LibraryBuilderOption functions to configure the Library
//
// Returns:
//   - Library: a new Library configured with the provided backend and options
func NewLibrary(backendType BackendType, options ...LibraryBuilderOption) Library {
	l := &library{
		mu:          sync.RWMutex{},
		cache:       make(map[cacheKey]*entry),
		logger:      log.Default(),
		loadWorkers: max(runtime.NumCPU()/2, 1),
	}

	if b := newBackend(backendType); b != nil {
		l.backends = append(l.backends, b)
	}

	for _, option := range options {
		option(l)
	}

	// Workers idle out after a second, so a library with no pending loads holds no goroutines.
	l.loadPool = worker.NewDynamicWorkerPool(l.loadWorkers, 256, 1*time.Second)
	return l
}

func (l *library) Load(key string) (*Asset, error) {
	return l.LoadMode(key, ModeSkinned)
}

func (l *library) LoadMode(key string, mode Mode) (*Asset, error) {
	e, owner := l.slot(key, mode)
	if owner {
		l.fill(e)
	}
	<-e.done
	return e.asset, e.err
}

func (l *library) Request(key string, mode Mode) Handle {
	e, owner := l.slot(key, mode)
	if !owner {
		return e
	}

	l.taskMu.Lock()
	id := l.nextTaskID
	l.nextTaskID++
	l.taskMu.Unlock()

	l.loadPool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			l.fill(e)
			return e.asset, e.err
		},
	})
	return e
}

func (l *library) Preload(keys ...string) error {
	handles := make([]Handle, len(keys))
	for i, key := range keys {
		handles[i] = l.Request(key, ModeSkinned)
	}

	var first error
	for _, h := range handles {
		<-h.Done()
		if err := h.Err(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (l *library) Get(key string) *Asset {
	l.mu.RLock()
	e, ok := l.cache[cacheKey{key, ModeSkinned}]
	l.mu.RUnlock()

	if !ok {
		return nil
	}
	return e.Asset()
}

func (l *library) Assets() map[string]*Asset {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]*Asset, len(l.cache))
	for k, e := range l.cache {
		if k.mode != ModeSkinned {
			continue
		}
		if a := e.Asset(); a != nil {
			result[k.key] = a
		}
	}
	return result
}

func (l *library) Evict(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.cache, cacheKey{key, ModeSkinned})
	delete(l.cache, cacheKey{key, ModeDecorative})
}

// slot returns the cache slot for (key, mode), inserting a new one if absent.
// owner is true for the caller that inserted the slot and must fill it.
func (l *library) slot(key string, mode Mode) (*entry, bool) {
	ck := cacheKey{key, mode}

	l.mu.RLock()
	if cached, ok := l.cache[ck]; ok {
		l.mu.RUnlock()
		return cached, false
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	// Another caller may have inserted the slot between the two locks.
	if cached, ok := l.cache[ck]; ok {
		return cached, false
	}
	e := newEntry(key, mode)
	l.cache[ck] = e
	return e, true
}

// fill loads the slot's asset and resolves it. Backend panics are converted into load errors.
func (l *library) fill(e *entry) {
	var (
		a   *Asset
		err error
	)
	defer func() {
		if r := recover(); r != nil {
			a, err = nil, errors.Errorf("panic while loading: %v", r)
		}
		if a == nil && err == nil {
			err = errors.New("backend returned no asset")
		}
		if err != nil {
			l.logger.Printf("[asset] failed to load %q (%s): %v", e.key, e.mode, err)
			var le *LoadError
			if errors.As(err, &le) {
				err = le.Err
			}
			e.resolve(nil, &LoadError{Key: e.key, Mode: e.mode, Err: err})
			return
		}
		l.logger.Printf("[asset] loaded %q (%s): %d nodes, %d meshes, %d clips", e.key, e.mode, len(a.Nodes), len(a.Meshes), len(a.Clips))
		e.resolve(a, nil)
	}()

	if e.mode != ModeDecorative {
		a, err = l.decode(e.key)
		return
	}

	// Reuse the skinned slot when it is ours to fill or already resolved. A skinned load still
	// queued behind this one is not waited on, so a small pool cannot deadlock.
	base, owner := l.slot(e.key, ModeSkinned)
	if owner {
		l.fill(base)
	}
	var skinned *Asset
	if base.ready() {
		skinned, err = base.asset, base.err
	} else {
		skinned, err = l.decode(e.key)
	}
	if err == nil {
		a = decorative(skinned)
	}
}

// decode opens key from the source and runs it through the matching backend.
func (l *library) decode(key string) (*Asset, error) {
	var b backend
	for _, candidate := range l.backends {
		if supports(candidate, key) {
			b = candidate
			break
		}
	}
	if b == nil {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", key)
	}
	if l.source == nil {
		return nil, errors.Wrapf(ErrNotFound, "%s: no source configured", key)
	}

	rc, err := l.source.Open(key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	a, err := b.Decode(key, rc)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, errors.Errorf("%s: backend returned no asset", key)
	}
	if err := validate(a); err != nil {
		return nil, errors.Wrapf(err, "%s", key)
	}
	return a, nil
}
