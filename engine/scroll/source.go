// Package scroll turns page scroll progress into the smoothed horizontal offset applied to the
// featured object. Progress flows from a Source through a keyframe map and a damped spring.
package scroll

import "sync"

// Source is anything that publishes page scroll progress in [0, 1].
type Source interface {
	// Subscribe registers fn to receive progress updates.
	// The returned cancel function unregisters fn; it is safe to call more than once.
	//
	// Parameters:
	//   - fn: the callback invoked with each progress value
	//
	// Returns:
	//   - func(): the cancel function
	Subscribe(fn func(progress float64)) (cancel func())
}

// subscribers is a small registry of progress callbacks shared by the Source implementations.
type subscribers struct {
	mu     sync.Mutex
	nextID int
	fns    map[int]func(float64)
}

func (s *subscribers) add(fn func(float64)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fns == nil {
		s.fns = make(map[int]func(float64))
	}
	id := s.nextID
	s.nextID++
	s.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.fns, id)
			s.mu.Unlock()
		})
	}
}

// publish invokes every callback outside the lock so callbacks may cancel themselves.
func (s *subscribers) publish(progress float64) {
	s.mu.Lock()
	fns := make([]func(float64), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(progress)
	}
}

func (s *subscribers) clear() {
	s.mu.Lock()
	s.fns = nil
	s.mu.Unlock()
}

func (s *subscribers) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fns)
}

// Feed is a Source driven by explicit Publish calls, e.g. from a window's scroll callback.
type Feed struct {
	subs subscribers
}

var _ Source = &Feed{}

// NewFeed creates an empty Feed.
func NewFeed() *Feed {
	return &Feed{}
}

// Subscribe implements Source.
func (f *Feed) Subscribe(fn func(progress float64)) func() {
	return f.subs.add(fn)
}

// Publish delivers progress to every current subscriber.
func (f *Feed) Publish(progress float64) {
	f.subs.publish(progress)
}

// Subscribers returns the number of live subscriptions.
func (f *Feed) Subscribers() int {
	return f.subs.len()
}
