package asset

import "log"

// LibraryBuilderOption is a functional option for configuring a Library via NewLibrary.
type LibraryBuilderOption func(*library)

// WithSource is an option builder that sets where asset keys are resolved.
//
// Parameters:
//   - s: the asset source
//
// Returns:
//   - LibraryBuilderOption: a function that applies the source option to a library
func WithSource(s Source) LibraryBuilderOption {
	return func(l *library) {
		l.source = s
	}
}

// WithAsset is an option builder that pre-populates the cache with a ready asset under
// a.Key and a.Mode.
//
// Parameters:
//   - a: the asset to cache
//
// Returns:
//   - LibraryBuilderOption: a function that applies the asset option to a library
func WithAsset(a *Asset) LibraryBuilderOption {
	return func(l *library) {
		if a == nil {
			return
		}
		e := newEntry(a.Key, a.Mode)
		e.resolve(a, nil)
		l.cache[cacheKey{a.Key, a.Mode}] = e
	}
}

// WithWorkers is an option builder that sets the maximum number of concurrent async loads.
// Values below 1 are ignored.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - LibraryBuilderOption: a function that applies the workers option to a library
func WithWorkers(n int) LibraryBuilderOption {
	return func(l *library) {
		if n > 0 {
			l.loadWorkers = n
		}
	}
}

// WithLogger is an option builder that sets the logger for load diagnostics.
//
// Parameters:
//   - logger: the logger; nil is ignored
//
// Returns:
//   - LibraryBuilderOption: a function that applies the logger option to a library
func WithLogger(logger *log.Logger) LibraryBuilderOption {
	return func(l *library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// withBackend adds a format backend ahead of the default one.
func withBackend(b backend) LibraryBuilderOption {
	return func(l *library) {
		l.backends = append([]backend{b}, l.backends...)
	}
}
