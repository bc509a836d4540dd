package asset

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Source resolves an asset key to its encoded bytes.
type Source interface {
	// Open returns a reader over the encoded asset. Missing keys yield an error wrapping ErrNotFound.
	//
	// Parameters:
	//   - key: the asset key, a slash-separated path
	//
	// Returns:
	//   - io.ReadCloser: the encoded asset
	//   - error: error if the key cannot be opened
	Open(key string) (io.ReadCloser, error)
}

// DirSource reads keys relative to a directory on disk.
type DirSource string

// Open implements Source.
func (d DirSource) Open(key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(string(d), filepath.FromSlash(path.Clean("/"+key))))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNotFound, "%s", key)
		}
		return nil, errors.Wrapf(err, "open %s", key)
	}
	return f, nil
}

// FSSource reads keys from an fs.FS, e.g. an embed.FS.
type FSSource struct {
	FS fs.FS
}

// Open implements Source.
func (s FSSource) Open(key string) (io.ReadCloser, error) {
	if s.FS == nil {
		return nil, errors.Wrapf(ErrNotFound, "%s", key)
	}
	f, err := s.FS.Open(path.Clean(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return nil, errors.Wrapf(ErrNotFound, "%s", key)
		}
		return nil, errors.Wrapf(err, "open %s", key)
	}
	return f, nil
}

// MemorySource serves keys from memory. It is safe for concurrent use.
type MemorySource struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySource creates a MemorySource holding a copy of files.
//
// Parameters:
//   - files: encoded assets by key
//
// Returns:
//   - *MemorySource: the source
func NewMemorySource(files map[string][]byte) *MemorySource {
	m := &MemorySource{files: make(map[string][]byte, len(files))}
	for k, v := range files {
		m.files[k] = append([]byte(nil), v...)
	}
	return m
}

// Put stores data under key, replacing any previous content.
func (m *MemorySource) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[key] = append([]byte(nil), data...)
}

// Open implements Source.
func (m *MemorySource) Open(key string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[key]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%s", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
