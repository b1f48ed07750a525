// Package writer abstracts the few filesystem operations generation needs, so
// the same pipeline can target the project directory or an in-memory manifest.
package writer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

type FileSystem interface {
	Exists(path string) (bool, error)
	MkdirAll(path string) error
	WriteFile(path string, data []byte) error
	ReadFile(path string) ([]byte, error)
}

// OSFileSystem resolves relative paths against Root.
type OSFileSystem struct {
	Root string
}

func NewOSFileSystem(root string) *OSFileSystem {
	return &OSFileSystem{Root: root}
}

func (o *OSFileSystem) resolve(path string) string {
	if filepath.IsAbs(path) || o.Root == "" {
		return path
	}
	return filepath.Join(o.Root, path)
}

func (o *OSFileSystem) Exists(path string) (bool, error) {
	_, err := os.Stat(o.resolve(path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", path, err)
}

func (o *OSFileSystem) MkdirAll(path string) error {
	if err := os.MkdirAll(o.resolve(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

func (o *OSFileSystem) WriteFile(path string, data []byte) error {
	full := o.resolve(path)
	if err := os.MkdirAll(filepath.Dir(full), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (o *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(o.resolve(path))
}

// MemoryFileSystem records writes without touching disk. Used for dry runs and
// tests.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool
}

func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (m *MemoryFileSystem) Exists(path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	path = filepath.Clean(path)
	_, isFile := m.files[path]
	return isFile || m.dirs[path], nil
}

func (m *MemoryFileSystem) MkdirAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mkdirAll(filepath.Clean(path))
	return nil
}

func (m *MemoryFileSystem) mkdirAll(path string) {
	for path != "." && path != string(filepath.Separator) && !m.dirs[path] {
		m.dirs[path] = true
		path = filepath.Dir(path)
	}
}

func (m *MemoryFileSystem) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	m.mkdirAll(filepath.Dir(path))
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryFileSystem) ReadFile(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

// Files returns the written file paths in sorted order.
func (m *MemoryFileSystem) Files() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// OverlayFileSystem reads through to Base but keeps every write in memory, so
// a dry run reports the same created and skipped files a real run would.
type OverlayFileSystem struct {
	*MemoryFileSystem
	Base FileSystem
}

func NewOverlayFileSystem(base FileSystem) *OverlayFileSystem {
	return &OverlayFileSystem{MemoryFileSystem: NewMemoryFileSystem(), Base: base}
}

func (o *OverlayFileSystem) Exists(path string) (bool, error) {
	if ok, _ := o.MemoryFileSystem.Exists(path); ok {
		return true, nil
	}
	return o.Base.Exists(path)
}

func (o *OverlayFileSystem) ReadFile(path string) ([]byte, error) {
	if data, err := o.MemoryFileSystem.ReadFile(path); err == nil {
		return data, nil
	}
	return o.Base.ReadFile(path)
}
