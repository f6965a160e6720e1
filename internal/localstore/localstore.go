// Package localstore is the terminal's stand-in for browser local storage:
// opaque string values keyed by name. Snapshots of the cart, the notification
// inbox, and the session live here. Writes are whole-value and last-write-wins;
// there is no cross-process locking, which is acceptable for a single-operator
// terminal.
package localstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store is a string key-value store with localStorage semantics.
// Get reports absence instead of erroring; corrupt entries read as absent.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string)
}

// Dir persists each key as a file under a state directory.
type Dir struct {
	path string
	mu   sync.Mutex
}

// Open creates the state directory if needed and returns a Dir store.
func Open(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &Dir{path: path}, nil
}

func (d *Dir) Get(key string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, err := os.ReadFile(d.file(key))
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Set writes via a temp file and rename so a crash mid-write never leaves a
// truncated snapshot behind.
func (d *Dir) Set(key, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	target := d.file(key)
	tmp, err := os.CreateTemp(d.path, ".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (d *Dir) Delete(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	os.Remove(d.file(key))
}

func (d *Dir) file(key string) string {
	return filepath.Join(d.path, sanitize(key)+".json")
}

// sanitize keeps key-derived filenames flat and portable. Bytes outside
// [A-Za-z0-9-] are hex-escaped as _XX; '_' itself is escaped so the mapping
// stays injective and distinct keys can never share a file.
func sanitize(key string) string {
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "_%02X", c)
		}
	}
	return b.String()
}

// Memory is an in-memory Store for tests.
type Memory struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}
