package vault

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Medium is the string key-value store backing the vault. Implementations
// must survive process restarts when persistence is expected; the in-memory
// medium exists for tests and ephemeral sessions.
type Medium interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryMedium is a process-local Medium.
type MemoryMedium struct {
	mu sync.RWMutex
	kv map[string]string
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{kv: make(map[string]string)}
}

func (m *MemoryMedium) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.kv[key]
	return v, ok, nil
}

func (m *MemoryMedium) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv[key] = value
	return nil
}

func (m *MemoryMedium) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.kv, key)
	return nil
}

// FileMedium persists the key-value record as a JSON file scoped to the
// current user. Writes are last-writer-wins; the only writers are the
// serialized login/logout/expiry flows.
type FileMedium struct {
	mu   sync.Mutex
	path string
}

// NewFileMedium stores the record at path, or under the user config
// directory when path is empty.
func NewFileMedium(path string) (*FileMedium, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "rewear", "admin-session.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	return &FileMedium{path: path}, nil
}

func (f *FileMedium) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kv, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := kv[key]
	return v, ok, nil
}

func (f *FileMedium) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kv, err := f.load()
	if err != nil {
		return err
	}
	kv[key] = value
	return f.save(kv)
}

func (f *FileMedium) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kv, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := kv[key]; !ok {
		return nil
	}
	delete(kv, key)
	return f.save(kv)
}

func (f *FileMedium) load() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	kv := map[string]string{}
	if err := json.Unmarshal(raw, &kv); err != nil {
		// A torn or hand-edited file is treated as empty; individual values
		// still pass through the codec's own corruption handling.
		return map[string]string{}, nil
	}
	return kv, nil
}

func (f *FileMedium) save(kv map[string]string) error {
	raw, err := json.Marshal(kv)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0o600)
}
