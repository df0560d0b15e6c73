package webclient

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"
)

// Storage is the primitive the store persists through: localStorage in a
// browser, a map or a JSON file here.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
	Clear()
}

type envelope struct {
	Value     json.RawMessage `json:"value"`
	Timestamp int64           `json:"timestamp"`
	Expiry    *int64          `json:"expiry,omitempty"`
}

// Store wraps values in a timestamped envelope with optional expiry. Expiry
// is lazy: a dead entry is evicted by the read that discovers it, never by a
// background sweep.
type Store struct {
	storage Storage
	now     func() time.Time
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage, now: time.Now}
}

// SetItem serializes value with its write time and, when expiryMinutes is
// given, an absolute expiry.
func (s *Store) SetItem(key string, value any, expiryMinutes ...float64) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	env := envelope{Value: raw, Timestamp: s.now().UnixMilli()}
	if len(expiryMinutes) > 0 {
		exp := s.now().Add(time.Duration(expiryMinutes[0] * float64(time.Minute))).UnixMilli()
		env.Expiry = &exp
	}

	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	s.storage.Set(key, string(data))
	return nil
}

// GetItem unmarshals the stored value into dest and reports whether the key
// was present. An entry past its expiry is deleted on this read and reported
// absent; nothing stale is ever handed back.
func (s *Store) GetItem(key string, dest any) (bool, error) {
	data, ok := s.storage.Get(key)
	if !ok {
		return false, nil
	}

	var env envelope
	if err := json.Unmarshal([]byte(data), &env); err != nil {
		s.storage.Delete(key)
		return false, err
	}

	if env.Expiry != nil && s.now().UnixMilli() > *env.Expiry {
		s.storage.Delete(key)
		return false, nil
	}

	if dest != nil {
		if err := json.Unmarshal(env.Value, dest); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (s *Store) RemoveItem(key string) {
	s.storage.Delete(key)
}

func (s *Store) Clear() {
	s.storage.Clear()
}

// MemoryStorage is the in-process Storage used by default and in tests.
type MemoryStorage struct {
	mu    sync.Mutex
	items map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
}

func (m *MemoryStorage) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
}

func (m *MemoryStorage) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.items)
}

// FileStorage persists entries to a single JSON file so cached state
// survives process restarts. Write failures are logged, not returned,
// matching the fire-and-forget storage primitive it stands in for.
type FileStorage struct {
	mu    sync.Mutex
	path  string
	items map[string]string
}

func NewFileStorage(path string) (*FileStorage, error) {
	fs := &FileStorage{path: path, items: make(map[string]string)}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &fs.items); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

func (f *FileStorage) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.items[key]
	return v, ok
}

func (f *FileStorage) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] = value
	f.persist()
}

func (f *FileStorage) Delete(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, key)
	f.persist()
}

func (f *FileStorage) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.items)
	f.persist()
}

func (f *FileStorage) persist() {
	data, err := json.Marshal(f.items)
	if err != nil {
		log.Printf("[webclient] file storage marshal: %v", err)
		return
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		log.Printf("[webclient] file storage write %s: %v", f.path, err)
	}
}
