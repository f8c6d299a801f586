package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const entryExt = ".json"

// TTL bounds.
const (
	DefaultTTL = time.Hour
	MinTTL     = time.Minute
	MaxTTL     = 7 * 24 * time.Hour
)

// Cache errors.
var (
	ErrNotFound   = errors.New("cache entry not found")
	ErrExpired    = errors.New("cache entry expired")
	ErrEmptyKey   = errors.New("cache key cannot be empty")
	ErrDisabled   = errors.New("cache is disabled")
	ErrInvalidTTL = fmt.Errorf("cache ttl must be between %s and %s", MinTTL, MaxTTL)
)

// ValidateTTL checks that ttl is within [MinTTL, MaxTTL].
func ValidateTTL(ttl time.Duration) error {
	if ttl < MinTTL || ttl > MaxTTL {
		return fmt.Errorf("%w: got %s", ErrInvalidTTL, ttl)
	}
	return nil
}

// FileStore keeps one JSON file per entry under a directory.
// It is safe for concurrent use.
type FileStore struct {
	dir     string
	ttl     time.Duration
	enabled bool
	now     func() time.Time

	mu sync.RWMutex
}

// Disabled returns a store on which every operation fails with ErrDisabled.
func Disabled() *FileStore {
	return &FileStore{now: time.Now}
}

// NewFileStore creates dir if needed and returns an enabled store.
func NewFileStore(dir string, ttl time.Duration) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if err := ValidateTTL(ttl); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &FileStore{dir: dir, ttl: ttl, enabled: true, now: time.Now}, nil
}

// Enabled reports whether the store caches anything.
func (s *FileStore) Enabled() bool { return s.enabled }

// Dir returns the cache directory.
func (s *FileStore) Dir() string { return s.dir }

// TTL returns the lifetime of new entries.
func (s *FileStore) TTL() time.Duration { return s.ttl }

// Get returns the entry for key.
func (s *FileStore) Get(key string) (*Entry, error) {
	if err := s.check(key); err != nil {
		return nil, err
	}

	s.mu.RLock()
	path := s.path(key)
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading cache entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}
	if entry.ExpiredAt(s.now()) {
		_ = s.Delete(key)
		return nil, ErrExpired
	}
	return &entry, nil
}

// Set writes data under key, replacing any previous entry.
func (s *FileStore) Set(key string, data json.RawMessage) error {
	if err := s.check(key); err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(newEntry(key, data, s.now(), s.ttl), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0o600); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming cache entry: %w", err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *FileStore) Delete(key string) error {
	if err := s.check(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (s *FileStore) Clear() error {
	_, err := s.sweep(func(*Entry) bool { return true })
	return err
}

// Prune removes expired entries and returns how many were removed.
func (s *FileStore) Prune() (int, error) {
	now := s.now()
	return s.sweep(func(e *Entry) bool { return e != nil && e.ExpiredAt(now) })
}

// Count returns the number of entries on disk, expired ones included.
func (s *FileStore) Count() (int, error) {
	if !s.enabled {
		return 0, ErrDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := s.entryFiles()
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

// sweep removes the entries for which remove returns true. Unreadable entries
// are passed as nil.
func (s *FileStore) sweep(remove func(*Entry) bool) (int, error) {
	if !s.enabled {
		return 0, ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.entryFiles()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, path := range files {
		var entry *Entry
		if data, readErr := os.ReadFile(path); readErr == nil {
			var e Entry
			if json.Unmarshal(data, &e) == nil {
				entry = &e
			}
		}
		if !remove(entry) {
			continue
		}
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return removed, fmt.Errorf("removing %s: %w", filepath.Base(path), rmErr)
		}
		removed++
	}
	return removed, nil
}

func (s *FileStore) entryFiles() ([]string, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading cache directory: %w", err)
	}
	files := make([]string, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != entryExt {
			continue
		}
		files = append(files, filepath.Join(s.dir, de.Name()))
	}
	return files, nil
}

func (s *FileStore) check(key string) error {
	if !s.enabled {
		return ErrDisabled
	}
	if key == "" {
		return ErrEmptyKey
	}
	return nil
}

// path maps a key to a file name inside dir.
func (s *FileStore) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(key)
	return filepath.Join(s.dir, safe+entryExt)
}
