package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type fileEnvelope struct {
	Version int               `json:"version"`
	Entries map[string]string `json:"entries"`
}

// FileStore is a KeyValue backed by a single versioned JSON file. It is the
// backend selected for `.json` config paths; SQLiteStore is the default.
type FileStore struct {
	path  string
	store *fileEnvelope
}

func NewFileStore(configPath string) *FileStore {
	return &FileStore{
		path: configPath,
	}
}

func (s *FileStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &fileEnvelope{
		Version: 1,
		Entries: make(map[string]string),
	}

	return s.save()
}

func (s *FileStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'secondwind init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &fileEnvelope{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Entries == nil {
		s.store.Entries = make(map[string]string)
	}

	return nil
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *FileStore) Get(key string) (string, bool, error) {
	if s.store == nil {
		return "", false, fmt.Errorf("storage not loaded")
	}

	value, ok := s.store.Entries[key]
	return value, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Entries[key] = value
	return s.save()
}

func (s *FileStore) Delete(key string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	delete(s.store.Entries, key)
	return s.save()
}

// Path returns the path to the backing storage file.
//
// Concurrency note:
//   - FileStore is not safe for concurrent use by multiple goroutines without
//     external synchronization.
//   - Running multiple secondwind processes against the same storage path at
//     the same time is not supported and may lead to data loss or corruption.
func (s *FileStore) Path() string {
	return s.path
}
