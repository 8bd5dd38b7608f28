package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/diogo/resumechat/internal/models"
)

// PrefsStore is a small persistent key/value store for UI preferences.
type PrefsStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// FilePrefsStore keeps preferences as a flat JSON object on disk.
type FilePrefsStore struct {
	path string
	mu   sync.Mutex
}

// NewFilePrefsStore creates a store backed by path.
func NewFilePrefsStore(path string) *FilePrefsStore {
	return &FilePrefsStore{path: path}
}

// GetPrefsPath returns the path to the preferences file
func GetPrefsPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "prefs.json"), nil
}

// DefaultPrefsStore returns the store at the default preferences path
func DefaultPrefsStore() (*FilePrefsStore, error) {
	path, err := GetPrefsPath()
	if err != nil {
		return nil, err
	}
	return NewFilePrefsStore(path), nil
}

// Path returns the file backing the store
func (s *FilePrefsStore) Path() string {
	return s.path
}

func (s *FilePrefsStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read prefs file: %w", err)
	}

	prefs := map[string]string{}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("failed to parse prefs file: %w", err)
	}
	return prefs, nil
}

// Get returns the stored value for key. Unreadable files behave as empty.
func (s *FilePrefsStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.load()
	if err != nil {
		return "", false
	}
	value, ok := prefs[key]
	return value, ok
}

// Set stores value under key, keeping other keys intact
func (s *FilePrefsStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.load()
	if err != nil {
		// A corrupt file is replaced rather than blocking the write
		prefs = map[string]string{}
	}
	prefs[key] = value

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create prefs directory: %w", err)
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write prefs file: %w", err)
	}
	return nil
}

// MemoryPrefsStore is an in-memory PrefsStore.
type MemoryPrefsStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryPrefsStore creates an empty in-memory store
func NewMemoryPrefsStore() *MemoryPrefsStore {
	return &MemoryPrefsStore{values: map[string]string{}}
}

func (s *MemoryPrefsStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryPrefsStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// LoadTheme restores the theme preference, defaulting to light.
func LoadTheme(store PrefsStore) models.Theme {
	if store == nil {
		return models.ThemeLight
	}
	value, _ := store.Get(models.ThemePreferenceKey)
	return models.ParseTheme(value)
}

// SaveTheme persists the theme preference.
func SaveTheme(store PrefsStore, theme models.Theme) error {
	if store == nil {
		return nil
	}
	return store.Set(models.ThemePreferenceKey, string(theme))
}
