package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

const stateFileName = "session.json"

// FileMedium is a Medium backed by a single JSON document on disk. Writes
// go through a temp file and an atomic rename, so a crash mid-write never
// leaves a torn document behind.
type FileMedium struct {
	mu   sync.Mutex
	path string
}

// NewFileMedium creates a file-backed medium rooted at baseDir.
// If baseDir is empty, uses ~/.wardview/
func NewFileMedium(baseDir string) (*FileMedium, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".wardview")
	}

	// Create directory with 0700 permissions
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	medium := &FileMedium{path: filepath.Join(baseDir, stateFileName)}

	log.Debug().Str("path", medium.path).Msg("file medium initialized")

	return medium, nil
}

// Get returns the stored value for key.
func (f *FileMedium) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, err
	}

	value, ok := values[key]
	return value, ok, nil
}

// Set stores value under key.
func (f *FileMedium) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}

	values[key] = value
	return f.save(values)
}

// Delete removes key. Deleting an absent key is a no-op.
func (f *FileMedium) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}

	if _, ok := values[key]; !ok {
		return nil
	}

	delete(values, key)
	return f.save(values)
}

// load reads the state document. A missing file is an empty document; an
// unreadable document is reset rather than propagated, since the store
// treats undecodable state as absent anyway.
func (f *FileMedium) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		log.Warn().Err(err).Str("path", f.path).Msg("state file unreadable, resetting")
		return make(map[string]string), nil
	}

	if values == nil {
		values = make(map[string]string)
	}

	return values, nil
}

// save writes the state document atomically.
func (f *FileMedium) save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Write to temp file first
	tempPath := f.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, f.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save state file: %w", err)
	}

	return nil
}
