// Package prefs persists per-installation preferences in a small YAML file.
// Reads of a missing or unreadable file fall back to defaults; writes are
// synchronous and take effect immediately.
package prefs

import (
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

type prefsFile struct {
	DarkMode bool `yaml:"darkMode"`
}

// Store is a file-backed preference store.
type Store struct {
	mu   sync.Mutex
	path string
	data prefsFile
}

// Open loads the preference file at path, or starts from defaults when the
// file does not exist yet.
func Open(path string) *Store {
	s := &Store{path: path}
	raw, err := os.ReadFile(path)
	if err == nil {
		// A malformed file also reads as defaults.
		_ = yaml.Unmarshal(raw, &s.data)
	}
	return s
}

// DarkMode reports the stored dark-mode flag.
func (s *Store) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.DarkMode
}

// SetDarkMode stores the dark-mode flag and writes the file.
func (s *Store) SetDarkMode(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.DarkMode = on
	raw, err := yaml.Marshal(s.data)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}
