// Package credential persists the Tinify API key and decides which key a run uses.
//
// The key lives in a single plain-text file, <home>/.tinifycli/key, readable
// only by its owner where the platform supports permission bits.
package credential

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sagarc03/tinifycli"
)

const (
	// DirName is the config directory created under the home directory.
	DirName = ".tinifycli"
	// KeyFileName is the name of the key file inside the config directory.
	KeyFileName = "key"
)

// DefaultDir returns <home>/.tinifycli. When the home directory cannot be
// determined it falls back to .tinifycli relative to the working directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DirFor("")
	}
	return DirFor(home)
}

// DirFor returns the config directory for the given home directory.
func DirFor(home string) string {
	if home == "" {
		return filepath.Join(".", DirName)
	}
	return filepath.Join(home, DirName)
}

// Store reads and writes the key file in a config directory.
type Store struct {
	dir string
}

// NewStore creates a Store for the config directory dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the config directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the path of the key file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, KeyFileName)
}

// Save writes the trimmed key, replacing any saved key.
// Creates the config directory if it doesn't exist.
func (s *Store) Save(key string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	path := s.Path()
	if err := os.WriteFile(path, []byte(strings.TrimSpace(key)), 0o600); err != nil {
		return fmt.Errorf("write key file: %w", err)
	}

	// WriteFile keeps the mode of a file that already exists
	if runtime.GOOS != "windows" {
		if err := os.Chmod(path, 0o600); err != nil {
			return fmt.Errorf("restrict key file permissions: %w", err)
		}
	}

	return nil
}

// Load returns the saved key with surrounding whitespace removed.
// Returns an error wrapping tinifycli.ErrNotFound only if no key file exists.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.Path()) //#nosec G304 -- path is derived from the config directory
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("read key file: %w", tinifycli.ErrNotFound)
		}
		return "", fmt.Errorf("read key file: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}
