package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrCorrupt indicates the persisted ledger could not be parsed. The run
// must abort; the operator has to repair or regenerate the ledger file.
var ErrCorrupt = errors.New("ledger: corrupt ledger file")

// Store persists a Ledger as a JSON file.
//
// Save is atomic (write to a temp file in the same directory, then rename)
// so it is safe to call after every single item update: a crash loses at
// most the in-flight item's progress.
//
// Store assumes single-process ownership of the file during a run. No
// advisory locking exists; two concurrent batch runs against the same
// ledger file are unsafe.
type Store struct {
	path string
}

// NewStore creates a Store for the given ledger file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the ledger file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and parses the ledger file.
// Returns an error wrapping ErrCorrupt if the file exists but cannot be
// parsed, and the underlying error if it cannot be read at all.
func (s *Store) Load() (*Ledger, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("ledger: failed to read %s: %w", s.path, err)
	}

	var l Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}

	return &l, nil
}

// Save atomically persists the full ledger. The temp file is written in the
// destination directory so the rename never crosses filesystems.
func (s *Store) Save(l *Ledger) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("ledger: failed to encode ledger: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("ledger: failed to create directory %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("ledger: failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("ledger: failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("ledger: failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("ledger: failed to replace %s: %w", s.path, err)
	}

	return nil
}

// Exists reports whether the ledger file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}
