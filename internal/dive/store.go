package dive

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoLogbook is returned by Load when no logbook file exists on disk.
var ErrNoLogbook = errors.New("no logbook")

// logbookVersion is written into every saved logbook document.
const logbookVersion = 1

// Store persists a Logbook to disk.
type Store interface {
	Save(b *Logbook) error
	Load() (*Logbook, error) // returns ErrNoLogbook if none exists
	Path() string
}

// diskStore is the concrete Store that writes to the XDG data directory.
type diskStore struct {
	path string // full path to logbook.json
}

// NewStore returns a Store backed by the XDG data directory, or by the given
// override path when non-empty.
// Default path: $XDG_DATA_HOME/fathom/logbook.json or ~/.local/share/fathom/logbook.json
func NewStore(override string) (Store, error) {
	if override != "" {
		if err := os.MkdirAll(filepath.Dir(override), 0o755); err != nil {
			return nil, fmt.Errorf("creating logbook directory: %w", err)
		}
		return &diskStore{path: override}, nil
	}
	dir, err := dataDir()
	if err != nil {
		return nil, fmt.Errorf("resolving data directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &diskStore{path: filepath.Join(dir, "logbook.json")}, nil
}

// dataDir returns the fathom-specific XDG data directory.
func dataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "fathom"), nil
}

// Path returns the location of the logbook file.
func (d *diskStore) Path() string { return d.path }

// Save marshals b to JSON and writes it atomically via a temp file + os.Rename.
func (d *diskStore) Save(b *Logbook) error {
	b.Version = logbookVersion
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to persist logbook: %w", err)
	}

	// Write to a temp file in the same directory so os.Rename is atomic.
	tmp, err := os.CreateTemp(filepath.Dir(d.path), "logbook-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to persist logbook: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up the temp file on any error path.
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to persist logbook: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to persist logbook: %w", err)
	}

	if err = os.Rename(tmpName, d.path); err != nil {
		return fmt.Errorf("failed to persist logbook: %w", err)
	}
	return nil
}

// Load reads and unmarshals the logbook file.
// Returns ErrNoLogbook if the file does not exist.
func (d *diskStore) Load() (*Logbook, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoLogbook
		}
		return nil, fmt.Errorf("failed to read logbook: %w", err)
	}

	var b Logbook
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse logbook: %w", err)
	}
	return &b, nil
}

// LoadOrCreate returns the stored logbook, or a fresh empty one if the store
// has never been saved.
func LoadOrCreate(s Store) (*Logbook, error) {
	b, err := s.Load()
	if errors.Is(err, ErrNoLogbook) {
		return &Logbook{Version: logbookVersion}, nil
	}
	return b, err
}
