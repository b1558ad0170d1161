package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned by Load when no checkpoint file exists.
	ErrNotFound = errors.New("checkpoint: not found")
	// ErrCorrupt is returned by Load when the file cannot be decoded.
	ErrCorrupt = errors.New("checkpoint: corrupt")
)

// Store reads and writes the checkpoint file of a single biome.
type Store struct {
	dir   string
	biome string
}

// NewStore creates a store for biome under dir. A leading ~ in dir is
// expanded to the user's home directory.
func NewStore(dir, biome string) (*Store, error) {
	if strings.HasPrefix(dir, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("checkpoint: cannot expand home directory: %w", err)
		}
		dir = filepath.Join(home, dir[1:])
	}
	if biome == "" {
		return nil, fmt.Errorf("checkpoint: empty biome id")
	}
	return &Store{dir: dir, biome: biome}, nil
}

// Biome returns the biome id this store belongs to.
func (s *Store) Biome() string {
	return s.biome
}

// Path returns the checkpoint file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, s.biome+"_checkpoint.json")
}

// Exists reports whether a checkpoint file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path())
	return err == nil
}

// Save overwrites the checkpoint with rec. The file is replaced atomically
// so an interrupted write leaves the previous checkpoint intact.
func (s *Store) Save(rec Record) error {
	rec.Version = Version
	rec.Biome = s.biome

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("checkpoint: cannot encode %s: %w", s.biome, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("checkpoint: cannot create directory %s: %w", s.dir, err)
	}

	tmp, err := os.CreateTemp(s.dir, s.biome+"_checkpoint-*.tmp")
	if err != nil {
		return fmt.Errorf("checkpoint: cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("checkpoint: cannot write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("checkpoint: cannot close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("checkpoint: cannot replace %s: %w", s.Path(), err)
	}
	return nil
}

// Load reads the checkpoint and overlays it on defaults. Fields missing
// from the file and platforms or keys beyond the saved lists keep their
// default values; key bindings pointing outside the platform list keep
// the default binding.
//
// When the file is absent the returned error wraps ErrNotFound, and when it
// is malformed the error wraps ErrCorrupt. In both cases defaults is
// returned unchanged.
func (s *Store) Load(defaults Record) (Record, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaults.Clone(), ErrNotFound
		}
		return defaults.Clone(), fmt.Errorf("checkpoint: cannot read %s: %w", s.Path(), err)
	}

	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return defaults.Clone(), fmt.Errorf("%w: %s: %v", ErrCorrupt, s.Path(), err)
	}

	return merge(defaults, w), nil
}

// Clear removes the checkpoint file. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checkpoint: cannot remove %s: %w", s.Path(), err)
	}
	return nil
}
