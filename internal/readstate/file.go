package readstate

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// fileState is the on-disk shape of a file-backed read state.
type fileState struct {
	LastSeenVersion string    `yaml:"last_seen_version"`
	UpdatedAt       time.Time `yaml:"updated_at"`
}

// FileStore persists the read state as a small YAML file per profile.
type FileStore struct {
	// Path is the full path of the state file.
	Path string
	now  func() time.Time
}

// NewFileStore creates a store for profile under stateDir.
// The directory is created on first save.
func NewFileStore(stateDir, profile string) *FileStore {
	return &FileStore{
		Path: StatePath(stateDir, profile),
		now:  time.Now,
	}
}

// StatePath returns the path of the state file for a profile.
func StatePath(stateDir, profile string) string {
	return filepath.Join(stateDir, fmt.Sprintf("%s.readstate.yaml", profile))
}

// Load implements Store. A missing file means nothing was acknowledged yet.
func (s *FileStore) Load() (string, bool, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: reading state file: %w", ErrPersistenceUnavailable, err)
	}

	var st fileState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return "", false, fmt.Errorf("%w: parsing state file: %w", ErrPersistenceUnavailable, err)
	}
	if st.LastSeenVersion == "" {
		return "", false, nil
	}
	return st.LastSeenVersion, true, nil
}

// Save implements Store. Writes go to a temp file that is renamed into
// place so a crash never leaves a truncated state file.
func (s *FileStore) Save(version string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("%w: creating state directory: %w", ErrPersistenceUnavailable, err)
	}

	data, err := yaml.Marshal(fileState{LastSeenVersion: version, UpdatedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	tmpPath := s.Path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing temp state file: %w", ErrPersistenceUnavailable, err)
	}

	if err := os.Rename(tmpPath, s.Path); err != nil {
		os.Remove(tmpPath) // Best effort cleanup
		return fmt.Errorf("%w: renaming temp state file: %w", ErrPersistenceUnavailable, err)
	}

	return nil
}

// Close implements Store.
func (s *FileStore) Close() error { return nil }
