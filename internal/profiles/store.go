package profiles

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"jobtailor/internal/shared/telemetry"
)

const profileFileName = "profile.json"

// FileStore persists one JSON document per profile under a key-named
// directory below root.
type FileStore struct {
	root string
}

// NewFileStore constructs a FileStore rooted at root.
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Save writes the profile as indented JSON, refreshing its updated
// timestamp. It fails with ErrNoStorageKey when the profile has no name.
func (s *FileStore) Save(p *Profile) error {
	key := p.StorageKey()
	if key == "" {
		return ErrNoStorageKey
	}

	p.UpdatedAt = time.Now().Format(TimeFormat)
	if p.CreatedAt == "" {
		p.CreatedAt = p.UpdatedAt
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}

	dir := filepath.Join(s.root, key)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir profile dir: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, profileFileName), data, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}

	telemetry.Info("profile.saved", map[string]any{"key": key})
	return nil
}

// Load reads the profile stored under key. ErrNotFound when absent.
func (s *FileStore) Load(key string) (Profile, error) {
	data, err := os.ReadFile(filepath.Join(s.root, key, profileFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("read profile %s: %w", key, err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile %s: %w", key, err)
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return p, nil
}

// ListAll scans the root for stored profiles, skipping and logging any
// unparsable entry, and returns them sorted by updated timestamp descending.
func (s *FileStore) ListAll() ([]Profile, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Profile{}, nil
		}
		return nil, fmt.Errorf("scan profiles dir: %w", err)
	}

	out := make([]Profile, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		p, err := s.Load(entry.Name())
		if err != nil {
			telemetry.Warn("profile.skip_unparsable", map[string]any{
				"key":   entry.Name(),
				"error": err.Error(),
			})
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt > out[j].UpdatedAt
	})
	return out, nil
}

// Delete removes the profile's files and directory. Partial removal
// surfaces as an error for the caller to show as a warning.
func (s *FileStore) Delete(key string) error {
	dir := filepath.Join(s.root, key)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scan profile dir %s: %w", key, err)
	}
	for _, entry := range entries {
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("remove profile file %s: %w", entry.Name(), err)
		}
	}
	if err := os.Remove(dir); err != nil {
		return fmt.Errorf("remove profile dir %s: %w", key, err)
	}

	telemetry.Info("profile.deleted", map[string]any{"key": key})
	return nil
}
