package filestore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"asset-console/internal/domain"
)

// SnapshotStore keeps one JSON file per store key inside a data directory.
// Writes go through a temp file and rename so a crash mid-write never leaves
// a truncated snapshot behind.
type SnapshotStore struct {
	dir string
}

func NewSnapshotStore(dir string) (*SnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &SnapshotStore{dir: dir}, nil
}

func (s *SnapshotStore) path(key string) string {
	name := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, name+".json")
}

func (s *SnapshotStore) Save(_ context.Context, key string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(key))
}

func (s *SnapshotStore) Load(_ context.Context, key string, out any) error {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
