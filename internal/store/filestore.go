package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"aurora/internal/game"
)

// FileStore keeps the snapshot as a JSON file under the player's home
// directory.
type FileStore struct {
	path string
}

// OpenFile builds a file store at path, or ~/.aurora/save.json when
// path is empty.
func OpenFile(path string) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".aurora", "save.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Save(_ context.Context, snap game.Snapshot) error {
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// Load reads the save file. A missing, empty or unreadable-as-JSON file
// is treated as no save, so a fresh game starts instead of refusing to
// boot.
func (s *FileStore) Load(context.Context) (game.Snapshot, bool, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return game.Snapshot{}, false, nil
		}
		return game.Snapshot{}, false, err
	}
	if len(raw) == 0 {
		return game.Snapshot{}, false, nil
	}
	var snap game.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return game.Snapshot{}, false, nil
	}
	return snap, true, nil
}

func (s *FileStore) Close() {}
