package snapshot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"caseboard/internal/client"
)

// File stores the snapshot as a single JSON document on disk. Writes go
// through a temp file and rename so a crash mid-write cannot leave a
// truncated snapshot behind.
type File struct {
	path string
}

func OpenFile(path string) (*File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	return &File{path: path}, nil
}

func (f *File) Load() ([]client.Client, bool, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot: %w", err)
	}
	clients, err := decode(raw)
	if err != nil {
		return nil, false, err
	}
	return clients, true, nil
}

func (f *File) Save(clients []client.Client) error {
	data, err := encode(clients)
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (f *File) Close() error {
	return nil
}
