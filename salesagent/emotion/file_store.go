package emotion

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theimaginaryfoundation/axis-agent/salesagent/fileutils"
)

// FileStore keeps one JSON file per key under Dir. Writes are atomic (temp file + rename).
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("emotion.NewFileStore: empty dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("emotion.NewFileStore: mkdir %s: %w", dir, err)
	}
	return &FileStore{Dir: dir}, nil
}

func (s *FileStore) Get(_ context.Context, key string) (Vector, bool, error) {
	if key == "" {
		return Vector{}, false, ErrEmptyKey
	}
	var rec Record
	if err := fileutils.ReadJSONFile(s.path(key), &rec); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Vector{}, false, nil
		}
		return Vector{}, false, fmt.Errorf("emotion.FileStore.Get: %w", err)
	}
	return rec.Vector, true, nil
}

func (s *FileStore) Upsert(_ context.Context, key string, v Vector) error {
	if key == "" {
		return ErrEmptyKey
	}
	rec := Record{Key: key, Vector: v, UpdatedAt: time.Now().UTC()}
	if err := fileutils.WriteJSONFileAtomic(s.path(key), rec, true); err != nil {
		return fmt.Errorf("emotion.FileStore.Upsert: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("emotion.FileStore.Delete: %w", err)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.Dir, fileName(key)+".json")
}

// fileName maps a key to a single path segment. The encoding is reversible so distinct keys never
// share a file.
func fileName(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}

var _ Store = (*FileStore)(nil)
