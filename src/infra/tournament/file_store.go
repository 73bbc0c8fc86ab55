package tournament

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/duotcg/tournament/src/domain/shared"
	"github.com/duotcg/tournament/src/domain/tournament"
)

// FileStore implements tournament.Store as a single JSON file. Writes go to
// a temporary file in the same directory that is then renamed over the
// target, so a crash never leaves a half written snapshot behind.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	logger *zap.Logger
}

// NewFileStore creates a store backed by path. The file is created on the
// first Save.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the snapshot location.
func (s *FileStore) Path() string { return s.path }

// Save writes the snapshot atomically.
func (s *FileStore) Save(ctx context.Context, t *tournament.Tournament) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(t)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", shared.ErrPersistence, dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", shared.ErrPersistence, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write snapshot: %v", shared.ErrPersistence, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync snapshot: %v", shared.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close snapshot: %v", shared.ErrPersistence, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: replace snapshot: %v", shared.ErrPersistence, err)
	}
	return nil
}

// Load reads the snapshot. A missing or unreadable file reads as no
// snapshot; the latter is logged.
func (s *FileStore) Load(ctx context.Context) (*tournament.Tournament, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, tournament.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", shared.ErrPersistence, s.path, err)
	}
	t, err := Decode(data)
	if err != nil {
		s.logger.Warn("discarding unreadable snapshot", zap.String("path", s.path), zap.Error(err))
		return nil, tournament.ErrSnapshotNotFound
	}
	return t, nil
}

// Clear removes the snapshot file.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove %s: %v", shared.ErrPersistence, s.path, err)
	}
	return nil
}
