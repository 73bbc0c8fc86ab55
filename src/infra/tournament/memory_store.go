package tournament

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/duotcg/tournament/src/domain/tournament"
)

// MemoryStore implements tournament.Store on an in-memory blob. Every Save
// stores an encoded copy, so later changes to the saved tournament are not
// visible to Load.
type MemoryStore struct {
	mu     sync.RWMutex
	blob   []byte
	logger *zap.Logger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{logger: logger}
}

// Save replaces the stored snapshot.
func (s *MemoryStore) Save(ctx context.Context, t *tournament.Tournament) error {
	data, err := Encode(t)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blob = data
	return nil
}

// Load decodes the stored snapshot.
func (s *MemoryStore) Load(ctx context.Context) (*tournament.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.blob == nil {
		return nil, tournament.ErrSnapshotNotFound
	}
	t, err := Decode(s.blob)
	if err != nil {
		s.logger.Warn("discarding unreadable snapshot", zap.Error(err))
		return nil, tournament.ErrSnapshotNotFound
	}
	return t, nil
}

// Clear drops the stored snapshot.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blob = nil
	return nil
}

// Raw returns the stored bytes.
func (s *MemoryStore) Raw() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.blob...)
}

// SetRaw replaces the stored bytes without validation.
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = append([]byte(nil), data...)
}
