package tournament

import (
	"context"

	"github.com/duotcg/tournament/src/domain/shared"
)

// Store persists the whole tournament as a single snapshot.
//
// Load returns ErrSnapshotNotFound when nothing is stored or when the
// stored data cannot be decoded.
type Store interface {
	Save(ctx context.Context, t *Tournament) error
	Load(ctx context.Context) (*Tournament, error)
	Clear(ctx context.Context) error
}

// IDGenerator hands out unique match ids.
type IDGenerator interface {
	NewMatchID() shared.MatchID
}
