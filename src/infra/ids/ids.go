// Package ids provides match id generators.
package ids

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/samborkent/uuidv7"
	"go.uber.org/atomic"

	"github.com/duotcg/tournament/src/domain/shared"
	"github.com/duotcg/tournament/src/domain/tournament"
)

// UUIDGenerator issues random version 4 UUIDs.
type UUIDGenerator struct{}

// NewMatchID returns a fresh UUID string.
func (UUIDGenerator) NewMatchID() shared.MatchID {
	return shared.MatchID(uuid.Must(uuid.NewV4()).String())
}

// TimeOrderedGenerator issues version 7 UUIDs, which sort by creation
// time.
type TimeOrderedGenerator struct{}

// NewMatchID returns a fresh time-ordered UUID string.
func (TimeOrderedGenerator) NewMatchID() shared.MatchID {
	return shared.MatchID(uuidv7.New().String())
}

// SequenceGenerator issues prefix-1, prefix-2, ... and is safe for
// concurrent use.
type SequenceGenerator struct {
	prefix string
	next   atomic.Int64
}

// NewSequenceGenerator starts a sequence after start.
func NewSequenceGenerator(prefix string, start int64) *SequenceGenerator {
	g := &SequenceGenerator{prefix: prefix}
	g.next.Store(start)
	return g
}

// ResumeSequence starts a sequence after the highest prefix-N id in used.
// Ids with another shape are ignored.
func ResumeSequence(prefix string, used []shared.MatchID) *SequenceGenerator {
	var last int64
	for _, id := range used {
		rest, ok := strings.CutPrefix(string(id), prefix+"-")
		if !ok {
			continue
		}
		if n, err := strconv.ParseInt(rest, 10, 64); err == nil && n > last {
			last = n
		}
	}
	return NewSequenceGenerator(prefix, last)
}

// NewMatchID returns the next id in the sequence.
func (g *SequenceGenerator) NewMatchID() shared.MatchID {
	return shared.MatchID(fmt.Sprintf("%s-%d", g.prefix, g.next.Inc()))
}

// New builds the generator named by kind: "uuid", "uuidv7" or "sequence".
func New(kind string) (tournament.IDGenerator, error) {
	switch kind {
	case "", "uuid":
		return UUIDGenerator{}, nil
	case "uuidv7":
		return TimeOrderedGenerator{}, nil
	case "sequence":
		return NewSequenceGenerator("match", 0), nil
	}
	return nil, fmt.Errorf("%w: unknown id generator %q", shared.ErrValidation, kind)
}
