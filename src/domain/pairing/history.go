package pairing

import (
	"github.com/dominikbraun/graph"

	"github.com/duotcg/tournament/src/domain/shared"
	"github.com/duotcg/tournament/src/domain/tournament"
)

func teamKey(t *tournament.Team) shared.TeamID {
	return t.ID
}

// History is the undirected graph of who has played whom. Vertices are the
// registered teams, an edge joins two teams that completed a match.
type History struct {
	graph.Graph[shared.TeamID, *tournament.Team]
}

// NewHistory builds the graph from the opponent lists of teams. Opponents
// that are not among teams are ignored.
func NewHistory(teams []*tournament.Team) *History {
	h := &History{Graph: graph.New(teamKey)}
	for _, team := range teams {
		_ = h.AddVertex(team)
	}
	for _, team := range teams {
		for _, opp := range team.OpponentIDs {
			// Rematches and unknown opponents fail here and need no edge.
			_ = h.AddEdge(team.ID, opp)
		}
	}
	return h
}

// HasPlayed reports whether a and b have met.
func (h *History) HasPlayed(a, b shared.TeamID) bool {
	_, err := h.Edge(a, b)
	return err == nil
}

// Pair walks pool in order and pairs each unpaired team with the first
// later unpaired team it has not played yet. When every remaining team is
// a rematch it takes the first one anyway. A trailing odd team is returned
// as leftover.
func (h *History) Pair(pool []*tournament.Team) (pairs [][2]*tournament.Team, repeats int, leftover *tournament.Team) {
	paired := make([]bool, len(pool))
	for i, team := range pool {
		if paired[i] {
			continue
		}
		first, fresh := -1, -1
		for j := i + 1; j < len(pool); j++ {
			if paired[j] {
				continue
			}
			if first < 0 {
				first = j
			}
			if !h.HasPlayed(team.ID, pool[j].ID) {
				fresh = j
				break
			}
		}
		pick := fresh
		if pick < 0 {
			pick = first
			if pick >= 0 {
				repeats++
			}
		}
		if pick < 0 {
			leftover = team
			break
		}
		paired[i], paired[pick] = true, true
		pairs = append(pairs, [2]*tournament.Team{team, pool[pick]})
	}
	return pairs, repeats, leftover
}
