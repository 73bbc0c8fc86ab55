// Package ranking computes standings and the OMW/OOMW tiebreakers from a
// tournament's completed matches.
package ranking

import (
	"cmp"
	"slices"

	"github.com/duotcg/tournament/src/domain/shared"
	"github.com/duotcg/tournament/src/domain/tournament"
)

// MinimumPercentage is the floor for both tiebreakers.
const MinimumPercentage = 0.333

type record struct {
	wins   int
	played int
}

// Calculator answers tiebreaker queries over one state of a tournament.
// Build a new one after the tournament changes.
type Calculator struct {
	teams   []*tournament.Team
	byID    map[shared.TeamID]*tournament.Team
	records map[shared.TeamID]record
	omw     map[shared.TeamID]float64
}

// NewCalculator tallies the completed non-bye matches of t.
func NewCalculator(t *tournament.Tournament) *Calculator {
	c := &Calculator{
		teams:   t.Teams,
		byID:    make(map[shared.TeamID]*tournament.Team, len(t.Teams)),
		records: make(map[shared.TeamID]record, len(t.Teams)),
		omw:     make(map[shared.TeamID]float64, len(t.Teams)),
	}
	for _, team := range t.Teams {
		c.byID[team.ID] = team
	}
	for _, m := range t.Matches {
		if m.IsBye || !m.IsComplete || m.Team2 == nil {
			continue
		}
		winner := m.Winner()
		c.tally(m.Team1.ID, winner == tournament.SideTeam1)
		c.tally(m.Team2.ID, winner == tournament.SideTeam2)
	}
	return c
}

func (c *Calculator) tally(id shared.TeamID, won bool) {
	r := c.records[id]
	r.played++
	if won {
		r.wins++
	}
	c.records[id] = r
}

// MatchWins returns the completed matches id won and played.
func (c *Calculator) MatchWins(id shared.TeamID) (wins, played int) {
	r := c.records[id]
	return r.wins, r.played
}

// OMW is the combined match-win rate of every opponent the team has
// faced, counted once per meeting.
func (c *Calculator) OMW(id shared.TeamID) float64 {
	if v, ok := c.omw[id]; ok {
		return v
	}
	team, ok := c.byID[id]
	if !ok || len(team.OpponentIDs) == 0 {
		return MinimumPercentage
	}
	var wins, played int
	for _, opp := range team.OpponentIDs {
		r := c.records[opp]
		wins += r.wins
		played += r.played
	}
	v := floor(ratio(wins, played))
	c.omw[id] = v
	return v
}

// OOMW averages the OMW of every opponent the team has faced, counted
// once per meeting. Opponents that are no longer registered are skipped.
func (c *Calculator) OOMW(id shared.TeamID) float64 {
	team, ok := c.byID[id]
	if !ok || len(team.OpponentIDs) == 0 {
		return MinimumPercentage
	}
	var sum float64
	var n int
	for _, opp := range team.OpponentIDs {
		if _, ok := c.byID[opp]; !ok {
			continue
		}
		sum += c.OMW(opp)
		n++
	}
	if n == 0 {
		return MinimumPercentage
	}
	return floor(sum / float64(n))
}

func ratio(wins, played int) float64 {
	if played == 0 {
		return 0
	}
	return float64(wins) / float64(played)
}

func floor(v float64) float64 {
	return max(v, MinimumPercentage)
}

// Standing is one row of the standings table.
type Standing struct {
	Rank   int
	Team   tournament.Team
	OMW    float64
	OOMW   float64
	Wins   int
	Played int
}

// Standings ranks every registered team, dropped teams included, by
// points, OMW and OOMW descending and then by name.
func (c *Calculator) Standings() []Standing {
	rows := make([]Standing, 0, len(c.teams))
	for _, team := range c.teams {
		wins, played := c.MatchWins(team.ID)
		rows = append(rows, Standing{
			Team:   team.Snapshot(),
			OMW:    c.OMW(team.ID),
			OOMW:   c.OOMW(team.ID),
			Wins:   wins,
			Played: played,
		})
	}
	slices.SortStableFunc(rows, func(a, b Standing) int {
		return cmp.Or(
			cmp.Compare(b.Team.Points, a.Team.Points),
			cmp.Compare(b.OMW, a.OMW),
			cmp.Compare(b.OOMW, a.OOMW),
			cmp.Compare(a.Team.Name, b.Team.Name),
		)
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// SortByStanding orders teams best first, using the standings keys.
func (c *Calculator) SortByStanding(teams []*tournament.Team) {
	slices.SortStableFunc(teams, func(a, b *tournament.Team) int {
		return cmp.Or(
			cmp.Compare(b.Points, a.Points),
			cmp.Compare(c.OMW(b.ID), c.OMW(a.ID)),
			cmp.Compare(c.OOMW(b.ID), c.OOMW(a.ID)),
			cmp.Compare(a.Name, b.Name),
		)
	})
}

// SortForBye orders teams so the most deserving bye recipient comes first:
// fewest byes, then the lowest standing, then name.
func (c *Calculator) SortForBye(teams []*tournament.Team) {
	slices.SortStableFunc(teams, func(a, b *tournament.Team) int {
		return cmp.Or(
			cmp.Compare(a.ByeCount, b.ByeCount),
			cmp.Compare(a.Points, b.Points),
			cmp.Compare(c.OMW(a.ID), c.OMW(b.ID)),
			cmp.Compare(c.OOMW(a.ID), c.OOMW(b.ID)),
			cmp.Compare(a.Name, b.Name),
		)
	})
}

// Standings is a shorthand for NewCalculator(t).Standings().
func Standings(t *tournament.Tournament) []Standing {
	return NewCalculator(t).Standings()
}
