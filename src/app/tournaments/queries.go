package tournaments

import (
	"cmp"
	"slices"

	"github.com/duotcg/tournament/src/domain/ranking"
	"github.com/duotcg/tournament/src/domain/tournament"
)

// Phase summarizes where the tournament is in its lifecycle.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseActive     Phase = "active"
	PhaseComplete   Phase = "complete"
)

// Status is the read-only header of the tournament.
type Status struct {
	Name             string
	Format           tournament.Format
	ByePoints        int
	Phase            Phase
	CurrentRound     int
	PlannedRounds    int
	CustomRoundLimit *int
	Teams            int
	ActiveTeams      int
	CompletedMatches int
	RoundComplete    bool
}

// Status returns the current status.
func (s *Service) Status() Status {
	t := s.current
	st := Status{
		Name:          t.Name,
		Format:        t.Format,
		ByePoints:     t.ByePoints,
		Phase:         PhaseNotStarted,
		CurrentRound:  t.CurrentRound,
		PlannedRounds: t.PlannedRounds(),
		Teams:         len(t.Teams),
		ActiveTeams:   len(t.ActiveTeams()),
	}
	if t.CustomRoundLimit != nil {
		limit := *t.CustomRoundLimit
		st.CustomRoundLimit = &limit
	}
	switch {
	case t.IsActive:
		st.Phase = PhaseActive
	case t.IsComplete:
		st.Phase = PhaseComplete
	}
	for _, m := range t.Matches {
		if m.IsComplete && !m.IsBye {
			st.CompletedMatches++
		}
	}
	st.RoundComplete = t.CurrentRound > 0 && len(t.IncompleteMatches(t.CurrentRound)) == 0
	return st
}

// Teams returns the registered teams in registration order.
func (s *Service) Teams() []tournament.Team {
	teams := make([]tournament.Team, 0, len(s.current.Teams))
	for _, team := range s.current.Teams {
		teams = append(teams, team.Snapshot())
	}
	return teams
}

// Standings ranks every team.
func (s *Service) Standings() []ranking.Standing {
	return ranking.Standings(s.current)
}

// CurrentMatches returns the matches of the current round.
func (s *Service) CurrentMatches() []tournament.Match {
	return cloneAll(s.current.RoundMatches(s.current.CurrentRound))
}

// MatchHistory returns every completed match ordered by round.
func (s *Service) MatchHistory() []tournament.Match {
	done := slices.DeleteFunc(slices.Clone(s.current.Matches), func(m *tournament.Match) bool { return !m.IsComplete })
	slices.SortStableFunc(done, func(a, b *tournament.Match) int { return cmp.Compare(a.Round, b.Round) })
	return cloneAll(done)
}

// Snapshot returns a deep copy of the whole tournament.
func (s *Service) Snapshot() *tournament.Tournament {
	return s.current.Clone()
}

func cloneAll(matches []*tournament.Match) []tournament.Match {
	out := make([]tournament.Match, 0, len(matches))
	for _, m := range matches {
		out = append(out, *m.Clone())
	}
	return out
}
