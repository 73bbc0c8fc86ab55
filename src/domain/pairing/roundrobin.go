package pairing

import (
	"github.com/duotcg/tournament/src/domain/shared"
	"github.com/duotcg/tournament/src/domain/tournament"
)

// Schedule lists every pairing of teams exactly once. Fixture k is
// assigned to round k mod (n-1) + 1, which spreads the fixtures over n-1
// rounds but may give a team two fixtures in one round.
func (e *Engine) Schedule(teams []*tournament.Team) []*tournament.Match {
	rounds := max(len(teams)-1, 1)
	fixtures := make([]*tournament.Match, 0, len(teams)*(len(teams)-1)/2)
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			scheduled := len(fixtures)%rounds + 1
			m := tournament.NewMatch(e.IDs.NewMatchID(), teams[i], teams[j], scheduled)
			m.ScheduledRound = scheduled
			fixtures = append(fixtures, m)
		}
	}
	return fixtures
}

func (e *Engine) roundRobin(t *tournament.Tournament) (Result, error) {
	round := t.CurrentRound
	if round > t.ScheduledRounds() {
		return Result{}, tournament.ErrScheduleExhausted
	}
	if round == 1 || len(t.AllMatches) == 0 {
		t.AllMatches = e.Schedule(t.Teams)
	}

	var res Result
	playing := make(map[shared.TeamID]bool, len(t.Teams))
	for _, fixture := range t.AllMatches {
		if fixture.ScheduledRound != round {
			continue
		}
		m := fixture.Clone()
		m.Round = round
		res.Matches = append(res.Matches, m)
		playing[m.Team1.ID] = true
		playing[m.Team2.ID] = true
	}
	for _, team := range t.Teams {
		if !playing[team.ID] {
			res.Unpaired = append(res.Unpaired, team)
		}
	}
	return res, nil
}
