// Package pairing generates the matches of a round under swiss or
// round-robin rules.
package pairing

import (
	"math/rand/v2"
	"slices"

	"github.com/duotcg/tournament/src/domain/ranking"
	"github.com/duotcg/tournament/src/domain/tournament"
)

// Engine pairs the teams of a tournament for its current round.
type Engine struct {
	IDs  tournament.IDGenerator
	Rand *rand.Rand
}

// NewEngine creates a pairing engine. Round 1 of a swiss tournament draws
// from rng; every later decision is deterministic.
func NewEngine(ids tournament.IDGenerator, rng *rand.Rand) *Engine {
	return &Engine{IDs: ids, Rand: rng}
}

// Result describes a generated round.
type Result struct {
	Round   int
	Matches []*tournament.Match
	// Repeats counts pairings that had to rematch teams.
	Repeats int
	// Unpaired lists teams that sit the round out. Only round-robin
	// rounds have them; they score nothing.
	Unpaired []*tournament.Team
	// Unmatched lists swiss teams the pairing could not place. The bye
	// keeps the pool even, so any entry is a pairing fault.
	Unmatched []*tournament.Team
}

// Bye returns the bye match of the round, if any.
func (r Result) Bye() *tournament.Match {
	if i := slices.IndexFunc(r.Matches, func(m *tournament.Match) bool { return m.IsBye }); i >= 0 {
		return r.Matches[i]
	}
	return nil
}

// GenerateRound creates the matches for t.CurrentRound and appends them to
// t.Matches. Swiss byes are credited to the live team right away.
func (e *Engine) GenerateRound(t *tournament.Tournament) (Result, error) {
	if !t.IsActive {
		return Result{}, tournament.ErrTournamentNotActive
	}
	var (
		res Result
		err error
	)
	switch t.Format {
	case tournament.FormatRoundRobin:
		res, err = e.roundRobin(t)
	default:
		res = e.swiss(t)
	}
	if err != nil {
		return Result{}, err
	}
	res.Round = t.CurrentRound
	t.Matches = append(t.Matches, res.Matches...)
	return res, nil
}

func (e *Engine) swiss(t *tournament.Tournament) Result {
	round := t.CurrentRound
	pool := t.ActiveTeams()
	calc := ranking.NewCalculator(t)
	var res Result

	if len(pool)%2 == 1 {
		var bye *tournament.Team
		if round == 1 {
			bye = pool[e.Rand.IntN(len(pool))]
		} else {
			calc.SortForBye(pool)
			bye = pool[0]
		}
		bye.AwardBye(t.ByePoints)
		res.Matches = append(res.Matches, tournament.NewByeMatch(e.IDs.NewMatchID(), bye, round, t.ByePoints))
		pool = slices.DeleteFunc(pool, func(team *tournament.Team) bool { return team.ID == bye.ID })
	}

	if round == 1 {
		e.Rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	} else {
		calc.SortByStanding(pool)
	}

	matches, repeats, unmatched := e.pairSwiss(t, pool, round)
	res.Matches = append(res.Matches, matches...)
	res.Repeats = repeats
	res.Unmatched = unmatched
	return res
}

// pairSwiss pairs an ordered pool. A team left without an opponent is
// returned in unmatched.
func (e *Engine) pairSwiss(t *tournament.Tournament, pool []*tournament.Team, round int) (matches []*tournament.Match, repeats int, unmatched []*tournament.Team) {
	pairs, repeats, leftover := NewHistory(t.Teams).Pair(pool)
	for _, p := range pairs {
		matches = append(matches, tournament.NewMatch(e.IDs.NewMatchID(), p[0], p[1], round))
	}
	if leftover != nil {
		unmatched = append(unmatched, leftover)
	}
	return matches, repeats, unmatched
}
