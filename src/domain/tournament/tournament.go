package tournament

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/duotcg/tournament/src/domain/shared"
)

// Format selects the pairing system.
type Format string

const (
	FormatSwiss      Format = "swiss"
	FormatRoundRobin Format = "roundrobin"
)

// Validate accepts the known formats.
func (f Format) Validate() error {
	if f != FormatSwiss && f != FormatRoundRobin {
		return ErrInvalidFormat
	}
	return nil
}

// Settings configure a tournament on initialization.
type Settings struct {
	Name             string
	Format           Format
	ByePoints        int
	CustomRoundLimit *int
}

// Tournament aggregate owns the teams, the match log and the round loop.
//
// A tournament is created empty, initialized, filled with teams, started,
// advanced round by round and finally completed. ResetMatches returns it to
// the pre-start state while keeping the registered teams.
type Tournament struct {
	Name             string        `json:"name"`
	Format           Format        `json:"format"`
	ByePoints        int           `json:"byePoints"`
	CustomRoundLimit *int          `json:"customRoundLimit"`
	Teams            []*Team       `json:"teams"`
	Matches          []*Match      `json:"matches"`
	AllMatches       []*Match      `json:"allMatches"`
	CurrentRound     int           `json:"currentRound"`
	IsActive         bool          `json:"isActive"`
	IsComplete       bool          `json:"isComplete"`
	NextTeamID       shared.TeamID `json:"nextTeamId"`
}

// New returns an empty, not yet initialized tournament.
func New() *Tournament {
	return &Tournament{
		Format:     FormatSwiss,
		ByePoints:  DefaultByePoints,
		Teams:      []*Team{},
		Matches:    []*Match{},
		AllMatches: []*Match{},
		NextTeamID: 1,
	}
}

// Initialize applies settings and clears teams and matches.
func (t *Tournament) Initialize(s Settings) error {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return ErrNameRequired
	}
	if err := s.Format.Validate(); err != nil {
		return err
	}
	if s.ByePoints < 0 {
		return ErrInvalidByePoints
	}
	if s.CustomRoundLimit != nil && *s.CustomRoundLimit <= 0 {
		return ErrInvalidRoundLimit
	}

	*t = *New()
	t.Name = name
	t.Format = s.Format
	t.ByePoints = s.ByePoints
	if s.CustomRoundLimit != nil {
		limit := *s.CustomRoundLimit
		t.CustomRoundLimit = &limit
	}
	return nil
}

// RegisterTeam adds a team. Registration is closed once the tournament
// has started.
func (t *Tournament) RegisterTeam(name, player1, player2 string, solo bool) (*Team, error) {
	if t.IsActive {
		return nil, ErrTournamentActive
	}
	if t.IsComplete {
		return nil, ErrTournamentComplete
	}
	team, err := NewTeam(t.NextTeamID, name, player1, player2, solo)
	if err != nil {
		return nil, err
	}
	if slices.ContainsFunc(t.Teams, func(existing *Team) bool { return existing.Name == team.Name }) {
		return nil, ErrDuplicateTeamName
	}
	t.Teams = append(t.Teams, team)
	t.NextTeamID++
	return team, nil
}

// RemoveTeam unregisters a team before the tournament starts.
func (t *Tournament) RemoveTeam(id shared.TeamID) error {
	if t.IsActive {
		return ErrTournamentActive
	}
	i := t.teamIndex(id)
	if i < 0 {
		return ErrTeamNotFound
	}
	t.Teams = slices.Delete(t.Teams, i, i+1)
	return nil
}

// DropTeam withdraws a team from future swiss pairings. Its record stays
// in the standings.
func (t *Tournament) DropTeam(id shared.TeamID) error {
	if !t.IsActive || t.Format != FormatSwiss {
		return ErrDropUnsupported
	}
	team, err := t.Team(id)
	if err != nil {
		return err
	}
	if team.Dropped {
		return ErrTeamDropped
	}
	team.Dropped = true
	return nil
}

// Start opens round 1. The caller generates its pairings.
func (t *Tournament) Start() error {
	if t.IsActive {
		return ErrTournamentActive
	}
	if t.IsComplete {
		return ErrTournamentComplete
	}
	if len(t.Teams) < 2 {
		return ErrNotEnoughTeams
	}
	t.IsActive = true
	t.CurrentRound = 1
	return nil
}

// AdvanceRound moves to the next round once every match of the current
// round is complete. The caller generates its pairings.
func (t *Tournament) AdvanceRound() error {
	if !t.IsActive {
		return ErrTournamentNotActive
	}
	if t.IsComplete {
		return ErrTournamentComplete
	}
	if err := t.checkRoundComplete(); err != nil {
		return err
	}
	if t.Format == FormatRoundRobin && t.CurrentRound >= t.ScheduledRounds() {
		return fmt.Errorf("%w: all %d rounds have been played", ErrScheduleExhausted, t.ScheduledRounds())
	}
	t.CurrentRound++
	return nil
}

// CanComplete reports why the tournament cannot be completed yet, if at all.
func (t *Tournament) CanComplete() error {
	if !t.IsActive {
		return ErrTournamentNotActive
	}
	if len(t.Matches) == 0 {
		return ErrNoMatchesPlayed
	}
	return t.checkRoundComplete()
}

// Complete ends the tournament. It is terminal until ResetMatches.
func (t *Tournament) Complete() error {
	if err := t.CanComplete(); err != nil {
		return err
	}
	t.IsComplete = true
	t.IsActive = false
	return nil
}

// ResetMatches discards every match and every team record but keeps the
// registered teams and their ids.
func (t *Tournament) ResetMatches() {
	t.IsActive = false
	t.IsComplete = false
	t.CurrentRound = 0
	t.Matches = []*Match{}
	t.AllMatches = []*Match{}
	for _, team := range t.Teams {
		team.resetRecord()
	}
}

// RecordResult records the winner of one game. When the match completes,
// its points and pairing are applied to both live teams.
func (t *Tournament) RecordResult(id shared.MatchID, gameIndex int, winner Side) (*Match, error) {
	m, err := t.Match(id)
	if err != nil {
		return nil, err
	}
	if err := m.Record(gameIndex, winner); err != nil {
		return m, err
	}
	if m.IsComplete {
		t.applyResult(m)
	}
	return m, nil
}

func (t *Tournament) applyResult(m *Match) {
	team1, err1 := t.Team(m.Team1.ID)
	team2, err2 := t.Team(m.Team2.ID)
	if err1 != nil || err2 != nil {
		return
	}
	team1.recordMatch(team2.ID, m.ID, m.Team1Points)
	team2.recordMatch(team1.ID, m.ID, m.Team2Points)
}

func (t *Tournament) checkRoundComplete() error {
	if n := len(t.IncompleteMatches(t.CurrentRound)); n > 0 {
		return fmt.Errorf("%w: %d match(es) from round %d are still incomplete", ErrRoundIncomplete, n, t.CurrentRound)
	}
	return nil
}

// Team looks up a live team.
func (t *Tournament) Team(id shared.TeamID) (*Team, error) {
	if i := t.teamIndex(id); i >= 0 {
		return t.Teams[i], nil
	}
	return nil, ErrTeamNotFound
}

func (t *Tournament) teamIndex(id shared.TeamID) int {
	return slices.IndexFunc(t.Teams, func(team *Team) bool { return team.ID == id })
}

// Match looks up a played or scheduled match of the match log.
func (t *Tournament) Match(id shared.MatchID) (*Match, error) {
	for _, m := range t.Matches {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
}

// RoundMatches returns the matches of round in log order.
func (t *Tournament) RoundMatches(round int) []*Match {
	matches := make([]*Match, 0)
	for _, m := range t.Matches {
		if m.Round == round {
			matches = append(matches, m)
		}
	}
	return matches
}

// IncompleteMatches returns the unfinished matches of round.
func (t *Tournament) IncompleteMatches(round int) []*Match {
	return slices.DeleteFunc(t.RoundMatches(round), func(m *Match) bool { return m.IsComplete })
}

// ActiveTeams returns the teams still taking part in pairings.
func (t *Tournament) ActiveTeams() []*Team {
	active := make([]*Team, 0, len(t.Teams))
	for _, team := range t.Teams {
		if !team.Dropped {
			active = append(active, team)
		}
	}
	return active
}

// ScheduledRounds is the length of the round-robin schedule.
func (t *Tournament) ScheduledRounds() int {
	return max(len(t.Teams)-1, 1)
}

// PlannedRounds is the advisory number of rounds: the custom limit when
// set, the round-robin schedule length, or the official swiss table.
func (t *Tournament) PlannedRounds() int {
	if t.CustomRoundLimit != nil {
		return *t.CustomRoundLimit
	}
	if t.Format == FormatRoundRobin {
		return t.ScheduledRounds()
	}
	return OfficialSwissRounds(len(t.Teams))
}

// Validate checks the structural invariants of a decoded snapshot.
func (t *Tournament) Validate() error {
	if err := t.Format.Validate(); err != nil {
		return err
	}
	if t.ByePoints < 0 {
		return ErrInvalidByePoints
	}
	if t.CurrentRound < 0 {
		return errors.New("current round must not be negative")
	}
	if t.IsActive && t.IsComplete {
		return errors.New("tournament cannot be both active and complete")
	}
	seen := make(map[shared.TeamID]bool, len(t.Teams))
	for _, team := range t.Teams {
		if team == nil {
			return errors.New("nil team")
		}
		if err := team.ID.Validate(); err != nil {
			return err
		}
		if seen[team.ID] {
			return fmt.Errorf("duplicate team id %d", team.ID)
		}
		seen[team.ID] = true
		if team.ID >= t.NextTeamID {
			return fmt.Errorf("team id %d not below next team id %d", team.ID, t.NextTeamID)
		}
		if len(team.OpponentIDs) != len(team.MatchIDs) {
			return fmt.Errorf("team %d: %d opponents for %d matches", team.ID, len(team.OpponentIDs), len(team.MatchIDs))
		}
	}
	for _, matches := range [][]*Match{t.Matches, t.AllMatches} {
		for _, m := range matches {
			if err := validateMatch(m); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateMatch(m *Match) error {
	if m == nil {
		return errors.New("nil match")
	}
	if err := m.ID.Validate(); err != nil {
		return err
	}
	if m.IsBye {
		if m.Team2 != nil || !m.IsComplete {
			return fmt.Errorf("match %s: malformed bye", m.ID)
		}
		return nil
	}
	if m.Team2 == nil || len(m.Games) != 2 {
		return fmt.Errorf("match %s: expected two teams and two games", m.ID)
	}
	return nil
}

// Clone returns a deep copy of the tournament.
func (t *Tournament) Clone() *Tournament {
	c := *t
	if t.CustomRoundLimit != nil {
		limit := *t.CustomRoundLimit
		c.CustomRoundLimit = &limit
	}
	c.Teams = make([]*Team, len(t.Teams))
	for i, team := range t.Teams {
		snap := team.Snapshot()
		c.Teams[i] = &snap
	}
	c.Matches = cloneMatches(t.Matches)
	c.AllMatches = cloneMatches(t.AllMatches)
	return &c
}

func cloneMatches(matches []*Match) []*Match {
	c := make([]*Match, len(matches))
	for i, m := range matches {
		c[i] = m.Clone()
	}
	return c
}
