package tournament

import (
	"slices"

	"github.com/duotcg/tournament/src/domain/shared"
)

// Side identifies one of the two teams of a match.
type Side string

const (
	SideNone  Side = ""
	SideTeam1 Side = "team1"
	SideTeam2 Side = "team2"
)

// Validate accepts only team1 and team2.
func (s Side) Validate() error {
	if s != SideTeam1 && s != SideTeam2 {
		return ErrInvalidSide
	}
	return nil
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	switch s {
	case SideTeam1:
		return SideTeam2
	case SideTeam2:
		return SideTeam1
	}
	return SideNone
}

// Game indexes within a match. Game A seats both player1s, game B both
// player2s.
const (
	GameA = 0
	GameB = 1
)

// Point values.
const (
	PriorityWinPoints = 3
	StandardWinPoints = 2
	DefaultByePoints  = 3
)

// Game is one of the two 1v1 games that make up a match.
type Game struct {
	Player1Name string `json:"player1Name"`
	Player2Name string `json:"player2Name"`
	Winner      Side   `json:"winner,omitempty"`
	IsPriority  bool   `json:"isPriority"`
}

// Match pairs two teams for a round. Team1 and Team2 are snapshots taken
// when the match was created; the live teams live on the Tournament.
type Match struct {
	ID             shared.MatchID `json:"id"`
	Round          int            `json:"round"`
	Team1          Team           `json:"team1"`
	Team2          *Team          `json:"team2"`
	IsBye          bool           `json:"isBye"`
	IsComplete     bool           `json:"isComplete"`
	Team1Points    int            `json:"team1Points"`
	Team2Points    int            `json:"team2Points"`
	Games          []Game         `json:"games"`
	ScheduledRound int            `json:"scheduledRound,omitempty"`
}

// PriorityPlayer returns the slot that holds priority in round. Player 1
// has it in odd rounds and player 2 in even rounds, for every team.
func PriorityPlayer(team *Team, round int) Slot {
	if round%2 == 1 {
		return SlotPlayer1
	}
	return SlotPlayer2
}

// NewMatch creates the two games between team1 and team2 and marks exactly
// one of them as the priority game. When a solo team takes part its
// NonPlayer game is decided for the opponent on the spot.
func NewMatch(id shared.MatchID, team1, team2 *Team, round int) *Match {
	opponent := team2.Snapshot()
	m := &Match{
		ID:    id,
		Round: round,
		Team1: team1.Snapshot(),
		Team2: &opponent,
		Games: []Game{
			{Player1Name: team1.Player1Name, Player2Name: team2.Player1Name},
			{Player1Name: team1.Player2Name, Player2Name: team2.Player2Name},
		},
	}

	p1 := PriorityPlayer(team1, round)
	p2 := PriorityPlayer(team2, round)
	gameA := p1 == SlotPlayer1 && p2 == SlotPlayer1
	gameB := p1 == SlotPlayer2 && p2 == SlotPlayer2
	if !gameA && !gameB {
		if p1 == SlotPlayer1 || p2 == SlotPlayer1 {
			gameA = true
		} else {
			gameB = true
		}
	}
	m.Games[GameA].IsPriority = gameA
	m.Games[GameB].IsPriority = gameB

	if team1.IsSolo {
		m.forfeitNonPlayer(SideTeam2)
	}
	if team2.IsSolo {
		m.forfeitNonPlayer(SideTeam1)
	}
	return m
}

// NewByeMatch records a bye for team. Bye matches are complete on
// creation and have no games.
func NewByeMatch(id shared.MatchID, team *Team, round, byePoints int) *Match {
	return &Match{
		ID:          id,
		Round:       round,
		Team1:       team.Snapshot(),
		IsBye:       true,
		IsComplete:  true,
		Team1Points: byePoints,
	}
}

// forfeitNonPlayer seats the solo player at the priority table and hands
// game B to the opponent as a standard win.
func (m *Match) forfeitNonPlayer(opponent Side) {
	m.Games[GameA].IsPriority = true
	m.Games[GameB].IsPriority = false
	m.Games[GameB].Winner = opponent
	m.addPoints(opponent, StandardWinPoints)
}

// Record sets the winner of one game and completes the match once both
// games are decided. A rejected call leaves the match untouched.
func (m *Match) Record(gameIndex int, winner Side) error {
	if m.IsBye {
		return ErrByeMatch
	}
	if m.IsComplete {
		return ErrMatchComplete
	}
	if gameIndex < 0 || gameIndex >= len(m.Games) {
		return ErrInvalidGameIndex
	}
	if err := winner.Validate(); err != nil {
		return err
	}
	game := &m.Games[gameIndex]
	if game.Winner != SideNone {
		return ErrGameDecided
	}

	game.Winner = winner
	m.addPoints(winner, m.gamePoints(gameIndex, winner))
	if m.decided() {
		m.IsComplete = true
	}
	return nil
}

// gamePoints is 3 for a priority win and 2 otherwise. A solo player
// winning their own game always scores as priority.
func (m *Match) gamePoints(gameIndex int, winner Side) int {
	if team := m.team(winner); gameIndex == GameA && team != nil && team.IsSolo {
		return PriorityWinPoints
	}
	if m.Games[gameIndex].IsPriority {
		return PriorityWinPoints
	}
	return StandardWinPoints
}

func (m *Match) decided() bool {
	return !slices.ContainsFunc(m.Games, func(g Game) bool { return g.Winner == SideNone })
}

func (m *Match) addPoints(side Side, points int) {
	switch side {
	case SideTeam1:
		m.Team1Points += points
	case SideTeam2:
		m.Team2Points += points
	}
}

func (m *Match) team(side Side) *Team {
	switch side {
	case SideTeam1:
		return &m.Team1
	case SideTeam2:
		return m.Team2
	}
	return nil
}

// SideOf reports which side id played on, if any.
func (m *Match) SideOf(id shared.TeamID) (Side, bool) {
	if m.Team1.ID == id {
		return SideTeam1, true
	}
	if m.Team2 != nil && m.Team2.ID == id {
		return SideTeam2, true
	}
	return SideNone, false
}

// Points returns the points side has collected in this match.
func (m *Match) Points(side Side) int {
	if side == SideTeam2 {
		return m.Team2Points
	}
	return m.Team1Points
}

// Winner returns the side with strictly more points, or SideNone for an
// unfinished or level match.
func (m *Match) Winner() Side {
	if !m.IsComplete {
		return SideNone
	}
	switch {
	case m.Team1Points > m.Team2Points:
		return SideTeam1
	case m.Team2Points > m.Team1Points:
		return SideTeam2
	}
	return SideNone
}

// Clone returns a deep copy of the match.
func (m *Match) Clone() *Match {
	c := *m
	c.Team1 = m.Team1.Snapshot()
	if m.Team2 != nil {
		t2 := m.Team2.Snapshot()
		c.Team2 = &t2
	}
	c.Games = slices.Clone(m.Games)
	return &c
}
