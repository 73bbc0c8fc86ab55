package tournament

import (
	"slices"
	"strings"

	"github.com/duotcg/tournament/src/domain/shared"
)

// NonPlayer is the placeholder second player of a solo team.
const NonPlayer = "NonPlayer"

// Slot names one of the two seats of a team.
type Slot string

const (
	SlotPlayer1 Slot = "player1"
	SlotPlayer2 Slot = "player2"
)

// Team is a registered pair of players and its running record.
//
// OpponentIDs and MatchIDs grow together, one entry per completed
// non-bye match.
type Team struct {
	ID          shared.TeamID    `json:"id"`
	Name        string           `json:"name"`
	Player1Name string           `json:"player1Name"`
	Player2Name string           `json:"player2Name"`
	IsSolo      bool             `json:"isSolo"`
	Points      int              `json:"points"`
	ByeCount    int              `json:"byeCount"`
	OpponentIDs []shared.TeamID  `json:"opponentIds"`
	MatchIDs    []shared.MatchID `json:"matchIds"`
	Dropped     bool             `json:"dropped,omitempty"`
}

// NewTeam validates the registration fields and builds a team with an
// empty record. Solo teams get NonPlayer as their second player.
func NewTeam(id shared.TeamID, name, player1, player2 string, solo bool) (*Team, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	player1 = strings.TrimSpace(player1)
	player2 = strings.TrimSpace(player2)
	if solo {
		player2 = NonPlayer
	}
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	if player1 == "" || player2 == "" {
		return nil, ErrPlayerNameRequired
	}
	return &Team{
		ID:          id,
		Name:        name,
		Player1Name: player1,
		Player2Name: player2,
		IsSolo:      solo,
		OpponentIDs: []shared.TeamID{},
		MatchIDs:    []shared.MatchID{},
	}, nil
}

// PlayerName returns the name seated in slot.
func (t *Team) PlayerName(slot Slot) string {
	if slot == SlotPlayer2 {
		return t.Player2Name
	}
	return t.Player1Name
}

// HasPlayed reports whether the team has a completed match against id.
func (t *Team) HasPlayed(id shared.TeamID) bool {
	return slices.Contains(t.OpponentIDs, id)
}

// MatchesPlayed counts completed non-bye matches.
func (t *Team) MatchesPlayed() int {
	return len(t.MatchIDs)
}

// AwardBye credits a bye to the team.
func (t *Team) AwardBye(points int) {
	t.Points += points
	t.ByeCount++
}

// Snapshot returns a copy that shares no memory with t.
func (t *Team) Snapshot() Team {
	c := *t
	c.OpponentIDs = slices.Clone(t.OpponentIDs)
	c.MatchIDs = slices.Clone(t.MatchIDs)
	return c
}

func (t *Team) recordMatch(opponent shared.TeamID, match shared.MatchID, points int) {
	t.Points += points
	t.OpponentIDs = append(t.OpponentIDs, opponent)
	t.MatchIDs = append(t.MatchIDs, match)
}

func (t *Team) resetRecord() {
	t.Points = 0
	t.ByeCount = 0
	t.Dropped = false
	t.OpponentIDs = []shared.TeamID{}
	t.MatchIDs = []shared.MatchID{}
}
