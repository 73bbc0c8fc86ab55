package tournament_test

import (
	"errors"
	"testing"

	"github.com/duotcg/tournament/src/domain/tournament"
)

func newTeam(t *testing.T, id int, name string, solo bool) *tournament.Team {
	t.Helper()
	team, err := tournament.NewTeam(teamID(id), name, name+"-p1", name+"-p2", solo)
	if err != nil {
		t.Fatalf("NewTeam() error = %v", err)
	}
	return team
}

func TestNewMatch_Priority(t *testing.T) {
	tests := []struct {
		name      string
		round     int
		wantGameA bool
		wantGameB bool
	}{
		{name: "odd round seats player1s at priority", round: 1, wantGameA: true},
		{name: "even round seats player2s at priority", round: 2, wantGameB: true},
		{name: "later odd round", round: 5, wantGameA: true},
		{name: "later even round", round: 8, wantGameB: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tournament.NewMatch("m-1", newTeam(t, 1, "Alpha", false), newTeam(t, 2, "Beta", false), tt.round)

			if m.Games[tournament.GameA].IsPriority != tt.wantGameA {
				t.Errorf("game A priority = %v, want %v", m.Games[tournament.GameA].IsPriority, tt.wantGameA)
			}
			if m.Games[tournament.GameB].IsPriority != tt.wantGameB {
				t.Errorf("game B priority = %v, want %v", m.Games[tournament.GameB].IsPriority, tt.wantGameB)
			}
			if m.Team1Points != 0 || m.Team2Points != 0 {
				t.Errorf("expected no points on creation, got %d-%d", m.Team1Points, m.Team2Points)
			}
		})
	}
}

func TestNewMatch_SeatsPlayers(t *testing.T) {
	m := tournament.NewMatch("m-1", newTeam(t, 1, "Alpha", false), newTeam(t, 2, "Beta", false), 1)

	if m.Games[tournament.GameA].Player1Name != "Alpha-p1" || m.Games[tournament.GameA].Player2Name != "Beta-p1" {
		t.Errorf("unexpected game A seating: %+v", m.Games[tournament.GameA])
	}
	if m.Games[tournament.GameB].Player1Name != "Alpha-p2" || m.Games[tournament.GameB].Player2Name != "Beta-p2" {
		t.Errorf("unexpected game B seating: %+v", m.Games[tournament.GameB])
	}
}

func TestNewMatch_SoloTeamForfeitsNonPlayerGame(t *testing.T) {
	solo, err := tournament.NewTeam(1, "Straw Hats", "Luffy", "", true)
	if err != nil {
		t.Fatalf("NewTeam() error = %v", err)
	}
	opponent := newTeam(t, 2, "Beta", false)

	// Round 2 would otherwise put priority on game B.
	m := tournament.NewMatch("m-1", solo, opponent, 2)

	gameA, gameB := m.Games[tournament.GameA], m.Games[tournament.GameB]
	if gameA.Player1Name != "Luffy" || !gameA.IsPriority {
		t.Errorf("expected Luffy at the priority table, got %+v", gameA)
	}
	if gameB.Player1Name != tournament.NonPlayer || gameB.IsPriority {
		t.Errorf("expected NonPlayer game without priority, got %+v", gameB)
	}
	if gameB.Winner != tournament.SideTeam2 {
		t.Errorf("expected NonPlayer game won by team2, got %q", gameB.Winner)
	}
	if m.Team2Points != tournament.StandardWinPoints || m.Team1Points != 0 {
		t.Errorf("expected 0-2 after creation, got %d-%d", m.Team1Points, m.Team2Points)
	}
	if m.IsComplete {
		t.Error("match should not be complete before the solo game is played")
	}
}

func TestNewMatch_BothTeamsSolo(t *testing.T) {
	m := tournament.NewMatch("m-1", newTeam(t, 1, "Alpha", true), newTeam(t, 2, "Beta", true), 2)

	if !m.Games[tournament.GameA].IsPriority || m.Games[tournament.GameB].IsPriority {
		t.Errorf("expected only game A to be priority, got %+v", m.Games)
	}
	if m.Team1Points != 2 || m.Team2Points != 2 {
		t.Errorf("expected 2-2 after both forfeits, got %d-%d", m.Team1Points, m.Team2Points)
	}
	if m.Games[tournament.GameB].Winner != tournament.SideTeam1 {
		t.Errorf("expected the second forfeit to decide game B, got %q", m.Games[tournament.GameB].Winner)
	}
}

func TestMatch_Record(t *testing.T) {
	m := tournament.NewMatch("m-1", newTeam(t, 1, "Alpha", false), newTeam(t, 2, "Beta", false), 1)

	if err := m.Record(tournament.GameA, tournament.SideTeam1); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if m.IsComplete {
		t.Fatal("match should not complete after one game")
	}
	if err := m.Record(tournament.GameB, tournament.SideTeam1); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if !m.IsComplete {
		t.Error("expected match to be complete")
	}
	if m.Team1Points != 5 || m.Team2Points != 0 {
		t.Errorf("expected 5-0, got %d-%d", m.Team1Points, m.Team2Points)
	}
	if m.Winner() != tournament.SideTeam1 {
		t.Errorf("expected team1 to win, got %q", m.Winner())
	}
}

func TestMatch_RecordSoloWinIsAlwaysPriority(t *testing.T) {
	m := tournament.NewMatch("m-1", newTeam(t, 1, "Alpha", false), newTeam(t, 2, "Solo", true), 2)

	if err := m.Record(tournament.GameA, tournament.SideTeam2); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if !m.IsComplete {
		t.Error("expected match to be complete")
	}
	if m.Team1Points != 2 || m.Team2Points != 3 {
		t.Errorf("expected 2-3, got %d-%d", m.Team1Points, m.Team2Points)
	}
}

func TestMatch_RecordRejections(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(m *tournament.Match)
		gameIndex int
		winner    tournament.Side
		wantErr   error
	}{
		{
			name:      "game index out of range",
			gameIndex: 2,
			winner:    tournament.SideTeam1,
			wantErr:   tournament.ErrInvalidGameIndex,
		},
		{
			name:      "negative game index",
			gameIndex: -1,
			winner:    tournament.SideTeam1,
			wantErr:   tournament.ErrInvalidGameIndex,
		},
		{
			name:      "unknown side",
			gameIndex: tournament.GameA,
			winner:    "team3",
			wantErr:   tournament.ErrInvalidSide,
		},
		{
			name: "game already decided",
			setup: func(m *tournament.Match) {
				_ = m.Record(tournament.GameA, tournament.SideTeam2)
			},
			gameIndex: tournament.GameA,
			winner:    tournament.SideTeam1,
			wantErr:   tournament.ErrGameDecided,
		},
		{
			name: "match complete",
			setup: func(m *tournament.Match) {
				_ = m.Record(tournament.GameA, tournament.SideTeam1)
				_ = m.Record(tournament.GameB, tournament.SideTeam1)
			},
			gameIndex: tournament.GameB,
			winner:    tournament.SideTeam1,
			wantErr:   tournament.ErrMatchComplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tournament.NewMatch("m-1", newTeam(t, 1, "Alpha", false), newTeam(t, 2, "Beta", false), 1)
			if tt.setup != nil {
				tt.setup(m)
			}
			before := *m

			err := m.Record(tt.gameIndex, tt.winner)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Record() error = %v, want %v", err, tt.wantErr)
			}
			if m.Team1Points != before.Team1Points || m.Team2Points != before.Team2Points {
				t.Errorf("rejected call changed points from %d-%d to %d-%d",
					before.Team1Points, before.Team2Points, m.Team1Points, m.Team2Points)
			}
		})
	}
}

func TestByeMatch(t *testing.T) {
	team := newTeam(t, 1, "Alpha", false)
	m := tournament.NewByeMatch("bye-1", team, 3, 3)

	if !m.IsBye || !m.IsComplete || m.Team2 != nil || len(m.Games) != 0 {
		t.Errorf("malformed bye match: %+v", m)
	}
	if m.Team1Points != 3 {
		t.Errorf("expected 3 bye points, got %d", m.Team1Points)
	}
	if err := m.Record(tournament.GameA, tournament.SideTeam1); !errors.Is(err, tournament.ErrByeMatch) {
		t.Errorf("Record() on bye error = %v, want %v", err, tournament.ErrByeMatch)
	}
}

func TestMatch_SnapshotsAreDetached(t *testing.T) {
	team1 := newTeam(t, 1, "Alpha", false)
	team2 := newTeam(t, 2, "Beta", false)
	m := tournament.NewMatch("m-1", team1, team2, 1)

	team1.Points = 42
	team1.OpponentIDs = append(team1.OpponentIDs, 2)

	if m.Team1.Points != 0 || len(m.Team1.OpponentIDs) != 0 {
		t.Errorf("snapshot followed live team: %+v", m.Team1)
	}

	clone := m.Clone()
	clone.Games[tournament.GameA].Winner = tournament.SideTeam1
	if m.Games[tournament.GameA].Winner != tournament.SideNone {
		t.Error("clone shares games with the original")
	}
}
