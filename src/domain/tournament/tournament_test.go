package tournament_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/duotcg/tournament/src/domain/shared"
	"github.com/duotcg/tournament/src/domain/tournament"
)

func teamID(id int) shared.TeamID { return shared.TeamID(id) }

func intPtr(v int) *int { return &v }

func initialized(t *testing.T, format tournament.Format, teams int) *tournament.Tournament {
	t.Helper()
	tour := tournament.New()
	if err := tour.Initialize(tournament.Settings{Name: "Cup", Format: format, ByePoints: 3}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	for i := 1; i <= teams; i++ {
		name := fmt.Sprintf("Team %d", i)
		if _, err := tour.RegisterTeam(name, name+" A", name+" B", false); err != nil {
			t.Fatalf("RegisterTeam() error = %v", err)
		}
	}
	return tour
}

func TestTournament_Initialize(t *testing.T) {
	tests := []struct {
		name     string
		settings tournament.Settings
		wantErr  error
	}{
		{
			name:     "valid swiss",
			settings: tournament.Settings{Name: "Cup", Format: tournament.FormatSwiss, ByePoints: 3},
		},
		{
			name:     "valid round robin with limit",
			settings: tournament.Settings{Name: "League", Format: tournament.FormatRoundRobin, CustomRoundLimit: intPtr(4)},
		},
		{
			name:     "blank name",
			settings: tournament.Settings{Name: "  ", Format: tournament.FormatSwiss},
			wantErr:  tournament.ErrNameRequired,
		},
		{
			name:     "unknown format",
			settings: tournament.Settings{Name: "Cup", Format: "knockout"},
			wantErr:  tournament.ErrInvalidFormat,
		},
		{
			name:     "negative bye points",
			settings: tournament.Settings{Name: "Cup", Format: tournament.FormatSwiss, ByePoints: -1},
			wantErr:  tournament.ErrInvalidByePoints,
		},
		{
			name:     "zero round limit",
			settings: tournament.Settings{Name: "Cup", Format: tournament.FormatSwiss, CustomRoundLimit: intPtr(0)},
			wantErr:  tournament.ErrInvalidRoundLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tour := tournament.New()
			err := tour.Initialize(tt.settings)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Initialize() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, shared.ErrValidation) {
					t.Errorf("expected a validation error, got %v", err)
				}
				return
			}
			if tour.Name != tt.settings.Name || tour.Format != tt.settings.Format {
				t.Errorf("settings not applied: %+v", tour)
			}
		})
	}
}

func TestTournament_InitializeClearsTeams(t *testing.T) {
	tour := initialized(t, tournament.FormatSwiss, 3)

	if err := tour.Initialize(tournament.Settings{Name: "Again", Format: tournament.FormatSwiss}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	if len(tour.Teams) != 0 || len(tour.Matches) != 0 {
		t.Errorf("expected a clean tournament, got %d teams and %d matches", len(tour.Teams), len(tour.Matches))
	}
	if tour.IsActive || tour.IsComplete || tour.CurrentRound != 0 {
		t.Errorf("expected pre-start state, got %+v", tour)
	}
}

func TestTournament_RegisterTeam(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) *tournament.Tournament
		team    string
		p1, p2  string
		solo    bool
		wantErr error
	}{
		{
			name:  "pair",
			setup: func(t *testing.T) *tournament.Tournament { return initialized(t, tournament.FormatSwiss, 0) },
			team:  "Alpha", p1: "Ann", p2: "Bob",
		},
		{
			name:  "solo ignores second player",
			setup: func(t *testing.T) *tournament.Tournament { return initialized(t, tournament.FormatSwiss, 0) },
			team:  "Straw Hats", p1: "Luffy", solo: true,
		},
		{
			name:    "missing second player",
			setup:   func(t *testing.T) *tournament.Tournament { return initialized(t, tournament.FormatSwiss, 0) },
			team:    "Alpha", p1: "Ann",
			wantErr: tournament.ErrPlayerNameRequired,
		},
		{
			name:    "missing team name",
			setup:   func(t *testing.T) *tournament.Tournament { return initialized(t, tournament.FormatSwiss, 0) },
			p1:      "Ann", p2: "Bob",
			wantErr: tournament.ErrTeamNameRequired,
		},
		{
			name:    "duplicate name",
			setup:   func(t *testing.T) *tournament.Tournament { return initialized(t, tournament.FormatSwiss, 1) },
			team:    "Team 1", p1: "Ann", p2: "Bob",
			wantErr: tournament.ErrDuplicateTeamName,
		},
		{
			name: "after start",
			setup: func(t *testing.T) *tournament.Tournament {
				tour := initialized(t, tournament.FormatSwiss, 2)
				_ = tour.Start()
				return tour
			},
			team:    "Late", p1: "Ann", p2: "Bob",
			wantErr: tournament.ErrTournamentActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tour := tt.setup(t)
			before := len(tour.Teams)

			team, err := tour.RegisterTeam(tt.team, tt.p1, tt.p2, tt.solo)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RegisterTeam() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				if len(tour.Teams) != before {
					t.Errorf("rejected registration changed the team list")
				}
				return
			}
			if team.ID != teamID(before+1) {
				t.Errorf("expected id %d, got %d", before+1, team.ID)
			}
			if tt.solo && team.Player2Name != tournament.NonPlayer {
				t.Errorf("expected NonPlayer, got %q", team.Player2Name)
			}
		})
	}
}

func TestTournament_TeamIDsAreNotReused(t *testing.T) {
	tour := initialized(t, tournament.FormatSwiss, 3)

	if err := tour.RemoveTeam(3); err != nil {
		t.Fatalf("RemoveTeam() error = %v", err)
	}
	team, err := tour.RegisterTeam("Fresh", "Ann", "Bob", false)
	if err != nil {
		t.Fatalf("RegisterTeam() error = %v", err)
	}

	if team.ID != 4 {
		t.Errorf("expected id 4 after removal, got %d", team.ID)
	}
}

func TestTournament_RemoveTeam(t *testing.T) {
	tour := initialized(t, tournament.FormatSwiss, 2)

	if err := tour.RemoveTeam(9); !errors.Is(err, tournament.ErrTeamNotFound) {
		t.Errorf("RemoveTeam(9) error = %v, want %v", err, tournament.ErrTeamNotFound)
	}
	_ = tour.Start()
	if err := tour.RemoveTeam(1); !errors.Is(err, tournament.ErrTournamentActive) {
		t.Errorf("RemoveTeam() while active error = %v, want %v", err, tournament.ErrTournamentActive)
	}
}

func TestTournament_Start(t *testing.T) {
	tour := initialized(t, tournament.FormatSwiss, 1)

	if err := tour.Start(); !errors.Is(err, tournament.ErrNotEnoughTeams) {
		t.Fatalf("Start() error = %v, want %v", err, tournament.ErrNotEnoughTeams)
	}
	if tour.IsActive {
		t.Fatal("tournament should stay inactive")
	}

	_, _ = tour.RegisterTeam("Second", "Ann", "Bob", false)
	if err := tour.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !tour.IsActive || tour.CurrentRound != 1 {
		t.Errorf("expected active round 1, got active=%v round=%d", tour.IsActive, tour.CurrentRound)
	}
	if err := tour.Start(); !errors.Is(err, tournament.ErrTournamentActive) {
		t.Errorf("second Start() error = %v, want %v", err, tournament.ErrTournamentActive)
	}
}

func startedWithMatch(t *testing.T) (*tournament.Tournament, *tournament.Match) {
	t.Helper()
	tour := initialized(t, tournament.FormatSwiss, 2)
	if err := tour.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	m := tournament.NewMatch("m-1", tour.Teams[0], tour.Teams[1], 1)
	tour.Matches = append(tour.Matches, m)
	return tour, m
}

func TestTournament_RecordResultAppliesToTeams(t *testing.T) {
	tour, m := startedWithMatch(t)

	if _, err := tour.RecordResult(m.ID, tournament.GameA, tournament.SideTeam1); err != nil {
		t.Fatalf("RecordResult() error = %v", err)
	}
	if tour.Teams[0].Points != 0 {
		t.Fatalf("points applied before the match completed: %d", tour.Teams[0].Points)
	}
	if _, err := tour.RecordResult(m.ID, tournament.GameB, tournament.SideTeam1); err != nil {
		t.Fatalf("RecordResult() error = %v", err)
	}

	winner, loser := tour.Teams[0], tour.Teams[1]
	if winner.Points != 5 || loser.Points != 0 {
		t.Errorf("expected 5-0, got %d-%d", winner.Points, loser.Points)
	}
	if !winner.HasPlayed(loser.ID) || !loser.HasPlayed(winner.ID) {
		t.Error("expected both teams to record each other as opponents")
	}
	if winner.MatchesPlayed() != 1 || loser.MatchesPlayed() != 1 {
		t.Errorf("expected one match played each, got %d and %d", winner.MatchesPlayed(), loser.MatchesPlayed())
	}
}

func TestTournament_RecordResultOnCompleteMatchIsRejected(t *testing.T) {
	tour, m := startedWithMatch(t)
	_, _ = tour.RecordResult(m.ID, tournament.GameA, tournament.SideTeam1)
	_, _ = tour.RecordResult(m.ID, tournament.GameB, tournament.SideTeam2)
	points := tour.Teams[0].Points

	_, err := tour.RecordResult(m.ID, tournament.GameA, tournament.SideTeam2)

	if !errors.Is(err, tournament.ErrMatchComplete) {
		t.Fatalf("RecordResult() error = %v, want %v", err, tournament.ErrMatchComplete)
	}
	if tour.Teams[0].Points != points || len(tour.Teams[0].OpponentIDs) != 1 {
		t.Error("rejected result changed the team record")
	}
}

func TestTournament_RecordResultUnknownMatch(t *testing.T) {
	tour, _ := startedWithMatch(t)

	_, err := tour.RecordResult("missing", tournament.GameA, tournament.SideTeam1)

	if !errors.Is(err, tournament.ErrMatchNotFound) || !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("RecordResult() error = %v, want %v", err, tournament.ErrMatchNotFound)
	}
}

func TestTournament_AdvanceRound(t *testing.T) {
	tour, m := startedWithMatch(t)

	err := tour.AdvanceRound()
	if !errors.Is(err, tournament.ErrRoundIncomplete) {
		t.Fatalf("AdvanceRound() error = %v, want %v", err, tournament.ErrRoundIncomplete)
	}
	if tour.CurrentRound != 1 {
		t.Fatalf("rejected advance moved to round %d", tour.CurrentRound)
	}

	_, _ = tour.RecordResult(m.ID, tournament.GameA, tournament.SideTeam1)
	_, _ = tour.RecordResult(m.ID, tournament.GameB, tournament.SideTeam2)
	if err := tour.AdvanceRound(); err != nil {
		t.Fatalf("AdvanceRound() error = %v", err)
	}
	if tour.CurrentRound != 2 {
		t.Errorf("expected round 2, got %d", tour.CurrentRound)
	}
}

func TestTournament_AdvanceRoundRoundRobinExhausted(t *testing.T) {
	tour := initialized(t, tournament.FormatRoundRobin, 2)
	_ = tour.Start()

	err := tour.AdvanceRound()

	if !errors.Is(err, tournament.ErrScheduleExhausted) {
		t.Errorf("AdvanceRound() error = %v, want %v", err, tournament.ErrScheduleExhausted)
	}
}

func TestTournament_Complete(t *testing.T) {
	tour := initialized(t, tournament.FormatSwiss, 2)
	_ = tour.Start()

	if err := tour.Complete(); !errors.Is(err, tournament.ErrNoMatchesPlayed) {
		t.Fatalf("Complete() error = %v, want %v", err, tournament.ErrNoMatchesPlayed)
	}

	m := tournament.NewMatch("m-1", tour.Teams[0], tour.Teams[1], 1)
	tour.Matches = append(tour.Matches, m)
	if err := tour.Complete(); !errors.Is(err, tournament.ErrRoundIncomplete) {
		t.Fatalf("Complete() error = %v, want %v", err, tournament.ErrRoundIncomplete)
	}

	_, _ = tour.RecordResult(m.ID, tournament.GameA, tournament.SideTeam1)
	_, _ = tour.RecordResult(m.ID, tournament.GameB, tournament.SideTeam1)
	if err := tour.Complete(); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if !tour.IsComplete || tour.IsActive {
		t.Errorf("expected complete and inactive, got complete=%v active=%v", tour.IsComplete, tour.IsActive)
	}
	if err := tour.AdvanceRound(); !errors.Is(err, tournament.ErrTournamentNotActive) {
		t.Errorf("AdvanceRound() after completion error = %v, want %v", err, tournament.ErrTournamentNotActive)
	}
	if _, err := tour.RegisterTeam("Late", "Ann", "Bob", false); !errors.Is(err, tournament.ErrTournamentComplete) {
		t.Errorf("RegisterTeam() after completion error = %v, want %v", err, tournament.ErrTournamentComplete)
	}
}

func TestTournament_ResetMatches(t *testing.T) {
	tour, m := startedWithMatch(t)
	_, _ = tour.RecordResult(m.ID, tournament.GameA, tournament.SideTeam1)
	_, _ = tour.RecordResult(m.ID, tournament.GameB, tournament.SideTeam1)
	tour.Teams[1].AwardBye(3)

	tour.ResetMatches()

	if tour.IsActive || tour.IsComplete || tour.CurrentRound != 0 || len(tour.Matches) != 0 {
		t.Errorf("expected pre-start state, got %+v", tour)
	}
	if len(tour.Teams) != 2 {
		t.Fatalf("expected teams to be kept, got %d", len(tour.Teams))
	}
	for _, team := range tour.Teams {
		if team.Points != 0 || team.ByeCount != 0 || len(team.OpponentIDs) != 0 || len(team.MatchIDs) != 0 {
			t.Errorf("team %d record not cleared: %+v", team.ID, team)
		}
	}
	if tour.Teams[0].ID != 1 || tour.Teams[1].ID != 2 {
		t.Error("expected team ids to be kept")
	}
}

func TestTournament_DropTeam(t *testing.T) {
	tests := []struct {
		name    string
		format  tournament.Format
		start   bool
		id      shared.TeamID
		twice   bool
		wantErr error
	}{
		{name: "active swiss", format: tournament.FormatSwiss, start: true, id: 1},
		{name: "not started", format: tournament.FormatSwiss, id: 1, wantErr: tournament.ErrDropUnsupported},
		{name: "round robin", format: tournament.FormatRoundRobin, start: true, id: 1, wantErr: tournament.ErrDropUnsupported},
		{name: "unknown team", format: tournament.FormatSwiss, start: true, id: 7, wantErr: tournament.ErrTeamNotFound},
		{name: "already dropped", format: tournament.FormatSwiss, start: true, id: 1, twice: true, wantErr: tournament.ErrTeamDropped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tour := initialized(t, tt.format, 3)
			if tt.start {
				_ = tour.Start()
			}
			if tt.twice {
				_ = tour.DropTeam(tt.id)
			}

			err := tour.DropTeam(tt.id)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("DropTeam() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && len(tour.ActiveTeams()) != 2 {
				t.Errorf("expected 2 active teams, got %d", len(tour.ActiveTeams()))
			}
		})
	}
}

func TestTournament_PlannedRounds(t *testing.T) {
	tests := []struct {
		name   string
		format tournament.Format
		limit  *int
		teams  int
		want   int
	}{
		{name: "swiss official table", format: tournament.FormatSwiss, teams: 10, want: 4},
		{name: "swiss small", format: tournament.FormatSwiss, teams: 8, want: 3},
		{name: "round robin schedule", format: tournament.FormatRoundRobin, teams: 6, want: 5},
		{name: "custom limit wins", format: tournament.FormatSwiss, limit: intPtr(2), teams: 10, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tour := initialized(t, tt.format, tt.teams)
			tour.CustomRoundLimit = tt.limit

			if got := tour.PlannedRounds(); got != tt.want {
				t.Errorf("PlannedRounds() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTournament_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(tour *tournament.Tournament)
		wantErr bool
	}{
		{name: "fresh", mutate: func(*tournament.Tournament) {}},
		{name: "active and complete", mutate: func(tour *tournament.Tournament) { tour.IsActive, tour.IsComplete = true, true }, wantErr: true},
		{name: "unknown format", mutate: func(tour *tournament.Tournament) { tour.Format = "cup" }, wantErr: true},
		{name: "duplicate team id", mutate: func(tour *tournament.Tournament) { tour.Teams[1].ID = tour.Teams[0].ID }, wantErr: true},
		{name: "team id above counter", mutate: func(tour *tournament.Tournament) { tour.NextTeamID = 1 }, wantErr: true},
		{
			name: "opponent and match logs disagree",
			mutate: func(tour *tournament.Tournament) {
				tour.Teams[0].OpponentIDs = append(tour.Teams[0].OpponentIDs, 2)
			},
			wantErr: true,
		},
		{
			name: "bye with opponent",
			mutate: func(tour *tournament.Tournament) {
				bye := tournament.NewByeMatch("b-1", tour.Teams[0], 1, 3)
				bye.Team2 = &tournament.Team{ID: 2}
				tour.Matches = append(tour.Matches, bye)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tour := initialized(t, tournament.FormatSwiss, 2)
			tt.mutate(tour)

			err := tour.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTournament_Clone(t *testing.T) {
	tour, m := startedWithMatch(t)
	tour.CustomRoundLimit = intPtr(5)

	c := tour.Clone()
	_, _ = tour.RecordResult(m.ID, tournament.GameA, tournament.SideTeam1)
	*tour.CustomRoundLimit = 9
	tour.Teams[0].Name = "Renamed"

	if c.Matches[0].Games[tournament.GameA].Winner != tournament.SideNone {
		t.Error("clone shares matches with the original")
	}
	if *c.CustomRoundLimit != 5 || c.Teams[0].Name == "Renamed" {
		t.Error("clone shares settings or teams with the original")
	}
}
