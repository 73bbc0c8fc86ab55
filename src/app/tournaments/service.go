package tournaments

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/duotcg/tournament/src/domain/pairing"
	"github.com/duotcg/tournament/src/domain/shared"
	"github.com/duotcg/tournament/src/domain/tournament"
)

// Service is the only mutator of the tournament. Every command either
// changes the state and saves it, or rejects with an error after telling
// the operator why. Service is not safe for concurrent use.
type Service struct {
	Store     tournament.Store
	Pairing   *pairing.Engine
	Confirmer Confirmer
	Notifier  Notifier
	Metrics   Metrics
	Logger    *zap.Logger

	current *tournament.Tournament
}

// NewService creates a service holding an empty tournament. Call Restore
// to pick up a saved one.
func NewService(store tournament.Store, engine *pairing.Engine, confirmer Confirmer, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		Store:     store,
		Pairing:   engine,
		Confirmer: confirmer,
		Notifier:  notifier,
		Metrics:   nopMetrics{},
		Logger:    logger,
		current:   tournament.New(),
	}
}

// reject reports a refused command and hands the error back.
func (s *Service) reject(command string, err error) error {
	outcome := "rejected"
	if errors.Is(err, ErrCancelled) {
		outcome = "cancelled"
		s.Logger.Info("command cancelled", zap.String("command", command))
	} else {
		s.Logger.Info("command rejected", zap.String("command", command), zap.Error(err))
		s.Notifier.Notify(err.Error())
	}
	s.Metrics.CommandHandled(command, outcome)
	return err
}

// commit saves the state after a successful command. A failed save is
// reported but does not undo the command.
func (s *Service) commit(ctx context.Context, command, message string) {
	s.Metrics.CommandHandled(command, "ok")
	s.Logger.Debug("command applied",
		zap.String("command", command),
		zap.Int("round", s.current.CurrentRound),
		zap.Int("teams", len(s.current.Teams)),
	)
	if message != "" {
		s.Notifier.Notify(message)
	}
	if err := s.Store.Save(ctx, s.current); err != nil {
		s.Logger.Error("failed to save tournament", zap.String("command", command), zap.Error(err))
		s.Metrics.SaveFailed()
		s.Notifier.Notify("Save failed: " + err.Error())
	}
}

func (s *Service) confirm(prompt string) error {
	if !s.Confirmer.Confirm(prompt) {
		return ErrCancelled
	}
	return nil
}

// Restore loads the saved tournament, if there is one worth resuming.
// An empty or unreadable snapshot leaves the current state alone.
func (s *Service) Restore(ctx context.Context) (bool, error) {
	t, err := s.Store.Load(ctx)
	if errors.Is(err, tournament.ErrSnapshotNotFound) {
		return false, nil
	}
	if err != nil {
		s.Logger.Error("failed to load tournament", zap.Error(err))
		return false, err
	}
	if t.Name == "" && len(t.Teams) == 0 {
		return false, nil
	}
	s.current = t
	s.Logger.Info("tournament restored",
		zap.String("name", t.Name),
		zap.Int("round", t.CurrentRound),
		zap.Int("teams", len(t.Teams)),
	)
	return true, nil
}

// InitializeCommand configures a new tournament.
type InitializeCommand struct {
	Name             string
	Format           tournament.Format
	ByePoints        int
	CustomRoundLimit *int
}

// InitializeTournament replaces the current tournament with an empty one.
func (s *Service) InitializeTournament(ctx context.Context, cmd InitializeCommand) error {
	const command = "initialize"
	err := s.current.Initialize(tournament.Settings{
		Name:             cmd.Name,
		Format:           cmd.Format,
		ByePoints:        cmd.ByePoints,
		CustomRoundLimit: cmd.CustomRoundLimit,
	})
	if err != nil {
		return s.reject(command, err)
	}

	rounds := "using official round rules"
	if cmd.CustomRoundLimit != nil {
		rounds = fmt.Sprintf("custom rounds: %d", *cmd.CustomRoundLimit)
	}
	s.commit(ctx, command, fmt.Sprintf("Tournament %q initialized. BYE points: %d, %s.", s.current.Name, s.current.ByePoints, rounds))
	return nil
}

// RegisterTeamCommand contains the registration form. Player2 is ignored
// for solo teams.
type RegisterTeamCommand struct {
	Name    string
	Player1 string
	Player2 string
	Solo    bool
}

// RegisterTeamResult contains the assigned team id.
type RegisterTeamResult struct {
	TeamID shared.TeamID
}

// RegisterTeam adds a team before the tournament starts.
func (s *Service) RegisterTeam(ctx context.Context, cmd RegisterTeamCommand) (RegisterTeamResult, error) {
	const command = "register_team"
	team, err := s.current.RegisterTeam(cmd.Name, cmd.Player1, cmd.Player2, cmd.Solo)
	if err != nil {
		return RegisterTeamResult{}, s.reject(command, err)
	}
	s.commit(ctx, command, "")
	return RegisterTeamResult{TeamID: team.ID}, nil
}

// RemoveTeam unregisters a team after confirmation.
func (s *Service) RemoveTeam(ctx context.Context, id shared.TeamID) error {
	const command = "remove_team"
	if s.current.IsActive {
		return s.reject(command, tournament.ErrTournamentActive)
	}
	team, err := s.current.Team(id)
	if err != nil {
		return s.reject(command, err)
	}
	if err := s.confirm(fmt.Sprintf("Are you sure you want to remove team %q?", team.Name)); err != nil {
		return s.reject(command, err)
	}
	if err := s.current.RemoveTeam(id); err != nil {
		return s.reject(command, err)
	}
	s.commit(ctx, command, "")
	return nil
}

// DropTeam withdraws a team from the remaining swiss rounds after
// confirmation.
func (s *Service) DropTeam(ctx context.Context, id shared.TeamID) error {
	const command = "drop_team"
	team, err := s.current.Team(id)
	if err != nil {
		return s.reject(command, err)
	}
	if !s.current.IsActive || s.current.Format != tournament.FormatSwiss {
		return s.reject(command, tournament.ErrDropUnsupported)
	}
	if team.Dropped {
		return s.reject(command, tournament.ErrTeamDropped)
	}
	if err := s.confirm(fmt.Sprintf("Drop team %q from the remaining rounds? Its results stay in the standings.", team.Name)); err != nil {
		return s.reject(command, err)
	}
	if err := s.current.DropTeam(id); err != nil {
		return s.reject(command, err)
	}
	s.commit(ctx, command, fmt.Sprintf("Team %q dropped.", team.Name))
	return nil
}

// StartTournament opens round 1 and pairs it.
func (s *Service) StartTournament(ctx context.Context) (pairing.Result, error) {
	const command = "start"
	if err := s.current.Start(); err != nil {
		return pairing.Result{}, s.reject(command, err)
	}
	res, err := s.generate()
	if err != nil {
		return pairing.Result{}, s.reject(command, err)
	}

	msg := fmt.Sprintf("Tournament started with %d teams.", len(s.current.Teams))
	if len(s.current.Teams)%2 != 0 && s.current.Format == tournament.FormatSwiss {
		msg = fmt.Sprintf("Tournament started with %d teams. Odd number of teams, the bye system will be used.", len(s.current.Teams))
	}
	s.commit(ctx, command, msg)
	return res, nil
}

// GenerateNextRound advances to the next round once the current one is
// finished and pairs it.
func (s *Service) GenerateNextRound(ctx context.Context) (pairing.Result, error) {
	const command = "next_round"
	if err := s.current.AdvanceRound(); err != nil {
		return pairing.Result{}, s.reject(command, err)
	}
	res, err := s.generate()
	if err != nil {
		return pairing.Result{}, s.reject(command, err)
	}
	s.commit(ctx, command, fmt.Sprintf("Round %d generated.", res.Round))
	return res, nil
}

func (s *Service) generate() (pairing.Result, error) {
	res, err := s.Pairing.GenerateRound(s.current)
	if err != nil {
		return pairing.Result{}, err
	}
	s.Metrics.RoundGenerated(len(res.Matches), res.Repeats)
	if res.Repeats > 0 {
		s.Logger.Warn("no fresh opponent left, pairing rematches",
			zap.Int("round", res.Round),
			zap.Int("rematches", res.Repeats),
		)
	}
	for _, team := range res.Unmatched {
		s.Logger.Error("pairing found no opponent", zap.Int("round", res.Round), zap.String("team", team.Name))
	}
	for _, team := range res.Unpaired {
		s.Logger.Info("team sits out the round", zap.Int("round", res.Round), zap.String("team", team.Name))
	}
	if bye := res.Bye(); bye != nil {
		s.Logger.Info("bye assigned", zap.Int("round", res.Round), zap.String("team", bye.Team1.Name))
	}
	return res, nil
}

// RecordResultCommand names the winner of one game.
type RecordResultCommand struct {
	MatchID   shared.MatchID
	GameIndex int
	Winner    tournament.Side
}

// RecordResultResult describes the match after the result was applied.
type RecordResultResult struct {
	Match         tournament.Match
	MatchComplete bool
	RoundComplete bool
}

// RecordResult records one game. When the match completes, both teams are
// credited with its points.
func (s *Service) RecordResult(ctx context.Context, cmd RecordResultCommand) (RecordResultResult, error) {
	const command = "record_result"
	m, err := s.current.RecordResult(cmd.MatchID, cmd.GameIndex, cmd.Winner)
	if err != nil {
		return RecordResultResult{}, s.reject(command, err)
	}

	res := RecordResultResult{Match: *m.Clone(), MatchComplete: m.IsComplete}
	var msg string
	if m.IsComplete {
		s.Metrics.MatchCompleted()
		s.Logger.Info("match complete",
			zap.String("match", string(m.ID)),
			zap.Int("team1_points", m.Team1Points),
			zap.Int("team2_points", m.Team2Points),
		)
		if m.Round == s.current.CurrentRound && len(s.current.IncompleteMatches(m.Round)) == 0 {
			res.RoundComplete = true
			msg = fmt.Sprintf("Round %d completed. Next round available.", m.Round)
		}
	}
	s.commit(ctx, command, msg)
	return res, nil
}

// CompleteTournament ends the tournament after confirmation.
func (s *Service) CompleteTournament(ctx context.Context) error {
	const command = "complete"
	if err := s.current.CanComplete(); err != nil {
		return s.reject(command, err)
	}

	completed := 0
	for _, m := range s.current.Matches {
		if m.IsComplete {
			completed++
		}
	}
	prompt := fmt.Sprintf("Are you sure you want to complete the tournament?\n\n"+
		"Tournament: %s\nRounds played: %d\nTotal matches: %d\nTeams: %d\n\n"+
		"This action cannot be undone.",
		s.current.Name, s.current.CurrentRound, completed, len(s.current.Teams))
	if err := s.confirm(prompt); err != nil {
		return s.reject(command, err)
	}
	if err := s.current.Complete(); err != nil {
		return s.reject(command, err)
	}
	s.commit(ctx, command, fmt.Sprintf("Tournament %q completed. Check the final standings to see the winners.", s.current.Name))
	return nil
}

// ResetMatches discards all matches and results but keeps the teams.
func (s *Service) ResetMatches(ctx context.Context) error {
	const command = "reset_matches"
	if err := s.confirm("This will reset all matches and points but keep registered teams. Continue?"); err != nil {
		return s.reject(command, err)
	}
	s.current.ResetMatches()
	s.commit(ctx, command, "Matches reset. Teams are preserved.")
	return nil
}

// ClearStorage deletes the saved snapshot. The tournament in memory is
// kept and saved again by the next command.
func (s *Service) ClearStorage(ctx context.Context) error {
	const command = "clear_storage"
	if err := s.confirm("This will delete all saved tournament data. Are you sure?"); err != nil {
		return s.reject(command, err)
	}
	if err := s.Store.Clear(ctx); err != nil {
		return s.reject(command, err)
	}
	s.Metrics.CommandHandled(command, "ok")
	s.Notifier.Notify("Storage cleared.")
	return nil
}
