package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"github.com/xorcare/pointer"

	"github.com/duotcg/tournament/src/app/tournaments"
	"github.com/duotcg/tournament/src/domain/ranking"
	"github.com/duotcg/tournament/src/domain/shared"
	"github.com/duotcg/tournament/src/domain/tournament"
)

var errArgs = errors.New("wrong number of arguments")

func (c *Console) handleInit(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 4 {
		return usageError{err: errArgs}
	}
	cmd := tournaments.InitializeCommand{
		Name:      args[0],
		Format:    tournament.FormatSwiss,
		ByePoints: c.cfg.DefaultByePoints,
	}
	if len(args) > 1 {
		cmd.Format = tournament.Format(strings.ToLower(args[1]))
	}
	if len(args) > 2 {
		points, err := strconv.Atoi(args[2])
		if err != nil {
			return usageError{err: fmt.Errorf("bye points: %w", err)}
		}
		cmd.ByePoints = points
	}
	if len(args) > 3 {
		rounds, err := strconv.Atoi(args[3])
		if err != nil {
			return usageError{err: fmt.Errorf("rounds: %w", err)}
		}
		cmd.CustomRoundLimit = pointer.Int(rounds)
	}
	return c.cfg.Service.InitializeTournament(ctx, cmd)
}

func (c *Console) handleTeam(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return usageError{err: errArgs}
	}
	return c.registerTeam(ctx, tournaments.RegisterTeamCommand{Name: args[0], Player1: args[1], Player2: args[2]})
}

func (c *Console) handleSolo(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError{err: errArgs}
	}
	return c.registerTeam(ctx, tournaments.RegisterTeamCommand{Name: args[0], Player1: args[1], Solo: true})
}

func (c *Console) registerTeam(ctx context.Context, cmd tournaments.RegisterTeamCommand) error {
	res, err := c.cfg.Service.RegisterTeam(ctx, cmd)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.cfg.Out, "Team %q registered with id %d.\n", strings.TrimSpace(cmd.Name), res.TeamID)
	return nil
}

func (c *Console) handleRemove(ctx context.Context, args []string) error {
	id, err := parseTeamID(args)
	if err != nil {
		return err
	}
	return c.cfg.Service.RemoveTeam(ctx, id)
}

func (c *Console) handleDrop(ctx context.Context, args []string) error {
	id, err := parseTeamID(args)
	if err != nil {
		return err
	}
	return c.cfg.Service.DropTeam(ctx, id)
}

func parseTeamID(args []string) (shared.TeamID, error) {
	if len(args) != 1 {
		return 0, usageError{err: errArgs}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, usageError{err: fmt.Errorf("team id: %w", err)}
	}
	return shared.TeamID(n), nil
}

func (c *Console) handleTeams(ctx context.Context, args []string) error {
	renderTeams(c.cfg.Out, c.cfg.Service.Teams())
	return nil
}

func (c *Console) handleStart(ctx context.Context, args []string) error {
	if _, err := c.cfg.Service.StartTournament(ctx); err != nil {
		return err
	}
	renderMatches(c.cfg.Out, c.cfg.Service.Status(), c.cfg.Service.CurrentMatches())
	return nil
}

func (c *Console) handleNext(ctx context.Context, args []string) error {
	if _, err := c.cfg.Service.GenerateNextRound(ctx); err != nil {
		return err
	}
	renderMatches(c.cfg.Out, c.cfg.Service.Status(), c.cfg.Service.CurrentMatches())
	return nil
}

func (c *Console) handleResult(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return usageError{err: errArgs}
	}
	game, err := parseGame(args[1])
	if err != nil {
		return usageError{err: err}
	}
	winner, err := parseSide(args[2])
	if err != nil {
		return usageError{err: err}
	}
	res, err := c.cfg.Service.RecordResult(ctx, tournaments.RecordResultCommand{
		MatchID:   shared.MatchID(args[0]),
		GameIndex: game,
		Winner:    winner,
	})
	if err != nil {
		return err
	}
	renderMatch(c.cfg.Out, res.Match)
	return nil
}

func parseGame(s string) (int, error) {
	switch strings.ToLower(s) {
	case "1", "a":
		return tournament.GameA, nil
	case "2", "b":
		return tournament.GameB, nil
	}
	return 0, fmt.Errorf("game must be 1 or 2, got %q", s)
}

func parseSide(s string) (tournament.Side, error) {
	switch strings.ToLower(s) {
	case "1", "team1":
		return tournament.SideTeam1, nil
	case "2", "team2":
		return tournament.SideTeam2, nil
	}
	return tournament.SideNone, fmt.Errorf("winner must be team1 or team2, got %q", s)
}

func (c *Console) handleComplete(ctx context.Context, args []string) error {
	if err := c.cfg.Service.CompleteTournament(ctx); err != nil {
		return err
	}
	renderStandings(c.cfg.Out, c.cfg.Service.Standings())
	return nil
}

func (c *Console) handleReset(ctx context.Context, args []string) error {
	return c.cfg.Service.ResetMatches(ctx)
}

func (c *Console) handleClear(ctx context.Context, args []string) error {
	return c.cfg.Service.ClearStorage(ctx)
}

func (c *Console) handleStandings(ctx context.Context, args []string) error {
	renderStandings(c.cfg.Out, c.cfg.Service.Standings())
	return nil
}

func (c *Console) handleMatches(ctx context.Context, args []string) error {
	renderMatches(c.cfg.Out, c.cfg.Service.Status(), c.cfg.Service.CurrentMatches())
	return nil
}

func (c *Console) handleHistory(ctx context.Context, args []string) error {
	renderHistory(c.cfg.Out, c.cfg.Service.MatchHistory())
	return nil
}

func (c *Console) handleStatus(ctx context.Context, args []string) error {
	renderStatus(c.cfg.Out, c.cfg.Service.Status())
	return nil
}

func (c *Console) handleExport(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return usageError{err: errArgs}
	}
	dir := c.cfg.ExportDir
	if len(args) == 1 {
		dir = args[0]
	}
	status := c.cfg.Service.Status()
	name := slug.Make(status.Name)
	if name == "" {
		name = "tournament"
	}
	path := filepath.Join(dir, name+"-standings.csv")
	if err := writeStandingsCSV(path, c.cfg.Service.Standings()); err != nil {
		fmt.Fprintf(c.cfg.Out, "Export failed: %v\n", err)
		return err
	}
	fmt.Fprintf(c.cfg.Out, "Standings written to %s\n", path)
	return nil
}

func writeStandingsCSV(path string, rows []ranking.Standing) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	_ = w.Write([]string{"Rank", "Team", "Player 1", "Player 2", "Points", "OMW%", "OOMW%", "Byes", "Matches"})
	for _, row := range rows {
		_ = w.Write([]string{
			strconv.Itoa(row.Rank),
			row.Team.Name,
			row.Team.Player1Name,
			row.Team.Player2Name,
			strconv.Itoa(row.Team.Points),
			percent(row.OMW),
			percent(row.OOMW),
			strconv.Itoa(row.Team.ByeCount),
			strconv.Itoa(row.Team.MatchesPlayed()),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
