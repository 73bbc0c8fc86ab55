package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/duotcg/tournament/src/app/tournaments"
)

// Flusher persists metrics after each command.
type Flusher interface {
	Flush() error
}

type ConsoleConfig struct {
	Service          *tournaments.Service
	In               *bufio.Reader
	Out              io.Writer
	Logger           *zap.Logger
	Metrics          Flusher
	DefaultByePoints int
	ExportDir        string
}

type handler func(ctx context.Context, args []string) error

type command struct {
	usage   string
	summary string
	run     handler
}

// Console reads operator commands line by line and dispatches them to the
// tournament service.
type Console struct {
	cfg      ConsoleConfig
	commands map[string]command
}

// usageError marks malformed input. Other errors come from the service,
// which has already told the operator about them.
type usageError struct {
	usage string
	err   error
}

func (e usageError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%v\nusage: %s", e.err, e.usage)
	}
	return "usage: " + e.usage
}

func (e usageError) Unwrap() error { return e.err }

func NewConsole(cfg ConsoleConfig) *Console {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}
	c := &Console{cfg: cfg}
	c.buildCommands()
	return c
}

func (c *Console) buildCommands() {
	table := map[string]command{
		"help":      {usage: "help", summary: "list commands", run: c.handleHelp},
		"init":      {usage: `init "<name>" [swiss|roundrobin] [bye points] [rounds]`, summary: "set up a new tournament", run: c.handleInit},
		"team":      {usage: `team "<name>" "<player 1>" "<player 2>"`, summary: "register a team", run: c.handleTeam},
		"solo":      {usage: `solo "<name>" "<player>"`, summary: "register a one-player team", run: c.handleSolo},
		"rm":        {usage: "rm <team id>", summary: "remove a team before the start", run: c.handleRemove},
		"drop":      {usage: "drop <team id>", summary: "withdraw a team from later swiss rounds", run: c.handleDrop},
		"teams":     {usage: "teams", summary: "list registered teams", run: c.handleTeams},
		"start":     {usage: "start", summary: "start the tournament and pair round 1", run: c.handleStart},
		"next":      {usage: "next", summary: "pair the next round", run: c.handleNext},
		"result":    {usage: "result <match id> <game 1|2> <team1|team2>", summary: "record the winner of a game", run: c.handleResult},
		"complete":  {usage: "complete", summary: "finish the tournament", run: c.handleComplete},
		"reset":     {usage: "reset", summary: "discard all matches, keep teams", run: c.handleReset},
		"clear":     {usage: "clear", summary: "delete the saved snapshot", run: c.handleClear},
		"standings": {usage: "standings", summary: "show the standings", run: c.handleStandings},
		"matches":   {usage: "matches", summary: "show the current round", run: c.handleMatches},
		"history":   {usage: "history", summary: "show completed matches", run: c.handleHistory},
		"status":    {usage: "status", summary: "show the tournament status", run: c.handleStatus},
		"export":    {usage: "export [dir]", summary: "write the standings to a CSV file", run: c.handleExport},
	}
	c.commands = make(map[string]command, len(table))
	for name, cmd := range table {
		cmd.run = c.withLogging(name, c.withMetricsFlush(cmd.run))
		c.commands[name] = cmd
	}
}

// Run processes commands until end of input or quit.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.cfg.Out, "> ")
		line, readErr := c.cfg.In.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}
		if done := c.Execute(ctx, line); done {
			return nil
		}
		if readErr != nil {
			fmt.Fprintln(c.cfg.Out)
			return nil
		}
	}
}

// Execute runs one command line and reports whether the operator asked to
// quit.
func (c *Console) Execute(ctx context.Context, line string) bool {
	args, err := splitArgs(line)
	if err != nil {
		fmt.Fprintf(c.cfg.Out, "cannot parse input: %v\n", err)
		return false
	}
	if len(args) == 0 {
		return false
	}
	name := strings.ToLower(args[0])
	if name == "quit" || name == "exit" {
		return true
	}
	cmd, ok := c.commands[name]
	if !ok {
		fmt.Fprintf(c.cfg.Out, "unknown command %q, type help for a list\n", args[0])
		return false
	}
	err = cmd.run(ctx, args[1:])
	var ue usageError
	if errors.As(err, &ue) {
		ue.usage = cmd.usage
		fmt.Fprintln(c.cfg.Out, ue.Error())
	}
	return false
}

// splitArgs splits a line on spaces. Double quotes group words.
func splitArgs(line string) ([]string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = ' '
	fields, err := r.Read()
	if err != nil {
		return nil, err
	}
	args := fields[:0]
	for _, f := range fields {
		if f != "" {
			args = append(args, f)
		}
	}
	return args, nil
}

func (c *Console) handleHelp(ctx context.Context, args []string) error {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd := c.commands[name]
		fmt.Fprintf(c.cfg.Out, "  %-48s %s\n", cmd.usage, cmd.summary)
	}
	fmt.Fprintf(c.cfg.Out, "  %-48s %s\n", "quit", "leave the console")
	return nil
}
