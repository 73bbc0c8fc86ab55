package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/duotcg/tournament/src/app/tournaments"
	"github.com/duotcg/tournament/src/domain/pairing"
	"github.com/duotcg/tournament/src/domain/shared"
	"github.com/duotcg/tournament/src/domain/tournament"
	"github.com/duotcg/tournament/src/infra/ids"
	"github.com/duotcg/tournament/src/infra/logging"
	"github.com/duotcg/tournament/src/infra/metrics"
	"github.com/duotcg/tournament/src/infra/notify"
	infratournament "github.com/duotcg/tournament/src/infra/tournament"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Fatal("console stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg Config, logger *zap.Logger) error {
	var store tournament.Store
	if cfg.Storage.Path != "" {
		store = infratournament.NewFileStore(cfg.Storage.Path, logger)
	} else {
		store = infratournament.NewMemoryStore(logger)
	}

	in := bufio.NewReader(os.Stdin)
	term := notify.NewConsole(in, os.Stdout, logger)
	recorder := metrics.NewRecorder(cfg.Metrics.Textfile)

	svc := tournaments.NewService(store, nil, term, term, logger)
	svc.Metrics = recorder
	restored, err := svc.Restore(ctx)
	if err != nil {
		return err
	}

	engine, err := newEngine(cfg.Tournament, svc.Snapshot())
	if err != nil {
		return err
	}
	svc.Pairing = engine

	logger.Info("duotcg console ready",
		zap.String("storage", cfg.Storage.Path),
		zap.Bool("restored", restored),
		zap.String("id_generator", cfg.Tournament.IDGenerator),
	)
	if restored {
		term.Notify(fmt.Sprintf("Resumed tournament %q.", svc.Status().Name))
	}
	fmt.Fprintln(os.Stdout, "Type help for a list of commands.")

	console := NewConsole(ConsoleConfig{
		Service:          svc,
		In:               in,
		Out:              os.Stdout,
		Logger:           logger,
		Metrics:          recorder,
		DefaultByePoints: cfg.Tournament.DefaultByePoints,
		ExportDir:        cfg.Tournament.ExportDir,
	})
	return console.Run(ctx)
}

// newEngine seeds the pairing engine. A sequence id generator resumes
// after the highest id in the restored match log so ids stay unique.
func newEngine(cfg TournamentConfig, t *tournament.Tournament) (*pairing.Engine, error) {
	var gen tournament.IDGenerator
	if cfg.IDGenerator == "sequence" {
		used := make([]shared.MatchID, 0, len(t.Matches)+len(t.AllMatches))
		for _, m := range slices.Concat(t.Matches, t.AllMatches) {
			used = append(used, m.ID)
		}
		gen = ids.ResumeSequence("match", used)
	} else {
		var err error
		if gen, err = ids.New(cfg.IDGenerator); err != nil {
			return nil, err
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return pairing.NewEngine(gen, rand.New(rand.NewPCG(seed, seed>>1))), nil
}
