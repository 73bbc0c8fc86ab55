package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/duotcg/tournament/src/domain/tournament"
	"github.com/duotcg/tournament/src/infra/logging"
)

type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	Log        logging.Config   `yaml:"log"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Tournament TournamentConfig `yaml:"tournament"`
}

type StorageConfig struct {
	// Path of the JSON snapshot. Empty keeps the tournament in memory only.
	Path string `yaml:"path"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

type TournamentConfig struct {
	DefaultByePoints int `yaml:"default_bye_points"`
	// Seed for round 1 randomness. Zero seeds from the clock.
	Seed        uint64 `yaml:"seed"`
	IDGenerator string `yaml:"id_generator"`
	ExportDir   string `yaml:"export_dir"`
}

func defaultConfig() Config {
	return Config{
		Storage: StorageConfig{Path: "duotcg-tournament.json"},
		Log: logging.Config{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Tournament: TournamentConfig{
			DefaultByePoints: tournament.DefaultByePoints,
			IDGenerator:      "uuid",
			ExportDir:        ".",
		},
	}
}

// loadConfig layers defaults, the optional YAML file and the environment.
// A .env file in the working directory seeds the environment without
// overriding variables that are already set.
func loadConfig(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	fset := flag.NewFlagSet("duotcg", flag.ContinueOnError)
	path := fset.String("config", getEnv("DUOTCG_CONFIG", ""), "path to a YAML config file")
	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := defaultConfig()
	if *path != "" {
		data, err := os.ReadFile(*path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", *path, err)
		}
	}

	cfg.Storage.Path = getEnv("DUOTCG_STORAGE_PATH", cfg.Storage.Path)
	cfg.Log.Level = getEnv("DUOTCG_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("DUOTCG_LOG_FILE", cfg.Log.File)
	cfg.Metrics.Textfile = getEnv("DUOTCG_METRICS_TEXTFILE", cfg.Metrics.Textfile)
	cfg.Tournament.IDGenerator = getEnv("DUOTCG_ID_GENERATOR", cfg.Tournament.IDGenerator)
	cfg.Tournament.ExportDir = getEnv("DUOTCG_EXPORT_DIR", cfg.Tournament.ExportDir)

	var err error
	if cfg.Tournament.DefaultByePoints, err = getEnvInt("DUOTCG_BYE_POINTS", cfg.Tournament.DefaultByePoints); err != nil {
		return Config{}, err
	}
	if cfg.Tournament.Seed, err = getEnvUint("DUOTCG_SEED", cfg.Tournament.Seed); err != nil {
		return Config{}, err
	}
	if cfg.Tournament.DefaultByePoints < 0 {
		return Config{}, tournament.ErrInvalidByePoints
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvUint(key string, fallback uint64) (uint64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
