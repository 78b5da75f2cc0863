package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/J-Double-J/deckForge-sub001/internal/config"
	"github.com/J-Double-J/deckForge-sub001/internal/game"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath  = flag.String("config", "", "path to configuration file")
	players     = flag.Int("players", -1, "number of players (overrides config)")
	rounds      = flag.Int("rounds", -1, "number of rounds (overrides config)")
	interactive = flag.Bool("interactive", false, "choose actions from stdin")
	version     = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *players >= 0 {
		cfg.Game.Players = *players
	}
	if *rounds >= 0 {
		cfg.Game.Rounds = *rounds
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting deckforge",
		zap.String("version", version),
		zap.String("config", *configPath),
		zap.Int("players", cfg.Game.Players),
		zap.Int("rounds", cfg.Game.Rounds),
	)

	out := game.NewWriterOutput(os.Stdout)
	var in game.InputSource
	if *interactive {
		in = game.NewLineInput(os.Stdin)
	}

	hc, err := newHighCard(cfg, logger, in, out)
	if err != nil {
		logger.Error("failed to set up game", zap.Error(err))
		os.Exit(1)
	}
	defer hc.m.Close()

	played, err := hc.play(cfg.Game.Rounds)
	if err != nil {
		logger.Error("game aborted", zap.Int("rounds_played", played), zap.Error(err))
		os.Exit(1)
	}
	hc.report(played)
	logger.Info("deckforge finished", zap.Int("rounds_played", played))
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
