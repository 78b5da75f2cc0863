// Package config loads deckforge settings from a YAML file and DECKFORGE_
// environment variables.
package config

import (
	"strings"

	apperrors "github.com/J-Double-J/deckForge-sub001/internal/errors"
	"github.com/J-Double-J/deckForge-sub001/internal/game"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. DECKFORGE_GAME_PLAYERS=4.
const EnvPrefix = "DECKFORGE"

// Config holds all deckforge settings.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Game    GameConfig    `mapstructure:"game"`
}

// LoggingConfig selects the log level and encoding.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EngineConfig tunes the session hub.
type EngineConfig struct {
	MaxPlayers      int   `mapstructure:"max_players"`
	MaxCascadeDepth int   `mapstructure:"max_cascade_depth"` // 0 = unbounded
	Seed            int64 `mapstructure:"seed"`              // 0 = seeded from the clock
}

// GameConfig describes the game the CLI plays.
type GameConfig struct {
	Players      int      `mapstructure:"players"`
	HandSize     int      `mapstructure:"hand_size"`
	Decks        int      `mapstructure:"decks"`
	Rounds       int      `mapstructure:"rounds"`
	CardsFile    string   `mapstructure:"cards_file"`
	TraitScripts []string `mapstructure:"trait_scripts"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("engine.max_players", game.DefaultMaxPlayers)
	v.SetDefault("engine.max_cascade_depth", 0)
	v.SetDefault("engine.seed", 0)

	v.SetDefault("game.players", 2)
	v.SetDefault("game.hand_size", 5)
	v.SetDefault("game.decks", 1)
	v.SetDefault("game.rounds", 3)
	v.SetDefault("game.cards_file", "")
	v.SetDefault("game.trait_scripts", []string{})
}

// Load reads the file at path, applies environment overrides and validates
// the result. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvalidConfig, err, "read config file "+path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidConfig, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the engine depends on.
func (c *Config) Validate() error {
	switch {
	case c.Engine.MaxPlayers <= 0:
		return apperrors.Newf(apperrors.CodeInvalidPlayerCount, "engine.max_players must be positive, got %d", c.Engine.MaxPlayers)
	case c.Engine.MaxCascadeDepth < 0:
		return apperrors.Newf(apperrors.CodeInvalidConfig, "engine.max_cascade_depth must not be negative, got %d", c.Engine.MaxCascadeDepth)
	case c.Game.Players < 0 || c.Game.Players > c.Engine.MaxPlayers:
		return apperrors.Newf(apperrors.CodeInvalidPlayerCount, "game.players must be between 0 and %d, got %d", c.Engine.MaxPlayers, c.Game.Players)
	case c.Game.HandSize < 0:
		return apperrors.Newf(apperrors.CodeInvalidHandSize, "game.hand_size must not be negative, got %d", c.Game.HandSize)
	case c.Game.Decks <= 0:
		return apperrors.Newf(apperrors.CodeInvalidDeckCount, "game.decks must be positive, got %d", c.Game.Decks)
	case c.Game.Rounds < 0:
		return apperrors.Newf(apperrors.CodeInvalidConfig, "game.rounds must not be negative, got %d", c.Game.Rounds)
	}
	return nil
}

// MediatorOptions turns the engine settings into session options.
func (e EngineConfig) MediatorOptions() []game.Option {
	opts := []game.Option{
		game.WithMaxPlayers(e.MaxPlayers),
		game.WithSeed(e.Seed),
	}
	if e.MaxCascadeDepth > 0 {
		opts = append(opts, game.WithMaxCascadeDepth(e.MaxCascadeDepth))
	}
	return opts
}
