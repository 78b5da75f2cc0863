package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/J-Double-J/deckForge-sub001/internal/config"
	"github.com/J-Double-J/deckForge-sub001/internal/game"
	"github.com/J-Double-J/deckForge-sub001/internal/game/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

func testConfig(players, rounds int) *config.Config {
	return &config.Config{
		Logging: config.LoggingConfig{Level: "debug"},
		Engine:  config.EngineConfig{MaxPlayers: game.DefaultMaxPlayers, MaxCascadeDepth: 32, Seed: 3},
		Game:    config.GameConfig{Players: players, HandSize: 3, Decks: 1, Rounds: rounds},
	}
}

func totalChips(t *testing.T, hc *highCard) int {
	t.Helper()
	total := 0
	for _, p := range hc.m.Players() {
		chips, ok := player.CapabilityOf[*player.Chips](p)
		require.True(t, ok)
		total += chips.Balance() + chips.Wagered()
	}
	return total
}

func TestHighCardGame(t *testing.T) {
	out := &game.BufferedOutput{}
	hc, err := newHighCard(testConfig(2, 2), zaptest.NewLogger(t), nil, out)
	require.NoError(t, err)

	played, err := hc.play(2)
	require.NoError(t, err)
	assert.Equal(t, 2, played)

	assert.Equal(t, 2*startingChips, totalChips(t, hc))
	assert.Equal(t, 48, hc.deck.Size())
	for _, p := range hc.m.Players() {
		assert.Equal(t, 2, p.HandSize())
	}
	assert.Empty(t, hc.table.Placed())
	assert.Equal(t, 0, hc.m.Modifier(heartsModifier))
	assert.Equal(t, 0, hc.m.Modifier(spadesModifier))
	assert.Equal(t, []string{"deal", "play", "score", "cleanup", "deal", "play", "score", "cleanup"}, hc.history.Names())

	j, ok := hc.m.Journal()
	require.True(t, ok)
	assert.Positive(t, j.Size())

	hc.report(played)
	assert.Contains(t, out.Lines, "== 2 rounds played ==")
}

func TestHighCardRotatesTurns(t *testing.T) {
	hc, err := newHighCard(testConfig(3, 3), zaptest.NewLogger(t), nil, &game.BufferedOutput{})
	require.NoError(t, err)

	_, err = hc.play(3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, hc.turns.Order())
}

func TestHighCardInteractive(t *testing.T) {
	in := game.NewScriptedInput("1", "play card", "3", "1", "end turn")
	out := &game.BufferedOutput{}
	hc, err := newHighCard(testConfig(2, 1), zaptest.NewLogger(t), in, out)
	require.NoError(t, err)

	played, err := hc.play(1)
	require.NoError(t, err)
	assert.Equal(t, 1, played)
	assert.Equal(t, 2*startingChips, totalChips(t, hc))
	assert.Equal(t, 1, hc.played.GetTotal())

	hands := []int{}
	for _, p := range hc.m.Players() {
		hands = append(hands, p.HandSize())
	}
	assert.Equal(t, []int{2, 3}, hands)
}

func TestHighCardWithoutPlayers(t *testing.T) {
	hc, err := newHighCard(testConfig(0, 3), zaptest.NewLogger(t), nil, &game.BufferedOutput{})
	require.NoError(t, err)
	played, err := hc.play(3)
	require.NoError(t, err)
	assert.Zero(t, played)
}

func TestBuildDeckFromCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.csv")
	csv := "name,value,suit,count,facing\nKnight,7,Hearts,3\nDragon,12,Spades,1,up\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	deck, err := buildDeck(config.GameConfig{Decks: 2, CardsFile: path})
	require.NoError(t, err)
	assert.Equal(t, 8, deck.Size())

	_, err = buildDeck(config.GameConfig{Decks: 1, CardsFile: filepath.Join(t.TempDir(), "none.csv")})
	assert.Error(t, err)
}

func TestTraitScriptsAttachToAces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ace.lua")
	require.NoError(t, os.WriteFile(path, []byte(`name = "ace" function on_play(card) set_bonus(10) end`), 0o600))

	cfg := testConfig(1, 1)
	cfg.Game.TraitScripts = []string{path}
	hc, err := newHighCard(cfg, zaptest.NewLogger(t), nil, &game.BufferedOutput{})
	require.NoError(t, err)

	aces := 0
	for _, c := range hc.deck.Cards() {
		if c.Value == 14 {
			aces++
			require.NoError(t, c.NotifyPlayed(0))
			assert.Equal(t, 24, c.EffectiveValue())
		}
	}
	assert.Equal(t, 4, aces)
}

func TestInitLogger(t *testing.T) {
	logger, err := initLogger(config.LoggingConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	logger, err = initLogger(config.LoggingConfig{Level: "bogus"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
