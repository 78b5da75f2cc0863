// Package actions holds the units of effect phases are built from. A game
// action works through the session; a player action works on one player.
// Actions keep their configuration from construction, so running the same
// instance again repeats the same effect.
package actions

import (
	"github.com/J-Double-J/deckForge-sub001/internal/game/cards"
	"github.com/J-Double-J/deckForge-sub001/internal/game/player"
)

// Result is what an action produced.
type Result struct {
	// Cards drawn, played or moved by the action.
	Cards []*cards.Card
	// Choice is the name of the option picked, for interactive actions.
	Choice string
	// EndTurn asks a turn-based phase to stop the current turn.
	EndTurn bool
}

// Action is the part shared by both kinds of action.
type Action interface {
	Name() string
}

// GameAction acts on the session as a whole.
type GameAction interface {
	Action
	Execute() (Result, error)
}

// PlayerAction acts on one player.
type PlayerAction interface {
	Action
	Execute(p *player.Player) (Result, error)
}

// GameFunc adapts a function to GameAction.
type GameFunc struct {
	name string
	fn   func() (Result, error)
}

// NewGameFunc creates a named game action.
func NewGameFunc(name string, fn func() (Result, error)) *GameFunc {
	return &GameFunc{name: name, fn: fn}
}

// Name implements Action.
func (g *GameFunc) Name() string { return g.name }

// Execute implements GameAction.
func (g *GameFunc) Execute() (Result, error) { return g.fn() }

// PlayerFunc adapts a function to PlayerAction.
type PlayerFunc struct {
	name string
	fn   func(p *player.Player) (Result, error)
}

// NewPlayerFunc creates a named player action.
func NewPlayerFunc(name string, fn func(p *player.Player) (Result, error)) *PlayerFunc {
	return &PlayerFunc{name: name, fn: fn}
}

// Name implements Action.
func (f *PlayerFunc) Name() string { return f.name }

// Execute implements PlayerAction.
func (f *PlayerFunc) Execute(p *player.Player) (Result, error) { return f.fn(p) }
