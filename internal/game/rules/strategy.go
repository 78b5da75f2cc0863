package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/J-Double-J/deckForge-sub001/internal/game"
	"github.com/J-Double-J/deckForge-sub001/internal/game/actions"
	"github.com/J-Double-J/deckForge-sub001/internal/game/player"
)

// TurnStrategy picks the actions of a player's turn. step counts the
// actions already taken this turn. Returning false ends the turn.
type TurnStrategy interface {
	NextAction(p *player.Player, step int) (actions.PlayerAction, bool)
}

// Sequential runs its actions once each, in order. An action that reports
// EndTurn stops the turn before the rest.
type Sequential []actions.PlayerAction

// NewSequential creates a sequential strategy.
func NewSequential(acts ...actions.PlayerAction) Sequential {
	return Sequential(acts)
}

// NextAction implements TurnStrategy.
func (s Sequential) NextAction(_ *player.Player, step int) (actions.PlayerAction, bool) {
	if step >= len(s) {
		return nil, false
	}
	return s[step], true
}

// Interactive shows a numbered menu and lets the player choose by number or
// by action name until they pick an action that ends the turn. The turn
// also ends when the input runs out.
type Interactive struct {
	options []actions.PlayerAction
	in      game.InputSource
	out     game.OutputSink
}

// NewInteractive creates an interactive strategy over options.
func NewInteractive(in game.InputSource, out game.OutputSink, options ...actions.PlayerAction) *Interactive {
	return &Interactive{options: options, in: in, out: out}
}

// NextAction implements TurnStrategy.
func (s *Interactive) NextAction(p *player.Player, step int) (actions.PlayerAction, bool) {
	if step == 0 {
		s.out.Clear()
		s.out.Display(fmt.Sprintf("%s's turn", p.Name()))
	}
	s.showMenu(p)
	for {
		line, ok := s.in.GetInput()
		if !ok {
			return nil, false
		}
		if act, found := s.choose(strings.TrimSpace(line)); found {
			return act, true
		}
		s.out.Display(fmt.Sprintf("invalid choice %q", line))
	}
}

func (s *Interactive) showMenu(p *player.Player) {
	var hand []string
	for _, c := range p.Hand() {
		hand = append(hand, c.String())
	}
	s.out.Display("hand: " + strings.Join(hand, ", "))
	for i, act := range s.options {
		s.out.Display(fmt.Sprintf("%d) %s", i+1, act.Name()))
	}
}

func (s *Interactive) choose(input string) (actions.PlayerAction, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(s.options) {
			return nil, false
		}
		return s.options[n-1], true
	}
	for _, act := range s.options {
		if strings.EqualFold(act.Name(), input) {
			return act, true
		}
	}
	return nil, false
}
