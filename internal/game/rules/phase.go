package rules

import (
	"fmt"

	apperrors "github.com/J-Double-J/deckForge-sub001/internal/errors"
	"github.com/J-Double-J/deckForge-sub001/internal/game"
	"github.com/J-Double-J/deckForge-sub001/internal/game/actions"
	"github.com/J-Double-J/deckForge-sub001/internal/game/events"
	"go.uber.org/zap"
)

// State is the lifecycle of a phase or round.
type State int

const (
	NotStarted State = iota
	Running
	Ended
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// PhaseKind tells whether a phase runs game actions once or player actions
// turn by turn.
type PhaseKind int

const (
	GamePhase PhaseKind = iota
	TurnPhase
)

// SignalKind is what a finished phase asks of its round.
type SignalKind int

const (
	// SignalNone continues with the next phase.
	SignalNone SignalKind = iota
	// SignalEndPhase means the phase stopped before its last step.
	SignalEndPhase
	// SignalSkipToPhase moves the round to Signal.Target.
	SignalSkipToPhase
	// SignalEndRound halts the round.
	SignalEndRound
)

// Signal is returned by Phase.Start.
type Signal struct {
	Kind    SignalKind
	Target  int
	Message string
}

// PhaseEnded describes how a phase finished.
type PhaseEnded struct {
	Name    string
	Message string
	Early   bool
}

// BetweenTurnsFunc runs after a player's turn in a turn phase.
type BetweenTurnsFunc func(p *Phase, playerID int) error

// AfterStepFunc runs after each action of a phase. playerID is
// events.NoPlayer in game phases.
type AfterStepFunc func(p *Phase, playerID int, action string, result actions.Result) error

// Phase is one named segment of a round. A game phase runs its game
// actions in order; a turn phase gives every player in turn order a turn
// driven by its strategy. A phase runs once: after it has ended, Start
// fails.
type Phase struct {
	name   string
	kind   PhaseKind
	m      *game.Mediator
	logger *zap.Logger

	gameActions []actions.GameAction
	strategy    TurnStrategy
	turns       *TurnHandler

	betweenTurns BetweenTurnsFunc
	afterStep    AfterStepFunc
	listeners    []func(PhaseEnded)

	state   State
	pending *Signal
}

// NewGamePhase creates a phase that runs acts once, in order.
func NewGamePhase(name string, m *game.Mediator, acts ...actions.GameAction) *Phase {
	return &Phase{
		name:        name,
		kind:        GamePhase,
		m:           m,
		logger:      m.Logger().With(zap.String("phase", name)),
		gameActions: acts,
	}
}

// NewTurnPhase creates a phase in which every player takes a turn. Without
// WithTurns the phase uses its round's turn order.
func NewTurnPhase(name string, m *game.Mediator, strategy TurnStrategy) *Phase {
	return &Phase{
		name:     name,
		kind:     TurnPhase,
		m:        m,
		logger:   m.Logger().With(zap.String("phase", name)),
		strategy: strategy,
	}
}

// WithTurns fixes the turn order of a turn phase.
func (p *Phase) WithTurns(turns *TurnHandler) *Phase {
	p.turns = turns
	return p
}

// OnBetweenTurns sets the hook run after each turn.
func (p *Phase) OnBetweenTurns(fn BetweenTurnsFunc) *Phase {
	p.betweenTurns = fn
	return p
}

// OnAfterStep sets the hook run after each action.
func (p *Phase) OnAfterStep(fn AfterStepFunc) *Phase {
	p.afterStep = fn
	return p
}

// OnEnded registers a listener for the end of the phase.
func (p *Phase) OnEnded(fn func(PhaseEnded)) {
	p.listeners = append(p.listeners, fn)
}

// Name returns the phase name.
func (p *Phase) Name() string { return p.name }

// Kind returns the phase kind.
func (p *Phase) Kind() PhaseKind { return p.kind }

// State returns the lifecycle state.
func (p *Phase) State() State { return p.state }

// Turns returns the turn order the phase runs with, if any.
func (p *Phase) Turns() *TurnHandler { return p.turns }

// EndPhaseEarly stops the phase after the current step.
func (p *Phase) EndPhaseEarly(message string) {
	p.request(Signal{Kind: SignalEndPhase, Message: message})
}

// SkipToPhase stops the phase after the current step and moves the round to
// the phase at index.
func (p *Phase) SkipToPhase(index int) {
	p.request(Signal{Kind: SignalSkipToPhase, Target: index})
}

// EndRoundEarly stops the phase after the current step and halts the round.
func (p *Phase) EndRoundEarly(message string) {
	p.request(Signal{Kind: SignalEndRound, Message: message})
}

// request keeps the first stop request made while running.
func (p *Phase) request(sig Signal) {
	if p.state != Running || p.pending != nil {
		return
	}
	p.pending = &sig
}

// Start runs the phase to completion or until a hook or action asks it to
// stop. The end of the phase is announced exactly once, also when an action
// fails; the error is then returned with the phase ended.
func (p *Phase) Start() (Signal, error) {
	switch p.state {
	case Running:
		return Signal{}, apperrors.Newf(apperrors.CodePhaseAlreadyEnded, "phase %s is already running", p.name)
	case Ended:
		return Signal{}, apperrors.Newf(apperrors.CodePhaseAlreadyEnded, "phase %s has already ended", p.name)
	}
	p.state = Running
	p.logger.Debug("phase started", zap.Stringer("kind", p.kind))
	p.m.Publish(events.NewNamedEvent(events.EventPhaseStarted, p.name))

	var err error
	if p.kind == TurnPhase {
		err = p.runTurns()
	} else {
		err = p.runGameActions()
	}

	sig := Signal{Kind: SignalNone}
	if p.pending != nil {
		sig = *p.pending
	}
	if err != nil {
		p.finish(true, err.Error())
		return sig, err
	}
	p.finish(sig.Kind != SignalNone, sig.Message)
	return sig, nil
}

func (p *Phase) runGameActions() error {
	for _, act := range p.gameActions {
		result, err := act.Execute()
		if err != nil {
			return apperrors.Wrap(apperrors.GetCode(err), err, fmt.Sprintf("phase %s: %s", p.name, act.Name()))
		}
		if err := p.stepDone(events.NoPlayer, act.Name(), result); err != nil {
			return err
		}
		if p.pending != nil {
			return nil
		}
	}
	return nil
}

func (p *Phase) runTurns() error {
	if p.turns == nil {
		turns, err := NewTurnHandler(p.m.PlayerIDs())
		if err != nil {
			return err
		}
		p.turns = turns
	}
	if p.strategy == nil {
		return apperrors.Newf(apperrors.CodeInvalidConfig, "turn phase %s has no strategy", p.name)
	}

	// Each turn phase walks the whole order from its head, even when a
	// previous phase sharing the handler stopped mid-order.
	p.turns.Reset()
	for i := 0; i < p.turns.Len(); i++ {
		id := p.turns.Current()
		err := p.takeTurn(id)
		if err == nil && p.pending == nil && p.betweenTurns != nil {
			err = p.betweenTurns(p, id)
		}
		p.turns.Advance()
		if err != nil {
			return err
		}
		if p.pending != nil {
			return nil
		}
	}
	return nil
}

func (p *Phase) takeTurn(id int) error {
	pl, err := p.m.Player(id)
	if err != nil {
		return err
	}
	p.m.Publish(events.NewEvent(events.EventTurnStarted, id))
	defer p.m.Publish(events.NewEvent(events.EventTurnEnded, id))

	for step := 0; ; step++ {
		act, ok := p.strategy.NextAction(pl, step)
		if !ok {
			return nil
		}
		result, err := act.Execute(pl)
		if err != nil {
			return apperrors.Wrap(apperrors.GetCode(err), err, fmt.Sprintf("phase %s: player %d: %s", p.name, id, act.Name()))
		}
		if err := p.stepDone(id, act.Name(), result); err != nil {
			return err
		}
		if p.pending != nil || result.EndTurn {
			return nil
		}
	}
}

func (p *Phase) stepDone(playerID int, action string, result actions.Result) error {
	p.logger.Debug("step done",
		zap.Int("player_id", playerID),
		zap.String("action", action),
		zap.Int("cards", len(result.Cards)),
	)
	if p.afterStep == nil {
		return nil
	}
	return p.afterStep(p, playerID, action, result)
}

func (p *Phase) finish(early bool, message string) {
	p.state = Ended
	ended := PhaseEnded{Name: p.name, Message: message, Early: early}

	evt := events.NewNamedEvent(events.EventPhaseEnded, p.name)
	evt.Flag = early
	evt.Message = message
	p.m.Publish(evt)

	for _, fn := range p.listeners {
		fn(ended)
	}
	p.logger.Debug("phase ended", zap.Bool("early", early), zap.String("message", message))
}

func (k PhaseKind) String() string {
	if k == TurnPhase {
		return "turn"
	}
	return "game"
}
