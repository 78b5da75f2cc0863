package rules

import (
	"strconv"

	apperrors "github.com/J-Double-J/deckForge-sub001/internal/errors"
	"github.com/J-Double-J/deckForge-sub001/internal/game"
	"github.com/J-Double-J/deckForge-sub001/internal/game/events"
	"go.uber.org/zap"
)

// Round runs an ordered list of phases. Phases may move the round to
// another phase or halt it; the round is the only consumer of those
// requests.
type Round struct {
	number int
	m      *game.Mediator
	logger *zap.Logger
	phases []*Phase
	turns  *TurnHandler

	cursor     int
	state      State
	endedEarly bool
	message    string
	history    []PhaseEnded
}

// NewRound creates round number over phases. Turn phases without their own
// turn order use turns.
func NewRound(number int, m *game.Mediator, turns *TurnHandler, phases ...*Phase) *Round {
	r := &Round{
		number: number,
		m:      m,
		logger: m.Logger().With(zap.Int("round", number)),
		phases: phases,
		turns:  turns,
	}
	for _, ph := range phases {
		ph.OnEnded(r.phaseEnded)
	}
	return r
}

// Number returns the round number.
func (r *Round) Number() int { return r.number }

// State returns the lifecycle state.
func (r *Round) State() State { return r.state }

// Phases returns the phases in order.
func (r *Round) Phases() []*Phase {
	return append([]*Phase(nil), r.phases...)
}

// Turns returns the round's turn order.
func (r *Round) Turns() *TurnHandler { return r.turns }

// Current returns the index of the phase running or about to run.
func (r *Round) Current() int { return r.cursor }

// EndedEarly reports whether a phase halted the round, and with what message.
func (r *Round) EndedEarly() (bool, string) { return r.endedEarly, r.message }

// History returns how each phase that ran this round ended.
func (r *Round) History() []PhaseEnded {
	return append([]PhaseEnded(nil), r.history...)
}

func (r *Round) phaseEnded(ended PhaseEnded) {
	r.history = append(r.history, ended)
}

// Start resets round-scoped watchers and runs the phases from the first.
// A skip continues from its target, which must be a valid index and a
// phase that has not run yet. An error from a phase ends the round and is
// returned.
func (r *Round) Start() error {
	if r.state != NotStarted {
		return apperrors.Newf(apperrors.CodePhaseAlreadyEnded, "round %d was already started", r.number)
	}
	r.state = Running
	r.m.Watchers().ResetWatchersByScope(events.WatcherScopeRound)
	r.m.Publish(r.event(events.EventRoundStarted))
	r.logger.Info("round started", zap.Int("phases", len(r.phases)))

	for r.cursor < len(r.phases) {
		ph := r.phases[r.cursor]
		if ph.Kind() == TurnPhase && ph.Turns() == nil && r.turns != nil {
			ph.WithTurns(r.turns)
		}
		sig, err := ph.Start()
		if err != nil {
			r.End()
			return err
		}

		switch sig.Kind {
		case SignalSkipToPhase:
			if sig.Target < 0 || sig.Target >= len(r.phases) {
				r.End()
				return apperrors.Newf(apperrors.CodePhaseIndexOutOfRange,
					"phase %s skipped to %d, round has %d phases", ph.Name(), sig.Target, len(r.phases)).
					WithMetadata("round", strconv.Itoa(r.number))
			}
			r.logger.Debug("skipping to phase", zap.String("from", ph.Name()), zap.Int("target", sig.Target))
			r.cursor = sig.Target
		case SignalEndRound:
			r.endedEarly = true
			r.message = sig.Message
			r.End()
			return nil
		default:
			r.cursor++
		}
	}
	r.End()
	return nil
}

// End finishes the round. Calling it again has no effect.
func (r *Round) End() {
	if r.state == Ended {
		return
	}
	r.state = Ended
	evt := r.event(events.EventRoundEnded)
	evt.Flag = r.endedEarly
	evt.Message = r.message
	r.m.Publish(evt)
	r.logger.Info("round ended", zap.Bool("early", r.endedEarly), zap.String("message", r.message))
}

func (r *Round) event(t events.EventType) events.Event {
	evt := events.NewNamedEvent(t, "round "+strconv.Itoa(r.number))
	evt.Amount = r.number
	return evt
}

// RoundBuilder creates the round with the given number.
type RoundBuilder func(number int) (*Round, error)

// PlayRounds plays up to count rounds built by build. done, when set, is
// checked after every round and stops play early. It returns the number of
// rounds played.
func PlayRounds(count int, build RoundBuilder, done func() bool) (int, error) {
	played := 0
	for n := 1; n <= count; n++ {
		round, err := build(n)
		if err != nil {
			return played, err
		}
		if err := round.Start(); err != nil {
			return played, err
		}
		played++
		if done != nil && done() {
			break
		}
	}
	return played, nil
}
