package traits

import (
	"fmt"
	"os"

	apperrors "github.com/J-Double-J/deckForge-sub001/internal/errors"
	"github.com/J-Double-J/deckForge-sub001/internal/game/cards"
	"github.com/Shopify/go-lua"
	"go.uber.org/zap"
)

// Hook names a LuaTrait script may define as global functions.
const (
	HookPlay         = "on_play"
	HookPlace        = "on_place"
	HookCardRemoved  = "on_card_removed"
	HookTraitRemoved = "on_trait_removed"
	HookModifier     = "on_modifier"
)

// LuaTrait runs card reactions written in Lua. A script may define any of
// the hook functions; each card hook receives a table describing the card
// and its placement. Modifiers listed in the global "watch" table are
// subscribed when the trait is created and reach on_modifier(name, value).
//
// Scripts can call get_modifier(name), change_modifier_by(name, delta) and
// set_bonus(n); the bonus is added to the card's effective value.
type LuaTrait struct {
	Base
	logger  *zap.Logger
	state   *lua.State
	bonus   int
	lastErr error
}

// LoadLuaTrait reads a script from disk and builds a trait from it.
func LoadLuaTrait(path string, broker Broker, logger *zap.Logger) (*LuaTrait, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeScriptFailed, err, "read trait script").
			WithMetadata("path", path)
	}
	return NewLuaTrait(path, string(src), broker, logger)
}

// NewLuaTrait compiles and runs source once, then subscribes to the
// modifiers it watches. A global "name" in the script overrides name.
func NewLuaTrait(name, source string, broker Broker, logger *zap.Logger) (*LuaTrait, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &LuaTrait{
		Base:   NewBase(name, broker),
		logger: logger,
		state:  lua.NewState(),
	}
	lua.OpenLibraries(t.state)
	t.register()

	if err := lua.DoString(t.state, source); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeScriptFailed, err, "load trait script").
			WithMetadata("trait", name)
	}

	t.state.Global("name")
	if s, ok := t.state.ToString(-1); ok && s != "" {
		t.name = s
	}
	t.state.Pop(1)

	for _, modifier := range t.watched() {
		t.Subscribe(modifier, func(_ string, value int) error {
			return t.call(HookModifier, func() int {
				t.state.PushString(modifier)
				t.state.PushInteger(value)
				return 2
			})
		})
	}
	logger.Debug("lua trait loaded",
		zap.String("trait", t.name),
		zap.Int("subscriptions", t.Subscriptions()),
	)
	return t, nil
}

func (t *LuaTrait) register() {
	t.state.Register("get_modifier", func(l *lua.State) int {
		l.PushInteger(t.broker.Modifier(lua.CheckString(l, 1)))
		return 1
	})
	t.state.Register("change_modifier_by", func(l *lua.State) int {
		name := lua.CheckString(l, 1)
		delta := lua.CheckInteger(l, 2)
		if err := t.broker.ChangeModifierBy(name, delta); err != nil {
			t.lastErr = err
			lua.Errorf(l, "change_modifier_by(%s): %s", name, err.Error())
		}
		return 0
	})
	t.state.Register("set_bonus", func(l *lua.State) int {
		t.bonus = lua.CheckInteger(l, 1)
		return 0
	})
}

func (t *LuaTrait) watched() []string {
	var names []string
	t.state.Global("watch")
	if t.state.IsTable(-1) {
		n := lua.LengthEx(t.state, -1)
		for i := 1; i <= n; i++ {
			t.state.RawGetInt(-1, i)
			if s, ok := t.state.ToString(-1); ok {
				names = append(names, s)
			}
			t.state.Pop(1)
		}
	}
	t.state.Pop(1)
	return names
}

// call invokes a global hook if the script defines it. push pushes the
// arguments and returns how many it pushed.
func (t *LuaTrait) call(hook string, push func() int) error {
	top := t.state.Top()
	defer t.state.SetTop(top)

	t.state.Global(hook)
	if !t.state.IsFunction(-1) {
		return nil
	}
	t.lastErr = nil
	if err := t.state.ProtectedCall(push(), 0, 0); err != nil {
		cause := err
		if t.lastErr != nil {
			cause = t.lastErr
		}
		t.logger.Warn("lua hook failed",
			zap.String("trait", t.name),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return apperrors.Wrap(apperrors.CodeScriptFailed, cause, fmt.Sprintf("%s in %s", hook, t.name))
	}
	return nil
}

func (t *LuaTrait) pushContext(ctx cards.TraitContext) func() int {
	return func() int {
		s := t.state
		s.NewTable()
		s.PushString(ctx.Card.ID)
		s.SetField(-2, "id")
		s.PushString(ctx.Card.Name)
		s.SetField(-2, "name")
		s.PushInteger(ctx.Card.Value)
		s.SetField(-2, "value")
		s.PushString(ctx.Card.Suit)
		s.SetField(-2, "suit")
		s.PushInteger(ctx.PlayerID)
		s.SetField(-2, "player")
		s.PushBoolean(ctx.Placed)
		s.SetField(-2, "placed")
		if ctx.Placed {
			s.PushString(ctx.Placement.Zone.String())
			s.SetField(-2, "zone")
			s.PushInteger(ctx.Placement.Area)
			s.SetField(-2, "area")
		}
		return 1
	}
}

// OnPlay implements cards.PlayReactor.
func (t *LuaTrait) OnPlay(ctx cards.TraitContext) error {
	return t.call(HookPlay, t.pushContext(ctx))
}

// OnPlace implements cards.PlaceReactor.
func (t *LuaTrait) OnPlace(ctx cards.TraitContext) error {
	return t.call(HookPlace, t.pushContext(ctx))
}

// OnCardRemoved implements cards.RemovalReactor.
func (t *LuaTrait) OnCardRemoved(ctx cards.TraitContext) error {
	return t.call(HookCardRemoved, t.pushContext(ctx))
}

// OnTraitRemoved implements cards.DetachReactor.
func (t *LuaTrait) OnTraitRemoved(ctx cards.TraitContext) error {
	return t.call(HookTraitRemoved, t.pushContext(ctx))
}

// ValueBonus implements cards.ValueModifier.
func (t *LuaTrait) ValueBonus() int { return t.bonus }
