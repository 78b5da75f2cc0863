package traits

import (
	"github.com/J-Double-J/deckForge-sub001/internal/game/cards"
)

// ZoneCounter adds one to a modifier while its card is placed in a zone
// and takes it back when the card leaves or the trait is detached.
type ZoneCounter struct {
	Base
	modifier string
	zone     cards.ZoneType
	counted  bool
}

// NewZoneCounter creates a counter for modifier over zone.
func NewZoneCounter(broker Broker, modifier string, zone cards.ZoneType) *ZoneCounter {
	return &ZoneCounter{
		Base:     NewBase("zone-counter:"+modifier, broker),
		modifier: modifier,
		zone:     zone,
	}
}

// OnPlace implements cards.PlaceReactor.
func (z *ZoneCounter) OnPlace(ctx cards.TraitContext) error {
	if !ctx.Placed || ctx.Placement.Zone != z.zone || z.counted {
		return nil
	}
	z.counted = true
	return z.broker.ChangeModifierBy(z.modifier, 1)
}

// OnCardRemoved implements cards.RemovalReactor.
func (z *ZoneCounter) OnCardRemoved(ctx cards.TraitContext) error {
	if !z.counted || ctx.Placement.Zone != z.zone {
		return nil
	}
	z.counted = false
	return z.broker.ChangeModifierBy(z.modifier, -1)
}

// OnTraitRemoved implements cards.DetachReactor.
func (z *ZoneCounter) OnTraitRemoved(cards.TraitContext) error {
	if !z.counted {
		return nil
	}
	z.counted = false
	return z.broker.ChangeModifierBy(z.modifier, -1)
}

// ModifierBoost raises its card's effective value by perPoint for every
// point of a modifier. It subscribes when constructed.
type ModifierBoost struct {
	Base
	modifier string
	perPoint int
	bonus    int
	seen     []int
}

// NewModifierBoost creates a boost tracking modifier.
func NewModifierBoost(broker Broker, modifier string, perPoint int) *ModifierBoost {
	m := &ModifierBoost{
		Base:     NewBase("boost:"+modifier, broker),
		modifier: modifier,
		perPoint: perPoint,
		bonus:    broker.Modifier(modifier) * perPoint,
	}
	m.Subscribe(modifier, m.onChange)
	return m
}

// onChange recomputes from the live value; a nested change may already have
// moved the modifier past the value this notification carries.
func (m *ModifierBoost) onChange(_ string, value int) error {
	m.seen = append(m.seen, value)
	m.bonus = m.broker.Modifier(m.modifier) * m.perPoint
	return nil
}

// ValueBonus implements cards.ValueModifier.
func (m *ModifierBoost) ValueBonus() int { return m.bonus }

// Seen returns the values delivered to the boost, in delivery order.
func (m *ModifierBoost) Seen() []int { return append([]int(nil), m.seen...) }

// Relay changes one modifier whenever another changes, chaining effects
// across cards.
type Relay struct {
	Base
	from, to string
	delta    int
}

// NewRelay creates a relay that adds delta to "to" on every change of
// "from".
func NewRelay(broker Broker, from, to string, delta int) *Relay {
	r := &Relay{
		Base:  NewBase("relay:"+from+"->"+to, broker),
		from:  from,
		to:    to,
		delta: delta,
	}
	r.Subscribe(from, func(string, int) error {
		return r.broker.ChangeModifierBy(r.to, r.delta)
	})
	return r
}

// Scorer is the capability of cards worth victory points.
type Scorer interface {
	VictoryPoints() int
}

// Priced is the capability of cards that can be bought.
type Priced interface {
	Price() int
}

// Victory marks a card as worth points at the end of the game.
type Victory struct {
	Points int
}

// Name implements cards.Trait.
func (Victory) Name() string { return "victory" }

// VictoryPoints implements Scorer.
func (v Victory) VictoryPoints() int { return v.Points }

// Cost marks a card as purchasable.
type Cost struct {
	Amount int
}

// Name implements cards.Trait.
func (Cost) Name() string { return "cost" }

// Price implements Priced.
func (c Cost) Price() int { return c.Amount }

// TotalPoints sums the victory points of every card carrying Scorer.
func TotalPoints(cs []*cards.Card) int {
	total := 0
	for _, c := range cs {
		if s, ok := cards.Capability[Scorer](c); ok {
			total += s.VictoryPoints()
		}
	}
	return total
}
