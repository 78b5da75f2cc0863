// Package traits provides reusable card traits: modifier bookkeeping,
// capability markers and traits scripted in Lua.
package traits

import (
	"github.com/J-Double-J/deckForge-sub001/internal/game/cards"
	"github.com/J-Double-J/deckForge-sub001/internal/game/counters"
)

// Broker is the part of the game session traits talk to. *game.Mediator
// implements it.
type Broker interface {
	Modifier(name string) int
	ChangeModifierBy(name string, delta int) error
	SubscribeModifier(name string, listener counters.Listener) int
	UnsubscribeModifier(handle int) bool
}

// Base carries the card back-reference and modifier subscriptions shared by
// every trait. Embed it and the trait is released automatically when
// detached from its card.
type Base struct {
	name    string
	card    *cards.Card
	broker  Broker
	handles []int
}

// NewBase creates the shared state of a trait.
func NewBase(name string, broker Broker) Base {
	return Base{name: name, broker: broker}
}

// Name implements cards.Trait.
func (b *Base) Name() string { return b.name }

// Card returns the card the trait is attached to, or nil.
func (b *Base) Card() *cards.Card { return b.card }

// Broker returns the session the trait reports to.
func (b *Base) Broker() Broker { return b.broker }

// Attached implements cards.Attacher.
func (b *Base) Attached(c *cards.Card) { b.card = c }

// Subscribe registers listener for changes to modifier until Release.
func (b *Base) Subscribe(modifier string, listener counters.Listener) {
	if h := b.broker.SubscribeModifier(modifier, listener); h >= 0 {
		b.handles = append(b.handles, h)
	}
}

// Subscriptions returns the number of live modifier subscriptions.
func (b *Base) Subscriptions() int { return len(b.handles) }

// Release implements cards.Releaser.
func (b *Base) Release() {
	for _, h := range b.handles {
		b.broker.UnsubscribeModifier(h)
	}
	b.handles = nil
	b.card = nil
}
