// Package player models a seat at the game: a hand of cards and named
// resource collections.
package player

import (
	apperrors "github.com/J-Double-J/deckForge-sub001/internal/errors"
	"github.com/J-Double-J/deckForge-sub001/internal/game/cards"
)

// Broker receives the events a player raises. The Mediator implements it.
type Broker interface {
	NotifyPlayerPlayedCard(playerID int, card *cards.Card) error
}

// Collection is a named resource a player holds. *cards.Deck satisfies it.
type Collection interface {
	Name() string
	Size() int
}

// Player is one participant. The id is fixed at construction.
type Player struct {
	id        int
	name      string
	hand      []*cards.Card
	resources []Collection
	broker    Broker
}

// New creates a player with an empty hand.
func New(id int, name string) *Player {
	return &Player{id: id, name: name}
}

// ID returns the player id.
func (p *Player) ID() int { return p.id }

// Name returns the display name.
func (p *Player) Name() string { return p.name }

// SetBroker installs the broker notified when cards are played.
func (p *Player) SetBroker(b Broker) { p.broker = b }

// Hand returns the cards in hand in order.
func (p *Player) Hand() []*cards.Card {
	return append([]*cards.Card(nil), p.hand...)
}

// HandSize returns the number of cards in hand.
func (p *Player) HandSize() int { return len(p.hand) }

// AddCard puts a card at the end of the hand and marks the player as owner.
// Nil cards are ignored.
func (p *Player) AddCard(card *cards.Card) {
	if card == nil {
		return
	}
	card.SetOwner(p.id)
	p.hand = append(p.hand, card)
}

// AddCards adds every non-nil card.
func (p *Player) AddCards(cs []*cards.Card) int {
	added := 0
	for _, c := range cs {
		if c != nil {
			p.AddCard(c)
			added++
		}
	}
	return added
}

// RemoveCard takes a card out of the hand without playing it.
func (p *Player) RemoveCard(cardID string) (*cards.Card, bool) {
	for i, c := range p.hand {
		if c.ID == cardID {
			p.hand = append(p.hand[:i:i], p.hand[i+1:]...)
			return c, true
		}
	}
	return nil, false
}

// Play removes the card at index from the hand, turns it face up and
// notifies the broker. A failed notification puts the card back where it
// was.
func (p *Player) Play(index int) (*cards.Card, error) {
	if index < 0 || index >= len(p.hand) {
		return nil, apperrors.Newf(apperrors.CodeCardNotFound, "player %d has no card at index %d", p.id, index)
	}
	card := p.hand[index]
	p.hand = append(p.hand[:index:index], p.hand[index+1:]...)
	if err := p.played(card); err != nil {
		p.insert(card, index)
		return nil, err
	}
	return card, nil
}

// PlayCard plays the card with the given id.
func (p *Player) PlayCard(cardID string) (*cards.Card, error) {
	for i, c := range p.hand {
		if c.ID == cardID {
			return p.Play(i)
		}
	}
	return nil, apperrors.Newf(apperrors.CodeCardNotFound, "player %d has no card %s", p.id, cardID)
}

// PlayHand plays every card in hand, first to last. It stops at the first
// failing notification: the cards played so far are returned and the rest,
// the failing card first, stay in hand.
func (p *Player) PlayHand() ([]*cards.Card, error) {
	hand := p.hand
	p.hand = nil
	out := make([]*cards.Card, 0, len(hand))
	for i, card := range hand {
		if err := p.played(card); err != nil {
			p.hand = append(p.hand, hand[i:]...)
			return out, err
		}
		out = append(out, card)
	}
	return out, nil
}

func (p *Player) played(card *cards.Card) error {
	facing := card.Facing()
	card.SetFacing(cards.FaceUp)
	if p.broker == nil {
		return nil
	}
	if err := p.broker.NotifyPlayerPlayedCard(p.id, card); err != nil {
		card.SetFacing(facing)
		return err
	}
	return nil
}

func (p *Player) insert(card *cards.Card, index int) {
	p.hand = append(p.hand, nil)
	copy(p.hand[index+1:], p.hand[index:])
	p.hand[index] = card
}

// AddResource adds a collection. A collection with the same name is
// replaced in place.
func (p *Player) AddResource(c Collection) {
	for i, r := range p.resources {
		if r.Name() == c.Name() {
			p.resources[i] = c
			return
		}
	}
	p.resources = append(p.resources, c)
}

// RemoveResource removes and returns the named collection.
func (p *Player) RemoveResource(name string) (Collection, error) {
	for i, r := range p.resources {
		if r.Name() == name {
			p.resources = append(p.resources[:i:i], p.resources[i+1:]...)
			return r, nil
		}
	}
	return nil, p.unknownResource(name)
}

// Resource returns the named collection.
func (p *Player) Resource(name string) (Collection, error) {
	for _, r := range p.resources {
		if r.Name() == name {
			return r, nil
		}
	}
	return nil, p.unknownResource(name)
}

// Resources returns every collection in insertion order.
func (p *Player) Resources() []Collection {
	return append([]Collection(nil), p.resources...)
}

func (p *Player) unknownResource(name string) error {
	return apperrors.Newf(apperrors.CodeUnknownResource, "player %d has no resource %q", p.id, name).
		WithMetadata("resource", name)
}

// CapabilityOf returns the first resource of p implementing T.
func CapabilityOf[T any](p *Player) (T, bool) {
	for _, r := range p.resources {
		if v, ok := r.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
