package actions

import (
	"fmt"

	"github.com/J-Double-J/deckForge-sub001/internal/game"
	"github.com/J-Double-J/deckForge-sub001/internal/game/cards"
	"go.uber.org/zap"
)

// Deal gives every registered player count cards from the first deck of a
// table area, one card per player per pass in registration order.
type Deal struct {
	m     *game.Mediator
	count int
	zone  cards.ZoneType
	area  int
}

// NewDeal creates a deal of count cards per player.
func NewDeal(m *game.Mediator, count int, zone cards.ZoneType, area int) *Deal {
	return &Deal{m: m, count: count, zone: zone, area: area}
}

// Name implements Action.
func (d *Deal) Name() string { return fmt.Sprintf("deal %d", d.count) }

// Execute implements GameAction. Once the deck runs out the remaining slots
// are skipped, so players may end up with fewer cards.
func (d *Deal) Execute() (Result, error) {
	players := d.m.Players()
	var dealt []*cards.Card
	for pass := 0; pass < d.count; pass++ {
		drawn, err := d.m.DrawManyFromTable(d.zone, d.area, len(players))
		if err != nil {
			return Result{Cards: dealt}, err
		}
		for i, card := range drawn {
			if card == nil {
				continue
			}
			players[i].AddCard(card)
			dealt = append(dealt, card)
		}
	}
	d.m.Logger().Debug("dealt cards",
		zap.Int("per_player", d.count),
		zap.Int("players", len(players)),
		zap.Int("dealt", len(dealt)),
	)
	return Result{Cards: dealt}, nil
}

// Shuffle shuffles a table deck.
type Shuffle struct {
	m    *game.Mediator
	zone cards.ZoneType
	area int
	deck int
}

// NewShuffle creates a shuffle of one table deck.
func NewShuffle(m *game.Mediator, zone cards.ZoneType, area, deck int) *Shuffle {
	return &Shuffle{m: m, zone: zone, area: area, deck: deck}
}

// Name implements Action.
func (s *Shuffle) Name() string { return "shuffle" }

// Execute implements GameAction.
func (s *Shuffle) Execute() (Result, error) {
	return Result{}, s.m.ShuffleDeck(s.zone, s.area, s.deck)
}

// DeckRef names a deck on the table.
type DeckRef struct {
	Zone cards.ZoneType
	Area int
	Deck int
}

// MoveTableToDeck gathers every card placed in a zone back into a deck.
type MoveTableToDeck struct {
	m       *game.Mediator
	from    cards.ZoneType
	target  DeckRef
	shuffle bool
}

// NewMoveTableToDeck creates the move. With shuffle the target is shuffled
// once after the cards are in.
func NewMoveTableToDeck(m *game.Mediator, from cards.ZoneType, target DeckRef, shuffle bool) *MoveTableToDeck {
	return &MoveTableToDeck{m: m, from: from, target: target, shuffle: shuffle}
}

// Name implements Action.
func (a *MoveTableToDeck) Name() string { return "move table to deck" }

// Execute implements GameAction.
func (a *MoveTableToDeck) Execute() (Result, error) {
	t, err := a.m.Table()
	if err != nil {
		return Result{}, err
	}
	deck, err := t.Deck(a.target.Zone, a.target.Area, a.target.Deck)
	if err != nil {
		return Result{}, err
	}
	_, err = t.MoveAllToDeck(a.from, deck, a.shuffle, a.m.Rand())
	return Result{}, err
}

// Cleanup clears every placed card off the table. With a target deck the
// cards go to its bottom face down, otherwise they are only returned.
type Cleanup struct {
	m      *game.Mediator
	target *DeckRef
}

// NewCleanup creates a cleanup that only returns the cards.
func NewCleanup(m *game.Mediator) *Cleanup {
	return &Cleanup{m: m}
}

// NewCleanupInto creates a cleanup that puts the cards into target.
func NewCleanupInto(m *game.Mediator, target DeckRef) *Cleanup {
	return &Cleanup{m: m, target: &target}
}

// Name implements Action.
func (c *Cleanup) Name() string { return "cleanup" }

// Execute implements GameAction.
func (c *Cleanup) Execute() (Result, error) {
	t, err := c.m.Table()
	if err != nil {
		return Result{}, err
	}
	var deck *cards.Deck
	if c.target != nil {
		if deck, err = t.Deck(c.target.Zone, c.target.Area, c.target.Deck); err != nil {
			return Result{}, err
		}
	}
	removed, err := t.RemoveAll()
	if deck != nil {
		for _, card := range removed {
			card.SetFacing(cards.FaceDown)
			deck.Insert(card, cards.Bottom)
		}
	}
	return Result{Cards: removed}, err
}
