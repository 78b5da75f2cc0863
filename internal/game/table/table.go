// Package table models the shared play surface: zones made of areas, each
// area holding draw decks, an optional discard pile and the cards placed in
// it.
package table

import (
	"fmt"
	"math/rand"
	"sort"

	apperrors "github.com/J-Double-J/deckForge-sub001/internal/errors"
	"github.com/J-Double-J/deckForge-sub001/internal/game/cards"
	"go.uber.org/zap"
)

// Unowned is the owner id of neutral areas.
const Unowned = -1

// Observer receives placement changes. The Mediator installs itself here so
// table mutations reach the rest of the game.
type Observer interface {
	CardPlaced(card *cards.Card, at cards.Placement)
	CardRemoved(card *cards.Card, from cards.Placement)
}

// Area is one pile on the table.
type Area struct {
	id      int
	zone    cards.ZoneType
	owner   int
	limit   int
	decks   []*cards.Deck
	discard *cards.Deck
	placed  []*cards.Card
}

// ID returns the area index within its zone.
func (a *Area) ID() int { return a.id }

// Zone returns the zone the area belongs to.
func (a *Area) Zone() cards.ZoneType { return a.zone }

// Owner returns the owning player id, or Unowned.
func (a *Area) Owner() int { return a.owner }

// Limit returns the placement cap. Zero means uncapped.
func (a *Area) Limit() int { return a.limit }

// IsFull reports whether another card can be placed.
func (a *Area) IsFull() bool {
	return a.limit > 0 && len(a.placed) >= a.limit
}

// Decks returns the area's decks.
func (a *Area) Decks() []*cards.Deck {
	return append([]*cards.Deck(nil), a.decks...)
}

// Deck returns the deck at index i.
func (a *Area) Deck(i int) (*cards.Deck, bool) {
	if i < 0 || i >= len(a.decks) {
		return nil, false
	}
	return a.decks[i], true
}

// DiscardPile returns the area's discard pile, if it has one.
func (a *Area) DiscardPile() (*cards.Deck, bool) {
	return a.discard, a.discard != nil
}

// Placed returns the cards placed in the area in placement order.
func (a *Area) Placed() []*cards.Card {
	return append([]*cards.Card(nil), a.placed...)
}

func (a *Area) placement() cards.Placement {
	return cards.Placement{Zone: a.zone, Area: a.id}
}

func (a *Area) take(id string) (*cards.Card, bool) {
	for i, c := range a.placed {
		if c.ID == id {
			a.placed = append(a.placed[:i:i], a.placed[i+1:]...)
			return c, true
		}
	}
	return nil, false
}

// Table maps zone and area index to areas.
type Table struct {
	logger   *zap.Logger
	zones    map[cards.ZoneType][]*Area
	observer Observer
}

// NewTable creates an empty table.
func NewTable(logger *zap.Logger) *Table {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Table{
		logger: logger,
		zones:  make(map[cards.ZoneType][]*Area),
	}
}

// SetObserver installs the observer notified of placements and removals.
func (t *Table) SetObserver(o Observer) {
	t.observer = o
}

// AddArea registers a new area in zone and returns it. Area indexes are
// assigned in registration order starting at zero.
func (t *Table) AddArea(zone cards.ZoneType, owner, limit int, decks ...*cards.Deck) (*Area, error) {
	if limit < 0 {
		return nil, apperrors.Newf(apperrors.CodeInvalidCapacity, "area capacity must be >= 0, got %d", limit)
	}
	area := &Area{
		id:    len(t.zones[zone]),
		zone:  zone,
		owner: owner,
		limit: limit,
		decks: append([]*cards.Deck(nil), decks...),
	}
	t.zones[zone] = append(t.zones[zone], area)
	t.logger.Debug("area added",
		zap.Stringer("zone", zone),
		zap.Int("area", area.id),
		zap.Int("owner", owner),
		zap.Int("limit", limit),
		zap.Int("decks", len(decks)),
	)
	return area, nil
}

// AddDeck appends a deck to an existing area and returns its index.
func (t *Table) AddDeck(zone cards.ZoneType, area int, deck *cards.Deck) (int, error) {
	a, err := t.Area(zone, area)
	if err != nil {
		return 0, err
	}
	a.decks = append(a.decks, deck)
	return len(a.decks) - 1, nil
}

// AddDiscardPile gives an area a discard pile. An existing pile is kept.
func (t *Table) AddDiscardPile(zone cards.ZoneType, area int) (*cards.Deck, error) {
	a, err := t.Area(zone, area)
	if err != nil {
		return nil, err
	}
	if a.discard == nil {
		a.discard = cards.NewDeck(fmt.Sprintf("%s discard", a.placement()))
	}
	return a.discard, nil
}

// Area resolves an area. Unregistered areas are a lookup error.
func (t *Table) Area(zone cards.ZoneType, area int) (*Area, error) {
	areas := t.zones[zone]
	if area < 0 || area >= len(areas) {
		return nil, apperrors.Newf(apperrors.CodeUnknownArea, "no area %d in zone %s", area, zone).
			WithMetadata("zone", zone.String())
	}
	return areas[area], nil
}

// AreaOwnedBy returns the first area in zone owned by the player.
func (t *Table) AreaOwnedBy(zone cards.ZoneType, owner int) (*Area, error) {
	for _, a := range t.zones[zone] {
		if a.owner == owner {
			return a, nil
		}
	}
	return nil, apperrors.Newf(apperrors.CodeUnknownArea, "no area in zone %s owned by player %d", zone, owner)
}

// Areas returns the areas of a zone in index order.
func (t *Table) Areas(zone cards.ZoneType) []*Area {
	return append([]*Area(nil), t.zones[zone]...)
}

// Deck resolves a deck inside an area.
func (t *Table) Deck(zone cards.ZoneType, area, deck int) (*cards.Deck, error) {
	a, err := t.Area(zone, area)
	if err != nil {
		return nil, err
	}
	d, ok := a.Deck(deck)
	if !ok {
		return nil, apperrors.Newf(apperrors.CodeUnknownDeck, "no deck %d in area %s", deck, a.placement())
	}
	return d, nil
}

// DrawOne draws the top card of an area deck. An exhausted deck yields a
// nil card and no error.
func (t *Table) DrawOne(zone cards.ZoneType, area, deck int) (*cards.Card, error) {
	d, err := t.Deck(zone, area, deck)
	if err != nil {
		return nil, err
	}
	card, _ := d.DrawOne()
	return card, nil
}

// DrawFromArea draws n cards from the area's first deck. The result always
// has n slots; slots past the end of the deck are nil.
func (t *Table) DrawFromArea(zone cards.ZoneType, area, n int) ([]*cards.Card, error) {
	return t.DrawFromDeck(zone, area, 0, n)
}

// DrawFromDeck is DrawFromArea for a specific deck of the area.
func (t *Table) DrawFromDeck(zone cards.ZoneType, area, deck, n int) ([]*cards.Card, error) {
	d, err := t.Deck(zone, area, deck)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	out := make([]*cards.Card, n)
	copy(out, d.DrawMany(n))
	return out, nil
}

// ShuffleDeck shuffles one deck of an area.
func (t *Table) ShuffleDeck(zone cards.ZoneType, area, deck int, rng *rand.Rand) error {
	d, err := t.Deck(zone, area, deck)
	if err != nil {
		return err
	}
	d.Shuffle(rng)
	return nil
}

// Place puts a card in an area. It fails with AREA_FULL when the area has
// reached its limit and with CARD_ALREADY_PLACED when the card already sits
// on the table. Place hooks run after the card is recorded; a failing hook
// is returned but the card stays placed.
func (t *Table) Place(card *cards.Card, zone cards.ZoneType, area int) error {
	a, err := t.Area(zone, area)
	if err != nil {
		return err
	}
	if at, ok := card.Placement(); ok {
		return apperrors.Newf(apperrors.CodeCardAlreadyPlaced, "card %s is already placed at %s", card.ID, at)
	}
	if a.IsFull() {
		t.logger.Warn("area full",
			zap.Stringer("placement", a.placement()),
			zap.Int("limit", a.limit),
			zap.String("card_id", card.ID),
		)
		return apperrors.Newf(apperrors.CodeAreaFull, "area %s is full (%d cards)", a.placement(), a.limit)
	}

	at := a.placement()
	a.placed = append(a.placed, card)
	card.Place(at)
	t.logger.Debug("card placed", zap.String("card_id", card.ID), zap.Stringer("placement", at))

	if err := card.NotifyPlaced(); err != nil {
		return err
	}
	if t.observer != nil {
		t.observer.CardPlaced(card, at)
	}
	return nil
}

// Placed returns every placed card in zone and area order.
func (t *Table) Placed() []*cards.Card {
	var out []*cards.Card
	for _, zone := range t.zoneOrder() {
		for _, a := range t.zones[zone] {
			out = append(out, a.placed...)
		}
	}
	return out
}

// RemoveCard takes a placed card off the table.
func (t *Table) RemoveCard(cardID string) (*cards.Card, error) {
	for _, zone := range t.zoneOrder() {
		for _, a := range t.zones[zone] {
			if card, ok := a.take(cardID); ok {
				return card, t.removed(card, a.placement())
			}
		}
	}
	return nil, apperrors.Newf(apperrors.CodeCardNotFound, "card %s is not on the table", cardID)
}

// Discard moves a placed card to the top of its area's discard pile.
func (t *Table) Discard(cardID string) error {
	card, ok := t.find(cardID)
	if !ok {
		return apperrors.Newf(apperrors.CodeCardNotFound, "card %s is not on the table", cardID)
	}
	at, _ := card.Placement()
	a, err := t.Area(at.Zone, at.Area)
	if err != nil {
		return err
	}
	if a.discard == nil {
		return apperrors.Newf(apperrors.CodeUnknownDeck, "area %s has no discard pile", at)
	}
	a.take(cardID)
	a.discard.Insert(card, cards.Top)
	return t.removed(card, at)
}

// MoveAllToDeck clears every area of zone and appends the cards to target,
// face down. With shuffleAfter the target is shuffled once after all cards
// are in. Removal hooks run after the move; the first failing hook is
// returned.
func (t *Table) MoveAllToDeck(zone cards.ZoneType, target *cards.Deck, shuffleAfter bool, rng *rand.Rand) (int, error) {
	type moved struct {
		card *cards.Card
		from cards.Placement
	}
	var all []moved
	for _, a := range t.zones[zone] {
		for _, card := range a.placed {
			all = append(all, moved{card: card, from: a.placement()})
		}
		a.placed = nil
	}

	for _, m := range all {
		m.card.SetFacing(cards.FaceDown)
		m.card.ClearPlacement()
		target.Insert(m.card, cards.Bottom)
	}
	if shuffleAfter {
		target.Shuffle(rng)
	}
	t.logger.Debug("moved zone to deck",
		zap.Stringer("zone", zone),
		zap.String("deck", target.Name()),
		zap.Int("cards", len(all)),
		zap.Bool("shuffled", shuffleAfter),
	)

	for _, m := range all {
		if err := t.notifyRemoved(m.card, m.from); err != nil {
			return len(all), err
		}
	}
	return len(all), nil
}

// RemoveAll clears every placed card from the table and returns them. Decks
// and discard piles are untouched.
func (t *Table) RemoveAll() ([]*cards.Card, error) {
	type removed struct {
		card *cards.Card
		from cards.Placement
	}
	var all []removed
	for _, zone := range t.zoneOrder() {
		for _, a := range t.zones[zone] {
			for _, card := range a.placed {
				all = append(all, removed{card: card, from: a.placement()})
			}
			a.placed = nil
		}
	}

	out := make([]*cards.Card, len(all))
	for i, r := range all {
		r.card.ClearPlacement()
		out[i] = r.card
	}
	for _, r := range all {
		if err := t.notifyRemoved(r.card, r.from); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (t *Table) removed(card *cards.Card, from cards.Placement) error {
	card.ClearPlacement()
	return t.notifyRemoved(card, from)
}

func (t *Table) notifyRemoved(card *cards.Card, from cards.Placement) error {
	if err := card.NotifyRemoved(from); err != nil {
		return err
	}
	if t.observer != nil {
		t.observer.CardRemoved(card, from)
	}
	return nil
}

func (t *Table) find(cardID string) (*cards.Card, bool) {
	for _, card := range t.Placed() {
		if card.ID == cardID {
			return card, true
		}
	}
	return nil, false
}

// zoneOrder lists zones with areas in ascending order.
func (t *Table) zoneOrder() []cards.ZoneType {
	out := make([]cards.ZoneType, 0, len(t.zones))
	for z, areas := range t.zones {
		if len(areas) > 0 {
			out = append(out, z)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
