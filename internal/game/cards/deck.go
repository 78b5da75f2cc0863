package cards

import (
	"fmt"
	"math/rand"
)

type positionKind int

const (
	positionTop positionKind = iota
	positionBottom
	positionMiddle
	positionOffset
)

// Position selects where Insert puts cards. Offsets count from the top and
// are clamped to the deck bounds.
type Position struct {
	kind   positionKind
	offset int
}

var (
	Top    = Position{kind: positionTop}
	Bottom = Position{kind: positionBottom}
	// Middle is floor(size/2) cards from the top, measured before insertion.
	Middle = Position{kind: positionMiddle}
)

// At returns an explicit zero-based offset from the top.
func At(offset int) Position {
	return Position{kind: positionOffset, offset: offset}
}

func (p Position) String() string {
	switch p.kind {
	case positionTop:
		return "TOP"
	case positionBottom:
		return "BOTTOM"
	case positionMiddle:
		return "MIDDLE"
	default:
		return fmt.Sprintf("OFFSET_%d", p.offset)
	}
}

// index resolves the position against a deck of the given size.
func (p Position) index(size int) int {
	switch p.kind {
	case positionTop:
		return 0
	case positionBottom:
		return size
	case positionMiddle:
		return size / 2
	default:
		if p.offset < 0 {
			return 0
		}
		if p.offset > size {
			return size
		}
		return p.offset
	}
}

// Deck is an ordered pile of cards. Index 0 is the top.
type Deck struct {
	name  string
	cards []*Card
}

// NewDeck creates a deck holding cards in the given order, top first.
func NewDeck(name string, cards ...*Card) *Deck {
	d := &Deck{name: name, cards: make([]*Card, 0, len(cards))}
	d.cards = append(d.cards, cards...)
	return d
}

// Name returns the deck name.
func (d *Deck) Name() string {
	return d.name
}

// Size returns the number of cards in the deck.
func (d *Deck) Size() int {
	return len(d.cards)
}

// IsEmpty reports whether the deck has no cards.
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the deck contents, top first.
func (d *Deck) Cards() []*Card {
	result := make([]*Card, len(d.cards))
	copy(result, d.cards)
	return result
}

// Peek returns the top card without removing it.
func (d *Deck) Peek() (*Card, bool) {
	if len(d.cards) == 0 {
		return nil, false
	}
	return d.cards[0], true
}

// DrawOne removes and returns the top card. An empty deck yields (nil, false).
func (d *Deck) DrawOne() (*Card, bool) {
	if len(d.cards) == 0 {
		return nil, false
	}
	card := d.cards[0]
	d.cards[0] = nil
	d.cards = d.cards[1:]
	return card, true
}

// DrawMany draws up to n cards. Fewer than n remaining yields exactly what is
// left; the result is never padded.
func (d *Deck) DrawMany(n int) []*Card {
	if n <= 0 {
		return []*Card{}
	}
	if n > len(d.cards) {
		n = len(d.cards)
	}
	drawn := make([]*Card, n)
	copy(drawn, d.cards[:n])
	d.cards = append(d.cards[:0:0], d.cards[n:]...)
	return drawn
}

// Insert puts one card at pos.
func (d *Deck) Insert(card *Card, pos Position) {
	if card == nil {
		return
	}
	d.insertAt(card, pos.index(len(d.cards)))
}

// InsertMany puts cards at pos. The insertion point is resolved once, so the
// last card supplied ends up nearest the top: inserting [A,B,C] at Top and
// drawing three times yields C, B, A.
func (d *Deck) InsertMany(cards []*Card, pos Position) {
	idx := pos.index(len(d.cards))
	for _, card := range cards {
		if card == nil {
			continue
		}
		d.insertAt(card, idx)
	}
}

func (d *Deck) insertAt(card *Card, idx int) {
	d.cards = append(d.cards, nil)
	copy(d.cards[idx+1:], d.cards[idx:])
	d.cards[idx] = card
}

// Remove takes the card with the given id out of the deck.
func (d *Deck) Remove(id string) (*Card, bool) {
	for i, c := range d.cards {
		if c.ID == id {
			d.cards = append(d.cards[:i], d.cards[i+1:]...)
			return c, true
		}
	}
	return nil, false
}

// Clear empties the deck and returns its former contents, top first.
func (d *Deck) Clear() []*Card {
	removed := d.cards
	d.cards = make([]*Card, 0)
	return removed
}

// Shuffle permutes the deck uniformly. A nil rng uses the global source.
func (d *Deck) Shuffle(rng *rand.Rand) {
	swap := func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	if rng == nil {
		rand.Shuffle(len(d.cards), swap)
		return
	}
	rng.Shuffle(len(d.cards), swap)
}

var (
	standardSuits = []string{"Clubs", "Diamonds", "Hearts", "Spades"}
	rankNames     = map[int]string{11: "Jack", 12: "Queen", 13: "King", 14: "Ace"}
)

// NewStandardDeck builds a 52-card French deck, ordered by suit then value.
// Values run 2..14 with the ace high.
func NewStandardDeck(name string) *Deck {
	cards := make([]*Card, 0, 52)
	for _, suit := range standardSuits {
		for value := 2; value <= 14; value++ {
			cards = append(cards, NewCard(RankName(value), value, suit))
		}
	}
	return NewDeck(name, cards...)
}

// RankName returns the conventional name for a standard card value.
func RankName(value int) string {
	if name, ok := rankNames[value]; ok {
		return name
	}
	return fmt.Sprintf("%d", value)
}
