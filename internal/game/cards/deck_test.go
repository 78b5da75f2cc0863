package cards

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedDeck(n int) *Deck {
	deck := NewDeck("test")
	for i := 0; i < n; i++ {
		deck.Insert(NewCard(RankName(i+2), i+2, "Hearts"), Bottom)
	}
	return deck
}

func TestDeckDrawMany(t *testing.T) {
	for _, tc := range []struct {
		name      string
		size      int
		draw      int
		wantDrawn int
		wantLeft  int
	}{
		{"fewer than size", 10, 4, 4, 6},
		{"exactly size", 5, 5, 5, 0},
		{"more than size", 3, 7, 3, 0},
		{"zero", 3, 0, 0, 3},
		{"negative", 3, -2, 0, 3},
		{"empty deck", 0, 2, 0, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			deck := numberedDeck(tc.size)
			drawn := deck.DrawMany(tc.draw)
			assert.Len(t, drawn, tc.wantDrawn)
			assert.Equal(t, tc.wantLeft, deck.Size())
			for _, c := range drawn {
				assert.NotNil(t, c)
			}
		})
	}
}

func TestDeckDrawOneEmpty(t *testing.T) {
	deck := NewDeck("empty")
	card, ok := deck.DrawOne()
	assert.False(t, ok)
	assert.Nil(t, card)
}

func TestDeckDrawManyPreservesOrder(t *testing.T) {
	deck := numberedDeck(5)
	want := deck.Cards()

	drawn := deck.DrawMany(2)
	require.Len(t, drawn, 2)
	assert.Same(t, want[0], drawn[0])
	assert.Same(t, want[1], drawn[1])

	top, ok := deck.Peek()
	require.True(t, ok)
	assert.Same(t, want[2], top)
}

func TestDeckInsertTop(t *testing.T) {
	deck := numberedDeck(5)
	card := NewCard("Joker", 0, "")
	deck.Insert(card, Top)

	got, ok := deck.DrawOne()
	require.True(t, ok)
	assert.Same(t, card, got)
}

func TestDeckInsertBottom(t *testing.T) {
	deck := numberedDeck(5)
	card := NewCard("Joker", 0, "")
	deck.Insert(card, Bottom)

	size := deck.Size()
	var last *Card
	for i := 0; i < size; i++ {
		last, _ = deck.DrawOne()
	}
	assert.Same(t, card, last)
	assert.True(t, deck.IsEmpty())
}

func TestDeckInsertAtOffset(t *testing.T) {
	for k := 0; k <= 5; k++ {
		deck := numberedDeck(5)
		card := NewCard("Joker", 0, "")
		deck.Insert(card, At(k))

		var got *Card
		for i := 0; i < k+1; i++ {
			got, _ = deck.DrawOne()
		}
		assert.Same(t, card, got, "offset %d", k)
	}
}

func TestDeckInsertOffsetClamped(t *testing.T) {
	deck := numberedDeck(3)
	beyond := NewCard("Beyond", 0, "")
	deck.Insert(beyond, At(42))
	cards := deck.Cards()
	assert.Same(t, beyond, cards[len(cards)-1])

	negative := NewCard("Negative", 0, "")
	deck.Insert(negative, At(-3))
	top, _ := deck.Peek()
	assert.Same(t, negative, top)
}

func TestDeckInsertMiddle(t *testing.T) {
	deck := numberedDeck(5)
	card := NewCard("Joker", 0, "")
	deck.Insert(card, Middle)

	// floor(5/2) = 2 cards above it
	assert.Same(t, card, deck.Cards()[2])
}

func TestDeckInsertManyReversesOrder(t *testing.T) {
	deck := numberedDeck(4)
	a := NewCard("A", 1, "")
	b := NewCard("B", 1, "")
	c := NewCard("C", 1, "")

	deck.InsertMany([]*Card{a, b, c}, Top)

	drawn := deck.DrawMany(3)
	require.Len(t, drawn, 3)
	assert.Same(t, c, drawn[0])
	assert.Same(t, b, drawn[1])
	assert.Same(t, a, drawn[2])
	assert.Equal(t, 4, deck.Size())
}

func TestDeckInsertManyAtMiddleResolvesOnce(t *testing.T) {
	deck := numberedDeck(4)
	a := NewCard("A", 1, "")
	b := NewCard("B", 1, "")

	deck.InsertMany([]*Card{a, b}, Middle)

	cards := deck.Cards()
	assert.Same(t, b, cards[2])
	assert.Same(t, a, cards[3])
}

func TestDeckShuffleKeepsCards(t *testing.T) {
	deck := NewStandardDeck("standard")
	before := make(map[string]bool)
	for _, c := range deck.Cards() {
		before[c.ID] = true
	}

	rng := rand.New(rand.NewSource(7))
	deck.Shuffle(rng)
	deck.Shuffle(rng)

	assert.Equal(t, 52, deck.Size())
	for _, c := range deck.Cards() {
		assert.True(t, before[c.ID])
	}
}

func TestDeckShuffleIsSeedDeterministic(t *testing.T) {
	first := numberedDeck(20)
	second := NewDeck("copy", first.Cards()...)

	first.Shuffle(rand.New(rand.NewSource(99)))
	second.Shuffle(rand.New(rand.NewSource(99)))

	assert.Equal(t, first.Cards(), second.Cards())
}

func TestDeckRemove(t *testing.T) {
	deck := numberedDeck(3)
	target := deck.Cards()[1]

	got, ok := deck.Remove(target.ID)
	require.True(t, ok)
	assert.Same(t, target, got)
	assert.Equal(t, 2, deck.Size())

	_, ok = deck.Remove("missing")
	assert.False(t, ok)
}

func TestNewStandardDeck(t *testing.T) {
	deck := NewStandardDeck("standard")
	require.Equal(t, 52, deck.Size())

	perSuit := make(map[string]int)
	ids := make(map[string]bool)
	for _, c := range deck.Cards() {
		perSuit[c.Suit]++
		ids[c.ID] = true
		assert.GreaterOrEqual(t, c.Value, 2)
		assert.LessOrEqual(t, c.Value, 14)
	}
	assert.Len(t, ids, 52)
	for _, suit := range standardSuits {
		assert.Equal(t, 13, perSuit[suit], suit)
	}
}

func TestLoadCatalog(t *testing.T) {
	csvData := strings.Join([]string{
		"name,value,suit,count,facing",
		"Knight,3,Guild,2,",
		"Dragon,9,Wild,1,up",
		"Peasant,1,Guild",
	}, "\n")

	entries, err := LoadCatalog(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, CatalogEntry{Name: "Knight", Value: 3, Suit: "Guild", Count: 2}, entries[0])
	assert.True(t, entries[1].FaceUp)
	assert.Equal(t, 1, entries[2].Count)

	deck := BuildDeck("catalog", entries)
	require.Equal(t, 4, deck.Size())
	cards := deck.Cards()
	assert.Equal(t, "Knight", cards[0].Name)
	assert.Equal(t, "Dragon", cards[2].Name)
	assert.True(t, cards[2].IsFaceUp())
	assert.False(t, cards[0].IsFaceUp())
}

func TestLoadCatalogRejectsBadRows(t *testing.T) {
	_, err := LoadCatalog(strings.NewReader("name,value,suit\nKnight,x,Guild\n"))
	assert.Error(t, err)

	_, err = LoadCatalog(strings.NewReader("name,value,suit\n"))
	assert.Error(t, err)

	_, err = LoadCatalog(strings.NewReader("name,value,suit,count\nKnight,2,Guild,-1\n"))
	assert.Error(t, err)
}
