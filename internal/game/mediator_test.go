package game_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	apperrors "github.com/J-Double-J/deckForge-sub001/internal/errors"
	"github.com/J-Double-J/deckForge-sub001/internal/game"
	"github.com/J-Double-J/deckForge-sub001/internal/game/cards"
	"github.com/J-Double-J/deckForge-sub001/internal/game/events"
	"github.com/J-Double-J/deckForge-sub001/internal/game/player"
	"github.com/J-Double-J/deckForge-sub001/internal/game/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newMediator(t *testing.T, players int, opts ...game.Option) *game.Mediator {
	t.Helper()
	m, err := game.NewMediator(players, zaptest.NewLogger(t), opts...)
	require.NoError(t, err)
	return m
}

func TestNewMediatorValidatesPlayerCount(t *testing.T) {
	tests := []struct {
		name  string
		count int
		opts  []game.Option
		ok    bool
	}{
		{name: "zero", count: 0, ok: true},
		{name: "max", count: game.DefaultMaxPlayers, ok: true},
		{name: "negative", count: -1},
		{name: "over max", count: game.DefaultMaxPlayers + 1},
		{name: "custom max", count: 4, opts: []game.Option{game.WithMaxPlayers(3)}},
		{name: "negative cascade", count: 2, opts: []game.Option{game.WithMaxCascadeDepth(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := game.NewMediator(tt.count, zaptest.NewLogger(t), tt.opts...)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.count, m.PlayerCount())
				return
			}
			require.Error(t, err)
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, apperrors.ErrConfiguration))
		})
	}
}

func TestRegisterPlayer(t *testing.T) {
	m := newMediator(t, 2)

	alice, err := m.AddPlayer("alice")
	require.NoError(t, err)
	assert.Equal(t, 0, alice.ID())

	err = m.RegisterPlayer(player.New(0, "imposter"))
	assert.True(t, apperrors.IsCode(err, apperrors.CodePlayerAlreadyRegistered))

	bob, err := m.AddPlayer("bob")
	require.NoError(t, err)
	assert.Equal(t, 1, bob.ID())

	_, err = m.AddPlayer("carol")
	assert.True(t, apperrors.IsCode(err, apperrors.CodePlayerLimitReached))

	assert.Equal(t, []int{0, 1}, m.PlayerIDs())
	assert.Len(t, m.Players(), 2)
}

func TestPlayerLookup(t *testing.T) {
	m := newMediator(t, 2)
	_, err := m.AddPlayer("alice")
	require.NoError(t, err)

	p, err := m.Player(0)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Name())

	_, err = m.Player(9)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrLookup))
	assert.Equal(t, apperrors.CodeUnknownPlayer, apperrors.GetCode(err))
	assert.Equal(t, "9", apperrors.GetMetadata(err)["player_id"])
}

func TestTableRegistration(t *testing.T) {
	m := newMediator(t, 1)

	_, err := m.Table()
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNoTable))

	_, err = m.DrawFromTableDeck(cards.ZoneNeutral, 0, 0)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNoTable))
	assert.True(t, errors.Is(err, apperrors.ErrLookup))

	require.NoError(t, m.RegisterTable(table.NewTable(nil)))
	err = m.RegisterTable(table.NewTable(nil))
	assert.True(t, apperrors.IsCode(err, apperrors.CodeTableAlreadyRegistered))
}

func TestDrawFromTableDeck(t *testing.T) {
	m := newMediator(t, 1, game.WithJournal())
	tbl := table.NewTable(nil)
	deck := cards.NewDeck("draw", cards.NewCard("only", 1, ""))
	_, err := tbl.AddArea(cards.ZoneNeutral, table.Unowned, 0, deck)
	require.NoError(t, err)
	require.NoError(t, m.RegisterTable(tbl))

	card, err := m.DrawFromTableDeck(cards.ZoneNeutral, 0, 0)
	require.NoError(t, err)
	require.NotNil(t, card)
	assert.Equal(t, "only", card.Name)

	card, err = m.DrawFromTableDeck(cards.ZoneNeutral, 0, 0)
	require.NoError(t, err)
	assert.Nil(t, card)

	_, err = m.DrawFromTableDeck(cards.ZoneNeutral, 3, 0)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnknownArea))

	journal, ok := m.Journal()
	require.True(t, ok)
	assert.Len(t, journal.Filter(events.EventCardDrawn), 1)
}

func TestShuffleDeckUsesSessionRand(t *testing.T) {
	build := func(seed int64) []*cards.Card {
		m := newMediator(t, 0, game.WithRand(rand.New(rand.NewSource(seed))))
		tbl := table.NewTable(nil)
		deck := cards.NewDeck("draw")
		for i := 0; i < 10; i++ {
			deck.Insert(cards.NewCard("c", i, ""), cards.Bottom)
		}
		_, err := tbl.AddArea(cards.ZoneNeutral, table.Unowned, 0, deck)
		require.NoError(t, err)
		require.NoError(t, m.RegisterTable(tbl))
		require.NoError(t, m.ShuffleDeck(cards.ZoneNeutral, 0, 0))
		return deck.Cards()
	}

	values := func(cs []*cards.Card) []int {
		out := make([]int, len(cs))
		for i, c := range cs {
			out[i] = c.Value
		}
		return out
	}
	assert.Equal(t, values(build(7)), values(build(7)))
}

func TestChangeModifierByNotifiesBeforeReturn(t *testing.T) {
	m := newMediator(t, 0)

	var seen []int
	m.SubscribeModifier("X", func(name string, value int) error {
		seen = append(seen, value)
		return nil
	})

	require.NoError(t, m.ChangeModifierBy("X", 2))
	assert.Equal(t, []int{2}, seen)
	require.NoError(t, m.ChangeModifierBy("X", -5))
	assert.Equal(t, []int{2, -3}, seen)
	assert.Equal(t, -3, m.Modifier("X"))
	assert.Equal(t, 0, m.Modifier("never-set"))
}

func TestChangeModifierByReentrantSubscriber(t *testing.T) {
	m := newMediator(t, 0)

	// The subscriber bumps Y on every X change and X once more the first
	// time; each outer call must still produce exactly one notification
	// carrying prior value plus delta.
	var xSeen []int
	bounced := false
	m.SubscribeModifier("X", func(name string, value int) error {
		xSeen = append(xSeen, value)
		if err := m.ChangeModifierBy("Y", 1); err != nil {
			return err
		}
		if !bounced {
			bounced = true
			return m.ChangeModifierBy("X", 10)
		}
		return nil
	})

	require.NoError(t, m.ChangeModifierBy("X", 1))
	assert.Equal(t, []int{1, 11}, xSeen)
	assert.Equal(t, 11, m.Modifier("X"))
	assert.Equal(t, 2, m.Modifier("Y"))

	require.NoError(t, m.ChangeModifierBy("X", 1))
	assert.Equal(t, []int{1, 11, 12}, xSeen)
}

func TestModifierEventsFollowCauseOrder(t *testing.T) {
	m := newMediator(t, 0, game.WithJournal())
	m.SubscribeModifier("X", func(name string, value int) error {
		if value == 1 {
			return m.ChangeModifierBy("X", 10)
		}
		return m.ChangeModifierBy("Y", value)
	})

	require.NoError(t, m.ChangeModifierBy("X", 1))

	j, ok := m.Journal()
	require.True(t, ok)
	var got []string
	for _, evt := range j.Filter(events.EventModifierChanged) {
		got = append(got, fmt.Sprintf("%s=%d", evt.Name, evt.Amount))
	}
	assert.Equal(t, []string{"X=1", "X=11", "Y=11"}, got)
	assert.Equal(t, 11, m.Modifier("X"))
	assert.Equal(t, 11, m.Modifier("Y"))
}

func TestChangeModifierByCascadeGuard(t *testing.T) {
	m := newMediator(t, 0, game.WithMaxCascadeDepth(8))

	m.SubscribeModifier("loop", func(name string, value int) error {
		return m.ChangeModifierBy("loop", 1)
	})

	err := m.ChangeModifierBy("loop", 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeCascadeTooDeep))
	assert.Equal(t, 8, m.Modifier("loop"))
	assert.Equal(t, 0, m.Modifiers().Depth())
}

type playTrait struct {
	calls *[]string
}

func (p playTrait) Name() string { return "play" }

func (p playTrait) OnPlay(ctx cards.TraitContext) error {
	*p.calls = append(*p.calls, "trait")
	return nil
}

func TestPlayerPlayRoutesThroughMediator(t *testing.T) {
	m := newMediator(t, 1)
	p, err := m.AddPlayer("alice")
	require.NoError(t, err)

	var calls []string
	m.Bus().SubscribeTyped(events.EventCardPlayed, func(e events.Event) {
		assert.Equal(t, p.ID(), e.PlayerID)
		calls = append(calls, "bus")
	})

	card := cards.NewCard("a", 1, "")
	card.AttachTrait(playTrait{calls: &calls})
	p.AddCard(card)

	_, err = p.Play(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"trait", "bus"}, calls)
}

func TestTablePlacementPublishesEvents(t *testing.T) {
	m := newMediator(t, 1, game.WithJournal())
	tbl := table.NewTable(nil)
	_, err := tbl.AddArea(cards.ZonePlayer, 0, 0)
	require.NoError(t, err)
	require.NoError(t, m.RegisterTable(tbl))

	card := cards.NewCard("a", 1, "")
	card.SetOwner(0)
	require.NoError(t, tbl.Place(card, cards.ZonePlayer, 0))
	_, err = tbl.RemoveAll()
	require.NoError(t, err)

	journal, _ := m.Journal()
	placed := journal.Filter(events.EventCardPlaced)
	removed := journal.Filter(events.EventCardRemoved)
	require.Len(t, placed, 1)
	require.Len(t, removed, 1)
	assert.Equal(t, "PLAYER/0", placed[0].Name)
	assert.Equal(t, 0, removed[0].PlayerID)

	m.Close()
	assert.Equal(t, 0, m.Bus().Len())
}
