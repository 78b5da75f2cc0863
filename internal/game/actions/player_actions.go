package actions

import (
	"fmt"
	"strconv"

	apperrors "github.com/J-Double-J/deckForge-sub001/internal/errors"
	"github.com/J-Double-J/deckForge-sub001/internal/game"
	"github.com/J-Double-J/deckForge-sub001/internal/game/cards"
	"github.com/J-Double-J/deckForge-sub001/internal/game/player"
	"github.com/J-Double-J/deckForge-sub001/internal/game/traits"
)

// EndTurnChoice is the Choice reported by EndTurn.
const EndTurnChoice = "end turn"

// Draw moves cards from a table deck into the player's hand. It stops early
// when the deck runs out.
type Draw struct {
	m     *game.Mediator
	count int
	from  DeckRef
}

// NewDraw creates a draw of count cards from a table deck.
func NewDraw(m *game.Mediator, count int, from DeckRef) *Draw {
	return &Draw{m: m, count: count, from: from}
}

// Name implements Action.
func (d *Draw) Name() string { return fmt.Sprintf("draw %d", d.count) }

// Execute implements PlayerAction.
func (d *Draw) Execute(p *player.Player) (Result, error) {
	var drawn []*cards.Card
	for i := 0; i < d.count; i++ {
		card, err := d.m.DrawFromTableDeck(d.from.Zone, d.from.Area, d.from.Deck)
		if err != nil {
			return Result{Cards: drawn}, err
		}
		if card == nil {
			break
		}
		p.AddCard(card)
		drawn = append(drawn, card)
	}
	return Result{Cards: drawn}, nil
}

// areaFor picks the placement area: a fixed index, or the player's own area
// in the zone when area is negative.
func areaFor(m *game.Mediator, p *player.Player, zone cards.ZoneType, area int) (int, error) {
	if area >= 0 {
		return area, nil
	}
	t, err := m.Table()
	if err != nil {
		return 0, err
	}
	a, err := t.AreaOwnedBy(zone, p.ID())
	if err != nil {
		return 0, err
	}
	return a.ID(), nil
}

// OwnArea makes placing actions use the acting player's area of the zone.
const OwnArea = -1

// PlayToTable plays one card from hand and places it on the table.
type PlayToTable struct {
	m     *game.Mediator
	index int
	zone  cards.ZoneType
	area  int
}

// NewPlayToTable plays the card at hand index into zone/area. Pass OwnArea
// to use the player's own area.
func NewPlayToTable(m *game.Mediator, index int, zone cards.ZoneType, area int) *PlayToTable {
	return &PlayToTable{m: m, index: index, zone: zone, area: area}
}

// Name implements Action.
func (a *PlayToTable) Name() string { return "play card" }

// Execute implements PlayerAction.
func (a *PlayToTable) Execute(p *player.Player) (Result, error) {
	area, err := areaFor(a.m, p, a.zone, a.area)
	if err != nil {
		return Result{}, err
	}
	t, err := a.m.Table()
	if err != nil {
		return Result{}, err
	}
	target, err := t.Area(a.zone, area)
	if err != nil {
		return Result{}, err
	}
	if target.IsFull() {
		return Result{}, apperrors.Newf(apperrors.CodeAreaFull, "area %d in zone %s is full", area, a.zone)
	}
	card, err := p.Play(a.index)
	if err != nil {
		return Result{}, err
	}
	if err := t.Place(card, a.zone, area); err != nil {
		returnUnplaced(p, card)
		return Result{Cards: []*cards.Card{card}}, err
	}
	return Result{Cards: []*cards.Card{card}}, nil
}

// returnUnplaced puts played cards the table did not take back in hand.
func returnUnplaced(p *player.Player, cs ...*cards.Card) {
	for _, c := range cs {
		if _, ok := c.Placement(); !ok {
			p.AddCard(c)
		}
	}
}

// PlayHand plays the whole hand onto the table.
type PlayHand struct {
	m    *game.Mediator
	zone cards.ZoneType
	area int
}

// NewPlayHand plays every card in hand into zone/area. Pass OwnArea to use
// the player's own area.
func NewPlayHand(m *game.Mediator, zone cards.ZoneType, area int) *PlayHand {
	return &PlayHand{m: m, zone: zone, area: area}
}

// Name implements Action.
func (a *PlayHand) Name() string { return "play hand" }

// Execute implements PlayerAction.
func (a *PlayHand) Execute(p *player.Player) (Result, error) {
	area, err := areaFor(a.m, p, a.zone, a.area)
	if err != nil {
		return Result{}, err
	}
	t, err := a.m.Table()
	if err != nil {
		return Result{}, err
	}
	target, err := t.Area(a.zone, area)
	if err != nil {
		return Result{}, err
	}
	if limit := target.Limit(); limit > 0 && len(target.Placed())+p.HandSize() > limit {
		return Result{}, apperrors.Newf(apperrors.CodeAreaFull,
			"area %d in zone %s has room for %d of %d cards", area, a.zone, limit-len(target.Placed()), p.HandSize())
	}

	played, playErr := p.PlayHand()
	for i, card := range played {
		if err := t.Place(card, a.zone, area); err != nil {
			returnUnplaced(p, played[i:]...)
			return Result{Cards: played[:i+1]}, err
		}
	}
	return Result{Cards: played}, playErr
}

// Bet wagers chips. The player must hold a resource with the Bettor
// capability.
type Bet struct {
	amount int
}

// NewBet creates a bet of amount chips.
func NewBet(amount int) *Bet {
	return &Bet{amount: amount}
}

// Name implements Action.
func (b *Bet) Name() string { return fmt.Sprintf("bet %d", b.amount) }

// Execute implements PlayerAction.
func (b *Bet) Execute(p *player.Player) (Result, error) {
	bettor, ok := player.CapabilityOf[player.Bettor](p)
	if !ok {
		return Result{}, missingCapability(p, "bettor")
	}
	if err := bettor.Bet(b.amount); err != nil {
		return Result{}, err
	}
	return Result{Choice: b.Name()}, nil
}

// Buy takes a priced card from a table area into the player's hand, paying
// its price from the player's wallet.
type Buy struct {
	m     *game.Mediator
	zone  cards.ZoneType
	area  int
	index int
}

// NewBuy buys the card at index among the cards placed in zone/area.
func NewBuy(m *game.Mediator, zone cards.ZoneType, area, index int) *Buy {
	return &Buy{m: m, zone: zone, area: area, index: index}
}

// Name implements Action.
func (b *Buy) Name() string { return "buy" }

// Execute implements PlayerAction.
func (b *Buy) Execute(p *player.Player) (Result, error) {
	wallet, ok := player.CapabilityOf[player.Wallet](p)
	if !ok {
		return Result{}, missingCapability(p, "wallet")
	}
	t, err := b.m.Table()
	if err != nil {
		return Result{}, err
	}
	area, err := t.Area(b.zone, b.area)
	if err != nil {
		return Result{}, err
	}
	placed := area.Placed()
	if b.index < 0 || b.index >= len(placed) {
		return Result{}, apperrors.Newf(apperrors.CodeCardNotFound, "no card at index %d in area %d", b.index, b.area)
	}
	card := placed[b.index]
	priced, ok := cards.Capability[traits.Priced](card)
	if !ok {
		return Result{}, apperrors.Newf(apperrors.CodeMissingCapability, "card %s is not for sale", card.Name).
			WithMetadata("card_id", card.ID)
	}
	if err := wallet.Spend(priced.Price()); err != nil {
		return Result{}, err
	}
	if _, err := t.RemoveCard(card.ID); err != nil {
		return Result{}, err
	}
	p.AddCard(card)
	return Result{Cards: []*cards.Card{card}, Choice: card.Name}, nil
}

// EndTurn finishes the acting player's turn.
type EndTurn struct{}

// NewEndTurn creates the action.
func NewEndTurn() EndTurn { return EndTurn{} }

// Name implements Action.
func (EndTurn) Name() string { return EndTurnChoice }

// Execute implements PlayerAction.
func (EndTurn) Execute(*player.Player) (Result, error) {
	return Result{Choice: EndTurnChoice, EndTurn: true}, nil
}

func missingCapability(p *player.Player, capability string) error {
	return apperrors.Newf(apperrors.CodeMissingCapability, "player %d lacks the %s capability", p.ID(), capability).
		WithMetadata("player_id", strconv.Itoa(p.ID())).
		WithMetadata("capability", capability)
}
