package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/J-Double-J/deckForge-sub001/internal/config"
	"github.com/J-Double-J/deckForge-sub001/internal/game"
	"github.com/J-Double-J/deckForge-sub001/internal/game/actions"
	"github.com/J-Double-J/deckForge-sub001/internal/game/cards"
	"github.com/J-Double-J/deckForge-sub001/internal/game/player"
	"github.com/J-Double-J/deckForge-sub001/internal/game/rules"
	"github.com/J-Double-J/deckForge-sub001/internal/game/table"
	"github.com/J-Double-J/deckForge-sub001/internal/game/traits"
	"github.com/J-Double-J/deckForge-sub001/internal/game/watchers"
	"go.uber.org/zap"
)

const (
	startingChips = 100
	ante          = 5

	heartsModifier = "hearts"
	spadesModifier = "spades"
)

// spadeScript counts spades in play and gives each spade a bonus equal to
// the number of hearts in play.
const spadeScript = `
name = "spade"
watch = { "hearts" }
counted = false

function on_place(card)
  if card.zone == "PLAYER" and not counted then
    counted = true
    change_modifier_by("spades", 1)
  end
end

function on_card_removed(card)
  if counted then
    counted = false
    change_modifier_by("spades", -1)
  end
end

function on_modifier(name, value)
  set_bonus(value)
end
`

var drawPile = actions.DeckRef{Zone: cards.ZoneNeutral, Area: 0, Deck: 0}

// highCard is a demo game: every round each player antes, plays one card
// face up, and the highest effective value takes the pot.
type highCard struct {
	cfg    *config.Config
	logger *zap.Logger
	m      *game.Mediator
	table  *table.Table
	deck   *cards.Deck
	turns  *rules.TurnHandler
	in     game.InputSource
	out    game.OutputSink

	played  *watchers.CardsPlayedWatcher
	history *watchers.PhaseHistoryWatcher
}

func newHighCard(cfg *config.Config, logger *zap.Logger, in game.InputSource, out game.OutputSink) (*highCard, error) {
	opts := append(cfg.Engine.MediatorOptions(), game.WithJournal())
	m, err := game.NewMediator(cfg.Game.Players, logger, opts...)
	if err != nil {
		return nil, err
	}

	deck, err := buildDeck(cfg.Game)
	if err != nil {
		return nil, err
	}

	tbl := table.NewTable(logger.Named("table"))
	if _, err := tbl.AddArea(cards.ZoneNeutral, table.Unowned, 0, deck); err != nil {
		return nil, err
	}
	if _, err := tbl.AddDiscardPile(cards.ZoneNeutral, 0); err != nil {
		return nil, err
	}
	if err := m.RegisterTable(tbl); err != nil {
		return nil, err
	}

	for i := 0; i < cfg.Game.Players; i++ {
		p, err := m.AddPlayer(fmt.Sprintf("player %d", i+1))
		if err != nil {
			return nil, err
		}
		p.AddResource(player.NewChips(startingChips))
		if _, err := tbl.AddArea(cards.ZonePlayer, p.ID(), 1); err != nil {
			return nil, err
		}
	}

	hc := &highCard{
		cfg:     cfg,
		logger:  logger,
		m:       m,
		table:   tbl,
		deck:    deck,
		in:      in,
		out:     out,
		played:  watchers.NewCardsPlayedWatcher(),
		history: watchers.NewPhaseHistoryWatcher(),
	}
	m.Watchers().AddWatcher(hc.played)
	m.Watchers().AddWatcher(hc.history)

	if cfg.Game.Players > 0 {
		if hc.turns, err = rules.NewTurnHandler(m.PlayerIDs()); err != nil {
			return nil, err
		}
	}
	if err := hc.attachTraits(); err != nil {
		return nil, err
	}
	return hc, nil
}

func buildDeck(cfg config.GameConfig) (*cards.Deck, error) {
	var entries []cards.CatalogEntry
	if cfg.CardsFile != "" {
		f, err := os.Open(cfg.CardsFile)
		if err != nil {
			return nil, fmt.Errorf("open cards file: %w", err)
		}
		defer f.Close()
		if entries, err = cards.LoadCatalog(f); err != nil {
			return nil, err
		}
	}

	deck := cards.NewDeck("draw")
	for i := 0; i < cfg.Decks; i++ {
		var src *cards.Deck
		if entries != nil {
			src = cards.BuildDeck("source", entries)
		} else {
			src = cards.NewStandardDeck("source")
		}
		for _, c := range src.DrawMany(src.Size()) {
			deck.Insert(c, cards.Bottom)
		}
	}
	return deck, nil
}

// attachTraits gives hearts a zone counter, spades the scripted trait and
// aces every configured trait script.
func (hc *highCard) attachTraits() error {
	for _, c := range hc.deck.Cards() {
		switch c.Suit {
		case "Hearts":
			c.AttachTrait(traits.NewZoneCounter(hc.m, heartsModifier, cards.ZonePlayer))
		case "Spades":
			t, err := traits.NewLuaTrait("spade", spadeScript, hc.m, hc.logger.Named("lua"))
			if err != nil {
				return err
			}
			c.AttachTrait(t)
		}
		if c.Value != 14 {
			continue
		}
		for _, path := range hc.cfg.Game.TraitScripts {
			t, err := traits.LoadLuaTrait(path, hc.m, hc.logger.Named("lua"))
			if err != nil {
				return err
			}
			c.AttachTrait(t)
		}
	}
	return nil
}

// play runs up to count rounds and stops early once a player cannot pay
// the ante.
func (hc *highCard) play(count int) (int, error) {
	if hc.turns == nil {
		return 0, nil
	}
	return rules.PlayRounds(count, hc.buildRound, hc.someoneBroke)
}

func (hc *highCard) buildRound(n int) (*rules.Round, error) {
	if n > 1 {
		hc.turns.ShiftClockwise()
	}
	dealCount := 1
	if n == 1 {
		dealCount = hc.cfg.Game.HandSize
	}

	deal := rules.NewGamePhase("deal", hc.m,
		actions.NewShuffle(hc.m, drawPile.Zone, drawPile.Area, drawPile.Deck),
		actions.NewDeal(hc.m, dealCount, drawPile.Zone, drawPile.Area),
	)

	play := rules.NewTurnPhase("play", hc.m, hc.strategy()).
		OnBetweenTurns(func(ph *rules.Phase, playerID int) error {
			if hc.deck.IsEmpty() && hc.handsEmpty() {
				ph.EndRoundEarly("out of cards")
			}
			return nil
		})

	score := rules.NewGamePhase("score", hc.m, actions.NewGameFunc("award pot", hc.awardPot))
	cleanup := rules.NewGamePhase("cleanup", hc.m,
		actions.NewMoveTableToDeck(hc.m, cards.ZonePlayer, drawPile, true),
	)

	hc.out.Display(fmt.Sprintf("== round %d ==", n))
	return rules.NewRound(n, hc.m, hc.turns, deal, play, score, cleanup), nil
}

func (hc *highCard) strategy() rules.TurnStrategy {
	playCard := actions.NewPlayToTable(hc.m, 0, cards.ZonePlayer, actions.OwnArea)
	bet := actions.NewBet(ante)
	if hc.in != nil {
		return rules.NewInteractive(hc.in, hc.out, bet, playCard, actions.NewEndTurn())
	}
	return rules.NewSequential(bet, playCard, actions.NewEndTurn())
}

func (hc *highCard) handsEmpty() bool {
	for _, p := range hc.m.Players() {
		if p.HandSize() > 0 {
			return false
		}
	}
	return true
}

func (hc *highCard) awardPot() (actions.Result, error) {
	pot := 0
	for _, p := range hc.m.Players() {
		if chips, ok := player.CapabilityOf[*player.Chips](p); ok {
			pot += chips.Settle()
		}
	}

	var winner *player.Player
	best := -1
	for _, id := range hc.turns.Order() {
		p, err := hc.m.Player(id)
		if err != nil {
			return actions.Result{}, err
		}
		area, err := hc.table.AreaOwnedBy(cards.ZonePlayer, id)
		if err != nil {
			return actions.Result{}, err
		}
		for _, c := range area.Placed() {
			hc.out.Display(fmt.Sprintf("%s shows %s (%d)", p.Name(), c, c.EffectiveValue()))
			if v := c.EffectiveValue(); v > best {
				best, winner = v, p
			}
		}
	}
	if winner == nil {
		hc.out.Display(fmt.Sprintf("no cards shown, %d chips lost", pot))
		return actions.Result{}, nil
	}

	chips, ok := player.CapabilityOf[*player.Chips](winner)
	if ok {
		chips.Earn(pot)
	}
	hc.out.Display(fmt.Sprintf("%s wins %d chips", winner.Name(), pot))
	hc.logger.Info("pot awarded",
		zap.Int("player_id", winner.ID()),
		zap.Int("pot", pot),
		zap.Int("hearts", hc.m.Modifier(heartsModifier)),
		zap.Int("spades", hc.m.Modifier(spadesModifier)),
	)
	return actions.Result{Choice: winner.Name()}, nil
}

func (hc *highCard) someoneBroke() bool {
	for _, p := range hc.m.Players() {
		if chips, ok := player.CapabilityOf[*player.Chips](p); ok && chips.Balance() < ante {
			return true
		}
	}
	return false
}

func (hc *highCard) standings() []*player.Player {
	ps := hc.m.Players()
	balance := func(p *player.Player) int {
		if chips, ok := player.CapabilityOf[*player.Chips](p); ok {
			return chips.Balance()
		}
		return 0
	}
	sort.SliceStable(ps, func(i, j int) bool { return balance(ps[i]) > balance(ps[j]) })
	return ps
}

func (hc *highCard) report(played int) {
	hc.out.Display(fmt.Sprintf("== %d rounds played ==", played))
	for _, p := range hc.standings() {
		chips, _ := player.CapabilityOf[*player.Chips](p)
		hc.out.Display(fmt.Sprintf("%s: %d chips, %d cards played last round", p.Name(), chips.Balance(), hc.played.GetCount(p.ID())))
	}
	if j, ok := hc.m.Journal(); ok {
		hc.logger.Debug("journal", zap.Int("events", j.Size()), zap.Int("phases", len(hc.history.Names())))
	}
}
