package game

import (
	"math/rand"
	"strconv"
	"time"

	apperrors "github.com/J-Double-J/deckForge-sub001/internal/errors"
	"github.com/J-Double-J/deckForge-sub001/internal/game/cards"
	"github.com/J-Double-J/deckForge-sub001/internal/game/counters"
	"github.com/J-Double-J/deckForge-sub001/internal/game/events"
	"github.com/J-Double-J/deckForge-sub001/internal/game/player"
	"github.com/J-Double-J/deckForge-sub001/internal/game/table"
	"go.uber.org/zap"
)

// DefaultMaxPlayers is the largest player count a Mediator accepts unless
// WithMaxPlayers says otherwise.
const DefaultMaxPlayers = 12

type options struct {
	maxPlayers      int
	maxCascadeDepth int
	rng             *rand.Rand
	journal         bool
}

// Option configures a Mediator.
type Option func(*options)

// WithMaxPlayers overrides DefaultMaxPlayers.
func WithMaxPlayers(n int) Option {
	return func(o *options) { o.maxPlayers = n }
}

// WithMaxCascadeDepth bounds modifier notification cascades. Zero keeps
// them unbounded.
func WithMaxCascadeDepth(n int) Option {
	return func(o *options) { o.maxCascadeDepth = n }
}

// WithRand sets the random source used for shuffles.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithSeed seeds the shuffle source. Zero seeds from the clock.
func WithSeed(seed int64) Option {
	return func(o *options) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		o.rng = rand.New(rand.NewSource(seed))
	}
}

// WithJournal records every published event in an in-memory journal.
func WithJournal() Option {
	return func(o *options) { o.journal = true }
}

// Mediator is the session object of one game. It owns the table, the player
// registry and the modifiers, and routes events between them. Every other
// component holds a reference to it; it is not safe for concurrent use.
type Mediator struct {
	logger      *zap.Logger
	playerCount int
	maxPlayers  int

	table   *table.Table
	players map[int]*player.Player
	order   []int
	nextID  int

	modifiers *counters.Table
	bus       *events.EventBus
	watchers  *events.WatcherRegistry
	journal   *events.Journal
	rng       *rand.Rand
}

// NewMediator creates a session for playerCount players. The count must lie
// in 0..max players.
func NewMediator(playerCount int, logger *zap.Logger, opts ...Option) (*Mediator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := options{maxPlayers: DefaultMaxPlayers}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxCascadeDepth < 0 {
		return nil, apperrors.Newf(apperrors.CodeInvalidConfig, "max cascade depth must be >= 0, got %d", o.maxCascadeDepth)
	}
	if playerCount < 0 || playerCount > o.maxPlayers {
		return nil, apperrors.Newf(apperrors.CodeInvalidPlayerCount,
			"player count must be between 0 and %d, got %d", o.maxPlayers, playerCount).
			WithMetadata("player_count", strconv.Itoa(playerCount))
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	m := &Mediator{
		logger:      logger,
		playerCount: playerCount,
		maxPlayers:  o.maxPlayers,
		players:     make(map[int]*player.Player),
		bus:         events.NewEventBus(),
		watchers:    events.NewWatcherRegistry(),
		rng:         o.rng,
	}
	m.modifiers = counters.NewTable(logger.Named("modifiers"),
		counters.WithMaxDepth(o.maxCascadeDepth),
		counters.WithChangeHook(m.modifierChanged),
	)
	m.watchers.Attach(m.bus)
	if o.journal {
		m.journal = events.NewJournal()
		m.journal.Attach(m.bus)
	}

	logger.Info("mediator created",
		zap.Int("player_count", playerCount),
		zap.Int("max_players", o.maxPlayers),
		zap.Int("max_cascade_depth", o.maxCascadeDepth),
	)
	return m, nil
}

// Logger returns the session logger.
func (m *Mediator) Logger() *zap.Logger { return m.logger }

// PlayerCount returns the number of seats the session was created with.
func (m *Mediator) PlayerCount() int { return m.playerCount }

// RegisterTable registers the session's table. A session has at most one.
func (m *Mediator) RegisterTable(t *table.Table) error {
	if m.table != nil {
		return apperrors.New(apperrors.CodeTableAlreadyRegistered, "a table is already registered")
	}
	m.table = t
	t.SetObserver(m)
	m.logger.Info("table registered")
	m.bus.Publish(events.NewEvent(events.EventTableRegistered, events.NoPlayer))
	return nil
}

// Table returns the registered table.
func (m *Mediator) Table() (*table.Table, error) {
	if m.table == nil {
		return nil, apperrors.New(apperrors.CodeNoTable, "no table registered")
	}
	return m.table, nil
}

// RegisterPlayer adds a player to the session and makes the session its
// broker.
func (m *Mediator) RegisterPlayer(p *player.Player) error {
	if _, exists := m.players[p.ID()]; exists {
		return apperrors.Newf(apperrors.CodePlayerAlreadyRegistered, "player id %d is already registered", p.ID())
	}
	if len(m.players) >= m.playerCount {
		return apperrors.Newf(apperrors.CodePlayerLimitReached, "session is full (%d players)", m.playerCount)
	}
	m.players[p.ID()] = p
	m.order = append(m.order, p.ID())
	if p.ID() >= m.nextID {
		m.nextID = p.ID() + 1
	}
	p.SetBroker(m)

	m.logger.Info("player registered",
		zap.Int("player_id", p.ID()),
		zap.String("name", p.Name()),
	)
	evt := events.NewEvent(events.EventPlayerRegistered, p.ID())
	evt.Name = p.Name()
	m.bus.Publish(evt)
	return nil
}

// AddPlayer creates a player with the next free id and registers it.
func (m *Mediator) AddPlayer(name string) (*player.Player, error) {
	p := player.New(m.nextID, name)
	if err := m.RegisterPlayer(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Player looks up a registered player.
func (m *Mediator) Player(id int) (*player.Player, error) {
	p, ok := m.players[id]
	if !ok {
		m.logger.Warn("unknown player", zap.Int("player_id", id))
		return nil, apperrors.Newf(apperrors.CodeUnknownPlayer, "unknown player %d", id).
			WithMetadata("player_id", strconv.Itoa(id))
	}
	return p, nil
}

// Players returns the registered players in registration order.
func (m *Mediator) Players() []*player.Player {
	out := make([]*player.Player, len(m.order))
	for i, id := range m.order {
		out[i] = m.players[id]
	}
	return out
}

// PlayerIDs returns the registered player ids in registration order.
func (m *Mediator) PlayerIDs() []int {
	return append([]int(nil), m.order...)
}

// DrawFromTableDeck draws one card from a table deck. An exhausted deck
// yields a nil card and no error.
func (m *Mediator) DrawFromTableDeck(zone cards.ZoneType, area, deck int) (*cards.Card, error) {
	t, err := m.Table()
	if err != nil {
		return nil, err
	}
	card, err := t.DrawOne(zone, area, deck)
	if err != nil {
		return nil, err
	}
	if card != nil {
		m.bus.Publish(events.NewCardEvent(events.EventCardDrawn, events.NoPlayer, card.ID))
	}
	return card, nil
}

// DrawManyFromTable draws n cards from an area's first deck. The result has
// n slots, nil past the end of the deck.
func (m *Mediator) DrawManyFromTable(zone cards.ZoneType, area, n int) ([]*cards.Card, error) {
	t, err := m.Table()
	if err != nil {
		return nil, err
	}
	drawn, err := t.DrawFromArea(zone, area, n)
	if err != nil {
		return nil, err
	}
	for _, card := range drawn {
		if card != nil {
			m.bus.Publish(events.NewCardEvent(events.EventCardDrawn, events.NoPlayer, card.ID))
		}
	}
	return drawn, nil
}

// ShuffleDeck shuffles a table deck with the session's random source.
func (m *Mediator) ShuffleDeck(zone cards.ZoneType, area, deck int) error {
	t, err := m.Table()
	if err != nil {
		return err
	}
	if err := t.ShuffleDeck(zone, area, deck, m.rng); err != nil {
		return err
	}
	d, _ := t.Deck(zone, area, deck)
	m.bus.Publish(events.NewNamedEvent(events.EventDeckShuffle, d.Name()))
	return nil
}

// Rand returns the session's random source.
func (m *Mediator) Rand() *rand.Rand { return m.rng }

// Modifier returns a modifier's value, 0 if never set.
func (m *Mediator) Modifier(name string) int {
	return m.modifiers.Get(name)
}

// ChangeModifierBy applies delta to a modifier. Every subscriber of the
// modifier is notified with the new value before this returns; a subscriber
// may change modifiers again from inside its callback. MODIFIER_CHANGED is
// published as soon as the value changes, so a cascade reaches the bus in
// cause order.
func (m *Mediator) ChangeModifierBy(name string, delta int) error {
	return m.modifiers.ChangeBy(name, delta)
}

func (m *Mediator) modifierChanged(name string, _, value int) {
	evt := events.NewNamedEvent(events.EventModifierChanged, name)
	evt.Amount = value
	m.bus.Publish(evt)
}

// SubscribeModifier registers a listener for changes to a modifier and
// returns its handle.
func (m *Mediator) SubscribeModifier(name string, listener counters.Listener) int {
	return m.modifiers.Subscribe(name, listener)
}

// UnsubscribeModifier releases a handle returned by SubscribeModifier.
func (m *Mediator) UnsubscribeModifier(handle int) bool {
	return m.modifiers.Unsubscribe(handle)
}

// Modifiers exposes the modifier table.
func (m *Mediator) Modifiers() *counters.Table { return m.modifiers }

// NotifyPlayerPlayedCard runs the card's play hooks and then announces the
// play on the bus.
func (m *Mediator) NotifyPlayerPlayedCard(playerID int, card *cards.Card) error {
	m.logger.Debug("card played",
		zap.Int("player_id", playerID),
		zap.String("card_id", card.ID),
		zap.String("card", card.String()),
	)
	if err := card.NotifyPlayed(playerID); err != nil {
		return err
	}
	m.bus.Publish(events.NewCardEvent(events.EventCardPlayed, playerID, card.ID))
	return nil
}

// CardPlaced implements table.Observer.
func (m *Mediator) CardPlaced(card *cards.Card, at cards.Placement) {
	evt := events.NewCardEvent(events.EventCardPlaced, ownerOf(card), card.ID)
	evt.Name = at.String()
	m.bus.Publish(evt)
}

// CardRemoved implements table.Observer.
func (m *Mediator) CardRemoved(card *cards.Card, from cards.Placement) {
	evt := events.NewCardEvent(events.EventCardRemoved, ownerOf(card), card.ID)
	evt.Name = from.String()
	m.bus.Publish(evt)
}

func ownerOf(card *cards.Card) int {
	if owner, ok := card.Owner(); ok {
		return owner
	}
	return events.NoPlayer
}

// Publish broadcasts an event to bus subscribers.
func (m *Mediator) Publish(evt events.Event) {
	m.bus.Publish(evt)
}

// Bus returns the session event bus.
func (m *Mediator) Bus() *events.EventBus { return m.bus }

// Watchers returns the watcher registry attached to the bus.
func (m *Mediator) Watchers() *events.WatcherRegistry { return m.watchers }

// Journal returns the event journal when WithJournal was given.
func (m *Mediator) Journal() (*events.Journal, bool) {
	return m.journal, m.journal != nil
}

// Close detaches the session's observers from the bus.
func (m *Mediator) Close() {
	m.watchers.Detach()
	if m.journal != nil {
		m.journal.Detach()
	}
	m.logger.Info("mediator closed", zap.Int("players", len(m.players)))
}
