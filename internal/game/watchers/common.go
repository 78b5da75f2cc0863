package watchers

import (
	"github.com/J-Double-J/deckForge-sub001/internal/game/events"
)

// CardsPlayedWatcher tracks cards played by players during a round.
type CardsPlayedWatcher struct {
	*events.BaseWatcher
	cardsPlayed map[int][]string // playerID -> card IDs
}

// NewCardsPlayedWatcher creates a new cards played watcher.
func NewCardsPlayedWatcher() *CardsPlayedWatcher {
	return &CardsPlayedWatcher{
		BaseWatcher: events.NewBaseWatcher("CardsPlayedWatcher", events.WatcherScopeRound),
		cardsPlayed: make(map[int][]string),
	}
}

// Watch implements the Watcher interface.
func (w *CardsPlayedWatcher) Watch(event events.Event) {
	if event.Type != events.EventCardPlayed || event.PlayerID == events.NoPlayer {
		return
	}
	w.cardsPlayed[event.PlayerID] = append(w.cardsPlayed[event.PlayerID], event.CardID)
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *CardsPlayedWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.cardsPlayed = make(map[int][]string)
}

// GetCardsPlayed returns the IDs of the cards a player played, in order.
func (w *CardsPlayedWatcher) GetCardsPlayed(playerID int) []string {
	return append([]string(nil), w.cardsPlayed[playerID]...)
}

// GetCount returns the number of cards played by a player.
func (w *CardsPlayedWatcher) GetCount(playerID int) int {
	return len(w.cardsPlayed[playerID])
}

// GetTotal returns the number of cards played by everyone.
func (w *CardsPlayedWatcher) GetTotal() int {
	total := 0
	for _, ids := range w.cardsPlayed {
		total += len(ids)
	}
	return total
}

// CardsDrawnWatcher tracks cards drawn by players over the whole game.
type CardsDrawnWatcher struct {
	*events.BaseWatcher
	cardsDrawn map[int]int // playerID -> count
}

// NewCardsDrawnWatcher creates a new cards drawn watcher.
func NewCardsDrawnWatcher() *CardsDrawnWatcher {
	return &CardsDrawnWatcher{
		BaseWatcher: events.NewBaseWatcher("CardsDrawnWatcher", events.WatcherScopeGame),
		cardsDrawn:  make(map[int]int),
	}
}

// Watch implements the Watcher interface.
func (w *CardsDrawnWatcher) Watch(event events.Event) {
	if event.Type != events.EventCardDrawn {
		return
	}
	w.cardsDrawn[event.PlayerID]++
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *CardsDrawnWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.cardsDrawn = make(map[int]int)
}

// GetCount returns the number of cards drawn by a player. Draws made by the
// table itself are counted under events.NoPlayer.
func (w *CardsDrawnWatcher) GetCount(playerID int) int {
	return w.cardsDrawn[playerID]
}

// PhaseHistoryWatcher records the names of the phases that ended, and
// whether each ended early.
type PhaseHistoryWatcher struct {
	*events.BaseWatcher
	phases []PhaseRecord
}

// PhaseRecord is one finished phase.
type PhaseRecord struct {
	Name  string
	Early bool
}

// NewPhaseHistoryWatcher creates a new phase history watcher.
func NewPhaseHistoryWatcher() *PhaseHistoryWatcher {
	return &PhaseHistoryWatcher{
		BaseWatcher: events.NewBaseWatcher("PhaseHistoryWatcher", events.WatcherScopeGame),
	}
}

// Watch implements the Watcher interface.
func (w *PhaseHistoryWatcher) Watch(event events.Event) {
	if event.Type != events.EventPhaseEnded {
		return
	}
	w.phases = append(w.phases, PhaseRecord{Name: event.Name, Early: event.Flag})
	if event.Flag {
		w.SetCondition(true)
	}
}

// Reset clears the watcher's state.
func (w *PhaseHistoryWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.phases = nil
}

// History returns the finished phases in order.
func (w *PhaseHistoryWatcher) History() []PhaseRecord {
	return append([]PhaseRecord(nil), w.phases...)
}

// Names returns the names of the finished phases in order.
func (w *PhaseHistoryWatcher) Names() []string {
	names := make([]string, len(w.phases))
	for i, p := range w.phases {
		names[i] = p.Name
	}
	return names
}

// ModifierWatcher tracks the latest value broadcast for every modifier.
type ModifierWatcher struct {
	*events.BaseWatcher
	values  map[string]int
	changes int
}

// NewModifierWatcher creates a new modifier watcher.
func NewModifierWatcher() *ModifierWatcher {
	return &ModifierWatcher{
		BaseWatcher: events.NewBaseWatcher("ModifierWatcher", events.WatcherScopeGame),
		values:      make(map[string]int),
	}
}

// Watch implements the Watcher interface.
func (w *ModifierWatcher) Watch(event events.Event) {
	if event.Type != events.EventModifierChanged {
		return
	}
	w.values[event.Name] = event.Amount
	w.changes++
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *ModifierWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.values = make(map[string]int)
	w.changes = 0
}

// Value returns the last observed value of a modifier.
func (w *ModifierWatcher) Value(name string) (int, bool) {
	v, ok := w.values[name]
	return v, ok
}

// Changes returns how many modifier changes were observed.
func (w *ModifierWatcher) Changes() int {
	return w.changes
}
