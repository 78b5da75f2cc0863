package events

// WatcherScope defines how long a watcher's tracking lasts.
type WatcherScope int

const (
	// WatcherScopeGame tracks events for the entire game.
	WatcherScopeGame WatcherScope = iota
	// WatcherScopeRound is reset at the start of every round.
	WatcherScopeRound
)

// String returns the string representation of the watcher scope.
func (ws WatcherScope) String() string {
	switch ws {
	case WatcherScopeGame:
		return "GAME"
	case WatcherScopeRound:
		return "ROUND"
	default:
		return "UNKNOWN"
	}
}

// Watcher observes events and tracks a condition over them.
type Watcher interface {
	// Watch is called for every published event.
	Watch(event Event)

	// Reset clears the watcher's state.
	Reset()

	// ConditionMet returns true if the tracked condition has been met.
	ConditionMet() bool

	Scope() WatcherScope

	// Key uniquely identifies the watcher within a registry.
	Key() string
}

// BaseWatcher provides the bookkeeping shared by watchers.
type BaseWatcher struct {
	scope     WatcherScope
	key       string
	condition bool
}

// NewBaseWatcher creates a new base watcher.
func NewBaseWatcher(key string, scope WatcherScope) *BaseWatcher {
	return &BaseWatcher{key: key, scope: scope}
}

// Scope returns the watcher's scope.
func (bw *BaseWatcher) Scope() WatcherScope {
	return bw.scope
}

// Key returns the unique key for this watcher.
func (bw *BaseWatcher) Key() string {
	return bw.key
}

// ConditionMet returns whether the condition has been met.
func (bw *BaseWatcher) ConditionMet() bool {
	return bw.condition
}

// SetCondition sets the condition flag.
func (bw *BaseWatcher) SetCondition(condition bool) {
	bw.condition = condition
}

// Reset clears the condition.
func (bw *BaseWatcher) Reset() {
	bw.condition = false
}

// WatcherRegistry manages the watchers of one game.
type WatcherRegistry struct {
	watchers map[string]Watcher
	order    []string
	handle   int
	bus      *EventBus
}

// NewWatcherRegistry creates a new watcher registry.
func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{
		watchers: make(map[string]Watcher),
		handle:   -1,
	}
}

// Attach subscribes the registry to bus so every event reaches its watchers.
func (wr *WatcherRegistry) Attach(bus *EventBus) {
	wr.Detach()
	wr.bus = bus
	wr.handle = bus.Subscribe(wr.NotifyWatchers)
}

// Detach stops receiving events from the attached bus.
func (wr *WatcherRegistry) Detach() {
	if wr.bus != nil && wr.handle >= 0 {
		wr.bus.Unsubscribe(wr.handle)
	}
	wr.bus = nil
	wr.handle = -1
}

// AddWatcher adds a watcher, replacing any watcher with the same key.
func (wr *WatcherRegistry) AddWatcher(watcher Watcher) {
	if watcher == nil {
		return
	}
	key := watcher.Key()
	if _, exists := wr.watchers[key]; !exists {
		wr.order = append(wr.order, key)
	}
	wr.watchers[key] = watcher
}

// RemoveWatcher removes a watcher from the registry.
func (wr *WatcherRegistry) RemoveWatcher(key string) {
	if _, ok := wr.watchers[key]; !ok {
		return
	}
	delete(wr.watchers, key)
	for i, k := range wr.order {
		if k == key {
			wr.order = append(wr.order[:i], wr.order[i+1:]...)
			break
		}
	}
}

// GetWatcher retrieves a watcher by key.
func (wr *WatcherRegistry) GetWatcher(key string) Watcher {
	return wr.watchers[key]
}

// GetWatchersByScope returns all watchers of a scope in registration order.
func (wr *WatcherRegistry) GetWatchersByScope(scope WatcherScope) []Watcher {
	var result []Watcher
	for _, key := range wr.order {
		if w := wr.watchers[key]; w.Scope() == scope {
			result = append(result, w)
		}
	}
	return result
}

// ResetWatchers resets all watchers.
func (wr *WatcherRegistry) ResetWatchers() {
	for _, key := range wr.order {
		wr.watchers[key].Reset()
	}
}

// ResetWatchersByScope resets all watchers for a given scope.
func (wr *WatcherRegistry) ResetWatchersByScope(scope WatcherScope) {
	for _, w := range wr.GetWatchersByScope(scope) {
		w.Reset()
	}
}

// NotifyWatchers hands an event to every watcher in registration order.
func (wr *WatcherRegistry) NotifyWatchers(event Event) {
	for _, key := range append([]string(nil), wr.order...) {
		if w, ok := wr.watchers[key]; ok {
			w.Watch(event)
		}
	}
}
