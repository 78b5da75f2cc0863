// Package counters holds the named integer modifiers a game session owns.
//
// Changing a modifier notifies its subscribers synchronously, before the
// change call returns. A subscriber may change the same or another modifier
// from inside its callback; each call runs its own full notification pass.
// Nothing coalesces or deduplicates those calls, so a cyclic subscriber graph
// recurses until MaxDepth (if set) stops it.
package counters

import (
	"fmt"
	"sort"

	apperrors "github.com/J-Double-J/deckForge-sub001/internal/errors"
	"go.uber.org/zap"
)

// Counter is a named integer value.
type Counter struct {
	Name  string
	Count int
}

// Copy creates a copy of the counter.
func (c *Counter) Copy() *Counter {
	return &Counter{Name: c.Name, Count: c.Count}
}

// Listener is told the new value of a modifier it subscribed to.
type Listener func(name string, value int) error

type subscription struct {
	handle   int
	name     string
	listener Listener
}

// Table owns every modifier of one game session. It is not safe for
// concurrent use; confine it to the goroutine driving the game.
type Table struct {
	logger      *zap.Logger
	counters    map[string]*Counter
	subscribers map[string][]subscription
	active      map[int]string
	nextHandle  int
	depth       int
	maxDepth    int
	onChange    ChangeHook
}

// Option configures a Table.
type Option func(*Table)

// WithMaxDepth bounds the notification cascade. Zero means unbounded.
func WithMaxDepth(depth int) Option {
	return func(t *Table) {
		if depth > 0 {
			t.maxDepth = depth
		}
	}
}

// ChangeHook sees every applied change before the modifier's subscribers do.
type ChangeHook func(name string, delta, value int)

// WithChangeHook installs a hook run for each applied change, ahead of the
// subscriber pass. Nested changes therefore reach the hook in cause order.
func WithChangeHook(hook ChangeHook) Option {
	return func(t *Table) {
		t.onChange = hook
	}
}

// NewTable creates an empty modifier table.
func NewTable(logger *zap.Logger, opts ...Option) *Table {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Table{
		logger:      logger,
		counters:    make(map[string]*Counter),
		subscribers: make(map[string][]subscription),
		active:      make(map[int]string),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Get returns the modifier's value, 0 if it was never set.
func (t *Table) Get(name string) int {
	if c, ok := t.counters[name]; ok {
		return c.Count
	}
	return 0
}

// ChangeBy applies delta to the named modifier and notifies every subscriber
// of that name with the resulting value before returning. Each subscriber sees
// the value produced by this call, even if an earlier subscriber changed the
// modifier again. A subscriber error aborts the remaining notifications.
func (t *Table) ChangeBy(name string, delta int) error {
	if t.maxDepth > 0 && t.depth >= t.maxDepth {
		return apperrors.Newf(apperrors.CodeCascadeTooDeep,
			"modifier %q changed at cascade depth %d", name, t.depth).
			WithMetadata("modifier", name)
	}
	t.depth++
	defer func() { t.depth-- }()

	c, ok := t.counters[name]
	if !ok {
		c = &Counter{Name: name}
		t.counters[name] = c
	}
	c.Count += delta
	value := c.Count

	t.logger.Debug("modifier changed",
		zap.String("modifier", name),
		zap.Int("delta", delta),
		zap.Int("value", value),
		zap.Int("depth", t.depth),
	)
	if t.onChange != nil {
		t.onChange(name, delta, value)
	}

	subs := append([]subscription(nil), t.subscribers[name]...)
	for _, sub := range subs {
		// Skip subscribers released by an earlier callback in this pass.
		if _, live := t.active[sub.handle]; !live {
			continue
		}
		if err := sub.listener(name, value); err != nil {
			return fmt.Errorf("modifier %q subscriber %d: %w", name, sub.handle, err)
		}
	}
	return nil
}

// Subscribe registers a listener for changes to the named modifier and
// returns a handle for Unsubscribe. A nil listener returns -1.
func (t *Table) Subscribe(name string, listener Listener) int {
	if listener == nil {
		return -1
	}
	handle := t.nextHandle
	t.nextHandle++
	t.subscribers[name] = append(t.subscribers[name], subscription{
		handle:   handle,
		name:     name,
		listener: listener,
	})
	t.active[handle] = name
	return handle
}

// Unsubscribe removes the listener identified by handle.
func (t *Table) Unsubscribe(handle int) bool {
	name, ok := t.active[handle]
	if !ok {
		return false
	}
	delete(t.active, handle)
	subs := t.subscribers[name]
	for i := range subs {
		if subs[i].handle == handle {
			t.subscribers[name] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(t.subscribers[name]) == 0 {
		delete(t.subscribers, name)
	}
	return true
}

// SubscriberCount returns the number of live subscribers of name.
func (t *Table) SubscriberCount(name string) int {
	return len(t.subscribers[name])
}

// Depth is the current notification nesting; 0 outside any ChangeBy.
func (t *Table) Depth() int {
	return t.depth
}

// MaxDepth returns the cascade bound, 0 when unbounded.
func (t *Table) MaxDepth() int {
	return t.maxDepth
}

// Names returns the names of every modifier ever set, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.counters))
	for name := range t.counters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns a copy of every modifier.
func (t *Table) GetAll() map[string]*Counter {
	result := make(map[string]*Counter, len(t.counters))
	for name, c := range t.counters {
		result[name] = c.Copy()
	}
	return result
}

// Reset drops every modifier and subscription.
func (t *Table) Reset() {
	t.counters = make(map[string]*Counter)
	t.subscribers = make(map[string][]subscription)
	t.active = make(map[int]string)
}
