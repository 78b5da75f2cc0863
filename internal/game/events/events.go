// Package events carries lifecycle notifications of a game session to
// observers: watchers, the journal and game-specific listeners.
//
// Delivery is synchronous and in subscription order. The bus holds no lock;
// a listener may publish or (un)subscribe from inside its callback.
package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType indicates the category of an event.
type EventType string

const (
	// Card events
	EventCardDrawn   EventType = "CARD_DRAWN"
	EventCardPlayed  EventType = "CARD_PLAYED"
	EventCardPlaced  EventType = "CARD_PLACED"
	EventCardRemoved EventType = "CARD_REMOVED"
	EventCardFlipped EventType = "CARD_FLIPPED"
	EventDeckShuffle EventType = "DECK_SHUFFLED"

	// Session events
	EventPlayerRegistered EventType = "PLAYER_REGISTERED"
	EventTableRegistered  EventType = "TABLE_REGISTERED"
	EventModifierChanged  EventType = "MODIFIER_CHANGED"

	// Flow events
	EventRoundStarted EventType = "ROUND_STARTED"
	EventRoundEnded   EventType = "ROUND_ENDED"
	EventPhaseStarted EventType = "PHASE_STARTED"
	EventPhaseEnded   EventType = "PHASE_ENDED"
	EventTurnStarted  EventType = "TURN_STARTED"
	EventTurnEnded    EventType = "TURN_ENDED"
)

// NoPlayer marks events that concern no particular player.
const NoPlayer = -1

// Event represents a state change observers may react to.
type Event struct {
	Type      EventType
	ID        string
	PlayerID  int
	CardID    string
	Name      string // phase, modifier or deck name
	Amount    int
	Flag      bool // early termination for phase/round events
	Message   string
	Timestamp time.Time
	Metadata  map[string]string
}

// NewEvent creates an event with common fields populated.
func NewEvent(eventType EventType, playerID int) Event {
	return Event{
		Type:      eventType,
		ID:        uuid.NewString(),
		PlayerID:  playerID,
		Timestamp: time.Now(),
		Metadata:  make(map[string]string),
	}
}

// NewNamedEvent creates an event about a named thing (phase, modifier, deck).
func NewNamedEvent(eventType EventType, name string) Event {
	evt := NewEvent(eventType, NoPlayer)
	evt.Name = name
	return evt
}

// NewCardEvent creates an event about a card.
func NewCardEvent(eventType EventType, playerID int, cardID string) Event {
	evt := NewEvent(eventType, playerID)
	evt.CardID = cardID
	return evt
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

type subscription struct {
	handle    int
	eventType EventType // empty for all events
	callback  Listener
}

// EventBus is a synchronous publish/subscribe bus with type filtering.
type EventBus struct {
	subs       []subscription
	nextHandle int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	return bus.add("", listener)
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, listener Listener) int {
	return bus.add(eventType, listener)
}

func (bus *EventBus) add(eventType EventType, listener Listener) int {
	if listener == nil {
		return -1
	}
	handle := bus.nextHandle
	bus.nextHandle++
	bus.subs = append(bus.subs, subscription{handle: handle, eventType: eventType, callback: listener})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	for i := range bus.subs {
		if bus.subs[i].handle == handle {
			bus.subs = append(bus.subs[:i:i], bus.subs[i+1:]...)
			return
		}
	}
}

// Len returns the number of live subscriptions.
func (bus *EventBus) Len() int {
	return len(bus.subs)
}

// Publish delivers the event to every matching listener in subscription
// order. Listeners added during delivery see the next event, not this one.
func (bus *EventBus) Publish(event Event) {
	for _, sub := range bus.subs {
		if sub.eventType == "" || sub.eventType == event.Type {
			sub.callback(event)
		}
	}
}

// PublishBatch publishes multiple events in order.
func (bus *EventBus) PublishBatch(events []Event) {
	for _, event := range events {
		bus.Publish(event)
	}
}
