package events

import (
	"github.com/google/uuid"
)

// Journal records every event of a game in order and lets callers step
// through the history.
type Journal struct {
	ID           string
	Events       []Event
	CurrentIndex int

	bus    *EventBus
	handle int
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{
		ID:     uuid.NewString(),
		Events: make([]Event, 0),
		handle: -1,
	}
}

// Attach records every event published on bus from now on.
func (j *Journal) Attach(bus *EventBus) {
	j.Detach()
	j.bus = bus
	j.handle = bus.Subscribe(j.Record)
}

// Detach stops recording.
func (j *Journal) Detach() {
	if j.bus != nil && j.handle >= 0 {
		j.bus.Unsubscribe(j.handle)
	}
	j.bus = nil
	j.handle = -1
}

// Record appends an event.
func (j *Journal) Record(event Event) {
	j.Events = append(j.Events, event)
}

// Start resets the cursor to the beginning.
func (j *Journal) Start() {
	j.CurrentIndex = 0
}

// Next returns the event at the cursor and advances it.
func (j *Journal) Next() (Event, bool) {
	if j.CurrentIndex < len(j.Events) {
		event := j.Events[j.CurrentIndex]
		j.CurrentIndex++
		return event, true
	}
	return Event{}, false
}

// Previous moves the cursor back and returns the event there.
func (j *Journal) Previous() (Event, bool) {
	if j.CurrentIndex > 0 {
		j.CurrentIndex--
		return j.Events[j.CurrentIndex], true
	}
	return Event{}, false
}

// Skip moves forward by count events and returns the event at the new
// cursor position.
func (j *Journal) Skip(count int) (Event, bool) {
	j.CurrentIndex += count
	if j.CurrentIndex < 0 {
		j.CurrentIndex = 0
	}
	if j.CurrentIndex >= len(j.Events) {
		j.CurrentIndex = len(j.Events)
		return Event{}, false
	}
	return j.Events[j.CurrentIndex], true
}

// Size returns the number of recorded events.
func (j *Journal) Size() int {
	return len(j.Events)
}

// Filter returns the recorded events of the given type, in order.
func (j *Journal) Filter(eventType EventType) []Event {
	var result []Event
	for _, event := range j.Events {
		if event.Type == eventType {
			result = append(result, event)
		}
	}
	return result
}
