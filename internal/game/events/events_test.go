package events

import (
	"testing"
	"time"
)

func TestEventBusSubscribeTyped(t *testing.T) {
	bus := NewEventBus()

	playedCount := 0
	placedCount := 0

	handle1 := bus.SubscribeTyped(EventCardPlayed, func(e Event) {
		playedCount++
	})
	handle2 := bus.SubscribeTyped(EventCardPlaced, func(e Event) {
		placedCount++
	})

	bus.Publish(NewCardEvent(EventCardPlayed, 1, "card1"))
	if playedCount != 1 {
		t.Fatalf("expected played count 1, got %d", playedCount)
	}
	if placedCount != 0 {
		t.Fatalf("expected placed count 0, got %d", placedCount)
	}

	bus.Publish(NewCardEvent(EventCardPlaced, 1, "card1"))
	if placedCount != 1 {
		t.Fatalf("expected placed count 1, got %d", placedCount)
	}

	bus.Unsubscribe(handle1)
	bus.Publish(NewCardEvent(EventCardPlayed, 1, "card2"))
	if playedCount != 1 {
		t.Fatalf("expected played count still 1 after unsubscribe, got %d", playedCount)
	}

	bus.Unsubscribe(handle2)
	if bus.Len() != 0 {
		t.Fatalf("expected no subscriptions, got %d", bus.Len())
	}
}

func TestEventBusSubscribeAllInOrder(t *testing.T) {
	bus := NewEventBus()

	var order []string
	bus.Subscribe(func(e Event) { order = append(order, "all-1") })
	bus.SubscribeTyped(EventPhaseEnded, func(e Event) { order = append(order, "typed") })
	bus.Subscribe(func(e Event) { order = append(order, "all-2") })

	bus.Publish(NewNamedEvent(EventPhaseEnded, "draw"))

	want := []string{"all-1", "typed", "all-2"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestEventBusReentrantPublish(t *testing.T) {
	bus := NewEventBus()

	var seen []EventType
	bus.Subscribe(func(e Event) {
		seen = append(seen, e.Type)
		if e.Type == EventCardPlayed {
			bus.Publish(NewCardEvent(EventCardPlaced, e.PlayerID, e.CardID))
		}
	})
	bus.Subscribe(func(e Event) {
		bus.Subscribe(func(Event) {})
	})

	bus.Publish(NewCardEvent(EventCardPlayed, 0, "c"))

	if len(seen) != 2 || seen[0] != EventCardPlayed || seen[1] != EventCardPlaced {
		t.Fatalf("unexpected delivery order %v", seen)
	}
}

func TestEventBusNilListener(t *testing.T) {
	bus := NewEventBus()
	if handle := bus.Subscribe(nil); handle != -1 {
		t.Fatalf("expected -1 for nil listener, got %d", handle)
	}
}

func TestEventBusPublishBatch(t *testing.T) {
	bus := NewEventBus()

	count := 0
	bus.Subscribe(func(e Event) {
		count++
	})

	bus.PublishBatch([]Event{
		NewNamedEvent(EventRoundStarted, "1"),
		NewNamedEvent(EventPhaseStarted, "deal"),
		NewNamedEvent(EventPhaseEnded, "deal"),
	})

	if count != 3 {
		t.Fatalf("expected count 3 after batch publish, got %d", count)
	}
}

func TestEventTimestampAndID(t *testing.T) {
	before := time.Now()
	evt := NewEvent(EventCardDrawn, 2)
	after := time.Now()

	if evt.Timestamp.Before(before) || evt.Timestamp.After(after) {
		t.Fatal("event timestamp should be between before and after")
	}
	if evt.ID == "" {
		t.Fatal("event should carry an id")
	}
	if evt.Metadata == nil {
		t.Fatal("event metadata should be initialised")
	}
	if other := NewEvent(EventCardDrawn, 2); other.ID == evt.ID {
		t.Fatal("event ids should be unique")
	}
}
