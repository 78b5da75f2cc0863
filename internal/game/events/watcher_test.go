package events

import (
	"testing"
)

func TestWatcherRegistry(t *testing.T) {
	registry := NewWatcherRegistry()

	testWatcher := &testWatcherImpl{
		BaseWatcher: NewBaseWatcher("TestWatcher", WatcherScopeRound),
	}
	registry.AddWatcher(testWatcher)

	retrieved := registry.GetWatcher("TestWatcher")
	if retrieved == nil {
		t.Fatal("should retrieve TestWatcher")
	}

	roundWatchers := registry.GetWatchersByScope(WatcherScopeRound)
	if len(roundWatchers) != 1 {
		t.Fatalf("expected 1 round watcher, got %d", len(roundWatchers))
	}
	if len(registry.GetWatchersByScope(WatcherScopeGame)) != 0 {
		t.Fatal("expected no game watchers")
	}

	registry.NotifyWatchers(NewCardEvent(EventCardPlayed, 1, "c1"))
	if !testWatcher.ConditionMet() {
		t.Fatal("testWatcher should have condition met")
	}

	registry.ResetWatchersByScope(WatcherScopeRound)
	if testWatcher.ConditionMet() {
		t.Fatal("watcher should not have condition met after reset")
	}

	registry.RemoveWatcher("TestWatcher")
	if registry.GetWatcher("TestWatcher") != nil {
		t.Fatal("watcher should be removed")
	}
}

func TestWatcherRegistryAttach(t *testing.T) {
	bus := NewEventBus()
	registry := NewWatcherRegistry()
	testWatcher := &testWatcherImpl{
		BaseWatcher: NewBaseWatcher("TestWatcher", WatcherScopeGame),
	}
	registry.AddWatcher(testWatcher)
	registry.Attach(bus)

	bus.Publish(NewCardEvent(EventCardPlaced, 1, "c1"))
	if testWatcher.ConditionMet() {
		t.Fatal("placed events should not trip the watcher")
	}

	bus.Publish(NewCardEvent(EventCardPlayed, 1, "c1"))
	if !testWatcher.ConditionMet() {
		t.Fatal("played event should reach the watcher through the bus")
	}

	registry.Detach()
	if bus.Len() != 0 {
		t.Fatalf("expected registry to unsubscribe, %d subscriptions left", bus.Len())
	}
}

// testWatcherImpl is a simple test watcher implementation
type testWatcherImpl struct {
	*BaseWatcher
}

func (t *testWatcherImpl) Watch(event Event) {
	if event.Type == EventCardPlayed {
		t.SetCondition(true)
	}
}
