package app

import "testing"

func TestTabRefreshBus_PublishInRegistrationOrder(t *testing.T) {
	bus := NewTabRefreshBus()
	var order []string
	if _, err := bus.Subscribe(TabNews, func() { order = append(order, "first") }); err != nil {
		t.Fatal(err)
	}
	if _, err := bus.Subscribe(TabNews, func() { order = append(order, "second") }); err != nil {
		t.Fatal(err)
	}

	bus.Publish(TabNews)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("order = %v, want [first second]", order)
	}
}

func TestTabRefreshBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewTabRefreshBus()
	calls := 0
	unsubscribe, err := bus.Subscribe(TabLessons, func() { calls++ })
	if err != nil {
		t.Fatal(err)
	}

	bus.Publish(TabLessons)
	unsubscribe()
	bus.Publish(TabLessons)

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	// Unsubscribing twice is harmless.
	unsubscribe()
	bus.Publish(TabLessons)
	if calls != 1 {
		t.Fatalf("calls after double unsubscribe = %d, want 1", calls)
	}
}

func TestTabRefreshBus_ChannelsAreAClosedSet(t *testing.T) {
	bus := NewTabRefreshBus(TabNews)
	if _, err := bus.Subscribe(TabAccount, func() {}); err == nil {
		t.Fatal("expected error for channel outside the constructed set")
	}
	// Publishing to an unknown channel is a silent no-op.
	bus.Publish(TabAccount)
}

func TestTabRefreshBus_ChannelsAreIndependent(t *testing.T) {
	bus := NewTabRefreshBus()
	newsCalls, accountCalls := 0, 0
	if _, err := bus.Subscribe(TabNews, func() { newsCalls++ }); err != nil {
		t.Fatal(err)
	}
	if _, err := bus.Subscribe(TabAccount, func() { accountCalls++ }); err != nil {
		t.Fatal(err)
	}

	bus.Publish(TabNews)

	if newsCalls != 1 || accountCalls != 0 {
		t.Fatalf("calls = (%d, %d), want (1, 0)", newsCalls, accountCalls)
	}
}

func TestTabRefreshBus_RegistryOutlivesSubscribers(t *testing.T) {
	bus := NewTabRefreshBus()
	unsubscribe, err := bus.Subscribe(TabHome, func() {})
	if err != nil {
		t.Fatal(err)
	}
	unsubscribe()

	// A later mount on the same channel still works.
	calls := 0
	if _, err := bus.Subscribe(TabHome, func() { calls++ }); err != nil {
		t.Fatal(err)
	}
	bus.Publish(TabHome)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}
