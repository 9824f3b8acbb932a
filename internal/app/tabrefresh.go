package app

import (
	"fmt"
	"sync"
)

// AppTab names the fixed set of refreshable screens.
type AppTab string

const (
	TabHome    AppTab = "home"
	TabLessons AppTab = "lessons"
	TabNews    AppTab = "news"
	TabAccount AppTab = "account"
)

// AppTabs is the closed channel set; the bus rejects anything else.
func AppTabs() []AppTab {
	return []AppTab{TabHome, TabLessons, TabNews, TabAccount}
}

type tabListener struct {
	id int
	fn func()
}

// TabRefreshBus is the in-memory pub/sub registry that lets a tab-bar
// interaction tell another screen's controller to reload. One instance is
// created at application start; tests construct their own.
type TabRefreshBus struct {
	mu        sync.Mutex
	nextID    int
	listeners map[AppTab][]tabListener
}

func NewTabRefreshBus(tabs ...AppTab) *TabRefreshBus {
	if len(tabs) == 0 {
		tabs = AppTabs()
	}
	listeners := make(map[AppTab][]tabListener, len(tabs))
	for _, t := range tabs {
		listeners[t] = nil
	}
	return &TabRefreshBus{listeners: listeners}
}

// Subscribe registers fn for the tab and returns its unsubscribe. Screens
// subscribe on mount and unsubscribe on unmount; the registry itself
// outlives any screen instance.
func (b *TabRefreshBus) Subscribe(tab AppTab, fn func()) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	existing, ok := b.listeners[tab]
	if !ok {
		return nil, fmt.Errorf("unknown tab channel %q", tab)
	}
	b.nextID++
	id := b.nextID
	b.listeners[tab] = append(existing, tabListener{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		current := b.listeners[tab]
		for i, l := range current {
			if l.id == id {
				b.listeners[tab] = append(current[:i:i], current[i+1:]...)
				return
			}
		}
	}, nil
}

// Publish invokes every listener for the tab synchronously in registration
// order. No error isolation: listeners are reload triggers, and a panic in
// one aborts the rest.
func (b *TabRefreshBus) Publish(tab AppTab) {
	b.mu.Lock()
	current := make([]tabListener, len(b.listeners[tab]))
	copy(current, b.listeners[tab])
	b.mu.Unlock()

	for _, l := range current {
		l.fn()
	}
}
