package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dongne/internal/domain"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan TownSettingConfirmedEvent, 1)
	b.Subscribe(EventTownSettingConfirmed, func(e DomainEvent) {
		if ev, ok := e.(TownSettingConfirmedEvent); ok {
			got <- ev
		}
	})

	b.Publish(TownSettingConfirmedEvent{Setting: domain.TownSetting{
		Primary: domain.Neighborhood{ID: "yeoksam", Name: "역삼동"},
	}})

	select {
	case ev := <-got:
		assert.Equal(t, "yeoksam", ev.Setting.Primary.ID)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()

	var mu sync.Mutex
	calls := 0
	unsubscribe := b.Subscribe(EventConfigSaved, func(DomainEvent) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	unsubscribe()

	b.Publish(ConfigSavedEvent{Path: "x.toml"})
	b.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, calls)
}

func TestCloseDrainsQueuedEvents(t *testing.T) {
	b := New()

	var mu sync.Mutex
	seen := 0
	b.Subscribe(EventPostStateChanged, func(DomainEvent) {
		mu.Lock()
		seen++
		mu.Unlock()
	})

	for i := 0; i < 10; i++ {
		b.Publish(PostStateChangedEvent{PostID: i})
	}
	b.Close()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 10, seen)
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	b := New()
	defer b.Close()

	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })

	done := make(chan struct{}, 1)
	b.Subscribe(EventError, func(DomainEvent) { done <- struct{}{} })

	b.Publish(ErrorEvent{Message: "test"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second handler was not called")
	}
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New()
	b.Close()
	assert.NotPanics(t, func() { b.Publish(ConfigSavedEvent{}) })
}
