package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dongne/internal/domain"
	"dongne/internal/eventbus"
)

func TestSampleStore(t *testing.T) {
	s, err := NewSampleStore(nil)
	require.NoError(t, err)

	all := s.All()
	require.Len(t, all, 4)
	assert.Equal(t, 4, all[0].ID, "newest first")

	p, err := s.Get(3)
	require.NoError(t, err)
	assert.Equal(t, domain.SaleStateOnSale, p.State, "legacy 'sales' maps to on sale")

	assert.Len(t, s.ByState(domain.SaleStateOnSale, domain.SaleStateReserved), 3)
}

func TestToggleReservation(t *testing.T) {
	s, err := NewSampleStore(nil)
	require.NoError(t, err)

	p, err := s.ToggleReservation(1)
	require.NoError(t, err)
	assert.Equal(t, domain.SaleStateReserved, p.State)

	p, err = s.ToggleReservation(1)
	require.NoError(t, err)
	assert.Equal(t, domain.SaleStateOnSale, p.State)

	_, err = s.ToggleReservation(4)
	assert.ErrorIs(t, err, ErrInvalidTransition, "sold posts cannot be reserved")

	_, err = s.ToggleReservation(99)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestMarkSoldOutPublishesEvent(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	changed := make(chan eventbus.PostStateChangedEvent, 1)
	bus.Subscribe(eventbus.EventPostStateChanged, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.PostStateChangedEvent); ok {
			changed <- ev
		}
	})

	s, err := NewSampleStore(bus)
	require.NoError(t, err)

	p, err := s.MarkSoldOut(2)
	require.NoError(t, err)
	assert.Equal(t, domain.SaleStateSoldOut, p.State)

	select {
	case ev := <-changed:
		assert.Equal(t, 2, ev.PostID)
		assert.Equal(t, domain.SaleStateReserved, ev.From)
		assert.Equal(t, domain.SaleStateSoldOut, ev.To)
	case <-time.After(time.Second):
		t.Fatal("PostStateChanged was not published")
	}

	_, err = s.MarkSoldOut(2)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPublish(t *testing.T) {
	s, err := NewSampleStore(nil)
	require.NoError(t, err)
	fixed := time.Date(2020, 4, 23, 15, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	p, err := s.Publish(Draft{Title: "자전거", Price: 50000, Body: "거의 새것"}, "역삼동")
	require.NoError(t, err)
	assert.Equal(t, 5, p.ID)
	assert.Equal(t, "역삼동", p.Address)
	assert.Equal(t, domain.SaleStateOnSale, p.State)
	assert.Equal(t, fixed, p.PostedAt)

	_, err = s.Publish(Draft{Title: "", Body: "x"}, "역삼동")
	assert.ErrorIs(t, err, ErrInvalidDraft)
}

func TestPublishTrimsText(t *testing.T) {
	s, err := NewSampleStore(nil)
	require.NoError(t, err)

	p, err := s.Publish(Draft{Title: "  자전거  ", Price: 50000, Body: "\n거의 새것 \n"}, "역삼동")
	require.NoError(t, err)
	assert.Equal(t, "자전거", p.Title)
	assert.Equal(t, "거의 새것", p.Body)

	stored, err := s.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "자전거", stored.Title)
}

func TestLoadYAMLRejectsBadPosts(t *testing.T) {
	s := NewMemoryPostStore(nil)
	assert.Error(t, s.LoadYAML([]byte("posts:\n  - title: no id\n")))
	assert.Error(t, s.LoadYAML([]byte("posts:\n  - {id: 1, title: x, state: slaes}\n")))
}
