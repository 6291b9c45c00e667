// Package chat keeps the message history of a buyer/seller conversation.
package chat

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"dongne/internal/domain"
	"dongne/internal/eventbus"
)

// ErrEmptyMessage is returned when sending only whitespace
var ErrEmptyMessage = errors.New("empty message")

// Room is a conversation with one partner about one post
type Room struct {
	Partner string
	PostID  int

	mu       sync.RWMutex
	messages []domain.Message
	bus      eventbus.EventBus
	now      func() time.Time
}

// NewRoom creates a room. bus may be nil.
func NewRoom(partner string, postID int, bus eventbus.EventBus) *Room {
	return &Room{
		Partner: partner,
		PostID:  postID,
		bus:     bus,
		now:     time.Now,
	}
}

// ID identifies the room in events
func (r *Room) ID() string {
	return fmt.Sprintf("%d:%s", r.PostID, r.Partner)
}

// Receive appends a message from the partner
func (r *Room) Receive(text string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, domain.Message{Sender: r.Partner, Text: text, SentAt: at})
}

// Send appends one of our own messages
func (r *Room) Send(text string) (domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Message{}, ErrEmptyMessage
	}

	msg := domain.Message{Sender: "나", Text: text, SentAt: r.now(), Mine: true}
	r.mu.Lock()
	r.messages = append(r.messages, msg)
	r.mu.Unlock()

	if r.bus != nil {
		r.bus.Publish(eventbus.MessageSentEvent{Room: r.ID(), Message: msg})
	}
	return msg, nil
}

// Messages returns the history oldest first
func (r *Room) Messages() []domain.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// TimeLabel formats a message time as shown next to chat bubbles, e.g. "오후 3:04"
func TimeLabel(t time.Time) string {
	period := "오전"
	hour := t.Hour()
	if hour >= 12 {
		period = "오후"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%s %d:%02d", period, hour, t.Minute())
}
