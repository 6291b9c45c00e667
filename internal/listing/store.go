package listing

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"dongne/internal/domain"
	"dongne/internal/eventbus"
)

//go:embed posts.yaml
var samplePosts []byte

// PostStore provides access to the user's sale posts
type PostStore interface {
	Get(id int) (domain.Post, error)
	All() []domain.Post
	ByState(states ...domain.SaleState) []domain.Post
	ToggleReservation(id int) (domain.Post, error)
	MarkSoldOut(id int) (domain.Post, error)
	Publish(d Draft, address string) (domain.Post, error)
}

// MemoryPostStore is an in-memory implementation of PostStore
type MemoryPostStore struct {
	mu     sync.RWMutex
	posts  map[int]*domain.Post
	nextID int
	bus    eventbus.EventBus
	now    func() time.Time
}

// NewMemoryPostStore creates an empty store. bus may be nil.
func NewMemoryPostStore(bus eventbus.EventBus) *MemoryPostStore {
	return &MemoryPostStore{
		posts:  make(map[int]*domain.Post),
		nextID: 1,
		bus:    bus,
		now:    time.Now,
	}
}

// NewSampleStore creates a store seeded with the bundled sample posts
func NewSampleStore(bus eventbus.EventBus) (*MemoryPostStore, error) {
	s := NewMemoryPostStore(bus)
	if err := s.LoadYAML(samplePosts); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadYAML adds posts from a YAML document with a top-level `posts` list
func (s *MemoryPostStore) LoadYAML(data []byte) error {
	var doc struct {
		Posts []domain.Post `yaml:"posts"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse posts: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range doc.Posts {
		p := doc.Posts[i]
		if p.ID <= 0 {
			return fmt.Errorf("post %q has no id", p.Title)
		}
		s.posts[p.ID] = &p
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	return nil
}

func (s *MemoryPostStore) Get(id int) (domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return domain.Post{}, fmt.Errorf("%w: %d", ErrPostNotFound, id)
	}
	return *p, nil
}

// All returns a copy of every post, newest id first
func (s *MemoryPostStore) All() []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result
}

// ByState returns posts in any of the given states
func (s *MemoryPostStore) ByState(states ...domain.SaleState) []domain.Post {
	var out []domain.Post
	for _, p := range s.All() {
		for _, st := range states {
			if p.State == st {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// ToggleReservation flips a post between on sale and reserved
func (s *MemoryPostStore) ToggleReservation(id int) (domain.Post, error) {
	return s.transition(id, func(from domain.SaleState) (domain.SaleState, error) {
		switch from {
		case domain.SaleStateOnSale:
			return domain.SaleStateReserved, nil
		case domain.SaleStateReserved:
			return domain.SaleStateOnSale, nil
		default:
			return from, fmt.Errorf("%w: post %d is %s", ErrInvalidTransition, id, from)
		}
	})
}

// MarkSoldOut completes the sale of a post
func (s *MemoryPostStore) MarkSoldOut(id int) (domain.Post, error) {
	return s.transition(id, func(from domain.SaleState) (domain.SaleState, error) {
		if from == domain.SaleStateSoldOut {
			return from, fmt.Errorf("%w: post %d is already sold", ErrInvalidTransition, id)
		}
		return domain.SaleStateSoldOut, nil
	})
}

// Publish validates a draft and stores it as a new on-sale post
func (s *MemoryPostStore) Publish(d Draft, address string) (domain.Post, error) {
	if err := d.Validate(); err != nil {
		return domain.Post{}, err
	}

	s.mu.Lock()
	p := &domain.Post{
		ID:       s.nextID,
		Title:    strings.TrimSpace(d.Title),
		Address:  address,
		Price:    d.Price,
		State:    domain.SaleStateOnSale,
		Body:     strings.TrimSpace(d.Body),
		PostedAt: s.now(),
	}
	s.posts[p.ID] = p
	s.nextID++
	out := *p
	s.mu.Unlock()

	log.Info().Int("post", out.ID).Str("title", out.Title).Msg("post published")
	if s.bus != nil {
		s.bus.Publish(eventbus.PostPublishedEvent{Post: out})
	}
	return out, nil
}

func (s *MemoryPostStore) transition(id int, next func(domain.SaleState) (domain.SaleState, error)) (domain.Post, error) {
	s.mu.Lock()
	p, ok := s.posts[id]
	if !ok {
		s.mu.Unlock()
		return domain.Post{}, fmt.Errorf("%w: %d", ErrPostNotFound, id)
	}
	from := p.State
	to, err := next(from)
	if err != nil {
		s.mu.Unlock()
		return *p, err
	}
	p.State = to
	out := *p
	s.mu.Unlock()

	log.Info().Int("post", id).Stringer("from", from).Stringer("to", to).Msg("post state changed")
	if s.bus != nil {
		s.bus.Publish(eventbus.PostStateChangedEvent{PostID: id, From: from, To: to})
	}
	return out, nil
}
