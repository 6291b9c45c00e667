package town

import (
	"dongne/internal/domain"
)

// State tracks the one or two neighborhoods a user has chosen and which
// slot is being edited. It is owned by a single screen and is not safe for
// concurrent use; every call runs to completion on the UI goroutine.
type State struct {
	first  *domain.Neighborhood
	second *domain.Neighborhood
	active domain.Slot

	policy    ClearPolicy
	observers []observerEntry
	nextID    int
}

type observerEntry struct {
	id int
	fn Observer
}

// Option configures a State
type Option func(*State)

// WithClearPolicy sets how Clear(SlotFirst) behaves while the second slot is set
func WithClearPolicy(p ClearPolicy) Option {
	return func(s *State) {
		s.policy = p
	}
}

// NewState creates an empty selection
func NewState(opts ...Option) *State {
	s := &State{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the configured clear policy
func (s *State) Policy() ClearPolicy {
	return s.policy
}

// Subscribe registers an observer and returns a function that removes it.
// Observers are called synchronously in registration order.
func (s *State) Subscribe(fn Observer) func() {
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observerEntry{id: id, fn: fn})
	return func() {
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// SelectSlot marks slot as the one being edited. Stored towns are untouched.
func (s *State) SelectSlot(slot domain.Slot) {
	s.active = slot
	s.notify()
}

// Assign stores n into slot and clears the active slot.
func (s *State) Assign(slot domain.Slot, n domain.Neighborhood) error {
	const op = "assign"

	switch {
	case slot != domain.SlotFirst && slot != domain.SlotSecond:
		return &SelectionError{Op: op, Slot: slot, Reason: "no slot to assign", Err: ErrInvalidState}
	case n.IsZero():
		return &SelectionError{Op: op, Slot: slot, Reason: "empty neighborhood", Err: ErrInvalidState}
	case slot == domain.SlotSecond && s.first == nil:
		return &SelectionError{Op: op, Slot: slot, Reason: "first neighborhood must be set first", Err: ErrInvalidState}
	}

	if other := s.slotPtr(slot.Other()); other != nil && other.Equal(n) {
		return &SelectionError{Op: op, Slot: slot, Reason: n.DisplayName(), Err: ErrDuplicateSelection}
	}

	stored := n
	s.setSlot(slot, &stored)
	s.active = domain.SlotNone
	s.notify()
	return nil
}

// Clear removes the neighborhood from slot. At least one neighborhood always
// remains; clearing the first slot while the second is set is governed by
// the clear policy.
func (s *State) Clear(slot domain.Slot) error {
	const op = "clear"

	switch slot {
	case domain.SlotFirst:
		if s.first == nil {
			return &SelectionError{Op: op, Slot: slot, Reason: "slot is empty", Err: ErrInvalidState}
		}
		if s.second == nil {
			return &SelectionError{Op: op, Slot: slot, Reason: "at least one neighborhood is required", Err: ErrInvalidState}
		}
		if s.policy != ClearPromote {
			return &SelectionError{Op: op, Slot: slot, Reason: "second neighborhood is still set", Err: ErrInvalidState}
		}
		s.first, s.second = s.second, nil
	case domain.SlotSecond:
		if s.second == nil {
			return &SelectionError{Op: op, Slot: slot, Reason: "slot is empty", Err: ErrInvalidState}
		}
		s.second = nil
	default:
		return &SelectionError{Op: op, Slot: slot, Reason: "no slot to clear", Err: ErrInvalidState}
	}

	if s.active == domain.SlotSecond {
		s.active = domain.SlotFirst
	}
	s.notify()
	return nil
}

// IsComplete reports whether the minimum of one neighborhood is set
func (s *State) IsComplete() bool {
	return s.first != nil
}

// CanAddSecond reports whether the add-second affordance should be offered
func (s *State) CanAddSecond() bool {
	return s.first != nil && s.second == nil
}

// Snapshot returns a copy of the current state
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{Active: s.active}
	if s.first != nil {
		f := *s.first
		snap.First = &f
	}
	if s.second != nil {
		sec := *s.second
		snap.Second = &sec
	}
	return snap
}

// Towns returns the set neighborhoods in slot order
func (s *State) Towns() []domain.Neighborhood {
	var towns []domain.Neighborhood
	if s.first != nil {
		towns = append(towns, *s.first)
	}
	if s.second != nil {
		towns = append(towns, *s.second)
	}
	return towns
}

// Restore replaces the selection with a persisted setting. The setting is
// validated with the same rules as Assign; on error nothing changes.
func (s *State) Restore(setting domain.TownSetting) error {
	const op = "restore"

	if setting.Primary.IsZero() {
		if setting.Secondary.IsZero() {
			return &SelectionError{Op: op, Slot: domain.SlotFirst, Reason: "no neighborhood in setting", Err: ErrInvalidState}
		}
		return &SelectionError{Op: op, Slot: domain.SlotSecond, Reason: "secondary set without primary", Err: ErrInvalidState}
	}
	if !setting.Secondary.IsZero() && setting.Primary.Equal(setting.Secondary) {
		return &SelectionError{Op: op, Slot: domain.SlotSecond, Reason: setting.Secondary.DisplayName(), Err: ErrDuplicateSelection}
	}

	first := setting.Primary
	s.first = &first
	s.second = nil
	if !setting.Secondary.IsZero() {
		second := setting.Secondary
		s.second = &second
	}
	s.active = domain.SlotFirst
	s.notify()
	return nil
}

// Confirm returns the setting to persist. It fails until a first
// neighborhood is chosen.
func (s *State) Confirm() (domain.TownSetting, error) {
	if !s.IsComplete() {
		return domain.TownSetting{}, &SelectionError{Op: "confirm", Slot: domain.SlotFirst, Reason: "no neighborhood selected", Err: ErrInvalidState}
	}
	setting := domain.TownSetting{Primary: *s.first}
	if s.second != nil {
		setting.Secondary = *s.second
	}
	return setting, nil
}

func (s *State) slotPtr(slot domain.Slot) *domain.Neighborhood {
	switch slot {
	case domain.SlotFirst:
		return s.first
	case domain.SlotSecond:
		return s.second
	default:
		return nil
	}
}

func (s *State) setSlot(slot domain.Slot, n *domain.Neighborhood) {
	if slot == domain.SlotFirst {
		s.first = n
	} else {
		s.second = n
	}
}

func (s *State) notify() {
	if len(s.observers) == 0 {
		return
	}
	snap := s.Snapshot()
	// Copy so an observer may unsubscribe itself
	observers := make([]observerEntry, len(s.observers))
	copy(observers, s.observers)
	for _, o := range observers {
		o.fn(snap)
	}
}
