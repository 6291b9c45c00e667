package town

import (
	"errors"
	"fmt"

	"dongne/internal/domain"
)

// Sentinel errors. Both are recoverable: the state is left as it was.
var (
	// ErrDuplicateSelection means the neighborhood is already held by the other slot
	ErrDuplicateSelection = errors.New("duplicate selection")
	// ErrInvalidState means the requested transition is not allowed
	ErrInvalidState = errors.New("invalid state")
)

// SelectionError carries the operation and slot of a rejected mutation
type SelectionError struct {
	Op     string
	Slot   domain.Slot
	Reason string
	Err    error
}

func (e *SelectionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s(%s): %v", e.Op, e.Slot, e.Err)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *SelectionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ClearPolicy decides what clearing the first slot does while the second is set
type ClearPolicy int

const (
	// ClearDisallow rejects the clear with ErrInvalidState
	ClearDisallow ClearPolicy = iota
	// ClearPromote moves the second neighborhood into the first slot
	ClearPromote
)

func (p ClearPolicy) String() string {
	switch p {
	case ClearPromote:
		return "promote"
	default:
		return "disallow"
	}
}

// ParseClearPolicy parses the config value; empty means ClearDisallow
func ParseClearPolicy(s string) (ClearPolicy, error) {
	switch s {
	case "", "disallow":
		return ClearDisallow, nil
	case "promote":
		return ClearPromote, nil
	default:
		return ClearDisallow, fmt.Errorf("unknown clear policy %q", s)
	}
}

// Snapshot is a copy of the selection handed to observers
type Snapshot struct {
	First  *domain.Neighborhood
	Second *domain.Neighborhood
	Active domain.Slot
}

// Town returns the neighborhood in slot, if any
func (s Snapshot) Town(slot domain.Slot) (domain.Neighborhood, bool) {
	var p *domain.Neighborhood
	switch slot {
	case domain.SlotFirst:
		p = s.First
	case domain.SlotSecond:
		p = s.Second
	}
	if p == nil {
		return domain.Neighborhood{}, false
	}
	return *p, true
}

// Count returns the number of filled slots
func (s Snapshot) Count() int {
	n := 0
	if s.First != nil {
		n++
	}
	if s.Second != nil {
		n++
	}
	return n
}

// IsComplete mirrors State.IsComplete for renderers holding only a snapshot
func (s Snapshot) IsComplete() bool {
	return s.First != nil
}

// CanAddSecond mirrors State.CanAddSecond
func (s Snapshot) CanAddSecond() bool {
	return s.First != nil && s.Second == nil
}

// Observer receives the state after every successful mutation
type Observer func(Snapshot)
