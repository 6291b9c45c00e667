package domain

import (
	"fmt"
	"strings"
	"time"
)

// Neighborhood is a selectable local area. Two neighborhoods are the same
// neighborhood when their IDs match.
type Neighborhood struct {
	ID       string `yaml:"id" toml:"id"`
	Name     string `yaml:"name" toml:"name"`
	District string `yaml:"district" toml:"district"`
}

// IsZero reports whether no neighborhood is set
func (n Neighborhood) IsZero() bool {
	return n.ID == ""
}

// Equal compares by identifier only
func (n Neighborhood) Equal(other Neighborhood) bool {
	return n.ID == other.ID
}

// DisplayName is the label shown on slot buttons
func (n Neighborhood) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// Slot is one of the two neighborhood positions a user can fill
type Slot int

const (
	SlotNone Slot = iota
	SlotFirst
	SlotSecond
)

func (s Slot) String() string {
	switch s {
	case SlotNone:
		return "none"
	case SlotFirst:
		return "first"
	case SlotSecond:
		return "second"
	default:
		return fmt.Sprintf("Slot(%d)", int(s))
	}
}

// Other returns the opposite slot; SlotNone has no opposite
func (s Slot) Other() Slot {
	switch s {
	case SlotFirst:
		return SlotSecond
	case SlotSecond:
		return SlotFirst
	default:
		return SlotNone
	}
}

// ParseSlot accepts "first"/"second" and the 1/2 shorthands
func ParseSlot(s string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first", "1", "primary":
		return SlotFirst, nil
	case "second", "2", "secondary":
		return SlotSecond, nil
	default:
		return SlotNone, fmt.Errorf("unknown slot %q", s)
	}
}

// TownSetting is the confirmed neighborhood selection handed to the settings store
type TownSetting struct {
	Primary   Neighborhood
	Secondary Neighborhood // zero when only one neighborhood is set
}

// Count returns how many neighborhoods the setting holds
func (t TownSetting) Count() int {
	n := 0
	if !t.Primary.IsZero() {
		n++
	}
	if !t.Secondary.IsZero() {
		n++
	}
	return n
}

// SaleState is the lifecycle state of a sale post
type SaleState int

const (
	SaleStateOnSale SaleState = iota
	SaleStateReserved
	SaleStateSoldOut
)

func (s SaleState) String() string {
	switch s {
	case SaleStateOnSale:
		return "on_sale"
	case SaleStateReserved:
		return "reserved"
	case SaleStateSoldOut:
		return "sold_out"
	default:
		return fmt.Sprintf("SaleState(%d)", int(s))
	}
}

// Label is the badge shown next to a post title
func (s SaleState) Label() string {
	switch s {
	case SaleStateReserved:
		return "예약중"
	case SaleStateSoldOut:
		return "거래완료"
	default:
		return "판매중"
	}
}

// ParseSaleState maps stored state strings onto SaleState. The legacy
// server value "sales" is accepted for on-sale posts.
func ParseSaleState(s string) (SaleState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on_sale", "sales":
		return SaleStateOnSale, nil
	case "reserved":
		return SaleStateReserved, nil
	case "sold_out":
		return SaleStateSoldOut, nil
	default:
		return SaleStateOnSale, fmt.Errorf("unknown sale state %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (s SaleState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *SaleState) UnmarshalText(b []byte) error {
	parsed, err := ParseSaleState(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Post is a sale listing
type Post struct {
	ID        int       `yaml:"id"`
	Title     string    `yaml:"title"`
	Address   string    `yaml:"address"`
	Price     int       `yaml:"price"`
	State     SaleState `yaml:"state"`
	Body      string    `yaml:"body"`
	ChatCount int       `yaml:"chats"`
	LikeCount int       `yaml:"likes"`
	PostedAt  time.Time `yaml:"posted_at"`
}

// Message is a single chat line
type Message struct {
	Sender string
	Text   string
	SentAt time.Time
	Mine   bool
}
