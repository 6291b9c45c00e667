package types

import (
	tea "github.com/charmbracelet/bubbletea"

	"dongne/internal/domain"
)

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModePicker
	ModeCompose
	ModeChat
)

// Screen is one of the top-level tabs
type Screen int

const (
	ScreenTown Screen = iota
	ScreenSales
	ScreenWrite
	ScreenChat
)

// Screens lists the tabs in display order
var Screens = []Screen{ScreenTown, ScreenSales, ScreenWrite, ScreenChat}

// Title is the tab caption
func (s Screen) Title() string {
	switch s {
	case ScreenTown:
		return "동네 설정"
	case ScreenSales:
		return "판매내역"
	case ScreenWrite:
		return "글쓰기"
	case ScreenChat:
		return "채팅"
	default:
		return "?"
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	CurrentScreen() Screen
	CurrentIndex() int
	TotalItems() int
	FocusedSlot() domain.Slot
	CanAddSecond() bool
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
