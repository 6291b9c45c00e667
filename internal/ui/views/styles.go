package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Brand is the accent color used for the active slot and selected rows
const Brand = lipgloss.Color("208")

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	Tab          lipgloss.Style
	TabActive    lipgloss.Style
	Dim          lipgloss.Style
	Status       lipgloss.Style
	Help         lipgloss.Style
	Main         lipgloss.Style
	Slot         lipgloss.Style
	SlotFocused  lipgloss.Style
	SlotActive   lipgloss.Style
	SlotAdd      lipgloss.Style
	Alert        lipgloss.Style
	AlertError   lipgloss.Style
	PickerBox    lipgloss.Style
	Highlight    lipgloss.Style
	HighlightBg  lipgloss.Style
	Price        lipgloss.Style
	StateOnSale  lipgloss.Style
	StateReserve lipgloss.Style
	StateSold    lipgloss.Style
	Field        lipgloss.Style
	FieldFocused lipgloss.Style
	BubbleMine   lipgloss.Style
	BubbleTheirs lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(Brand).
			MarginBottom(1),
		Tab:       lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("245")),
		TabActive: lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(Brand).Underline(true),
		Dim:       lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Slot: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		SlotFocused: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("252")).
			Padding(0, 1),
		SlotActive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(Brand).
			Foreground(Brand).
			Bold(true).
			Padding(0, 1),
		SlotAdd: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1),
		Alert:      lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("236")).Padding(0, 1),
		AlertError: lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160")).Padding(0, 1),
		PickerBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1).
			MarginTop(1),
		Highlight:    lipgloss.NewStyle().Foreground(Brand).Bold(true),
		HighlightBg:  lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Price:        lipgloss.NewStyle().Bold(true),
		StateOnSale:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StateReserve: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		StateSold:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")), // gray
		Field:        lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(lipgloss.Color("238")),
		FieldFocused: lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(Brand),
		BubbleMine:   lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(Brand).Padding(0, 1),
		BubbleTheirs: lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("252")).Padding(0, 1),
	}
}

// StateStyle returns the badge style for a sale state
func (s *Styles) StateStyle(state string) lipgloss.Style {
	switch state {
	case "reserved":
		return s.StateReserve
	case "sold_out":
		return s.StateSold
	default:
		return s.StateOnSale
	}
}
