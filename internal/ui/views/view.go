package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dongne/internal/domain"
	"dongne/internal/town"
	"dongne/internal/ui/input/types"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width    int
	Height   int
	Screen   types.Screen
	ModeName string

	Town   TownState
	Picker *PickerState // nil unless the picker is open
	Sales  SalesState
	Write  WriteState
	Chat   ChatState

	Alert     AlertState
	ShowHelp  bool
	HelpText  string // rendered help.Model output for the footer
	HelpPopup string // full help shown in the overlay
}

// TownState is what the town screen draws
type TownState struct {
	Snapshot   town.Snapshot
	Focused    domain.Slot
	Nearby     int
	ShowNearby bool
}

// PickerState is the neighborhood search popup
type PickerState struct {
	Slot    domain.Slot
	Input   string
	Results []domain.Neighborhood
	Index   int
}

// SalesState lists the user's posts
type SalesState struct {
	Posts  []domain.Post
	Cursor int
}

// WriteState holds the rendered form widgets
type WriteState struct {
	Town      string
	Title     string
	Price     string
	Body      string
	Field     int
	Composing bool
}

// ChatState is the open chat room, if any
type ChatState struct {
	Partner   string
	PostTitle string
	Messages  []domain.Message
	Input     string
	Typing    bool
}

// AlertState is the transient banner under the tabs
type AlertState struct {
	Text    string
	IsError bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles exposes the style set so the model can style its widgets
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTabs(state))
	content.WriteString("\n")

	if state.Alert.Text != "" {
		style := r.styles.Alert
		if state.Alert.IsError {
			style = r.styles.AlertError
		}
		content.WriteString(style.Render(state.Alert.Text))
	}
	content.WriteString("\n\n")

	switch state.Screen {
	case types.ScreenTown:
		content.WriteString(r.renderTown(state.Town, state.Width))
		if state.Picker != nil {
			content.WriteString("\n")
			content.WriteString(r.renderPicker(*state.Picker, state.Width))
		}
	case types.ScreenSales:
		content.WriteString(r.renderSales(state.Sales, state.Width))
	case types.ScreenWrite:
		content.WriteString(r.renderWrite(state.Write))
	case types.ScreenChat:
		content.WriteString(r.renderChat(state.Chat, state.Width))
	}

	// Push the footer to the bottom
	footer := r.styles.Status.Render(state.ModeName) + "  " + r.styles.Help.Render(state.HelpText)
	availableLines := state.Height - 2
	if availableLines <= 0 {
		availableLines = 22
	}
	currentLines := strings.Count(content.String(), "\n") + 1
	if pad := availableLines - currentLines - lipgloss.Height(footer); pad > 0 {
		content.WriteString(strings.Repeat("\n", pad))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	if state.ShowHelp && state.HelpPopup != "" {
		return r.popupRender.RenderPopupOverlay(state.HelpPopup, state.Height, state.Width, r.styles.PickerBox)
	}
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderTabs(state ViewState) string {
	tabs := make([]string, 0, len(types.Screens))
	for _, s := range types.Screens {
		style := r.styles.Tab
		if s == state.Screen {
			style = r.styles.TabActive
		}
		tabs = append(tabs, style.Render(s.Title()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
