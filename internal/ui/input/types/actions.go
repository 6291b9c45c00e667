package types

import (
	tea "github.com/charmbracelet/bubbletea"

	"dongne/internal/domain"
)

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

type SwitchScreenAction struct {
	Delta int // +1 next tab, -1 previous tab
}

func (a SwitchScreenAction) Type() string { return "switch_screen" }

// Town selection actions
type FocusSlotAction struct {
	Slot domain.Slot
}

func (a FocusSlotAction) Type() string { return "focus_slot" }

type OpenPickerAction struct {
	Slot domain.Slot
}

func (a OpenPickerAction) Type() string { return "open_picker" }

type AddSecondTownAction struct{}

func (a AddSecondTownAction) Type() string { return "add_second_town" }

type PickTownAction struct{}

func (a PickTownAction) Type() string { return "pick_town" }

type ClearSlotAction struct {
	Slot domain.Slot
}

func (a ClearSlotAction) Type() string { return "clear_slot" }

type ConfirmTownsAction struct{}

func (a ConfirmTownsAction) Type() string { return "confirm_towns" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode
}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Listing actions
type ToggleReservationAction struct{}

func (a ToggleReservationAction) Type() string { return "toggle_reservation" }

type MarkSoldOutAction struct{}

func (a MarkSoldOutAction) Type() string { return "mark_sold_out" }

type OpenChatAction struct{}

func (a OpenChatAction) Type() string { return "open_chat" }

// Write form actions
type NextFieldAction struct{}

func (a NextFieldAction) Type() string { return "next_field" }

type PublishDraftAction struct{}

func (a PublishDraftAction) Type() string { return "publish_draft" }

// FormKeyAction forwards a key to the focused form widget
type FormKeyAction struct {
	Key tea.KeyMsg
}

func (a FormKeyAction) Type() string { return "form_key" }

// Other actions
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type OpenHelpPagerAction struct{}

func (a OpenHelpPagerAction) Type() string { return "open_help_pager" }

type QuitAction struct {
	Force bool
}

func (a QuitAction) Type() string { return "quit" }
