package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"dongne/internal/domain"
	"dongne/internal/ui/input/types"
)

type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil // No special actions on enter
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil // No special actions on exit
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	// Keys shared by every screen
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "q":
		return []types.Action{types.QuitAction{}}, true
	case "tab":
		return []types.Action{types.SwitchScreenAction{Delta: 1}}, true
	case "shift+tab":
		return []types.Action{types.SwitchScreenAction{Delta: -1}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "H":
		return []types.Action{types.OpenHelpPagerAction{}}, true
	}

	switch ctx.CurrentScreen() {
	case types.ScreenTown:
		return m.handleTownKey(msg, ctx)
	case types.ScreenSales:
		return m.handleSalesKey(msg, ctx)
	case types.ScreenWrite:
		switch msg.String() {
		case "enter", "i":
			return []types.Action{types.ChangeModeAction{Mode: types.ModeCompose}}, true
		case "ctrl+s":
			return []types.Action{types.PublishDraftAction{}}, true
		}
	case types.ScreenChat:
		switch msg.String() {
		case "enter", "i":
			return []types.Action{types.ChangeModeAction{Mode: types.ModeChat}}, true
		}
	}
	return nil, false
}

func (m *NormalMode) handleTownKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "left", "h", "1":
		return []types.Action{types.FocusSlotAction{Slot: domain.SlotFirst}}, true
	case "right", "l", "2":
		return []types.Action{types.FocusSlotAction{Slot: domain.SlotSecond}}, true
	case "enter", " ":
		// On an empty second slot the button is the "+" affordance
		if ctx.FocusedSlot() == domain.SlotSecond && ctx.CanAddSecond() {
			return []types.Action{types.AddSecondTownAction{}}, true
		}
		return []types.Action{types.OpenPickerAction{Slot: ctx.FocusedSlot()}}, true
	case "+", "a":
		return []types.Action{types.AddSecondTownAction{}}, true
	case "x", "delete", "backspace":
		return []types.Action{types.ClearSlotAction{Slot: ctx.FocusedSlot()}}, true
	case "c":
		return []types.Action{types.ConfirmTownsAction{}}, true
	}
	return nil, false
}

func (m *NormalMode) handleSalesKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "up", "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "down", "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "home", "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case "end", "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	}

	if ctx.TotalItems() == 0 {
		return nil, false
	}
	switch msg.String() {
	case "r", " ":
		return []types.Action{types.ToggleReservationAction{}}, true
	case "s":
		return []types.Action{types.MarkSoldOutAction{}}, true
	case "enter":
		return []types.Action{types.OpenChatAction{}}, true
	}
	return nil, false
}
