package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dongne/internal/ui/input/types"
)

// PickerMode searches the neighborhood catalog for the slot being edited
type PickerMode struct {
	TextInputMode
}

func NewPickerMode(ti *textinput.Model) *PickerMode {
	return &PickerMode{
		TextInputMode: NewTextInputMode(types.ModePicker, "picker", "동네 검색: ", ti),
	}
}

// HandleKey adds result navigation on top of text entry; enter picks the
// highlighted neighborhood instead of submitting the query.
func (m *PickerMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "up", "ctrl+p", "ctrl+k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "down", "ctrl+n", "ctrl+j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "enter":
		if ctx.TotalItems() == 0 {
			return nil, true
		}
		return []types.Action{types.PickTownAction{}}, true
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}
