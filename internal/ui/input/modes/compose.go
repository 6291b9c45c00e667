package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"dongne/internal/ui/input/types"
)

// ComposeMode edits the write form. The form widgets live in the model,
// so unhandled keys are forwarded to it as FormKeyAction.
type ComposeMode struct{}

func NewComposeMode() *ComposeMode {
	return &ComposeMode{}
}

func (m *ComposeMode) Name() string {
	return "compose"
}

func (m *ComposeMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ComposeMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ComposeMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "tab":
		return []types.Action{types.NextFieldAction{}}, true
	case "ctrl+s":
		return []types.Action{types.PublishDraftAction{}}, true
	}
	return []types.Action{types.FormKeyAction{Key: msg}}, true
}
