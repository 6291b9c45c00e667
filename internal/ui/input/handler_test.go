package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dongne/internal/domain"
	"dongne/internal/town"
	"dongne/internal/ui/input/types"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func townContext(slot domain.Slot, first *domain.Neighborhood) *ModelContext {
	return &ModelContext{
		Screen:   types.ScreenTown,
		Slot:     slot,
		Snapshot: town.Snapshot{First: first},
	}
}

func TestNormalModeTownKeys(t *testing.T) {
	h := New()
	first := &domain.Neighborhood{ID: "yeoksam-dong", Name: "역삼동"}

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, townContext(domain.SlotFirst, nil))
	require.Len(t, actions, 1)
	assert.Equal(t, types.OpenPickerAction{Slot: domain.SlotFirst}, actions[0])

	// Enter on the empty second slot is the "+" button
	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, townContext(domain.SlotSecond, first))
	require.Len(t, actions, 1)
	assert.IsType(t, types.AddSecondTownAction{}, actions[0])

	actions, _ = h.HandleKey(runes("x"), townContext(domain.SlotSecond, first))
	require.Len(t, actions, 1)
	assert.Equal(t, types.ClearSlotAction{Slot: domain.SlotSecond}, actions[0])

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyLeft}, townContext(domain.SlotSecond, first))
	require.Len(t, actions, 1)
	assert.Equal(t, types.FocusSlotAction{Slot: domain.SlotFirst}, actions[0])

	actions, _ = h.HandleKey(runes("z"), townContext(domain.SlotFirst, first))
	assert.Empty(t, actions)
}

func TestSalesKeysNeedItems(t *testing.T) {
	h := New()

	empty := &ModelContext{Screen: types.ScreenSales}
	actions, _ := h.HandleKey(runes("r"), empty)
	assert.Empty(t, actions)

	full := &ModelContext{Screen: types.ScreenSales, Total: 3}
	actions, _ = h.HandleKey(runes("r"), full)
	require.Len(t, actions, 1)
	assert.IsType(t, types.ToggleReservationAction{}, actions[0])
}

func TestPickerModeTextAndNavigation(t *testing.T) {
	h := New()
	ctx := &ModelContext{Screen: types.ScreenTown, Total: 2}

	_, cmd := h.ChangeMode(types.ModePicker, ctx)
	assert.NotNil(t, cmd)
	require.Equal(t, types.ModePicker, h.CurrentMode())
	require.NotNil(t, h.TextInput())

	actions, _ := h.HandleKey(runes("망원"), ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.UpdateTextAction{Text: "망원"}, actions[0])

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyDown}, ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "down"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, []types.Action{types.PickTownAction{}}, actions)

	// Nothing to pick
	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, &ModelContext{Screen: types.ScreenTown})
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	require.Len(t, actions, 2)
	assert.Equal(t, types.CancelTextAction{Mode: types.ModePicker}, actions[0])
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}

func TestComposeModeForwardsKeys(t *testing.T) {
	h := New()
	ctx := &ModelContext{Screen: types.ScreenWrite}

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.ChangeModeAction{Mode: types.ModeCompose}, actions[0])
	assert.Equal(t, "compose", h.ModeName())

	key := runes("q")
	actions, _ = h.HandleKey(key, ctx)
	assert.Equal(t, []types.Action{types.FormKeyAction{Key: key}}, actions, "q types instead of quitting")

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	assert.Equal(t, []types.Action{types.NextFieldAction{}}, actions)
}

func TestGlobalKeys(t *testing.T) {
	h := New()
	ctx := &ModelContext{Screen: types.ScreenChat}

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	assert.Equal(t, []types.Action{types.SwitchScreenAction{Delta: 1}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyShiftTab}, ctx)
	assert.Equal(t, []types.Action{types.SwitchScreenAction{Delta: -1}}, actions)

	actions, _ = h.HandleKey(runes("q"), ctx)
	assert.Equal(t, []types.Action{types.QuitAction{}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlC}, ctx)
	assert.Equal(t, []types.Action{types.QuitAction{Force: true}}, actions)
}
