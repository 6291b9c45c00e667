package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"dongne/internal/domain"
)

// slotLabelWidth is the display width of a slot button label. Hangul
// syllables are two cells wide, so names are measured with runewidth.
const slotLabelWidth = 14

// SlotLabel fits a neighborhood name into a slot button
func SlotLabel(name string) string {
	name = runewidth.Truncate(name, slotLabelWidth, "…")
	return runewidth.FillRight(name, slotLabelWidth)
}

func (r *Renderer) renderTown(state TownState, width int) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render("동네 선택"))
	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render("지역은 최소 1개 이상 최대 2개까지 설정가능해요."))
	b.WriteString("\n\n")

	first := r.renderSlot(state, domain.SlotFirst)
	second := r.renderSlot(state, domain.SlotSecond)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, first, "  ", second))
	b.WriteString("\n")

	if state.ShowNearby {
		if n, ok := r.nearbyTown(state); ok {
			b.WriteString(r.styles.Dim.Render(fmt.Sprintf("%s 근처 동네 %d개", n.DisplayName(), state.Nearby)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// nearbyTown is the town whose neighbors are counted: the active slot if it
// holds one, otherwise the primary town
func (r *Renderer) nearbyTown(state TownState) (domain.Neighborhood, bool) {
	if n, ok := state.Snapshot.Town(state.Snapshot.Active); ok {
		return n, true
	}
	return state.Snapshot.Town(domain.SlotFirst)
}

func (r *Renderer) renderSlot(state TownState, slot domain.Slot) string {
	snap := state.Snapshot
	n, filled := snap.Town(slot)

	style := r.styles.Slot
	switch {
	case snap.Active == slot:
		style = r.styles.SlotActive
	case state.Focused == slot:
		style = r.styles.SlotFocused
	case !filled:
		style = r.styles.SlotAdd
	}

	var label string
	switch {
	case filled:
		label = SlotLabel(n.DisplayName()) + " ✕"
	case slot == domain.SlotSecond && !snap.CanAddSecond():
		label = SlotLabel("")
	default:
		label = SlotLabel("+") + "  "
	}
	if state.Focused == slot {
		label = "▸ " + label
	} else {
		label = "  " + label
	}
	return style.Render(label)
}

func (r *Renderer) renderPicker(state PickerState, width int) string {
	var b strings.Builder
	b.WriteString(r.styles.Highlight.Render(fmt.Sprintf("%s 동네 선택", slotName(state.Slot))))
	b.WriteString("\n")
	b.WriteString(state.Input)
	b.WriteString("\n")

	if len(state.Results) == 0 {
		b.WriteString(r.styles.Dim.Render("검색 결과가 없어요."))
	}

	const maxRows = 8
	start := 0
	if state.Index >= maxRows {
		start = state.Index - maxRows + 1
	}
	for i := start; i < len(state.Results) && i < start+maxRows; i++ {
		n := state.Results[i]
		line := fmt.Sprintf("%s %s", SlotLabel(n.DisplayName()), r.styles.Dim.Render(n.District))
		if i == state.Index {
			line = r.styles.Highlight.Render("▸ ") + r.styles.HighlightBg.Render(line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(r.styles.Dim.Render("↑/↓ 이동 • enter 선택 • esc 취소"))

	boxWidth := width - 8
	if boxWidth < 30 {
		boxWidth = 30
	}
	return r.styles.PickerBox.Width(boxWidth).Render(b.String())
}

func slotName(slot domain.Slot) string {
	switch slot {
	case domain.SlotSecond:
		return "두 번째"
	default:
		return "첫 번째"
	}
}
