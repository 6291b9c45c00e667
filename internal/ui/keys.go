package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"dongne/internal/ui/input/types"
)

// keyMap documents the bindings for the footer help. Dispatch itself is done
// by the input mode handlers.
type keyMap struct {
	screen types.Screen

	Slots   key.Binding
	Pick    key.Binding
	Add     key.Binding
	Clear   key.Binding
	Confirm key.Binding
	Move    key.Binding
	Reserve key.Binding
	SoldOut key.Binding
	Chat    key.Binding
	Compose key.Binding
	Publish key.Binding
	Tab     key.Binding
	Help    key.Binding
	Pager   key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Slots:   key.NewBinding(key.WithKeys("left", "right", "h", "l"), key.WithHelp("←/→", "동네 이동")),
		Pick:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "동네 검색")),
		Add:     key.NewBinding(key.WithKeys("+", "a"), key.WithHelp("+", "동네 추가")),
		Clear:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "삭제")),
		Confirm: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "저장")),
		Move:    key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("↑/↓", "이동")),
		Reserve: key.NewBinding(key.WithKeys("r", " "), key.WithHelp("r", "예약 변경")),
		SoldOut: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "거래완료")),
		Chat:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "채팅")),
		Compose: key.NewBinding(key.WithKeys("enter", "i"), key.WithHelp("enter", "입력")),
		Publish: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "완료")),
		Tab:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "화면 전환")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "도움말")),
		Pager:   key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "전체 도움말")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "종료")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	switch k.screen {
	case types.ScreenSales:
		return []key.Binding{k.Move, k.Reserve, k.SoldOut, k.Chat, k.Tab, k.Help, k.Quit}
	case types.ScreenWrite:
		return []key.Binding{k.Compose, k.Publish, k.Tab, k.Help, k.Quit}
	case types.ScreenChat:
		return []key.Binding{k.Compose, k.Tab, k.Help, k.Quit}
	default:
		return []key.Binding{k.Slots, k.Pick, k.Add, k.Clear, k.Confirm, k.Tab, k.Help, k.Quit}
	}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Slots, k.Pick, k.Add, k.Clear, k.Confirm},
		{k.Move, k.Reserve, k.SoldOut, k.Chat},
		{k.Compose, k.Publish},
		{k.Tab, k.Help, k.Pager, k.Quit},
	}
}
