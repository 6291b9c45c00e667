package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dongne/internal/chat"
)

func (r *Renderer) renderChat(state ChatState, width int) string {
	if state.Partner == "" {
		return r.styles.Dim.Render("판매내역에서 게시글을 골라 채팅을 시작하세요.")
	}

	var b strings.Builder
	b.WriteString(r.styles.Title.Render(state.Partner))
	b.WriteString("\n")
	if state.PostTitle != "" {
		b.WriteString(r.styles.Dim.Render(state.PostTitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	inner := width - 4
	if inner < 20 {
		inner = 20
	}
	for _, m := range state.Messages {
		at := r.styles.Dim.Render(chat.TimeLabel(m.SentAt))
		if m.Mine {
			bubble := fmt.Sprintf("%s %s", at, r.styles.BubbleMine.Render(m.Text))
			b.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Right, bubble))
		} else {
			b.WriteString(fmt.Sprintf("%s %s", r.styles.BubbleTheirs.Render(m.Text), at))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if state.Typing {
		b.WriteString(state.Input)
	} else {
		b.WriteString(r.styles.Dim.Render("enter 메시지 보내기"))
	}
	return b.String()
}
