package views

import (
	"strings"
)

// Write form fields in tab order
const (
	FieldTitle = iota
	FieldPrice
	FieldBody
	FieldCount
)

func (r *Renderer) renderWrite(state WriteState) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("중고거래 글쓰기"))
	b.WriteString("\n")

	fields := []string{state.Title, state.Price, state.Body}
	for i, f := range fields {
		style := r.styles.Field
		if state.Composing && state.Field == i {
			style = r.styles.FieldFocused
		}
		b.WriteString(style.Render(f))
		b.WriteString("\n")
	}

	if state.Composing {
		b.WriteString(r.styles.Dim.Render("tab 다음 항목 • ctrl+s 완료 • esc 나가기"))
	} else {
		b.WriteString(r.styles.Dim.Render("enter 작성 시작 • ctrl+s 완료"))
	}
	return b.String()
}
