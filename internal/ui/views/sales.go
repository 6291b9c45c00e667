package views

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"dongne/internal/domain"
	"dongne/internal/listing"
)

const titleWidth = 28

func (r *Renderer) renderSales(state SalesState, width int) string {
	if len(state.Posts) == 0 {
		return r.styles.Dim.Render("판매중인 게시글이 없어요.")
	}

	var lines []string
	for i, p := range state.Posts {
		lines = append(lines, r.renderPostCell(p, i == state.Cursor))
	}
	lines = append(lines, "", r.styles.Dim.Render("r 예약 상태 변경 • s 거래완료 • enter 채팅"))
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderPostCell(p domain.Post, selected bool) string {
	title := runewidth.FillRight(runewidth.Truncate(p.Title, titleWidth, "…"), titleWidth)

	badge := r.styles.StateStyle(p.State.String()).Render(fmt.Sprintf("[%s]", p.State.Label()))
	price := r.styles.Price.Render(listing.FormatPrice(p.Price))

	line1 := fmt.Sprintf("%s %s %s", title, badge, price)
	line2 := r.styles.Dim.Render(fmt.Sprintf("%s · %s", p.Address, postedLabel(p)))
	if c := listing.Counters(p); c != "" {
		line2 += "  " + c
	}
	if action := listing.StateActionLabel(p.State); action != "" && selected {
		line2 += "  " + r.styles.Highlight.Render("["+action+"]")
	}

	prefix := "  "
	if selected {
		prefix = r.styles.Highlight.Render("▸ ")
		line1 = r.styles.HighlightBg.Render(line1)
	}
	return prefix + line1 + "\n  " + line2
}

func postedLabel(p domain.Post) string {
	if p.PostedAt.IsZero() {
		return "방금 전"
	}
	return p.PostedAt.Format("1월 2일")
}
