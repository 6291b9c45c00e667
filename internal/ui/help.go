package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// helpSection is one titled block of key descriptions
type helpSection struct {
	title string
	keys  [][2]string
}

var helpSections = []helpSection{
	{"동네 설정", [][2]string{
		{"←/→, h/l", "동네 버튼 이동 (채워진 동네는 바로 선택)"},
		{"enter", "동네 검색 열기"},
		{"+, a", "두 번째 동네 추가"},
		{"x", "선택한 동네 삭제"},
		{"c", "동네 설정 저장"},
	}},
	{"동네 검색", [][2]string{
		{"↑/↓", "결과 이동"},
		{"enter", "동네 선택"},
		{"esc", "취소"},
	}},
	{"판매내역", [][2]string{
		{"↑/↓, j/k", "게시글 이동"},
		{"r, space", "판매중 ⇄ 예약중"},
		{"s", "거래완료로 변경"},
		{"enter", "채팅 열기"},
	}},
	{"글쓰기", [][2]string{
		{"enter, i", "작성 시작"},
		{"tab", "다음 항목"},
		{"ctrl+s", "게시글 올리기"},
		{"esc", "작성 종료"},
	}},
	{"공통", [][2]string{
		{"tab/shift+tab", "화면 전환"},
		{"?", "도움말 열기/닫기"},
		{"H", "전체 도움말 (pager)"},
		{"q", "종료"},
	}},
}

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContent renders the help information with colors
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("208")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(16)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("dongne 도움말"))
	help.WriteString("\n")

	for i, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, k := range section.keys {
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(k[0]), descStyle.Render(k[1])))
		}
		if i < len(helpSections)-1 {
			help.WriteString("\n")
		}
	}
	return strings.TrimRight(help.String(), "\n")
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
