package listing

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"dongne/internal/domain"
)

var (
	ErrPostNotFound      = errors.New("post not found")
	ErrInvalidTransition = errors.New("invalid sale state transition")
	ErrInvalidDraft      = errors.New("invalid draft")
)

// MaxTitleLength bounds post titles in runes
const MaxTitleLength = 40

var printer = message.NewPrinter(language.Korean)

// FormatPrice renders a price the way listing cells show it, e.g. "12,000원"
func FormatPrice(won int) string {
	if won == 0 {
		return "나눔"
	}
	return printer.Sprintf("%d원", won)
}

// StateActionLabel is the caption of the button that flips the reservation state
func StateActionLabel(s domain.SaleState) string {
	switch s {
	case domain.SaleStateReserved:
		return "판매중으로 변경"
	case domain.SaleStateOnSale:
		return "예약중으로 변경"
	default:
		return ""
	}
}

// Counters renders the chat and like counters; zero counters are omitted
func Counters(p domain.Post) string {
	var parts []string
	if p.ChatCount > 0 {
		parts = append(parts, fmt.Sprintf("💬 %d", p.ChatCount))
	}
	if p.LikeCount > 0 {
		parts = append(parts, fmt.Sprintf("♡ %d", p.LikeCount))
	}
	return strings.Join(parts, "  ")
}

// Draft is a post being written
type Draft struct {
	Title string
	Price int
	Body  string
}

// Validate checks a draft before publishing
func (d Draft) Validate() error {
	title := strings.TrimSpace(d.Title)
	switch {
	case title == "":
		return fmt.Errorf("%w: 제목을 입력해주세요", ErrInvalidDraft)
	case utf8.RuneCountInString(title) > MaxTitleLength:
		return fmt.Errorf("%w: 제목은 %d자 이하로 입력해주세요", ErrInvalidDraft, MaxTitleLength)
	case d.Price < 0:
		return fmt.Errorf("%w: 가격을 확인해주세요", ErrInvalidDraft)
	case strings.TrimSpace(d.Body) == "":
		return fmt.Errorf("%w: 내용을 입력해주세요", ErrInvalidDraft)
	}
	return nil
}

// BodyPlaceholder is the hint shown in an empty description field
func BodyPlaceholder(town string) string {
	if town == "" {
		town = "우리 동네"
	}
	return fmt.Sprintf("%s에 올릴 게시글 내용을 작성해주세요.(가품 및 판매금지품목은 게시가 제한될 수 있어요.)", town)
}
