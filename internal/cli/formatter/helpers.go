package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// FormatHours renders an hour count like "8h" or "7.5h". Whole values drop
// the fraction so tables stay narrow.
func FormatHours(h float64) string {
	if h == float64(int64(h)) {
		return fmt.Sprintf("%dh", int64(h))
	}
	s := strings.TrimRight(fmt.Sprintf("%.2f", h), "0")
	s = strings.TrimRight(s, ".")
	return s + "h"
}

// HoursStyled renders an hour total colored by how close it is to the
// 40-hour week target.
func HoursStyled(total, target float64) string {
	text := FormatHours(total)
	switch {
	case total >= target:
		return StyleGreen.Render(text)
	case total > 0:
		return StyleYellow.Render(text)
	default:
		return StyleRed.Render(text)
	}
}
