package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

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

// FormatMoney renders an amount with the shekel sign and two decimals.
func FormatMoney(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-₪%.2f", -v)
	}
	return fmt.Sprintf("₪%.2f", v)
}

// FormatHours renders fractional hours as "8h 30m". Seconds are rounded to
// the nearest minute.
func FormatHours(h float64) string {
	total := int(math.Round(h * 60))
	if total <= 0 {
		return "0m"
	}
	hh, mm := total/60, total%60
	switch {
	case hh > 0 && mm > 0:
		return fmt.Sprintf("%dh %dm", hh, mm)
	case hh > 0:
		return fmt.Sprintf("%dh", hh)
	}
	return fmt.Sprintf("%dm", mm)
}

// FormatClock renders the time of day as "HH:MM".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// FormatElapsed renders how long ago start was, relative to now.
func FormatElapsed(start, now time.Time) string {
	return FormatHours(now.Sub(start).Hours())
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
