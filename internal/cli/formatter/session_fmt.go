package formatter

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/shiftpay/internal/domain"
)

// FormatSessions renders closed sessions as a table with a total row.
func FormatSessions(title string, sessions []*domain.WorkSession) string {
	if len(sessions) == 0 {
		return Dim("No sessions.") + "\n"
	}
	rows := make([][]string, 0, len(sessions)+1)
	for _, s := range sessions {
		end := Dim("open")
		if s.EndedAt != nil {
			end = FormatClock(*s.EndedAt)
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			s.StartedAt.Format(domain.DayLayout),
			FormatClock(s.StartedAt),
			end,
			FormatHours(s.Hours()),
		})
	}
	rows = append(rows, []string{"", "", "", Bold("total"), Bold(FormatHours(domain.SumHours(sessions)))})

	table := RenderAlignedTable(
		[]string{"ID", "DAY", "START", "END", "DURATION"},
		[]Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight},
		rows,
	)
	if title == "" {
		return table
	}
	return Header(title) + "\n" + table
}

// FormatDaySessions renders the "HH:MM - HH:MM" list shown before adding a
// range to an existing day.
func FormatDaySessions(lang domain.Language, day time.Time, sessions []*domain.WorkSession) string {
	var b strings.Builder
	b.WriteString(T(lang, MsgExistingSessions, day.Format(domain.DayLayout)) + "\n")
	for _, s := range sessions {
		if s.EndedAt == nil {
			continue
		}
		b.WriteString(fmt.Sprintf("- %s - %s\n", FormatClock(s.StartedAt), FormatClock(*s.EndedAt)))
	}
	return b.String()
}

// FormatWorkStatus renders whether a session is running and for how long.
func FormatWorkStatus(open *domain.WorkSession, todayHours float64, now time.Time) string {
	var b strings.Builder
	if open != nil {
		b.WriteString(fmt.Sprintf("%s since %s (%s)\n",
			StyleGreen.Render("● Working"),
			open.StartedAt.Format(domain.TimestampLayout),
			FormatElapsed(open.StartedAt, now)))
	} else {
		b.WriteString(StyleDim.Render("○ Not working") + "\n")
	}
	b.WriteString(fmt.Sprintf("Today: %s\n", FormatHours(todayHours)))
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
