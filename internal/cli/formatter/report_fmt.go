package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/shiftpay/internal/domain"
	"github.com/alexanderramin/shiftpay/internal/service"
)

// FormatReportText renders the plain, uncolored monthly summary used for
// chat replies and file export. Figures are rounded to two decimals.
func FormatReportText(report *service.MonthlyReport, lang domain.Language) string {
	b := report.Breakdown.Rounded()
	lines := []string{
		T(lang, MsgReportTitle, int(report.Period.Month), report.Period.Year),
		fmt.Sprintf("%s: %.2f", T(lang, MsgHours), b.TotalHours),
		fmt.Sprintf("%s: %s", T(lang, MsgGross), FormatMoney(b.GrossPay)),
		fmt.Sprintf("%s: %s", T(lang, MsgIncomeTax), FormatMoney(b.IncomeTax)),
		fmt.Sprintf("%s: %s", T(lang, MsgCreditDiscount), FormatMoney(b.CreditOffset)),
		fmt.Sprintf("%s: %s", T(lang, MsgPension), FormatMoney(b.Pension)),
		fmt.Sprintf("%s: %s", T(lang, MsgInsurance), FormatMoney(b.Insurance)),
		fmt.Sprintf("%s: %s", T(lang, MsgNet), FormatMoney(b.NetPay)),
	}
	return strings.Join(lines, "\n") + "\n"
}

// FormatReport renders the monthly report as a boxed, right-aligned table.
func FormatReport(report *service.MonthlyReport, lang domain.Language) string {
	b := report.Breakdown.Rounded()

	rows := [][]string{
		{T(lang, MsgHours), FormatHours(b.TotalHours)},
		{T(lang, MsgGross), Money(b.GrossPay)},
		{T(lang, MsgPension), Deduction(b.Pension)},
		{T(lang, MsgInsurance), Deduction(b.Insurance)},
		{T(lang, MsgIncomeTax), Deduction(b.IncomeTax)},
		{Dim(T(lang, MsgCreditDiscount)), Dim(FormatMoney(b.CreditOffset))},
		{Bold(T(lang, MsgNet)), StyleGreen.Bold(true).Render(FormatMoney(b.NetPay))},
	}
	table := RenderAlignedTable([]string{report.UserID, report.Period.String()},
		[]Align{AlignLeft, AlignRight}, rows)

	title := T(lang, MsgReportTitle, int(report.Period.Month), report.Period.Year)
	return RenderBox(title, strings.TrimRight(table, "\n"))
}

// FormatMonths renders the list of months that have recorded work.
func FormatMonths(months []domain.YearMonth) string {
	if len(months) == 0 {
		return Dim("No recorded work yet.") + "\n"
	}
	var b strings.Builder
	b.WriteString(Header("Active months") + "\n")
	for _, ym := range months {
		b.WriteString("  " + StyleBlue.Render(ym.String()) + "\n")
	}
	return b.String()
}

// FormatDispatchSummary renders the outcome of a batch report dispatch.
func FormatDispatchSummary(s *service.DispatchSummary) string {
	var b strings.Builder
	b.WriteString(Header("Dispatch "+s.Period.String()) + "\n")
	b.WriteString(fmt.Sprintf("  %s %d delivered\n", StyleGreen.Render("✔"), len(s.Delivered)))
	if len(s.Failed) == 0 {
		return b.String()
	}
	b.WriteString(fmt.Sprintf("  %s %d failed\n", StyleRed.Render("✖"), len(s.Failed)))

	rows := make([][]string, 0, len(s.Failed))
	for _, userID := range sortedKeys(s.Failed) {
		rows = append(rows, []string{userID, StyleRed.Render(s.Failed[userID].Error())})
	}
	b.WriteString("\n" + RenderTable([]string{"USER", "ERROR"}, rows))
	return b.String()
}
