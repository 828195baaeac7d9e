package notifier

import (
	"fmt"
	"html"
	"strings"

	"StopLossCowboy/internal/model"
)

// FormatRunReport renders a run as a Telegram HTML message.
func FormatRunReport(report *model.RunReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🤠 <b>Stop loss proposals</b> | %s\n", html.EscapeString(report.Column)))
	b.WriteString(fmt.Sprintf("File: %s\n", html.EscapeString(report.StockFile)))
	b.WriteString(fmt.Sprintf("Rows: %d | Failed: %d\n\n", len(report.Proposals), report.Failed()))

	for _, p := range report.Proposals {
		symbol := html.EscapeString(p.Symbol)
		if p.Err != nil {
			b.WriteString(fmt.Sprintf("❌ %d %s: %s\n", p.Line, symbol, html.EscapeString(p.Err.Error())))
			continue
		}
		r := p.Request
		b.WriteString(fmt.Sprintf("✅ %d %s: <b>%.2f</b> (%s %s %dd, peak %.2f, -%.0f%%)\n",
			p.Line, symbol, p.StopLoss, r.Mode, r.Field, r.Days, p.Peak, r.Discount*100))
	}
	return b.String()
}
