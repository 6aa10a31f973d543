package interactive

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iwvelando/mortgage-forecast/pkg/format"
	"github.com/iwvelando/mortgage-forecast/pkg/output"
)

const (
	reverseVideo = "\x1b[7m"
	resetVideo   = "\x1b[0m"
	lineBreak    = "\r\n"
)

// Render draws s for a terminal of the given size. Lines are separated by
// CRLF so the output is correct in raw mode.
func Render(s State, width, height int) string {
	var lines []string
	switch s.Mode {
	case ModeSpreadsheet:
		lines = renderSpreadsheet(s, width, height)
	case ModeSummary:
		lines = renderSummary(s)
	default:
		lines = renderForm(s)
	}

	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		lines[i] = truncate(line, width)
	}
	return strings.Join(lines, lineBreak)
}

func renderForm(s State) []string {
	field := s.Form.Fields[s.Field]

	lines := []string{
		fmt.Sprintf("Mortgage Calculator  (step %d of %d)", int(s.Field)+1, FieldCount),
		strings.Repeat("=", 40),
		field.Label,
		field.Help,
		"",
	}

	input := "> " + field.Text() + "_"
	if field.Toggle {
		if field.UsePercent {
			input += "  %   [Tab: enter a dollar amount]"
		} else {
			input += "  $   [Tab: enter a percentage]"
		}
	}
	lines = append(lines, input, "")

	if s.Field > FieldHouseValue {
		lines = append(lines, "Entered so far:")
		for id := FieldHouseValue; id < s.Field; id++ {
			lines = append(lines, fmt.Sprintf("  %-18s %s", s.Form.Fields[id].Label, displayValue(s.Form.Fields[id])))
		}
		lines = append(lines, "")
	}

	if s.Forecast != nil {
		lines = append(lines, fmt.Sprintf("Current estimate: %s per month, %s total interest",
			format.Currency(s.Forecast.Records[0].ActualPayment), format.Currency(s.Forecast.Summary.TotalInterestPaid)))
	}
	lines = append(lines, statusLine(s))

	hint := "Enter/l/Right next | Esc/h/Left back"
	if s.Field == FieldHouseValue {
		hint = "Enter/l/Right next | q/Esc quit"
	}
	return append(lines, hint)
}

func displayValue(f Field) string {
	text := f.Text()
	if text == "" {
		return "-"
	}
	if f.Toggle && f.UsePercent {
		return text + "%"
	}
	if f.Toggle {
		return "$" + text
	}
	return text
}

func renderSpreadsheet(s State, width, height int) []string {
	lines := []string{
		"Mortgage Spreadsheet",
		fmt.Sprintf("%-7s %10s %10s %9s %11s %8s %8s %8s %8s %7s %10s %11s",
			"Month", "Interest", "Principal", "Extra", "Balance", "PMI", "Taxes", "Ins", "Maint", "HOA", "Payment", "Equity"),
	}
	if s.Forecast == nil || len(s.Forecast.Records) == 0 {
		return append(lines, "No schedule computed.", statusLine(s))
	}

	records := s.Forecast.Records
	visible := height - 5
	if visible < 1 {
		visible = 1
	}
	start := clamp(s.Selected-visible/2, 0, max(len(records)-visible, 0))
	end := min(start+visible, len(records))

	for i := start; i < end; i++ {
		r := records[i]
		row := fmt.Sprintf("%-7s %10s %10s %9s %11s %8s %8s %8s %8s %7s %10s %11s",
			s.Forecast.MonthLabel(r.Month),
			format.Currency(r.Interest), format.Currency(r.Principal), format.WholeCurrency(r.ExtraPrincipal),
			format.WholeCurrency(r.RemainingBalance), format.WholeCurrency(r.PMI), format.WholeCurrency(r.Taxes),
			format.WholeCurrency(r.Insurance), format.WholeCurrency(r.Maintenance), format.WholeCurrency(r.HOA),
			format.Currency(r.ActualPayment), format.WholeCurrency(r.Equity))
		if i == s.Selected {
			row = reverseVideo + truncate(row, width) + resetVideo
		}
		lines = append(lines, row)
	}

	lines = append(lines,
		fmt.Sprintf("Row %d of %d", s.Selected+1, len(records)),
		statusLine(s),
		"j/k move | Ctrl-D/Ctrl-U page | g/G top/bottom | s summary | e export | h back | q quit",
	)
	return lines
}

func renderSummary(s State) []string {
	lines := []string{"Mortgage Summary", strings.Repeat("=", 40)}
	if s.Forecast == nil {
		return append(lines, "No schedule computed.", statusLine(s))
	}

	for _, line := range output.SummaryLines(s.Forecast) {
		lines = append(lines, fmt.Sprintf("%-26s %s", line.Label+":", line.Value))
	}
	return append(lines, "", statusLine(s), "e export analysis | h back | q quit")
}

func statusLine(s State) string {
	if s.Err != "" {
		return "Error: " + s.Err
	}
	return s.Status
}

// truncate cuts line to width runes, leaving lines that carry escape codes
// alone.
func truncate(line string, width int) string {
	if width <= 0 || strings.Contains(line, "\x1b") || utf8.RuneCountInString(line) <= width {
		return line
	}
	runes := []rune(line)
	return string(runes[:width])
}
