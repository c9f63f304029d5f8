package stats

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/model"
)

const (
	barFilled           = '#'
	barEmpty            = '.'
	minBarWidth         = 10
	maxBarWidth         = 50
	barLabelWidth       = 9
	terminalWidthBackup = 80
	colorReset          = "\x1b[0m"
	colorGood           = "\x1b[32m"
	colorFair           = "\x1b[33m"
	colorPoor           = "\x1b[31m"
)

// RenderReport prints the stats record with a percentage bar per metric.
// width <= 0 uses the terminal width of w.
func RenderReport(w io.Writer, rec *model.StatsRecord, width int) error {
	if rec == nil {
		_, err := fmt.Fprintln(w, "No quizzes completed yet.")
		return err
	}
	if width <= 0 {
		width = terminalWidth(w)
	}
	useColor := shouldUseColor(w)
	barWidth := BarWidthFor(width)

	if _, err := fmt.Fprintln(w, "Quiz Statistics"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Attempts: %d\n", rec.Attempts); err != nil {
		return err
	}
	rows := []struct {
		name    string
		percent int
	}{
		{"Last", rec.LastPercent},
		{"Best", rec.BestPercent},
		{"Average", Average(*rec)},
	}
	for _, row := range rows {
		line := fmt.Sprintf("%-*s %s %3d%%", barLabelWidth, row.name, Bar(row.percent, barWidth, useColor), row.percent)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Bar renders percent as a fixed-width bar.
func Bar(percent, width int, useColor bool) string {
	if width < 1 {
		width = 1
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	bar := strings.Repeat(string(barFilled), filled) + strings.Repeat(string(barEmpty), width-filled)
	if !useColor {
		return bar
	}
	return barColor(percent) + bar + colorReset
}

// BarWidthFor returns the bar width that fits a line of totalWidth columns.
func BarWidthFor(totalWidth int) int {
	// label, two separators and " 100%".
	w := totalWidth - barLabelWidth - 2 - 4
	if w < minBarWidth {
		return minBarWidth
	}
	if w > maxBarWidth {
		return maxBarWidth
	}
	return w
}

func barColor(percent int) string {
	switch {
	case percent >= 80:
		return colorGood
	case percent >= 50:
		return colorFair
	default:
		return colorPoor
	}
}

func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
