// Package report renders statistics and comparisons to the terminal.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/h0rv/dayroll/internal/domain"
	"github.com/h0rv/dayroll/internal/stats"
	"github.com/h0rv/dayroll/internal/statsapi"
)

// wrapWidth bounds the comparison summary line.
const wrapWidth = 72

var (
	// TitleStyle is used for report headings.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")) // Purple

	// GoodStyle highlights improvements.
	GoodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")) // Green

	// BadStyle highlights regressions.
	BadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // Red

	// MutedStyle is used for unchanged values and totals.
	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")) // Dark gray

	colorStyles = map[domain.Color]lipgloss.Style{
		domain.ColorRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		domain.ColorYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		domain.ColorGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		domain.ColorBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	}
)

// PrintBucket renders one stat bucket with a heading.
func PrintBucket(out io.Writer, title string, bucket domain.StatBucket) {
	fmt.Fprintln(out, TitleStyle.Render(title))
	for _, c := range []domain.Color{domain.ColorRed, domain.ColorYellow, domain.ColorGreen, domain.ColorBlue} {
		fmt.Fprintf(out, "  %s %d\n", colorStyles[c].Render(string(c)+":"), count(bucket, c))
	}
	fmt.Fprintf(out, "  %s\n", MutedStyle.Render(fmt.Sprintf("total: %d", bucket.Total())))
}

// PrintComparison renders a month-over-month comparison: per-color deltas
// plus a wrapped one-line summary.
func PrintComparison(out io.Writer, cmp stats.Comparison) {
	fmt.Fprintln(out, TitleStyle.Render("Month-over-month"))

	var good, bad []string
	for _, d := range cmp.Deltas {
		line := fmt.Sprintf("  %s %+d", colorStyles[d.Color].Render(string(d.Color)+":"), d.Diff)
		switch d.Verdict {
		case stats.VerdictBetter:
			line += " " + GoodStyle.Render("(better)")
			good = append(good, string(d.Color))
		case stats.VerdictWorse:
			line += " " + BadStyle.Render("(worse)")
			bad = append(bad, string(d.Color))
		default:
			line += " " + MutedStyle.Render("(same)")
		}
		fmt.Fprintln(out, line)
	}

	fmt.Fprintln(out, wordwrap.String(summary(good, bad), wrapWidth))
}

// PrintYearReport renders the backend's cross-board year report: monthly
// buckets per board followed by the per-board totals.
func PrintYearReport(out io.Writer, year int, rep *statsapi.YearReport) {
	fmt.Fprintln(out, TitleStyle.Render(fmt.Sprintf("Year report %d", year)))

	boards := make([]string, 0, len(rep.Data))
	for board := range rep.Data {
		boards = append(boards, board)
	}
	sort.Strings(boards)

	for _, board := range boards {
		fmt.Fprintf(out, "%s\n", TitleStyle.Render(board))

		months := make([]int, 0, len(rep.Data[board]))
		for m := range rep.Data[board] {
			months = append(months, m)
		}
		sort.Ints(months)

		for _, m := range months {
			b := rep.Data[board][m]
			// Months arrive zero-based from the backend.
			fmt.Fprintf(out, "  %02d: red %d, yellow %d, green %d, blue %d\n",
				m+1, b.Red, b.Yellow, b.Green, b.Blue)
		}
		if total, ok := rep.Total[board]; ok {
			fmt.Fprintf(out, "  %s\n", MutedStyle.Render(fmt.Sprintf(
				"total: red %d, yellow %d, green %d, blue %d", total.Red, total.Yellow, total.Green, total.Blue)))
		}
	}
}

func summary(good, bad []string) string {
	switch {
	case len(good) == 0 && len(bad) == 0:
		return "No change from last month."
	case len(bad) == 0:
		return fmt.Sprintf("Improved on %s compared to last month.", strings.Join(good, ", "))
	case len(good) == 0:
		return fmt.Sprintf("Slipped on %s compared to last month.", strings.Join(bad, ", "))
	default:
		return fmt.Sprintf("Improved on %s but slipped on %s compared to last month.",
			strings.Join(good, ", "), strings.Join(bad, ", "))
	}
}

func count(b domain.StatBucket, c domain.Color) int {
	switch c {
	case domain.ColorRed:
		return b.Red
	case domain.ColorYellow:
		return b.Yellow
	case domain.ColorGreen:
		return b.Green
	case domain.ColorBlue:
		return b.Blue
	}
	return 0
}
