package stats

import "github.com/h0rv/dayroll/internal/domain"

// Verdict is the qualitative judgment of a month-over-month delta.
type Verdict string

// Verdict values. Fewer red/yellow is better; more green/blue is better.
const (
	VerdictBetter Verdict = "better"
	VerdictWorse  Verdict = "worse"
	VerdictSame   Verdict = "same"
)

// Delta is the month-over-month change for one status color.
type Delta struct {
	Color   domain.Color
	Diff    int // current minus previous
	Verdict Verdict
}

// Comparison is a month-over-month comparison of two stat buckets, ordered
// red, yellow, green, blue. Pure presentation data; it carries no state.
type Comparison struct {
	Deltas []Delta
}

// CompareMonths computes signed deltas and qualitative judgments between the
// previous and current month's buckets.
func CompareMonths(prev, curr domain.StatBucket) Comparison {
	return Comparison{
		Deltas: []Delta{
			judge(domain.ColorRed, curr.Red-prev.Red),
			judge(domain.ColorYellow, curr.Yellow-prev.Yellow),
			judge(domain.ColorGreen, curr.Green-prev.Green),
			judge(domain.ColorBlue, curr.Blue-prev.Blue),
		},
	}
}

func judge(color domain.Color, diff int) Delta {
	d := Delta{Color: color, Diff: diff, Verdict: VerdictSame}
	if diff == 0 {
		return d
	}

	lowerIsBetter := color == domain.ColorRed || color == domain.ColorYellow
	if (diff < 0) == lowerIsBetter {
		d.Verdict = VerdictBetter
	} else {
		d.Verdict = VerdictWorse
	}
	return d
}
