// Package dates parses the loosely formatted date strings used as list names
// and corrects them for continuity when walking a list history.
//
// List names are user-maintained free text: separators vary (".", "-", ",",
// "/"), years are frequently omitted, and some names are ranges like
// "21.03-25.03". Parsing degrades gracefully - anything unparseable simply
// reports not-ok rather than failing the caller.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// continuityWindow is roughly half a year. A parsed date further than this
// from its neighbor is assumed to be a missing-year artifact rather than a
// genuine multi-year gap.
const continuityWindow = 15767993085 * time.Millisecond

// Date is a parsed list-name date. HasYear records whether the name carried
// an explicit year component, which continuity correction needs to decide
// whether the year may be adjusted.
type Date struct {
	Time    time.Time
	HasYear bool
}

// Parse interprets text as a day.month[.year] date. Separators ",", "/" and
// "-" are accepted interchangeably with ".". When the text mixes "." and "-"
// it is treated as a range: each "-"-separated fragment is parsed on its own
// and the last fragment that parses wins, so "21.03-25.03" collapses to the
// 25th. A missing year defaults to now's year; two-digit years are promoted
// by adding 2000. Invalid day/month combinations normalize per standard
// calendar arithmetic.
func Parse(text string, now time.Time) (Date, bool) {
	norm := strings.NewReplacer(",", ".", "/", ".").Replace(strings.TrimSpace(text))

	if strings.Contains(norm, ".") && strings.Contains(norm, "-") {
		var last Date
		ok := false
		for _, frag := range strings.Split(norm, "-") {
			if d, fragOK := parseFragment(frag, now); fragOK {
				last = d
				ok = true
			}
		}
		return last, ok
	}

	return parseFragment(norm, now)
}

// parseFragment parses a single day.month[.year] fragment. The fragment is
// split on "." when present, otherwise on "-".
func parseFragment(text string, now time.Time) (Date, bool) {
	sep := "."
	if !strings.Contains(text, ".") {
		sep = "-"
	}

	parts := strings.Split(text, sep)
	if len(parts) < 2 {
		return Date{}, false
	}

	nums := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Date{}, false
		}
		nums = append(nums, n)
	}

	day, month := nums[0], nums[1]
	hasYear := len(nums) >= 3

	year := now.Year()
	if hasYear {
		year = nums[2]
	}
	if year < 2000 {
		year += 2000
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	return Date{Time: t, HasYear: hasYear}, true
}

// Format renders t as DD.MM.YY, or DD.MM.YYYY when fullYear is set. This is
// the display format used for list names.
func Format(t time.Time, fullYear bool) string {
	if fullYear {
		return t.Format("02.01.2006")
	}
	return t.Format("02.01.06")
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Correct reconciles a freshly parsed list date against the previously
// resolved one when walking lists newest-first.
//
// When the gap between the two exceeds half a year, cur's year is forced to
// match prev's: a same-day list a year away from its neighbor is more likely
// a defaulted-year artifact than a real gap. After that, a current date that
// still lands after prev while its name carried no explicit year is pulled
// back one year - the walk moves backward in time, so crossing a
// January-to-December boundary without explicit years would otherwise jump a
// year forward.
func Correct(prev time.Time, cur Date) time.Time {
	d := cur.Time

	diff := prev.Sub(d)
	if diff < 0 {
		diff = -diff
	}
	if diff > continuityWindow {
		d = time.Date(prev.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	}

	if d.After(prev) && !cur.HasYear {
		d = d.AddDate(-1, 0, 0)
	}

	return d
}

// MonthWindow returns the formatted start and end boundaries covering the
// calendar month containing t, suitable as aggregation boundaries.
func MonthWindow(t time.Time) (start, end string) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return Format(first, false), Format(last, false)
}

// String implements fmt.Stringer for debugging output.
func (d Date) String() string {
	return fmt.Sprintf("%s (hasYear=%t)", Format(d.Time, true), d.HasYear)
}
