// Package rollover implements the daily list rollover: locating today's and
// yesterday's lists among loosely named date lists and migrating unfinished
// cards forward with label bookkeeping.
package rollover

import (
	"time"

	"github.com/h0rv/dayroll/internal/dates"
	"github.com/h0rv/dayroll/internal/domain"
)

// yesterdayLookback bounds the backward day-by-day search for the previous
// work list. List history has gaps (weekends, holidays); without a bound an
// unanswerable search would scan the entire history.
const yesterdayLookback = 25

// FindListByName returns the first list matching target, or nil. A list
// matches when its name parses to the same calendar day as the parsed target,
// or when the raw names are string-identical (the fallback for names that are
// not date-like).
func FindListByName(lists []domain.List, target string, now time.Time) *domain.List {
	targetDate, targetOK := dates.Parse(target, now)

	for i := range lists {
		list := &lists[i]
		if list.Name == target {
			return list
		}
		if !targetOK {
			continue
		}
		if d, ok := dates.Parse(list.Name, now); ok && dates.SameDay(d.Time, targetDate.Time) {
			return list
		}
	}
	return nil
}

// FindYesterday walks backward day by day from the day before now, probing up
// to yesterdayLookback days for a list whose name matches the formatted date.
// Returns nil when no list matches within the bound.
func FindYesterday(lists []domain.List, now time.Time) *domain.List {
	for i := 1; i <= yesterdayLookback; i++ {
		candidate := dates.Format(now.AddDate(0, 0, -i), false)
		if list := FindListByName(lists, candidate, now); list != nil {
			return list
		}
	}
	return nil
}
