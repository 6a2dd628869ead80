// Package domain defines the normalized domain types for the board service.
// These types represent the core concepts independent of the board service's
// REST API structure.
package domain

import "time"

// Board represents a board the authenticated user has access to.
type Board struct {
	ID      string // Board service identifier
	Name    string // Display name
	OrgName string // Owning organization display name (empty for personal boards)
	URL     string // Permalink to the board in the web UI
}

// List represents one work list on a board. List names are expected (but not
// guaranteed) to encode a calendar date such as "21.03.24".
type List struct {
	ID    string // Board service identifier
	Name  string // Display name
	Cards []Card // Cards attached at fetch time; nil when not fetched
}

// Card represents a unit of work with a name, description, and label set.
type Card struct {
	ID     string  // Board service identifier
	Name   string  // Card title
	Desc   string  // Free-text description (markdown)
	Labels []Label // Labels in board service order
}

// Label is a color-coded tag on a card. The color-to-identifier mapping is
// board-specific and must be resolved from the board's label catalogue.
type Label struct {
	ID    string // Board service identifier
	Color Color  // Color category
}

// CardDraft describes a card to be created. When SourceCardID is set, the
// board service copies due dates, comments, attachments, checklists, members,
// and stickers from the source card.
type CardDraft struct {
	ListID       string // Target list
	Name         string // Card title
	Desc         string // Description
	SourceCardID string // Card to copy from (optional)
}

// Color is a label color category. Four colors carry status semantics in this
// system; any other value passes through untouched and is ignored by
// aggregation.
type Color string

// Status colors. Red marks an item as still open and carried over, yellow
// marks a card migrated from a previous day, green marks planned work done,
// blue marks work done out of plan.
const (
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
)

// Tracked reports whether the color is one of the four status colors counted
// by aggregation.
func (c Color) Tracked() bool {
	switch c {
	case ColorRed, ColorYellow, ColorGreen, ColorBlue:
		return true
	}
	return false
}

// StatBucket holds label counts per status color over some time window.
// All four counters are always present when marshaled.
type StatBucket struct {
	Red    int `json:"red"`
	Yellow int `json:"yellow"`
	Green  int `json:"green"`
	Blue   int `json:"blue"`
}

// Add increments the counter for the given color. Untracked colors are
// ignored.
func (b *StatBucket) Add(c Color) {
	switch c {
	case ColorRed:
		b.Red++
	case ColorYellow:
		b.Yellow++
	case ColorGreen:
		b.Green++
	case ColorBlue:
		b.Blue++
	}
}

// Total returns the sum of all four counters.
func (b StatBucket) Total() int {
	return b.Red + b.Yellow + b.Green + b.Blue
}

// NestedStats buckets counts by year, then zero-based month, then day of
// month. Buckets are created lazily on first contribution and only ever
// incremented, never replaced.
type NestedStats map[int]map[int]map[int]*StatBucket

// Add increments the counter for color c in the bucket addressed by t's
// calendar day. Months are keyed zero-based to match the persisted wire
// format.
func (n NestedStats) Add(t time.Time, c Color) {
	year, day := t.Year(), t.Day()
	month := int(t.Month()) - 1

	months, ok := n[year]
	if !ok {
		months = make(map[int]map[int]*StatBucket)
		n[year] = months
	}
	days, ok := months[month]
	if !ok {
		days = make(map[int]*StatBucket)
		months[month] = days
	}
	bucket, ok := days[day]
	if !ok {
		bucket = &StatBucket{}
		days[day] = bucket
	}
	bucket.Add(c)
}
