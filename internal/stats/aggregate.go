// Package stats tallies card labels by status color across a date range of
// lists and buckets the counts for server-side persistence.
package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/h0rv/dayroll/internal/dates"
	"github.com/h0rv/dayroll/internal/domain"
	"github.com/h0rv/dayroll/internal/statsapi"
)

// ErrNoBoard indicates aggregation was invoked without a resolved board
// context.
var ErrNoBoard = errors.New("no board resolved")

// API is the slice of the board service client the aggregator consumes.
type API interface {
	GetCards(ctx context.Context, listID string) ([]domain.Card, error)
	GetLabels(ctx context.Context, boardID string) (map[domain.Color]string, error)
}

// Saver persists bucketed statistics. Satisfied by *statsapi.Client.
type Saver interface {
	Save(ctx context.Context, payload statsapi.Payload) error
}

// Options controls one aggregation pass.
type Options struct {
	SaveOnServer bool   // also accumulate nested buckets and persist them
	BoardName    string // board tag for the persisted payload
	OrgName      string // organization tag for the persisted payload
}

// Aggregator scans a board's lists newest-first over an inclusive date range
// and counts cards per status color.
type Aggregator struct {
	api     API
	saver   Saver
	log     zerolog.Logger
	boardID string
	now     func() time.Time

	labels map[domain.Color]string
}

// New creates an Aggregator for a resolved board. saver may be nil when
// persistence is never requested.
func New(api API, saver Saver, boardID string, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		api:     api,
		saver:   saver,
		log:     log,
		boardID: boardID,
		now:     time.Now,
	}
}

// Aggregate walks lists (assumed newest-to-oldest) and tallies tracked label
// colors for every list inside the inclusive [start, end] boundary range.
//
// The scan starts accumulating once it reaches the end boundary (the newer
// edge) and stops once it passes or exactly matches the start boundary. Each
// list's name is parsed and continuity-corrected against the previously
// resolved date; an unparseable name carries the previous date forward so its
// cards still land in a plausible calendar bucket.
//
// When opts.SaveOnServer is set the counts are additionally bucketed by
// year/month/day and handed to the statistics backend after the scan.
func (a *Aggregator) Aggregate(ctx context.Context, lists []domain.List, start, end string, opts Options) (domain.StatBucket, error) {
	var bucket domain.StatBucket

	if a.boardID == "" {
		return bucket, ErrNoBoard
	}
	if _, err := a.labelMap(ctx); err != nil {
		return bucket, err
	}

	now := a.now()
	startDate, startOK := dates.Parse(start, now)
	endDate, endOK := dates.Parse(end, now)

	nested := domain.NestedStats{}
	var prev time.Time
	started := false

	for i := range lists {
		list := &lists[i]

		// Resolve the running date: the parsed name when it parses,
		// continuity-corrected against the previous list, otherwise the
		// previous list's date carried forward.
		cur := prev
		if d, ok := dates.Parse(list.Name, now); ok {
			if prev.IsZero() {
				cur = d.Time
			} else {
				cur = dates.Correct(prev, d)
			}
		}

		if !started {
			if matchesBoundary(list.Name, end, now) ||
				(endOK && !cur.IsZero() && !cur.After(endDate.Time)) {
				started = true
			}
		}

		// Past the oldest list still inside the window: everything further
		// is out of range.
		if startOK && !cur.IsZero() && cur.Before(startDate.Time) {
			break
		}

		if started {
			a.countList(ctx, list, cur, &bucket, nested, opts.SaveOnServer)
		}

		if matchesBoundary(list.Name, start, now) {
			break
		}

		if !cur.IsZero() {
			prev = cur
		}
	}

	if opts.SaveOnServer {
		if a.saver == nil {
			return bucket, errors.New("no statistics backend configured")
		}
		payload := statsapi.Payload{
			Name:    opts.BoardName,
			OrgName: opts.OrgName,
			Data:    nested,
		}
		if err := a.saver.Save(ctx, payload); err != nil {
			return bucket, fmt.Errorf("failed to persist statistics: %w", err)
		}
	}

	return bucket, nil
}

// countList tallies one list's cards into bucket and, when save is set, into
// the nested calendar buckets keyed by day. A failed card fetch skips the
// list without aborting the scan.
func (a *Aggregator) countList(ctx context.Context, list *domain.List, day time.Time, bucket *domain.StatBucket, nested domain.NestedStats, save bool) {
	cards := list.Cards
	if cards == nil {
		fetched, err := a.api.GetCards(ctx, list.ID)
		if err != nil {
			a.log.Warn().Err(err).Str("list", list.Name).Msg("failed to fetch cards, skipping list")
			return
		}
		cards = fetched
	}

	for _, card := range cards {
		for _, label := range card.Labels {
			if !label.Color.Tracked() {
				continue
			}
			bucket.Add(label.Color)
			if save && !day.IsZero() {
				nested.Add(day, label.Color)
			}
		}
	}
}

// labelMap fetches the board's label catalogue once per aggregator. It is
// used only to confirm board context, never to re-tag anything.
func (a *Aggregator) labelMap(ctx context.Context) (map[domain.Color]string, error) {
	if a.labels != nil {
		return a.labels, nil
	}
	labels, err := a.api.GetLabels(ctx, a.boardID)
	if err != nil {
		return nil, err
	}
	a.labels = labels
	return labels, nil
}

// matchesBoundary reports whether a list name hits a range boundary, by
// calendar-day equality of the parsed dates or by literal string match.
func matchesBoundary(name, boundary string, now time.Time) bool {
	if name == boundary {
		return true
	}
	n, nameOK := dates.Parse(name, now)
	b, boundaryOK := dates.Parse(boundary, now)
	return nameOK && boundaryOK && dates.SameDay(n.Time, b.Time)
}
