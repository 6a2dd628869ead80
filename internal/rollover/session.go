package rollover

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/h0rv/dayroll/internal/dates"
	"github.com/h0rv/dayroll/internal/domain"
)

var (
	// ErrNoYesterdayList indicates no prior-day list was found within the
	// bounded backward search. Distinct from a successful run that migrated
	// zero cards.
	ErrNoYesterdayList = errors.New("no yesterday list found")
)

// Session holds the per-interaction workflow state: the resolved board and
// the today/yesterday list identifiers, plus the board's cached label map.
// The engine itself keeps no state between invocations.
type Session struct {
	api     API
	log     zerolog.Logger
	boardID string
	now     func() time.Time

	todayListID     string
	yesterdayListID string
	labels          map[domain.Color]string
}

// NewSession creates a Session bound to a resolved board.
func NewSession(api API, boardID string, log zerolog.Logger) *Session {
	return &Session{
		api:     api,
		log:     log,
		boardID: boardID,
		now:     time.Now,
	}
}

// Labels returns the board's color-to-identifier label map, fetching it once
// and caching it for the life of the session.
func (s *Session) Labels(ctx context.Context) (map[domain.Color]string, error) {
	if s.labels != nil {
		return s.labels, nil
	}
	labels, err := s.api.GetLabels(ctx, s.boardID)
	if err != nil {
		return nil, err
	}
	s.labels = labels
	return labels, nil
}

// EnsureToday resolves today's list, creating it when the board has none
// matching today's formatted date.
func (s *Session) EnsureToday(ctx context.Context) (*domain.List, error) {
	lists, err := s.api.GetLists(ctx, s.boardID)
	if err != nil {
		return nil, err
	}
	return s.ensureToday(ctx, lists)
}

func (s *Session) ensureToday(ctx context.Context, lists []domain.List) (*domain.List, error) {
	now := s.now()
	name := dates.Format(now, false)

	if list := FindListByName(lists, name, now); list != nil {
		s.todayListID = list.ID
		return list, nil
	}

	list, err := s.api.CreateList(ctx, s.boardID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create today's list: %w", err)
	}
	s.log.Info().Str("list", name).Msg("created today's list")
	s.todayListID = list.ID
	return list, nil
}

// Rollover runs the full daily rollover: resolve (or create) today's list,
// locate yesterday's, and migrate unfinished cards forward. Returns the
// number of migrated cards, or ErrNoYesterdayList when there is no prior-day
// baseline to migrate from.
func (s *Session) Rollover(ctx context.Context) (int, error) {
	lists, err := s.api.GetLists(ctx, s.boardID)
	if err != nil {
		return 0, err
	}
	now := s.now()

	today, err := s.ensureToday(ctx, lists)
	if err != nil {
		return 0, err
	}

	yesterday := FindYesterday(lists, now)
	if yesterday == nil {
		return 0, ErrNoYesterdayList
	}
	s.yesterdayListID = yesterday.ID

	labels, err := s.Labels(ctx)
	if err != nil {
		return 0, err
	}

	yesterdayCards := yesterday.Cards
	if yesterdayCards == nil {
		yesterdayCards, err = s.api.GetCards(ctx, yesterday.ID)
		if err != nil {
			return 0, err
		}
	}

	todayCards := today.Cards
	if todayCards == nil {
		todayCards, err = s.api.GetCards(ctx, today.ID)
		if err != nil {
			return 0, err
		}
	}

	migrator := NewMigrator(s.api, s.log)
	return migrator.MigrateUnfinished(ctx, today.ID, yesterdayCards, todayCards, labels), nil
}
