package rollover

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h0rv/dayroll/internal/domain"
)

func newTestSession(api *fakeAPI) *Session {
	s := NewSession(api, "board_1", zerolog.Nop())
	s.now = func() time.Time {
		return time.Date(2024, time.March, 21, 9, 0, 0, 0, time.Local)
	}
	return s
}

func TestEnsureToday_FindsExistingList(t *testing.T) {
	api := newFakeAPI()
	api.lists = []domain.List{{ID: "l_today", Name: "21.03.24"}}
	s := newTestSession(api)

	list, err := s.EnsureToday(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "l_today", list.ID)
	assert.Equal(t, "l_today", s.todayListID)
}

func TestEnsureToday_CreatesMissingList(t *testing.T) {
	api := newFakeAPI()
	api.lists = []domain.List{{ID: "l_old", Name: "20.03.24"}}
	s := newTestSession(api)

	list, err := s.EnsureToday(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "21.03.24", list.Name)
	assert.Equal(t, list.ID, s.todayListID)
}

func TestRollover_NoYesterdayList(t *testing.T) {
	api := newFakeAPI()
	api.lists = []domain.List{{ID: "l_today", Name: "21.03.24"}}
	s := newTestSession(api)

	count, err := s.Rollover(context.Background())

	assert.ErrorIs(t, err, ErrNoYesterdayList)
	assert.Zero(t, count)
}

func TestRollover_MigratesAcrossGap(t *testing.T) {
	api := newFakeAPI()
	api.lists = []domain.List{
		{ID: "l_today", Name: "21.03.24"},
		{ID: "l_friday", Name: "18.03.24"},
	}
	api.cards["l_friday"] = []domain.Card{
		{ID: "y1", Name: "Unfinished"},
		{ID: "y2", Name: "Done", Labels: []domain.Label{{ID: "lbl_green", Color: domain.ColorGreen}}},
	}
	s := newTestSession(api)

	count, err := s.Rollover(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "l_friday", s.yesterdayListID)

	require.Len(t, api.cards["l_today"], 1)
	assert.Equal(t, "Unfinished", api.cards["l_today"][0].Name)
}

func TestRollover_CreatesTodayThenMigrates(t *testing.T) {
	api := newFakeAPI()
	api.lists = []domain.List{{ID: "l_yesterday", Name: "20.03.24"}}
	api.cards["l_yesterday"] = []domain.Card{{ID: "y1", Name: "Carry me"}}
	s := newTestSession(api)

	count, err := s.Rollover(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.NotEmpty(t, s.todayListID)
	require.Len(t, api.cards[s.todayListID], 1)
	assert.Equal(t, "Carry me", api.cards[s.todayListID][0].Name)
}

func TestSession_LabelsCached(t *testing.T) {
	api := newFakeAPI()
	s := newTestSession(api)

	first, err := s.Labels(context.Background())
	require.NoError(t, err)

	// Mutating the fake's map afterwards must not affect the session view.
	api.labels = nil

	second, err := s.Labels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
