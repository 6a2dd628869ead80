package rollover

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h0rv/dayroll/internal/domain"
)

var locateNow = time.Date(2024, time.March, 21, 9, 0, 0, 0, time.Local)

func TestFindListByName_DateEquivalentNames(t *testing.T) {
	lists := []domain.List{
		{ID: "l1", Name: "Backlog"},
		{ID: "l2", Name: "5.3.24"},
	}

	// Formatting differs but the calendar day matches.
	got := FindListByName(lists, "05.03.24", locateNow)

	require.NotNil(t, got)
	assert.Equal(t, "l2", got.ID)
}

func TestFindListByName_ExactStringFallback(t *testing.T) {
	lists := []domain.List{
		{ID: "l1", Name: "Backlog"},
	}

	got := FindListByName(lists, "Backlog", locateNow)

	require.NotNil(t, got)
	assert.Equal(t, "l1", got.ID)
}

func TestFindListByName_FirstMatchWins(t *testing.T) {
	lists := []domain.List{
		{ID: "l1", Name: "21.03.24"},
		{ID: "l2", Name: "21.03"},
	}

	got := FindListByName(lists, "21.03.24", locateNow)

	require.NotNil(t, got)
	assert.Equal(t, "l1", got.ID)
}

func TestFindListByName_NoMatch(t *testing.T) {
	lists := []domain.List{
		{ID: "l1", Name: "20.03.24"},
	}

	assert.Nil(t, FindListByName(lists, "19.03.24", locateNow))
}

func TestFindYesterday_SkipsGaps(t *testing.T) {
	// A weekend-sized gap: the previous work list is three days back.
	lists := []domain.List{
		{ID: "today", Name: "21.03.24"},
		{ID: "friday", Name: "18.03.24"},
	}

	got := FindYesterday(lists, locateNow)

	require.NotNil(t, got)
	assert.Equal(t, "friday", got.ID)
}

func TestFindYesterday_BoundedSearchReturnsNil(t *testing.T) {
	// The nearest prior list is beyond the 25-day bound.
	lists := []domain.List{
		{ID: "old", Name: "24.02.24"}, // 26 days before locateNow
	}

	assert.Nil(t, FindYesterday(lists, locateNow))
}

func TestFindYesterday_LastDayInsideBoundStillFound(t *testing.T) {
	lists := []domain.List{
		{ID: "edge", Name: "25.02.24"}, // exactly 25 days before locateNow
	}

	got := FindYesterday(lists, locateNow)

	require.NotNil(t, got)
	assert.Equal(t, "edge", got.ID)
}
