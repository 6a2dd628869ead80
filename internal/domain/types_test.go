package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatBucket_AddIgnoresUntracked(t *testing.T) {
	var b StatBucket
	b.Add(ColorRed)
	b.Add(ColorRed)
	b.Add(ColorBlue)
	b.Add("purple")

	assert.Equal(t, StatBucket{Red: 2, Blue: 1}, b)
	assert.Equal(t, 3, b.Total())
}

func TestColor_Tracked(t *testing.T) {
	assert.True(t, ColorRed.Tracked())
	assert.True(t, ColorYellow.Tracked())
	assert.True(t, ColorGreen.Tracked())
	assert.True(t, ColorBlue.Tracked())
	assert.False(t, Color("purple").Tracked())
	assert.False(t, Color("").Tracked())
}

func TestNestedStats_AddAccumulates(t *testing.T) {
	n := NestedStats{}
	day := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.Local)

	n.Add(day, ColorYellow)
	n.Add(day, ColorYellow)
	n.Add(day.Add(6*time.Hour), ColorRed)

	// Month keys are zero-based.
	jan := n[2024][0]
	require.Len(t, jan, 1, "same day must share one bucket")
	assert.Equal(t, &StatBucket{Yellow: 2, Red: 1}, jan[10])
}

func TestNestedStats_SeparateDays(t *testing.T) {
	n := NestedStats{}
	n.Add(time.Date(2024, time.January, 10, 0, 0, 0, 0, time.Local), ColorGreen)
	n.Add(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.Local), ColorGreen)
	n.Add(time.Date(2023, time.December, 31, 0, 0, 0, 0, time.Local), ColorGreen)

	assert.Equal(t, &StatBucket{Green: 1}, n[2024][0][10])
	assert.Equal(t, &StatBucket{Green: 1}, n[2024][1][10])
	assert.Equal(t, &StatBucket{Green: 1}, n[2023][11][31])
}
