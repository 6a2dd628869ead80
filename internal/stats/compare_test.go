package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h0rv/dayroll/internal/domain"
)

func TestCompareMonths_Verdicts(t *testing.T) {
	prev := domain.StatBucket{Red: 5, Yellow: 2, Green: 3, Blue: 1}
	curr := domain.StatBucket{Red: 2, Yellow: 4, Green: 6, Blue: 1}

	cmp := CompareMonths(prev, curr)

	require.Len(t, cmp.Deltas, 4)

	red := cmp.Deltas[0]
	assert.Equal(t, domain.ColorRed, red.Color)
	assert.Equal(t, -3, red.Diff)
	assert.Equal(t, VerdictBetter, red.Verdict, "fewer red is better")

	yellow := cmp.Deltas[1]
	assert.Equal(t, 2, yellow.Diff)
	assert.Equal(t, VerdictWorse, yellow.Verdict, "more yellow is worse")

	green := cmp.Deltas[2]
	assert.Equal(t, 3, green.Diff)
	assert.Equal(t, VerdictBetter, green.Verdict, "more green is better")

	blue := cmp.Deltas[3]
	assert.Zero(t, blue.Diff)
	assert.Equal(t, VerdictSame, blue.Verdict)
}

func TestCompareMonths_FewerGreenIsWorse(t *testing.T) {
	prev := domain.StatBucket{Green: 4, Blue: 3}
	curr := domain.StatBucket{Green: 1, Blue: 1}

	cmp := CompareMonths(prev, curr)

	assert.Equal(t, VerdictWorse, cmp.Deltas[2].Verdict)
	assert.Equal(t, VerdictWorse, cmp.Deltas[3].Verdict)
}
