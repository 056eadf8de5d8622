package engagement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazadksa/mazad/pkg/domain/engagement"
)

func TestActionWeight(t *testing.T) {
	t.Parallel()
	cases := map[string]float64{
		engagement.ActionView:   0.1,
		engagement.ActionClick:  0.3,
		engagement.ActionBid:    1.0,
		engagement.ActionWatch:  0.5,
		engagement.ActionSearch: 0.2,
	}
	for action, want := range cases {
		w, err := engagement.ActionWeight(action)
		require.NoError(t, err)
		assert.InDelta(t, want, w, 1e-9, "action=%s", action)
	}
}

func TestActionWeight_Unknown(t *testing.T) {
	t.Parallel()
	_, err := engagement.ActionWeight("hover")
	assert.ErrorIs(t, err, engagement.ErrUnknownAction)
}

func TestAccumulateInterest_Caps(t *testing.T) {
	t.Parallel()
	score, err := engagement.AccumulateInterest(4.8, engagement.ActionBid)
	require.NoError(t, err)
	assert.InDelta(t, engagement.InterestCap, score, 1e-9)
}

func TestAccumulateInterest_Accumulates(t *testing.T) {
	t.Parallel()
	score, err := engagement.AccumulateInterest(1.0, engagement.ActionWatch)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, score, 1e-9)
}

func TestAccumulateInterest_UnknownLeavesScore(t *testing.T) {
	t.Parallel()
	score, err := engagement.AccumulateInterest(2.0, "hover")
	require.Error(t, err)
	assert.InDelta(t, 2.0, score, 1e-9)
}

func TestPreferredCategories(t *testing.T) {
	t.Parallel()
	scores := map[int64]float64{
		1: 0.4,
		2: 1.0, // at the threshold, not above it
		3: 1.1,
		4: 5.0,
	}
	preferred := engagement.PreferredCategories(scores)
	assert.ElementsMatch(t, []int64{3, 4}, preferred)
}

func TestTrendingWeight(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 3, engagement.TrendingWeight(engagement.ActionBid))
	assert.Equal(t, 1, engagement.TrendingWeight(engagement.ActionView))
	assert.Equal(t, 2, engagement.TrendingWeight(engagement.ActionClick))
	assert.Equal(t, 2, engagement.TrendingWeight(engagement.ActionWatch))
	assert.Equal(t, 2, engagement.TrendingWeight(engagement.ActionSearch))
}
