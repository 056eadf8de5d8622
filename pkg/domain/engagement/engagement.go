// Package engagement holds the behavior-tracking rules that feed the
// recommendation engine: action weights, interest score accumulation,
// and preference derivation.
package engagement

import "errors"

// Behavior actions recorded in the append-only log.
const (
	ActionView   = "view"
	ActionClick  = "click"
	ActionBid    = "bid"
	ActionWatch  = "watch"
	ActionSearch = "search"
)

// ErrUnknownAction is returned when tracking an unrecognized action.
var ErrUnknownAction = errors.New("unknown behavior action")

var actionWeights = map[string]float64{
	ActionView:   0.1,
	ActionClick:  0.3,
	ActionBid:    1.0,
	ActionWatch:  0.5,
	ActionSearch: 0.2,
}

// InterestCap bounds the per-category interest score.
const InterestCap = 5.0

// PreferredThreshold is the interest score above which a category
// counts as preferred.
const PreferredThreshold = 1.0

// ActionWeight returns the interest weight of an action, or an error
// for actions outside the known set.
func ActionWeight(action string) (float64, error) {
	w, ok := actionWeights[action]
	if !ok {
		return 0, ErrUnknownAction
	}
	return w, nil
}

// AccumulateInterest applies an action's weight to a category score,
// capped at InterestCap.
func AccumulateInterest(current float64, action string) (float64, error) {
	w, err := ActionWeight(action)
	if err != nil {
		return current, err
	}
	next := current + w
	if next > InterestCap {
		next = InterestCap
	}
	return next, nil
}

// PreferredCategories returns the categories whose interest score
// crossed the preferred threshold.
func PreferredCategories(scores map[int64]float64) []int64 {
	preferred := make([]int64, 0, len(scores))
	for id, score := range scores {
		if score > PreferredThreshold {
			preferred = append(preferred, id)
		}
	}
	return preferred
}

// Trending activity weights per action over the trailing 24 hours.
// Bids count triple, views single, everything else double.
func TrendingWeight(action string) int {
	switch action {
	case ActionBid:
		return 3
	case ActionView:
		return 1
	default:
		return 2
	}
}
