// Package reward holds the pure rules of the reward program: the level
// threshold table, achievement categories, and bidding style
// derivation.
package reward

// Achievement categories determine which counter the unlock threshold
// applies to.
const (
	CategoryBidding = "bidding" // lifetime bid count
	CategoryPoints  = "points"  // total points earned
	CategoryLevel   = "level"   // current level
)

// Standard reasons recorded in the ledger.
const (
	ReasonBidPlaced = "Placed a bid"
	ReasonWelcome   = "Welcome bonus"
)

// PointsPerBid is credited for every accepted bid.
const PointsPerBid = 10

var levelThresholds = []struct {
	earned int
	level  int
}{
	{10000, 10},
	{5000, 9},
	{2500, 8},
	{1000, 7},
	{500, 6},
	{250, 5},
	{100, 4},
	{50, 3},
	{20, 2},
}

// LevelForEarned maps cumulative earned points to a level. Users below
// the first threshold are level 1.
func LevelForEarned(totalEarned int) int {
	for _, t := range levelThresholds {
		if totalEarned >= t.earned {
			return t.level
		}
	}
	return 1
}

// Bidding styles inferred from trailing seven-day bid activity.
const (
	StyleConservative = "conservative"
	StyleStrategic    = "strategic"
	StyleAggressive   = "aggressive"
)

// StyleForWeeklyBids derives a bidding style from the number of
// bid-type behavior events in the trailing seven days.
func StyleForWeeklyBids(bids int) string {
	switch {
	case bids > 15:
		return StyleAggressive
	case bids > 7:
		return StyleStrategic
	default:
		return StyleConservative
	}
}
