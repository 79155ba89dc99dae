package model

import "math"

// BinEstimate holds the results of a quick bin-count estimate for an item list.
type BinEstimate struct {
	TotalWeight    float64 `json:"total_weight"`
	Capacity       float64 `json:"capacity"`
	BinsExact      float64 `json:"bins_exact"`      // Fractional number of bins
	BinsMin        int     `json:"bins_min"`        // ceil(total/capacity), see CeilBins
	LargeItems     int     `json:"large_items"`     // Items heavier than half the capacity
	LowerBound     int     `json:"lower_bound"`     // max(BinsMin, LargeItems)
	BinsWithSlack  int     `json:"bins_with_slack"` // Recommended bins including slack factor
	SlackPercent   float64 `json:"slack_percent"`   // Slack factor applied (e.g., 15 for 15%)
	OversizedItems int     `json:"oversized_items"` // Items that cannot fit in any bin
	HeaviestItem   float64 `json:"heaviest_item"`
}

// EstimateBins computes a lower bound and a padded bin count for a weight list.
// No packing can use fewer than LowerBound bins: the total weight needs BinsMin,
// and no two items heavier than half the capacity can share a bin.
func EstimateBins(weights []float64, capacity, slackPercent float64) BinEstimate {
	est := BinEstimate{Capacity: capacity, SlackPercent: slackPercent}
	for _, w := range weights {
		est.TotalWeight += w
		if w > est.HeaviestItem {
			est.HeaviestItem = w
		}
		if capacity > 0 && w > capacity {
			est.OversizedItems++
		}
		if capacity > 0 && w > capacity/2 {
			est.LargeItems++
		}
	}

	if capacity <= 0 {
		return est
	}

	est.BinsExact = est.TotalWeight / capacity
	est.BinsMin = CeilBins(est.TotalWeight, capacity)

	est.LowerBound = est.BinsMin
	if est.LargeItems > est.LowerBound {
		est.LowerBound = est.LargeItems
	}

	slackFactor := 1.0 + (slackPercent / 100.0)
	est.BinsWithSlack = int(math.Ceil(est.BinsExact * slackFactor))
	if est.BinsWithSlack < est.LowerBound {
		est.BinsWithSlack = est.LowerBound
	}
	return est
}
