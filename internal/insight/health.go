package insight

import (
	"math"

	"github.com/mmynk/splitsense/internal/calculator"
)

// Health statuses.
const (
	Healthy        = "Healthy"
	NeedsAttention = "Needs Attention"
	Critical       = "Critical"
)

// Health is a 0-100 score of how settled a group is.
type Health struct {
	Score  int    `json:"score"`
	Status string `json:"status"`
	Color  string `json:"color"`
}

// GroupHealth scores a group by its unsettled debt relative to its spend.
//
// Each debt appears once as a debtor's negative net and once as a creditor's
// positive net, so the unsettled total is half the sum of absolute nets:
//
//	debt  = sum(|net|) / 2
//	ratio = debt / totalGroupSpend
//	score = clamp(100 - ratio*100, 0, 100)
//
// Status bands are evaluated on the unrounded score; Score itself is rounded.
func GroupHealth(g calculator.GroupAnalytics) Health {
	var absNet float64
	for _, stats := range g.MemberStats {
		absNet += math.Abs(stats.Net)
	}
	debt := absNet / 2

	spend := g.TotalGroupSpend
	if spend == 0 {
		spend = 1
	}
	ratio := debt / spend

	score := math.Max(0, math.Min(100, 100-ratio*100))

	h := Health{Score: int(math.Round(score))}
	switch {
	case score > 80:
		h.Status, h.Color = Healthy, "green"
	case score > 50:
		h.Status, h.Color = NeedsAttention, "yellow"
	default:
		h.Status, h.Color = Critical, "red"
	}
	return h
}
