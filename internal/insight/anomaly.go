package insight

import (
	"github.com/mmynk/splitsense/internal/models"
)

// anomalyMultiplier flags shares above this multiple of the user's mean share.
const anomalyMultiplier = 2.5

const anomalyReason = "Unusually high amount for this category"

// Anomaly is an expense whose share for the user is far above their mean.
type Anomaly struct {
	Expense models.Expense `json:"expense"`
	Share   float64        `json:"share"`
	Reason  string         `json:"reason"`
}

// DetectAnomalies returns the user's expenses whose share exceeds 2.5x the
// mean share across all expenses the user participates in.
//
// The threshold is relative to the mean, not a standard deviation. Results
// keep the order of the input.
func DetectAnomalies(expenses []models.Expense, userID string) []Anomaly {
	type entry struct {
		expense models.Expense
		share   float64
	}
	var mine []entry
	var total float64
	for _, e := range expenses {
		if share, ok := e.ShareOf(userID); ok {
			mine = append(mine, entry{expense: e, share: share})
			total += share
		}
	}

	mean := total / float64(max(len(mine), 1))
	threshold := mean * anomalyMultiplier

	anomalies := []Anomaly{}
	for _, m := range mine {
		if m.share > threshold {
			anomalies = append(anomalies, Anomaly{
				Expense: m.expense,
				Share:   m.share,
				Reason:  anomalyReason,
			})
		}
	}
	return anomalies
}
