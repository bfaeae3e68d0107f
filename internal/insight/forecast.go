package insight

import (
	"github.com/mmynk/splitsense/internal/models"
)

const (
	// growthFactor is the fixed month-over-month growth applied to the average share.
	growthFactor = 1.10

	// forecastConfidence and forecastTrend are fixed values, not derived from variance.
	forecastConfidence = 85
	forecastTrend      = "up"
	forecastReason     = "Increased dining out frequency"
)

// Forecast is a next-month spending prediction for one user.
type Forecast struct {
	NextMonth        float64 `json:"next_month"`
	Confidence       int     `json:"confidence"`
	Trend            string  `json:"trend"`
	Reason           string  `json:"reason"`
	InsufficientData bool    `json:"insufficient_data"`
}

// PredictNextMonth forecasts the user's spending as the average per-expense
// share scaled by a fixed growth factor.
//
// This is a placeholder heuristic: Confidence and Trend are constants. With no
// history the average uses a denominator of 1 and the forecast is 0.
func PredictNextMonth(expenses []models.Expense, userID string) Forecast {
	var total float64
	var count int
	for _, e := range expenses {
		if share, ok := e.ShareOf(userID); ok {
			total += share
			count++
		}
	}

	avg := total / float64(max(count, 1))
	return Forecast{
		NextMonth:        avg * growthFactor,
		Confidence:       forecastConfidence,
		Trend:            forecastTrend,
		Reason:           forecastReason,
		InsufficientData: count == 0,
	}
}
