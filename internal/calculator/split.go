package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitsense/internal/models"
)

// ErrInvalidSplit is returned when a split allocation cannot be computed.
var ErrInvalidSplit = errors.New("invalid split")

// ComputeSplits divides amount equally among participants.
//
// Every participant receives the same share, rounded independently to 2
// decimal places: share = round(amount / n, 2). The rounding remainder is
// not redistributed, so the sum of shares may differ from amount by up to
// (n-1) * 0.005.
func ComputeSplits(amount float64, participantIDs []string) ([]models.Split, error) {
	if len(participantIDs) == 0 {
		return nil, fmt.Errorf("%w: must have at least one participant", ErrInvalidSplit)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive, got %v", ErrInvalidSplit, amount)
	}

	seen := make(map[string]bool, len(participantIDs))
	for _, id := range participantIDs {
		if id == "" {
			return nil, fmt.Errorf("%w: empty participant id", ErrInvalidSplit)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate participant %q", ErrInvalidSplit, id)
		}
		seen[id] = true
	}

	share := decimal.NewFromFloat(amount).
		DivRound(decimal.NewFromInt(int64(len(participantIDs))), 2).
		InexactFloat64()

	splits := make([]models.Split, len(participantIDs))
	for i, id := range participantIDs {
		splits[i] = models.Split{UserID: id, Amount: share}
	}
	return splits, nil
}

// SplitTotal sums the shares of a split allocation.
func SplitTotal(splits []models.Split) float64 {
	total := decimal.Zero
	for _, s := range splits {
		total = total.Add(decimal.NewFromFloat(s.Amount))
	}
	return total.InexactFloat64()
}

// Round2 rounds v to 2 decimal places (half away from zero).
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
