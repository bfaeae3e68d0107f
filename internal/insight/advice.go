package insight

import (
	"fmt"
	"math"
	"sort"

	"github.com/mmynk/splitsense/internal/calculator"
)

// SettlementAdvice names the counterparty a user should pay back first.
// No payment is executed; this is advice only.
type SettlementAdvice struct {
	// Owed is true when the user's net balance is not negative and there is
	// nobody to pay.
	Owed   bool    `json:"owed"`
	To     string  `json:"to,omitempty"`
	Amount float64 `json:"amount,omitempty"`
}

// SuggestSettlement picks the counterparty the user owes the most, judged
// from the user's direct balance map.
func SuggestSettlement(a calculator.UserAnalytics) SettlementAdvice {
	if a.NetBalance >= 0 {
		return SettlementAdvice{Owed: true}
	}

	ids := make([]string, 0, len(a.BalanceMap))
	for id := range a.BalanceMap {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var to string
	var lowest float64
	for _, id := range ids {
		if v := a.BalanceMap[id]; v < lowest {
			to, lowest = id, v
		}
	}
	if to == "" {
		// No counterparty holds a credit against the user.
		return SettlementAdvice{}
	}
	return SettlementAdvice{To: to, Amount: math.Abs(lowest)}
}

// Tip is a savings suggestion for the user's top spending category.
type Tip struct {
	Category         string `json:"category,omitempty"`
	Text             string `json:"text"`
	InsufficientData bool   `json:"insufficient_data"`
}

var categoryTips = map[string]string{
	"Food":          "You're spending a lot on Food. Try meal prepping for 2 days a week to save ~₹4000/month.",
	"Travel":        "Travel is your top expense. Booking flights 45 days in advance usually saves 20%.",
	"Rent":          "Rent is unavoidable, but have you checked if paying annually gets a discount?",
	"Entertainment": "Fun is important! But limiting 'big nights out' to once a month can cut costs by 30%.",
	"Utilities":     "Unplug idle devices at night. It actually reduces the bill by 5-10%!",
}

// SmartTip returns a tip for the category with the largest share.
func SmartTip(a calculator.UserAnalytics) Tip {
	top, ok := calculator.TopCategory(a.CategoryBreakdown)
	if !ok {
		return Tip{Text: "No spending data to analyze yet.", InsufficientData: true}
	}
	if text, ok := categoryTips[top.Name]; ok {
		return Tip{Category: top.Name, Text: text}
	}
	return Tip{Category: top.Name, Text: fmt.Sprintf("Try setting a budget for %s to track it better.", top.Name)}
}
