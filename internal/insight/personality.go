package insight

import (
	"github.com/mmynk/splitsense/internal/calculator"
)

// Personality types.
const (
	Sponsor    = "Sponsor"
	Freeloader = "Freeloader"
	ZenMaster  = "Zen Master"
	FairPlayer = "Fair Player"
)

// Personality is a spending-style classification.
type Personality struct {
	Type        string `json:"type"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// ClassifyPersonality classifies a user by the ratio of what they paid to
// what they consumed. Rules are checked in order and the first match wins:
//
//	paid/share > 1.5  -> Sponsor
//	paid/share < 0.8  -> Freeloader
//	net balance == 0  -> Zen Master
//	otherwise         -> Fair Player
func ClassifyPersonality(a calculator.UserAnalytics) Personality {
	share := a.TotalShare
	if share == 0 {
		share = 1
	}
	ratio := a.TotalPaid / share

	switch {
	case ratio > 1.5:
		return Personality{Type: Sponsor, Icon: "👑", Description: "You often pay for the whole group upfront."}
	case ratio < 0.8:
		return Personality{Type: Freeloader, Icon: "👻", Description: "You tend to be reimbursed often."}
	case calculator.Round2(a.NetBalance) == 0:
		return Personality{Type: ZenMaster, Icon: "🧘", Description: "Perfectly balanced."}
	default:
		return Personality{Type: FairPlayer, Icon: "⚖️", Description: "You contribute exactly your share."}
	}
}
