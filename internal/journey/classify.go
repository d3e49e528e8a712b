package journey

import "strings"

// DetectFlow classifies a journey from the user's first two selections.
// A missing intro selection is passed as "".
func DetectFlow(mainSel, introSel string) Flow {
	main := strings.ToLower(mainSel)
	intro := strings.ToLower(introSel)

	switch {
	case strings.Contains(main, "rent"):
		switch {
		case strings.Contains(intro, "tenant"):
			return FlowRentTenant
		case strings.Contains(intro, "owner"):
			return FlowRentOwner
		case strings.Contains(intro, "channel"):
			return FlowChannelPartner
		}
	case strings.Contains(main, "buy") || strings.Contains(main, "sell"):
		switch {
		case strings.Contains(intro, "buyer"):
			return FlowBuyBuyer
		case strings.Contains(intro, "seller"):
			return FlowBuySeller
		case strings.Contains(intro, "channel"):
			return FlowChannelPartner
		}
	case strings.Contains(main, "talk"):
		return FlowTalkToExpert
	}
	return FlowUnknown
}
