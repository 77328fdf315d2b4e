// Package payoff implements expiration payoff computation for option
// strategies: a fixed spot-price grid, input validation, the payoff
// engines, breakeven detection, and summary reduction. All functions
// are pure and safe for concurrent use.
package payoff

// BullCallSpread computes the expiration payoff of a bull call spread
// (buy a call at a lower strike, sell a call at a higher strike) for
// each spot price, scaled by lot size.
func BullCallSpread(spots []float64, buyCallStrike, buyCallPremium, sellCallStrike, sellCallPremium float64, lotSize int) []float64 {
	payoff := make([]float64, len(spots))
	lots := float64(lotSize)
	for i, s := range spots {
		buyLeg := max(s-buyCallStrike, 0) - buyCallPremium
		sellLeg := sellCallPremium - max(s-sellCallStrike, 0)
		payoff[i] = (buyLeg + sellLeg) * lots
	}
	return payoff
}

// IronCondor computes the expiration payoff of an iron condor (a put
// spread below the spot plus a call spread above it) for each spot
// price, scaled by lot size.
func IronCondor(spots []float64, buyPutStrike, buyPutPremium, sellPutStrike, sellPutPremium, sellCallStrike, sellCallPremium, buyCallStrike, buyCallPremium float64, lotSize int) []float64 {
	payoff := make([]float64, len(spots))
	lots := float64(lotSize)
	for i, s := range spots {
		putSpread := (max(buyPutStrike-s, 0) - buyPutPremium) + (sellPutPremium - max(sellPutStrike-s, 0))
		callSpread := (max(s-buyCallStrike, 0) - buyCallPremium) + (sellCallPremium - max(s-sellCallStrike, 0))
		payoff[i] = (putSpread + callSpread) * lots
	}
	return payoff
}
