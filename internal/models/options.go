package models

// OptionType values for OptionLeg.Type.
const (
	OptionTypeCall = "CALL"
	OptionTypePut  = "PUT"
)

// StrategyKind identifies a supported option strategy.
type StrategyKind string

const (
	StrategyBullCallSpread StrategyKind = "BULL_CALL_SPREAD"
	StrategyIronCondor     StrategyKind = "IRON_CONDOR"
)

// OptionLeg represents a leg of an option strategy.
type OptionLeg struct {
	Strike  float64
	Type    string // CALL, PUT
	Side    OrderSide
	Premium float64
}

// Strategy is a fixed-shape set of option legs plus a lot size.
// Premiums and Strikes return leg values in conventional strike order,
// which is the sequence input validation checks.
type Strategy interface {
	Kind() StrategyKind
	Legs() []OptionLeg
	Premiums() []float64
	Strikes() []float64
	NetPremium() float64
	Lots() int
}

// BullCallSpread buys a call at a lower strike and sells a call at a
// higher strike. Two legs, conventionally ordered buy then sell.
type BullCallSpread struct {
	BuyCallStrike   float64
	BuyCallPremium  float64
	SellCallStrike  float64
	SellCallPremium float64
	LotSize         int
}

func (s BullCallSpread) Kind() StrategyKind { return StrategyBullCallSpread }

func (s BullCallSpread) Legs() []OptionLeg {
	return []OptionLeg{
		{Strike: s.BuyCallStrike, Type: OptionTypeCall, Side: OrderSideBuy, Premium: s.BuyCallPremium},
		{Strike: s.SellCallStrike, Type: OptionTypeCall, Side: OrderSideSell, Premium: s.SellCallPremium},
	}
}

func (s BullCallSpread) Premiums() []float64 {
	return []float64{s.BuyCallPremium, s.SellCallPremium}
}

func (s BullCallSpread) Strikes() []float64 {
	return []float64{s.BuyCallStrike, s.SellCallStrike}
}

// NetPremium is premium received minus premium paid, negative for a
// net debit.
func (s BullCallSpread) NetPremium() float64 {
	return s.SellCallPremium - s.BuyCallPremium
}

func (s BullCallSpread) Lots() int { return s.LotSize }

// IronCondor sells a put spread and a call spread around the spot.
// Four legs, conventionally ordered buy-put, sell-put, sell-call,
// buy-call ascending by strike.
type IronCondor struct {
	BuyPutStrike    float64
	BuyPutPremium   float64
	SellPutStrike   float64
	SellPutPremium  float64
	SellCallStrike  float64
	SellCallPremium float64
	BuyCallStrike   float64
	BuyCallPremium  float64
	LotSize         int
}

func (s IronCondor) Kind() StrategyKind { return StrategyIronCondor }

func (s IronCondor) Legs() []OptionLeg {
	return []OptionLeg{
		{Strike: s.BuyPutStrike, Type: OptionTypePut, Side: OrderSideBuy, Premium: s.BuyPutPremium},
		{Strike: s.SellPutStrike, Type: OptionTypePut, Side: OrderSideSell, Premium: s.SellPutPremium},
		{Strike: s.SellCallStrike, Type: OptionTypeCall, Side: OrderSideSell, Premium: s.SellCallPremium},
		{Strike: s.BuyCallStrike, Type: OptionTypeCall, Side: OrderSideBuy, Premium: s.BuyCallPremium},
	}
}

func (s IronCondor) Premiums() []float64 {
	return []float64{s.BuyPutPremium, s.SellPutPremium, s.SellCallPremium, s.BuyCallPremium}
}

func (s IronCondor) Strikes() []float64 {
	return []float64{s.BuyPutStrike, s.SellPutStrike, s.SellCallStrike, s.BuyCallStrike}
}

// NetPremium is premium received minus premium paid, positive for the
// usual net credit.
func (s IronCondor) NetPremium() float64 {
	return s.SellPutPremium + s.SellCallPremium - s.BuyPutPremium - s.BuyCallPremium
}

func (s IronCondor) Lots() int { return s.LotSize }

// StrategyResult represents a computed strategy summary.
type StrategyResult struct {
	Kind       StrategyKind
	Legs       []OptionLeg
	LotSize    int
	NetPremium float64
	MaxProfit  float64
	MaxLoss    float64
	Breakevens []float64
}
