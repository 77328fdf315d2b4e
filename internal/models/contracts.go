package models

import "time"

// ContractSpec describes the exchange contract for an F&O underlying:
// the lot size applied to payoffs and the strike grid the exchange lists.
type ContractSpec struct {
	Symbol     string
	Name       string
	Exchange   Exchange
	LotSize    int
	TickSize   float64
	StrikeStep float64
	UpdatedAt  time.Time
}
