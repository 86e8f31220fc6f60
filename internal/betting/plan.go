package betting

import (
	"math"

	"voice-arcade/internal/store"
)

// Share is one winning wager's cut of the prize pot.
type Share struct {
	WagerID   string
	AccountID string
	AmountPT  int64
}

// Plan is the full set of deltas one settlement will apply. Building it is
// pure; applying it happens inside a single store transaction.
type Plan struct {
	TotalPot  int64
	Fee       int64
	PrizePot  int64
	WinnerPot int64
	Dust      int64
	Shares    []Share
	Losers    []string
}

// BuildPlan computes the pari-mutuel distribution for a finished event.
//
// fee = floor(totalPot * feeRate) goes to the house. Each winning wager
// gets floor(stake * prizePot / winnerPot); the floor remainders (dust)
// also go to the house, so fee + shares + dust always equals the pot.
// When nobody backed the winning side the entire prize pot is dust.
func BuildPlan(wagers []store.Wager, winningSide string, feeRate float64) (Plan, error) {
	var p Plan
	for _, w := range wagers {
		p.TotalPot += w.StakePT
		if w.Side == winningSide {
			p.WinnerPot += w.StakePT
		}
	}
	if p.TotalPot == 0 {
		return p, nil
	}

	p.Fee = int64(math.Floor(float64(p.TotalPot) * feeRate))
	p.PrizePot = p.TotalPot - p.Fee

	var distributed int64
	for _, w := range wagers {
		if w.Side != winningSide {
			p.Losers = append(p.Losers, w.ID)
			continue
		}
		share := w.StakePT * p.PrizePot / p.WinnerPot
		p.Shares = append(p.Shares, Share{WagerID: w.ID, AccountID: w.AccountID, AmountPT: share})
		distributed += share
	}
	p.Dust = p.PrizePot - distributed
	if p.Dust < 0 || p.Fee < 0 || p.Fee+distributed+p.Dust != p.TotalPot {
		return Plan{}, ErrInvariant
	}
	return p, nil
}
