package betting

import (
	"testing"

	"voice-arcade/internal/store"
)

func wager(id, account, side string, stake int64) store.Wager {
	return store.Wager{ID: id, AccountID: account, EventID: "ev1", Side: side, StakePT: stake, Status: store.WagerPending}
}

func TestBuildPlanEvenSplit(t *testing.T) {
	// Pot 1000 split 600/400, fee 10%: fee=100, prize=900, three equal
	// winners of 200 each get 300, no dust.
	wagers := []store.Wager{
		wager("w1", "a1", "A", 200),
		wager("w2", "a2", "A", 200),
		wager("w3", "a3", "A", 200),
		wager("w4", "b1", "B", 400),
	}
	p, err := BuildPlan(wagers, "A", 0.10)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if p.TotalPot != 1000 || p.Fee != 100 || p.PrizePot != 900 || p.WinnerPot != 600 {
		t.Fatalf("unexpected pots: %+v", p)
	}
	if len(p.Shares) != 3 {
		t.Fatalf("expected 3 shares, got %d", len(p.Shares))
	}
	for _, sh := range p.Shares {
		if sh.AmountPT != 300 {
			t.Fatalf("share = %d, want 300", sh.AmountPT)
		}
	}
	if p.Dust != 0 {
		t.Fatalf("dust = %d, want 0", p.Dust)
	}
	if len(p.Losers) != 1 || p.Losers[0] != "w4" {
		t.Fatalf("losers = %v, want [w4]", p.Losers)
	}
}

func TestBuildPlanDustSweep(t *testing.T) {
	// Uneven stakes force floor rounding; dust covers the difference.
	wagers := []store.Wager{
		wager("w1", "a1", "A", 100),
		wager("w2", "a2", "A", 201),
		wager("w3", "b1", "B", 31),
	}
	p, err := BuildPlan(wagers, "A", 0.10)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	// pot=332, fee=33, prize=299, winnerPot=301: shares 99+199, dust 1.
	var distributed int64
	for _, sh := range p.Shares {
		distributed += sh.AmountPT
	}
	if distributed != 298 || p.Dust != 1 {
		t.Fatalf("distributed = %d dust = %d, want 298 and 1", distributed, p.Dust)
	}
	if p.Fee+distributed+p.Dust != p.TotalPot {
		t.Fatalf("conservation broken: fee=%d shares=%d dust=%d pot=%d", p.Fee, distributed, p.Dust, p.TotalPot)
	}
}

func TestBuildPlanNoWinners(t *testing.T) {
	// Pot 500, nobody on the winning side: the full prize pot is swept,
	// not just the fee.
	wagers := []store.Wager{
		wager("w1", "a1", "B", 300),
		wager("w2", "a2", "B", 200),
	}
	p, err := BuildPlan(wagers, "A", 0.10)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if p.WinnerPot != 0 || len(p.Shares) != 0 {
		t.Fatalf("expected no winners, got %+v", p)
	}
	if p.Fee != 50 || p.Dust != 450 {
		t.Fatalf("fee = %d dust = %d, want 50 and 450", p.Fee, p.Dust)
	}
	if p.Fee+p.Dust != 500 {
		t.Fatalf("house should receive the whole pot, got %d", p.Fee+p.Dust)
	}
}

func TestBuildPlanEmptyPot(t *testing.T) {
	p, err := BuildPlan(nil, "A", 0.10)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if p.TotalPot != 0 || p.Fee != 0 || p.Dust != 0 || len(p.Shares) != 0 {
		t.Fatalf("expected empty plan, got %+v", p)
	}
}

func TestBuildPlanZeroFeeRate(t *testing.T) {
	wagers := []store.Wager{
		wager("w1", "a1", "A", 100),
		wager("w2", "b1", "B", 100),
	}
	p, err := BuildPlan(wagers, "A", 0)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if p.Fee != 0 {
		t.Fatalf("fee = %d, want 0", p.Fee)
	}
	if len(p.Shares) != 1 || p.Shares[0].AmountPT != 200 {
		t.Fatalf("winner should take the whole pot, got %+v", p.Shares)
	}
}
