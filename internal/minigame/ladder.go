package minigame

import "math/rand"

const (
	SideLeft  = "LEFT"
	SideRight = "RIGHT"

	ladderRows = 7
)

// LadderRound is one revealed board: a two-rail ladder with 3 or 4 rungs
// at distinct rows. The path flips rails at every rung, so the end side
// follows from the start side and the rung parity.
type LadderRound struct {
	Start    string `json:"start"`
	Lines    int    `json:"lines"`
	End      string `json:"end"`
	RungRows []int  `json:"rung_rows"`
}

// LadderPicks is what the player committed to before the reveal. Nil means
// the field was not chosen. At least one field must be chosen.
type LadderPicks struct {
	Start *string `json:"start,omitempty"`
	Lines *int    `json:"lines,omitempty"`
	End   *string `json:"end,omitempty"`
}

func (p LadderPicks) Count() int {
	n := 0
	if p.Start != nil {
		n++
	}
	if p.Lines != nil {
		n++
	}
	if p.End != nil {
		n++
	}
	return n
}

func (p LadderPicks) validate() error {
	if p.Count() == 0 {
		return ErrNoPicks
	}
	if p.Start != nil && *p.Start != SideLeft && *p.Start != SideRight {
		return ErrInvalidChoice
	}
	if p.Lines != nil && *p.Lines != 3 && *p.Lines != 4 {
		return ErrInvalidChoice
	}
	if p.End != nil && *p.End != SideLeft && *p.End != SideRight {
		return ErrInvalidChoice
	}
	return nil
}

// NewLadderRound generates a board and traces the path to its end side.
func NewLadderRound(rng *rand.Rand) LadderRound {
	lines := 3 + rng.Intn(2)
	rows := rng.Perm(ladderRows)[:lines]
	start := SideLeft
	if rng.Intn(2) == 1 {
		start = SideRight
	}
	return LadderRound{
		Start:    start,
		Lines:    lines,
		End:      traceLadder(start, lines),
		RungRows: rows,
	}
}

// traceLadder walks the rail top to bottom; every rung crosses to the
// other rail, so parity alone decides the exit side.
func traceLadder(start string, rungs int) string {
	side := start
	for i := 0; i < rungs; i++ {
		if side == SideLeft {
			side = SideRight
		} else {
			side = SideLeft
		}
	}
	return side
}

// MatchLadder counts matched picks. A win requires every chosen field to
// match; one miss on a chosen field loses the whole stake.
func MatchLadder(p LadderPicks, r LadderRound) (matched int, win bool) {
	win = true
	if p.Start != nil {
		if *p.Start == r.Start {
			matched++
		} else {
			win = false
		}
	}
	if p.Lines != nil {
		if *p.Lines == r.Lines {
			matched++
		} else {
			win = false
		}
	}
	if p.End != nil {
		if *p.End == r.End {
			matched++
		} else {
			win = false
		}
	}
	return matched, win && matched > 0
}

// LadderPayout is the fee-adjusted payout for k matched picks:
// floor(stake * 2^k * 0.9). The fair payout would be stake * 2^k; the
// difference is the house fee.
func LadderPayout(stake int64, matched int) (payout, fair int64) {
	fair = stake * (1 << matched)
	payout = fair * 9 / 10
	return payout, fair
}
