package minigame

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"voice-arcade/internal/ledger"
	"voice-arcade/internal/store"
)

// Service evaluates single-shot wagers. Each play validates before any
// mutation, produces a reveal, and applies its deltas in one transaction.
type Service struct {
	store   *store.Store
	ledger  *ledger.Ledger
	feeRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewService(st *store.Store, led *ledger.Ledger, feeRate float64) *Service {
	return &Service{
		store:   st,
		ledger:  led,
		feeRate: feeRate,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewServiceWithRand pins the random source for deterministic reveals.
func NewServiceWithRand(st *store.Store, led *ledger.Ledger, feeRate float64, rng *rand.Rand) *Service {
	return &Service{store: st, ledger: led, feeRate: feeRate, rng: rng}
}

type FixedOddsResult struct {
	Game         string  `json:"game"`
	Choice       string  `json:"choice"`
	Reveal       string  `json:"reveal"`
	Outcome      Outcome `json:"result"`
	CreditChange int64   `json:"credit_change"`
	NewBalance   int64   `json:"new_balance"`
}

type LadderResult struct {
	Picks        LadderPicks `json:"picks"`
	Round        LadderRound `json:"round"`
	Matched      int         `json:"matched"`
	Win          bool        `json:"win"`
	PayoutPT     int64       `json:"payout_pt"`
	CreditChange int64       `json:"credit_change"`
	NewBalance   int64       `json:"new_balance"`
}

func (s *Service) PlayRPS(ctx context.Context, accountID string, stake int64, choice string) (*FixedOddsResult, error) {
	if !ValidRPSChoice(choice) {
		return nil, ErrInvalidChoice
	}
	if err := s.checkStake(ctx, accountID, stake); err != nil {
		return nil, err
	}

	houseChoice := [3]string{ChoiceRock, ChoicePaper, ChoiceScissors}[s.intn(3)]
	outcome := EvalRPS(choice, houseChoice)

	res := &FixedOddsResult{Game: "rps", Choice: choice, Reveal: houseChoice, Outcome: outcome}
	err := s.settleFixedOdds(ctx, accountID, stake, outcome, ledger.KindRPSWin, ledger.KindRPSFee, "rock-paper-scissors", res)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) PlayOddEven(ctx context.Context, accountID string, stake int64, choice string) (*FixedOddsResult, error) {
	if !ValidParityChoice(choice) {
		return nil, ErrInvalidChoice
	}
	if err := s.checkStake(ctx, accountID, stake); err != nil {
		return nil, err
	}

	roll := 1 + s.intn(6)
	outcome := EvalParity(choice, roll)

	res := &FixedOddsResult{Game: "odd-even", Choice: choice, Reveal: fmt.Sprintf("%d", roll), Outcome: outcome}
	err := s.settleFixedOdds(ctx, accountID, stake, outcome, ledger.KindOddEvenWin, ledger.KindOddEvenFee, "odd-even", res)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) PlayLadder(ctx context.Context, accountID string, stake int64, picks LadderPicks) (*LadderResult, error) {
	if err := picks.validate(); err != nil {
		return nil, err
	}
	if err := s.checkStake(ctx, accountID, stake); err != nil {
		return nil, err
	}

	s.mu.Lock()
	round := NewLadderRound(s.rng)
	s.mu.Unlock()
	matched, win := MatchLadder(picks, round)

	res := &LadderResult{Picks: picks, Round: round, Matched: matched, Win: win}
	err := s.store.InTx(ctx, func(tx *store.Tx) error {
		if !win {
			bal, err := tx.ApplyDelta(ctx, accountID, -stake, ledger.KindGameLoss, "ladder loss", "game", "ladder")
			if err != nil {
				return err
			}
			res.CreditChange = -stake
			res.NewBalance = bal
			return nil
		}
		payout, fair := LadderPayout(stake, matched)
		profit := payout - stake
		fee := fair - payout
		res.PayoutPT = payout
		bal, err := tx.ApplyDelta(ctx, accountID, profit, ledger.KindLadderWin,
			fmt.Sprintf("ladder win x%d", matched), "game", "ladder")
		if err != nil {
			return err
		}
		if fee > 0 {
			if _, err := tx.ApplyDelta(ctx, s.ledger.HouseID, fee, ledger.KindLadderFee, "ladder fee", "game", "ladder"); err != nil {
				return err
			}
		}
		res.CreditChange = profit
		res.NewBalance = bal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// settleFixedOdds applies the shared fixed-odds outcome: win credits the
// net amount (stake minus fee, stake untouched), loss forfeits the stake,
// draw moves nothing.
func (s *Service) settleFixedOdds(ctx context.Context, accountID string, stake int64, outcome Outcome, winKind, feeKind, desc string, res *FixedOddsResult) error {
	return s.store.InTx(ctx, func(tx *store.Tx) error {
		switch outcome {
		case OutcomeWin:
			fee := FixedOddsFee(stake, s.feeRate)
			bal, err := tx.ApplyDelta(ctx, accountID, stake-fee, winKind, desc+" win", "game", desc)
			if err != nil {
				return err
			}
			if fee > 0 {
				if _, err := tx.ApplyDelta(ctx, s.ledger.HouseID, fee, feeKind, desc+" fee", "game", desc); err != nil {
					return err
				}
			}
			res.CreditChange = stake - fee
			res.NewBalance = bal
		case OutcomeLose:
			bal, err := tx.ApplyDelta(ctx, accountID, -stake, ledger.KindGameLoss, desc+" loss", "game", desc)
			if err != nil {
				return err
			}
			res.CreditChange = -stake
			res.NewBalance = bal
		case OutcomeDraw:
			bal, err := s.store.GetAccountBalance(ctx, accountID)
			if err != nil {
				return err
			}
			res.CreditChange = 0
			res.NewBalance = bal
		}
		return nil
	})
}

func (s *Service) checkStake(ctx context.Context, accountID string, stake int64) error {
	if stake <= 0 {
		return ErrInvalidStake
	}
	bal, err := s.store.GetAccountBalance(ctx, accountID)
	if err != nil {
		return err
	}
	if bal < stake {
		return store.ErrInsufficientFunds
	}
	return nil
}

func (s *Service) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
