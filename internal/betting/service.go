package betting

import (
	"context"
	"errors"
	"fmt"

	"voice-arcade/internal/ledger"
	"voice-arcade/internal/store"

	"github.com/rs/zerolog/log"
)

// Service settles two-sided betting events pari-mutuel style. All balance
// movement goes through the ledger's balance guard inside one transaction
// per operation.
type Service struct {
	store   *store.Store
	ledger  *ledger.Ledger
	feeRate float64
}

func NewService(st *store.Store, led *ledger.Ledger, feeRate float64) *Service {
	return &Service{store: st, ledger: led, feeRate: feeRate}
}

type Summary struct {
	EventID     string `json:"event_id"`
	TotalPot    int64  `json:"total_pot"`
	FeeTaken    int64  `json:"fee_taken"`
	WinnerCount int    `json:"winner_count"`
	Dust        int64  `json:"dust"`
}

// PlaceWager debits the stake and records the wager in one transaction.
// The event row lock keeps placement from interleaving with settlement.
func (s *Service) PlaceWager(ctx context.Context, accountID, eventID, side string, stake int64) (string, error) {
	if stake <= 0 {
		return "", ErrInvalidStake
	}
	var wagerID string
	err := s.store.InTx(ctx, func(tx *store.Tx) error {
		ev, err := tx.GetEventForUpdate(ctx, eventID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if ev.Status != store.EventOpen {
			return ErrEventNotOpen
		}
		if side != ev.SideA && side != ev.SideB {
			return ErrInvalidSide
		}
		id, err := tx.InsertWager(ctx, accountID, eventID, side, stake)
		if err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return ErrDuplicateWager
			}
			return err
		}
		if _, err := tx.ApplyDelta(ctx, accountID, -stake, ledger.KindBetEntry,
			fmt.Sprintf("wager on %s", side), "event", eventID); err != nil {
			return err
		}
		wagerID = id
		return nil
	})
	if err != nil {
		return "", err
	}
	return wagerID, nil
}

// SettleEvent closes the event and distributes the pot. The second caller
// on the same event blocks on the row lock, then observes it finished.
func (s *Service) SettleEvent(ctx context.Context, eventID, winningSide string) (*Summary, error) {
	var sum Summary
	err := s.store.InTx(ctx, func(tx *store.Tx) error {
		ev, err := tx.GetEventForUpdate(ctx, eventID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if ev.Status == store.EventFinished {
			return ErrAlreadySettled
		}
		if winningSide != ev.SideA && winningSide != ev.SideB {
			return ErrInvalidSide
		}

		wagers, err := tx.ListWagersByEvent(ctx, eventID)
		if err != nil {
			return err
		}
		plan, err := BuildPlan(wagers, winningSide, s.feeRate)
		if err != nil {
			log.Error().Str("event_id", eventID).Msg("settlement plan violated conservation, aborting")
			return err
		}
		sum = Summary{EventID: eventID, TotalPot: plan.TotalPot, FeeTaken: plan.Fee, WinnerCount: len(plan.Shares), Dust: plan.Dust}

		if plan.TotalPot == 0 {
			return tx.FinishEvent(ctx, eventID, winningSide)
		}

		if plan.Fee > 0 {
			if _, err := tx.ApplyDelta(ctx, s.ledger.HouseID, plan.Fee, ledger.KindFeeIn,
				"settlement fee", "event", eventID); err != nil {
				return err
			}
		}
		for _, sh := range plan.Shares {
			if sh.AmountPT > 0 {
				if _, err := tx.ApplyDelta(ctx, sh.AccountID, sh.AmountPT, ledger.KindBetWin,
					fmt.Sprintf("winnings for %s", winningSide), "event", eventID); err != nil {
					return err
				}
			}
			if err := tx.SetWagerStatus(ctx, sh.WagerID, store.WagerWon); err != nil {
				return err
			}
		}
		for _, wagerID := range plan.Losers {
			if err := tx.SetWagerStatus(ctx, wagerID, store.WagerLost); err != nil {
				return err
			}
		}
		if plan.Dust > 0 {
			if _, err := tx.ApplyDelta(ctx, s.ledger.HouseID, plan.Dust, ledger.KindFeeDust,
				"undistributed remainder", "event", eventID); err != nil {
				return err
			}
		}
		return tx.FinishEvent(ctx, eventID, winningSide)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("event_id", eventID).Int64("total_pot", sum.TotalPot).
		Int64("fee", sum.FeeTaken).Int("winners", sum.WinnerCount).Int64("dust", sum.Dust).
		Msg("event settled")
	return &sum, nil
}
