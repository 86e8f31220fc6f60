package ledger

import (
	"context"

	"voice-arcade/internal/store"
)

// Transaction kinds as they appear in ledger_entries.kind.
const (
	KindCharge      = "CHARGE"
	KindSignupGrant = "SIGNUP_GRANT"

	KindBetEntry = "BET_ENTRY"
	KindBetWin   = "BET_WIN"
	KindFeeIn    = "FEE_IN"
	KindFeeDust  = "FEE_DUST"

	KindRPSWin     = "RPS_WIN"
	KindRPSFee     = "RPS_FEE"
	KindOddEvenWin = "ODD_EVEN_WIN"
	KindOddEvenFee = "ODD_EVEN_FEE"
	KindLadderWin  = "LADDER_WIN"
	KindLadderFee  = "LADDER_FEE"
	KindGameLoss   = "GAME_LOSS"

	KindSellModel = "SELL_MODEL"
	KindBuyModel  = "BUY_MODEL"
	KindTTSUse    = "TTS_USE"
	KindTTSFee    = "TTS_FEE"
)

// Ledger binds the balance guard to the configured house account. Engines
// receive the house id through here instead of looking an account up by
// name at settlement time.
type Ledger struct {
	Store   *store.Store
	HouseID string
}

func New(s *store.Store, houseID string) *Ledger {
	return &Ledger{Store: s, HouseID: houseID}
}

func (l *Ledger) Charge(ctx context.Context, accountID string, amount int64, description string) (int64, error) {
	return l.Store.ApplyDelta(ctx, accountID, amount, KindCharge, description, "charge", "")
}

func (l *Ledger) SignupGrant(ctx context.Context, accountID string, amount int64) (int64, error) {
	return l.Store.ApplyDelta(ctx, accountID, amount, KindSignupGrant, "signup grant", "signup", accountID)
}
