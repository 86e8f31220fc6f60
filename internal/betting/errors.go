package betting

import "errors"

var (
	ErrEventNotFound  = errors.New("event_not_found")
	ErrEventNotOpen   = errors.New("event_not_open")
	ErrInvalidSide    = errors.New("invalid_side")
	ErrInvalidStake   = errors.New("invalid_stake")
	ErrDuplicateWager = errors.New("duplicate_wager")
	ErrAlreadySettled = errors.New("already_settled")

	// ErrInvariant marks arithmetic that should be impossible, e.g. a
	// negative dust amount. The transaction is aborted rather than
	// committed with corrupted totals.
	ErrInvariant = errors.New("settlement_invariant_violated")
)
