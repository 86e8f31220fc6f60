package market

import (
	"context"
	"errors"
	"fmt"

	"voice-arcade/internal/ledger"
	"voice-arcade/internal/store"

	"github.com/rs/zerolog/log"
)

var (
	ErrListingNotFound = errors.New("listing_not_found")
	ErrAlreadyOwned    = errors.New("already_owned")
	ErrPrivate         = errors.New("private_listing")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrSelfPurchase    = errors.New("self_purchase")
)

// Policy holds the revenue-split knobs. Per-use revenue routes 100% to
// the house; the superseded owner-royalty split is intentionally not
// implemented, the two policies are mutually incompatible.
type Policy struct {
	OwnerSharePct int
	SelfUseFree   bool
}

type Service struct {
	store  *store.Store
	ledger *ledger.Ledger
	policy Policy
}

func NewService(st *store.Store, led *ledger.Ledger, policy Policy) *Service {
	return &Service{store: st, ledger: led, policy: policy}
}

// SplitPrice divides a purchase price between owner and house. The owner
// share floors; the house takes the exact remainder so the two always sum
// to the price.
func SplitPrice(price int64, ownerSharePct int) (owner, house int64) {
	owner = price * int64(ownerSharePct) / 100
	return owner, price - owner
}

func (s *Service) RegisterListing(ctx context.Context, ownerAccountID, name string, pricePT int64, public bool) (string, error) {
	if name == "" || pricePT < 0 {
		return "", fmt.Errorf("invalid listing")
	}
	if _, err := s.store.GetAccount(ctx, ownerAccountID); err != nil {
		return "", err
	}
	return s.store.CreateListing(ctx, ownerAccountID, name, pricePT, public)
}

func (s *Service) ListPublic(ctx context.Context, limit, offset int) ([]store.Listing, error) {
	return s.store.ListPublicListings(ctx, limit, offset)
}

// Purchase transfers the listing price from buyer to owner and house in
// one transaction. The purchases uniqueness constraint rejects a second
// buy of the same listing.
func (s *Service) Purchase(ctx context.Context, buyerAccountID, listingID string) error {
	err := s.store.InTx(ctx, func(tx *store.Tx) error {
		listing, err := tx.GetListingForUpdate(ctx, listingID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrListingNotFound
			}
			return err
		}
		if listing.OwnerAccountID == buyerAccountID {
			return ErrSelfPurchase
		}
		if !listing.Public {
			return ErrPrivate
		}
		if _, err := tx.InsertPurchase(ctx, buyerAccountID, listingID, listing.PricePT); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return ErrAlreadyOwned
			}
			return err
		}
		if listing.PricePT == 0 {
			return nil
		}

		ownerShare, houseShare := SplitPrice(listing.PricePT, s.policy.OwnerSharePct)
		if _, err := tx.ApplyDelta(ctx, buyerAccountID, -listing.PricePT, ledger.KindBuyModel,
			fmt.Sprintf("purchase %s", listing.Name), "listing", listingID); err != nil {
			return err
		}
		if ownerShare > 0 {
			if _, err := tx.ApplyDelta(ctx, listing.OwnerAccountID, ownerShare, ledger.KindSellModel,
				fmt.Sprintf("sale of %s", listing.Name), "listing", listingID); err != nil {
				return err
			}
		}
		if houseShare > 0 {
			if _, err := tx.ApplyDelta(ctx, s.ledger.HouseID, houseShare, ledger.KindFeeIn,
				"marketplace fee", "listing", listingID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().Str("listing_id", listingID).Str("buyer", buyerAccountID).Msg("listing purchased")
	return nil
}

// ChargeUsage bills one TTS generation against the consumer. The full cost
// goes to the house; self-use is free when the policy says so. Private
// listings are usable by their owner only.
func (s *Service) ChargeUsage(ctx context.Context, consumerAccountID, listingID string, costPT int64, textLen int) error {
	if costPT < 0 {
		return fmt.Errorf("invalid cost: %d", costPT)
	}
	return s.store.InTx(ctx, func(tx *store.Tx) error {
		listing, err := tx.GetListingForUpdate(ctx, listingID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrListingNotFound
			}
			return err
		}
		selfUse := listing.OwnerAccountID == consumerAccountID
		if !listing.Public && !selfUse {
			return ErrUnauthorized
		}

		charge := costPT
		if selfUse && s.policy.SelfUseFree {
			charge = 0
		}
		if charge > 0 {
			if _, err := tx.ApplyDelta(ctx, consumerAccountID, -charge, ledger.KindTTSUse,
				fmt.Sprintf("tts with %s", listing.Name), "listing", listingID); err != nil {
				return err
			}
			if _, err := tx.ApplyDelta(ctx, s.ledger.HouseID, charge, ledger.KindTTSFee,
				"tts usage fee", "listing", listingID); err != nil {
				return err
			}
		}
		if err := tx.BumpListingUsage(ctx, listingID); err != nil {
			return err
		}
		_, err = tx.InsertUsageRecord(ctx, consumerAccountID, listingID, charge, textLen)
		return err
	})
}
