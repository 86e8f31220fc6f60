package public

import (
	"context"
	"errors"

	"voice-arcade/internal/store"
)

// Service is the read side: profiles, ledgers, standings and listings.
// Nothing here moves credits.
type Service struct {
	store *store.Store
}

const leaderboardMaxRows = 100

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) Profile(ctx context.Context, username string) (*ProfileResponse, error) {
	if username == "" {
		return nil, ErrInvalidRequest
	}
	acct, err := s.store.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &ProfileResponse{
		AccountID: acct.ID,
		Username:  acct.Username,
		Nickname:  acct.Nickname,
		BalancePT: acct.BalancePT,
		CreatedAt: acct.CreatedAt,
	}, nil
}

func (s *Service) Ledger(ctx context.Context, accountID, kind string, limit, offset int) (*LedgerResponse, error) {
	if accountID == "" {
		return nil, ErrInvalidRequest
	}
	items, err := s.store.ListLedgerEntries(ctx, store.LedgerFilter{AccountID: accountID, Kind: kind}, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]LedgerItem, 0, len(items))
	for _, it := range items {
		out = append(out, LedgerItem{
			ID:          it.ID,
			AmountPT:    it.AmountPT,
			Kind:        it.Kind,
			Description: it.Description,
			RefType:     it.RefType,
			RefID:       it.RefID,
			CreatedAt:   it.CreatedAt,
		})
	}
	return &LedgerResponse{Items: out, Limit: limit, Offset: offset}, nil
}

func (s *Service) Leaderboard(ctx context.Context, limit, offset int) (*LeaderboardResponse, error) {
	if limit > leaderboardMaxRows {
		limit = leaderboardMaxRows
	}
	items, err := s.store.ListLeaderboard(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]LeaderboardItem, 0, len(items))
	for _, it := range items {
		out = append(out, LeaderboardItem{AccountID: it.AccountID, Nickname: it.Nickname, NetPT: it.NetPT})
	}
	return &LeaderboardResponse{Items: out, Limit: limit, Offset: offset}, nil
}

func (s *Service) Events(ctx context.Context, status string, limit, offset int) (*EventsResponse, error) {
	if status != "" && status != store.EventOpen && status != store.EventFinished {
		return nil, ErrInvalidRequest
	}
	items, err := s.store.ListEvents(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]EventItem, 0, len(items))
	for _, it := range items {
		out = append(out, EventItem{
			ID:          it.ID,
			Title:       it.Title,
			SideA:       it.SideA,
			SideB:       it.SideB,
			Status:      it.Status,
			WinningSide: it.WinningSide,
			CreatedAt:   it.CreatedAt,
			SettledAt:   it.SettledAt,
		})
	}
	return &EventsResponse{Items: out, Limit: limit, Offset: offset}, nil
}

func (s *Service) Wagers(ctx context.Context, accountID string, limit, offset int) (*WagersResponse, error) {
	if accountID == "" {
		return nil, ErrInvalidRequest
	}
	items, err := s.store.ListWagersByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]WagerItem, 0, len(items))
	for _, it := range items {
		out = append(out, WagerItem{
			ID:        it.ID,
			EventID:   it.EventID,
			Side:      it.Side,
			StakePT:   it.StakePT,
			Status:    it.Status,
			CreatedAt: it.CreatedAt,
		})
	}
	return &WagersResponse{Items: out, Limit: limit, Offset: offset}, nil
}

func (s *Service) Listings(ctx context.Context, limit, offset int) (*ListingsResponse, error) {
	items, err := s.store.ListPublicListings(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]ListingItem, 0, len(items))
	for _, it := range items {
		out = append(out, ListingItem{
			ID:             it.ID,
			OwnerAccountID: it.OwnerAccountID,
			Name:           it.Name,
			PricePT:        it.PricePT,
			UsageCount:     it.UsageCount,
			CreatedAt:      it.CreatedAt,
		})
	}
	return &ListingsResponse{Items: out, Limit: limit, Offset: offset}, nil
}

func (s *Service) Usage(ctx context.Context, accountID string, limit, offset int) (*UsageResponse, error) {
	if accountID == "" {
		return nil, ErrInvalidRequest
	}
	items, err := s.store.ListUsageByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]UsageItem, 0, len(items))
	for _, it := range items {
		out = append(out, UsageItem{ListingID: it.ListingID, CostPT: it.CostPT, TextLen: it.TextLen, CreatedAt: it.CreatedAt})
	}
	return &UsageResponse{Items: out, Limit: limit, Offset: offset}, nil
}
