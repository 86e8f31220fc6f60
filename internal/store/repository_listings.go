package store

import (
	"context"
)

func (s *Store) CreateListing(ctx context.Context, ownerAccountID, name string, pricePT int64, public bool) (string, error) {
	id := NewID()
	_, err := s.Pool.Exec(ctx, `INSERT INTO listings (id, owner_account_id, name, price_pt, public) VALUES ($1,$2,$3,$4,$5)`,
		id, ownerAccountID, name, pricePT, public)
	return id, err
}

func (s *Store) GetListing(ctx context.Context, id string) (*Listing, error) {
	row := s.Pool.QueryRow(ctx, `SELECT id, owner_account_id, name, price_pt, public, usage_count, created_at FROM listings WHERE id = $1`, id)
	var l Listing
	if err := row.Scan(&l.ID, &l.OwnerAccountID, &l.Name, &l.PricePT, &l.Public, &l.UsageCount, &l.CreatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &l, nil
}

func (s *Store) ListPublicListings(ctx context.Context, limit, offset int) ([]Listing, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `SELECT id, owner_account_id, name, price_pt, public, usage_count, created_at FROM listings WHERE public ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Listing{}
	for rows.Next() {
		var l Listing
		if err := rows.Scan(&l.ID, &l.OwnerAccountID, &l.Name, &l.PricePT, &l.Public, &l.UsageCount, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (t *Tx) GetListingForUpdate(ctx context.Context, id string) (*Listing, error) {
	row := t.tx.QueryRow(ctx, `SELECT id, owner_account_id, name, price_pt, public, usage_count, created_at FROM listings WHERE id = $1 FOR UPDATE`, id)
	var l Listing
	if err := row.Scan(&l.ID, &l.OwnerAccountID, &l.Name, &l.PricePT, &l.Public, &l.UsageCount, &l.CreatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &l, nil
}

// InsertPurchase relies on the (buyer, listing) unique constraint to reject
// a second purchase of the same listing.
func (t *Tx) InsertPurchase(ctx context.Context, buyerAccountID, listingID string, pricePT int64) (string, error) {
	id := NewID()
	_, err := t.tx.Exec(ctx, `INSERT INTO purchases (id, buyer_account_id, listing_id, price_pt) VALUES ($1,$2,$3,$4)`,
		id, buyerAccountID, listingID, pricePT)
	if err != nil {
		return "", mapUniqueViolation(err)
	}
	return id, nil
}

func (t *Tx) BumpListingUsage(ctx context.Context, listingID string) error {
	_, err := t.tx.Exec(ctx, `UPDATE listings SET usage_count = usage_count + 1 WHERE id = $1`, listingID)
	return err
}

func (t *Tx) InsertUsageRecord(ctx context.Context, accountID, listingID string, costPT int64, textLen int) (string, error) {
	id := NewID()
	_, err := t.tx.Exec(ctx, `INSERT INTO usage_history (id, account_id, listing_id, cost_pt, text_len) VALUES ($1,$2,$3,$4,$5)`,
		id, accountID, listingID, costPT, textLen)
	return id, err
}

func (s *Store) HasPurchase(ctx context.Context, buyerAccountID, listingID string) (bool, error) {
	row := s.Pool.QueryRow(ctx, `SELECT COUNT(1) FROM purchases WHERE buyer_account_id = $1 AND listing_id = $2`, buyerAccountID, listingID)
	var c int
	if err := row.Scan(&c); err != nil {
		return false, err
	}
	return c > 0, nil
}

func (s *Store) ListUsageByAccount(ctx context.Context, accountID string, limit, offset int) ([]UsageRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `SELECT id, account_id, listing_id, cost_pt, text_len, created_at FROM usage_history WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []UsageRecord{}
	for rows.Next() {
		var u UsageRecord
		if err := rows.Scan(&u.ID, &u.AccountID, &u.ListingID, &u.CostPT, &u.TextLen, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
