package store

import (
	"context"
	"fmt"
	"time"
)

type LedgerFilter struct {
	AccountID string
	Kind      string
	RefType   string
	RefID     string
	From      *time.Time
	To        *time.Time
}

func (s *Store) ListLedgerEntries(ctx context.Context, f LedgerFilter, limit, offset int) ([]LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	where := "WHERE 1=1"
	args := []any{}
	if f.AccountID != "" {
		args = append(args, f.AccountID)
		where += fmt.Sprintf(" AND account_id = $%d", len(args))
	}
	if f.Kind != "" {
		args = append(args, f.Kind)
		where += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if f.RefType != "" {
		args = append(args, f.RefType)
		where += fmt.Sprintf(" AND ref_type = $%d", len(args))
	}
	if f.RefID != "" {
		args = append(args, f.RefID)
		where += fmt.Sprintf(" AND ref_id = $%d", len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		where += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	args = append(args, limit, offset)
	q := fmt.Sprintf(`SELECT id, account_id, amount_pt, kind, description, ref_type, ref_id, created_at FROM ledger_entries %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))
	rows, err := s.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LedgerEntry{}
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(&e.ID, &e.AccountID, &e.AmountPT, &e.Kind, &e.Description, &e.RefType, &e.RefID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SumLedgerByAccount returns the signed sum of all entries for one account.
// It must always equal the account's current balance.
func (s *Store) SumLedgerByAccount(ctx context.Context, accountID string) (int64, error) {
	row := s.Pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount_pt), 0) FROM ledger_entries WHERE account_id = $1`, accountID)
	var sum int64
	if err := row.Scan(&sum); err != nil {
		return 0, err
	}
	return sum, nil
}

// SumLedgerByRef returns the signed sum of all entries tagged with one
// reference, e.g. every entry a single event settlement produced.
func (s *Store) SumLedgerByRef(ctx context.Context, refType, refID string) (int64, error) {
	row := s.Pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount_pt), 0) FROM ledger_entries WHERE ref_type = $1 AND ref_id = $2`, refType, refID)
	var sum int64
	if err := row.Scan(&sum); err != nil {
		return 0, err
	}
	return sum, nil
}

func (s *Store) ListLeaderboard(ctx context.Context, limit, offset int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT a.id, a.nickname, COALESCE(SUM(l.amount_pt), 0) AS net_pt
		FROM accounts a
		LEFT JOIN ledger_entries l ON l.account_id = a.id
		WHERE a.role = 'user'
		GROUP BY a.id, a.nickname
		ORDER BY net_pt DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LeaderboardEntry{}
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.AccountID, &e.Nickname, &e.NetPT); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
