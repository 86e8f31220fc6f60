package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Tx is the balance guard's transactional scope. Every settlement path runs
// through InTx so all of its balance mutations and ledger entries commit
// together or not at all.
type Tx struct {
	tx pgx.Tx
}

func (s *Store) InTx(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if err := fn(&Tx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ApplyDelta locks the account row, adjusts its balance by amount and
// appends exactly one ledger entry. A debit that would take the balance
// below zero fails with ErrInsufficientFunds and leaves no trace.
func (t *Tx) ApplyDelta(ctx context.Context, accountID string, amount int64, kind, description, refType, refID string) (int64, error) {
	var bal int64
	row := t.tx.QueryRow(ctx, `SELECT balance_pt FROM accounts WHERE id = $1 FOR UPDATE`, accountID)
	if err := row.Scan(&bal); err != nil {
		return 0, mapNotFound(err)
	}
	newBal := bal + amount
	if newBal < 0 {
		return 0, ErrInsufficientFunds
	}
	if _, err := t.tx.Exec(ctx, `UPDATE accounts SET balance_pt = $1, updated_at = now() WHERE id = $2`, newBal, accountID); err != nil {
		return 0, err
	}
	if _, err := t.tx.Exec(ctx, `INSERT INTO ledger_entries (id, account_id, amount_pt, kind, description, ref_type, ref_id) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		NewID(), accountID, amount, kind, description, refType, refID); err != nil {
		return 0, err
	}
	return newBal, nil
}

// ApplyDelta is the single-delta convenience path over InTx.
func (s *Store) ApplyDelta(ctx context.Context, accountID string, amount int64, kind, description, refType, refID string) (int64, error) {
	var newBal int64
	err := s.InTx(ctx, func(tx *Tx) error {
		bal, err := tx.ApplyDelta(ctx, accountID, amount, kind, description, refType, refID)
		if err != nil {
			return err
		}
		newBal = bal
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newBal, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
