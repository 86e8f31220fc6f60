package store

import (
	"context"
)

func (s *Store) CreateAccount(ctx context.Context, username, nickname, role string) (string, error) {
	id := NewID()
	_, err := s.Pool.Exec(ctx, `INSERT INTO accounts (id, username, nickname, role, balance_pt) VALUES ($1,$2,$3,$4,0)`,
		id, username, nickname, role)
	if err != nil {
		return "", mapUniqueViolation(err)
	}
	return id, nil
}

func (s *Store) GetAccount(ctx context.Context, id string) (*Account, error) {
	row := s.Pool.QueryRow(ctx, `SELECT id, username, nickname, role, balance_pt, created_at, updated_at FROM accounts WHERE id = $1`, id)
	var a Account
	if err := row.Scan(&a.ID, &a.Username, &a.Nickname, &a.Role, &a.BalancePT, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &a, nil
}

func (s *Store) GetAccountByUsername(ctx context.Context, username string) (*Account, error) {
	row := s.Pool.QueryRow(ctx, `SELECT id, username, nickname, role, balance_pt, created_at, updated_at FROM accounts WHERE username = $1`, username)
	var a Account
	if err := row.Scan(&a.ID, &a.Username, &a.Nickname, &a.Role, &a.BalancePT, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &a, nil
}

func (s *Store) GetAccountBalance(ctx context.Context, id string) (int64, error) {
	row := s.Pool.QueryRow(ctx, `SELECT balance_pt FROM accounts WHERE id = $1`, id)
	var bal int64
	if err := row.Scan(&bal); err != nil {
		return 0, mapNotFound(err)
	}
	return bal, nil
}

// EnsureHouseAccount creates the configured house account if it does not
// exist yet and returns its id either way.
func (s *Store) EnsureHouseAccount(ctx context.Context, username string) (string, error) {
	acct, err := s.GetAccountByUsername(ctx, username)
	if err == nil {
		return acct.ID, nil
	}
	if err != ErrNotFound {
		return "", err
	}
	id, err := s.CreateAccount(ctx, username, "house", RoleHouse)
	if err == ErrDuplicate {
		// Lost a boot race; the row is there now.
		acct, err := s.GetAccountByUsername(ctx, username)
		if err != nil {
			return "", err
		}
		return acct.ID, nil
	}
	return id, err
}

func (s *Store) ListAccounts(ctx context.Context, limit, offset int) ([]Account, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `SELECT id, username, nickname, role, balance_pt, created_at, updated_at FROM accounts ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Account{}
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Username, &a.Nickname, &a.Role, &a.BalancePT, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
