package store

import (
	"context"
)

func (s *Store) CreateEvent(ctx context.Context, title, sideA, sideB string) (string, error) {
	id := NewID()
	_, err := s.Pool.Exec(ctx, `INSERT INTO events (id, title, side_a, side_b, status) VALUES ($1,$2,$3,$4,'open')`,
		id, title, sideA, sideB)
	return id, err
}

func (s *Store) GetEvent(ctx context.Context, id string) (*Event, error) {
	row := s.Pool.QueryRow(ctx, `SELECT id, title, side_a, side_b, status, COALESCE(winning_side, ''), created_at, settled_at FROM events WHERE id = $1`, id)
	var e Event
	if err := row.Scan(&e.ID, &e.Title, &e.SideA, &e.SideB, &e.Status, &e.WinningSide, &e.CreatedAt, &e.SettledAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &e, nil
}

func (s *Store) ListEvents(ctx context.Context, status string, limit, offset int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	q := `SELECT id, title, side_a, side_b, status, COALESCE(winning_side, ''), created_at, settled_at FROM events`
	args := []any{limit, offset}
	if status != "" {
		q += ` WHERE status = $3`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := s.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Event{}
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.SideA, &e.SideB, &e.Status, &e.WinningSide, &e.CreatedAt, &e.SettledAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetEventForUpdate takes the event row lock for the duration of the
// enclosing transaction. Concurrent settlement attempts on the same event
// serialize here.
func (t *Tx) GetEventForUpdate(ctx context.Context, id string) (*Event, error) {
	row := t.tx.QueryRow(ctx, `SELECT id, title, side_a, side_b, status, COALESCE(winning_side, ''), created_at, settled_at FROM events WHERE id = $1 FOR UPDATE`, id)
	var e Event
	if err := row.Scan(&e.ID, &e.Title, &e.SideA, &e.SideB, &e.Status, &e.WinningSide, &e.CreatedAt, &e.SettledAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &e, nil
}

func (t *Tx) FinishEvent(ctx context.Context, id, winningSide string) error {
	_, err := t.tx.Exec(ctx, `UPDATE events SET status = 'finished', winning_side = $1, settled_at = now() WHERE id = $2`, winningSide, id)
	return err
}

func (t *Tx) InsertWager(ctx context.Context, accountID, eventID, side string, stake int64) (string, error) {
	id := NewID()
	_, err := t.tx.Exec(ctx, `INSERT INTO wagers (id, account_id, event_id, side, stake_pt, status) VALUES ($1,$2,$3,$4,$5,'pending')`,
		id, accountID, eventID, side, stake)
	if err != nil {
		return "", mapUniqueViolation(err)
	}
	return id, nil
}

func (t *Tx) ListWagersByEvent(ctx context.Context, eventID string) ([]Wager, error) {
	rows, err := t.tx.Query(ctx, `SELECT id, account_id, event_id, side, stake_pt, status, created_at FROM wagers WHERE event_id = $1 ORDER BY created_at ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Wager{}
	for rows.Next() {
		var w Wager
		if err := rows.Scan(&w.ID, &w.AccountID, &w.EventID, &w.Side, &w.StakePT, &w.Status, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (t *Tx) SetWagerStatus(ctx context.Context, wagerID, status string) error {
	_, err := t.tx.Exec(ctx, `UPDATE wagers SET status = $1 WHERE id = $2`, status, wagerID)
	return err
}

func (s *Store) ListWagersByAccount(ctx context.Context, accountID string, limit, offset int) ([]Wager, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `SELECT id, account_id, event_id, side, stake_pt, status, created_at FROM wagers WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Wager{}
	for rows.Next() {
		var w Wager
		if err := rows.Scan(&w.ID, &w.AccountID, &w.EventID, &w.Side, &w.StakePT, &w.Status, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
