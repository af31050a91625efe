package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/1mmey/SecurityChat/internal/pkg/presence/port"
)

// PgPresenceStore implements port.Store against the users table.
type PgPresenceStore struct {
	pool *pgxpool.Pool
}

func NewPgPresenceStore(pool *pgxpool.Pool) *PgPresenceStore {
	return &PgPresenceStore{pool: pool}
}

var _ port.Store = (*PgPresenceStore)(nil)

func (s *PgPresenceStore) SetOnline(ctx context.Context, userID int64) error {
	if s == nil || s.pool == nil {
		return errors.New("PgPresenceStore: nil pool")
	}
	_, err := s.pool.Exec(ctx,
		`UPDATE users SET is_online = TRUE, last_seen = now() WHERE id = $1`,
		userID,
	)
	return err
}

func (s *PgPresenceStore) SetOffline(ctx context.Context, userID int64) error {
	if s == nil || s.pool == nil {
		return errors.New("PgPresenceStore: nil pool")
	}
	_, err := s.pool.Exec(ctx,
		`UPDATE users SET is_online = FALSE WHERE id = $1`,
		userID,
	)
	return err
}

// SweepStale uses a single conditional UPDATE so concurrent sweeps cannot
// both claim the same user.
func (s *PgPresenceStore) SweepStale(ctx context.Context, cutoff time.Time) ([]int64, error) {
	if s == nil || s.pool == nil {
		return nil, errors.New("PgPresenceStore: nil pool")
	}
	rows, err := s.pool.Query(ctx, `
		UPDATE users
		SET is_online = FALSE
		WHERE is_online AND last_seen < $1
		RETURNING id
	`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
