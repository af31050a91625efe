package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	messaging "github.com/1mmey/SecurityChat/internal/pkg/messaging/domain"
)

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

func (r *PgMessageRepository) Save(ctx context.Context, m messaging.Message) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgMessageRepository: nil pool")
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (sender_id, recipient_id, payload, transport, delivered, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, m.SenderID, m.RecipientID, m.Payload, m.Transport, m.Delivered, m.CreatedAt).Scan(&id)
	return id, err
}

// DrainOffline claims and returns in one statement. The CTE makes the
// update-then-select a single atomic unit: a concurrent drain for the same
// user serializes on the row locks and sees delivered=true, so no message is
// ever handed out twice across drains.
func (r *PgMessageRepository) DrainOffline(ctx context.Context, userID int64) ([]messaging.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		WITH drained AS (
			UPDATE messages SET delivered = TRUE
			WHERE recipient_id = $1 AND NOT delivered
			RETURNING id, sender_id, recipient_id, payload, transport, delivered, created_at
		)
		SELECT id, sender_id, recipient_id, payload, transport, delivered, created_at
		FROM drained
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func (r *PgMessageRepository) History(ctx context.Context, a, b int64, limit, offset int) ([]messaging.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, sender_id, recipient_id, payload, transport, delivered, created_at
		FROM messages
		WHERE (sender_id = $1 AND recipient_id = $2)
		   OR (sender_id = $2 AND recipient_id = $1)
		ORDER BY created_at, id
		LIMIT $3 OFFSET $4
	`, a, b, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func scanMessages(rows pgx.Rows) ([]messaging.Message, error) {
	var msgs []messaging.Message
	for rows.Next() {
		var m messaging.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Payload, &m.Transport, &m.Delivered, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
