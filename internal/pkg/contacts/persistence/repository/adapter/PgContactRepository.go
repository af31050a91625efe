package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	contacts "github.com/1mmey/SecurityChat/internal/pkg/contacts/domain"
)

type PgContactRepository struct {
	pool *pgxpool.Pool
}

func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// CreatePending checks both directions and inserts in one statement. Under
// READ COMMITTED two simultaneous mutual requests can still both pass the
// NOT EXISTS and insert crossing pending edges; that state is harmless and
// converges on accept, whose upsert flips the crossing edge to accepted.
func (r *PgContactRepository) CreatePending(ctx context.Context, ownerID, targetID int64) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgContactRepository: nil pool")
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO contacts (owner_id, target_id, status)
		SELECT $1, $2, 'pending'
		WHERE NOT EXISTS (
			SELECT 1 FROM contacts
			WHERE (owner_id = $1 AND target_id = $2)
			   OR (owner_id = $2 AND target_id = $1)
		)
		RETURNING id
	`, ownerID, targetID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, contacts.ErrEdgeExists
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PgContactRepository) Accept(ctx context.Context, requesterID, accepterID int64) error {
	if r == nil || r.pool == nil {
		return errors.New("PgContactRepository: nil pool")
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `
		UPDATE contacts SET status = 'accepted'
		WHERE owner_id = $1 AND target_id = $2 AND status = 'pending'
	`, requesterID, accepterID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return contacts.ErrNoPendingRequest
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO contacts (owner_id, target_id, status)
		VALUES ($1, $2, 'accepted')
		ON CONFLICT (owner_id, target_id) DO UPDATE SET status = 'accepted'
	`, accepterID, requesterID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PgContactRepository) RemovePair(ctx context.Context, a, b int64) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgContactRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		DELETE FROM contacts
		WHERE (owner_id = $1 AND target_id = $2)
		   OR (owner_id = $2 AND target_id = $1)
	`, a, b)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *PgContactRepository) AreContacts(ctx context.Context, a, b int64) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgContactRepository: nil pool")
	}
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM contacts
			WHERE owner_id = $1 AND target_id = $2 AND status = 'accepted'
		)
	`, a, b).Scan(&ok)
	return ok, err
}

func (r *PgContactRepository) ListAccepted(ctx context.Context, ownerID int64) ([]contacts.View, error) {
	return r.list(ctx, `
		SELECT u.id, u.username, u.is_online, u.last_seen, c.created_at
		FROM contacts c
		JOIN users u ON u.id = c.target_id
		WHERE c.owner_id = $1 AND c.status = 'accepted'
		ORDER BY u.username
	`, ownerID)
}

func (r *PgContactRepository) ListPendingFor(ctx context.Context, userID int64) ([]contacts.View, error) {
	return r.list(ctx, `
		SELECT u.id, u.username, u.is_online, u.last_seen, c.created_at
		FROM contacts c
		JOIN users u ON u.id = c.owner_id
		WHERE c.target_id = $1 AND c.status = 'pending'
		ORDER BY c.created_at
	`, userID)
}

func (r *PgContactRepository) list(ctx context.Context, query string, arg int64) ([]contacts.View, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgContactRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []contacts.View
	for rows.Next() {
		var v contacts.View
		if err := rows.Scan(&v.UserID, &v.Username, &v.IsOnline, &v.LastSeen, &v.Since); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
