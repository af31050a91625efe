package adapter

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	accounts "github.com/1mmey/SecurityChat/internal/pkg/accounts/domain"
)

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const userColumns = `id, username, email, password_hash, public_key, is_online, last_seen, endpoint_ip, endpoint_port, created_at`

func (r *PgUserRepository) Create(ctx context.Context, u accounts.User) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgUserRepository: nil pool")
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, public_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, u.Username, u.Email, u.PasswordHash, u.PublicKey).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 = unique_violation
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return 0, accounts.ErrEmailTaken
			}
			return 0, accounts.ErrUsernameTaken
		}
		return 0, err
	}
	return id, nil
}

func (r *PgUserRepository) GetByID(ctx context.Context, id int64) (*accounts.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PgUserRepository) GetByUsername(ctx context.Context, username string) (*accounts.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *PgUserRepository) getBy(ctx context.Context, query string, arg any) (*accounts.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, query, arg)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, accounts.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *PgUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgUserRepository: nil pool")
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *PgUserRepository) Search(ctx context.Context, query string, excludeID int64, limit int) ([]accounts.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE username ILIKE '%' || $1 || '%' AND id <> $2
		ORDER BY username
		LIMIT $3
	`, query, excludeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []accounts.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *PgUserRepository) UpdateEndpoint(ctx context.Context, id int64, ep accounts.Endpoint) error {
	if r == nil || r.pool == nil {
		return errors.New("PgUserRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx,
		`UPDATE users SET endpoint_ip = $2, endpoint_port = $3 WHERE id = $1`,
		id, ep.IP, ep.Port,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return accounts.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*accounts.User, error) {
	var (
		u    accounts.User
		ip   *string
		port *int
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.PublicKey,
		&u.IsOnline, &u.LastSeen, &ip, &port, &u.CreatedAt); err != nil {
		return nil, err
	}
	if ip != nil && port != nil {
		u.Endpoint = &accounts.Endpoint{IP: *ip, Port: *port}
	}
	return &u, nil
}
