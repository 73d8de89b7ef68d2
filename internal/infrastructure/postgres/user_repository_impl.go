package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-travel-assistant/internal/domain/entity"
	"github.com/oksasatya/go-travel-assistant/internal/domain/repository"
)

const uniqueViolation = "23505"

const userColumns = `id, email, password_hash, name, avatar_url, is_verified, created_at, updated_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var pwd *string
	if err := row.Scan(&u.ID, &u.Email, &pwd, &u.Name, &u.AvatarURL, &u.IsVerified,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if pwd != nil {
		u.Password = *pwd
	}
	return u, nil
}

// nullable maps an empty password (Google-only account) to NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, avatar_url, is_verified)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, u.Email, nullable(u.Password), u.Name, u.AvatarURL, u.IsVerified)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// CreateVerifiedIfAbsent makes promotion safe to re-run. An existing row for
// the email is kept but marked verified, since a matching OTP proves the
// caller owns the address; its password and profile are left as they are.
func (r *UserRepository) CreateVerifiedIfAbsent(ctx context.Context, u *entity.User) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, avatar_url, is_verified)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (email) DO UPDATE SET is_verified = TRUE, updated_at = NOW()
		RETURNING `+userColumns, u.Email, nullable(u.Password), u.Name, u.AvatarURL)
	out, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("promote verified user: %w", err)
	}
	return out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		// a malformed uuid can only come from a forged or stale token
		if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now().UTC()

	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET email = $1, password_hash = $2, name = $3, avatar_url = $4, is_verified = $5, updated_at = $6
		WHERE id = $7
	`, u.Email, nullable(u.Password), u.Name, u.AvatarURL, u.IsVerified, u.UpdatedAt, u.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
