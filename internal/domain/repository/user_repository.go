package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-travel-assistant/internal/domain/entity"
)

var (
	// ErrNotFound is returned when the requested record does not exist (or has expired).
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a record with the same unique key already exists.
	ErrDuplicate = errors.New("duplicate")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	// CreateVerifiedIfAbsent inserts u as a verified user. If the email is taken
	// the existing row is marked verified instead. It returns the stored row.
	CreateVerifiedIfAbsent(ctx context.Context, u *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
