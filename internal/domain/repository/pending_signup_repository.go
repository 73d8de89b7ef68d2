package repository

import (
	"context"

	"github.com/oksasatya/go-travel-assistant/internal/domain/entity"
)

// PendingSignupRepository stores unverified signups keyed by email.
// Records expire on their own after the store's TTL.
type PendingSignupRepository interface {
	// Create fails with ErrDuplicate when a record already exists for the email.
	Create(ctx context.Context, p *entity.PendingSignup) error
	Get(ctx context.Context, email string) (*entity.PendingSignup, error)
	// ReplaceOTP swaps the code of an existing record without extending its lifetime.
	ReplaceOTP(ctx context.Context, email, otp string) error
	// RecordFailedAttempt counts a wrong code for email and returns the total so
	// far. The count lives no longer than the pending record and survives a resend.
	RecordFailedAttempt(ctx context.Context, email string) (int, error)
	// Delete removes the record and its attempt count.
	Delete(ctx context.Context, email string) error
}
