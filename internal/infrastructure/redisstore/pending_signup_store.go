package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-travel-assistant/internal/domain/entity"
	"github.com/oksasatya/go-travel-assistant/internal/domain/repository"
	"github.com/oksasatya/go-travel-assistant/pkg/helpers"
)

// PendingSignupStore keeps unverified signups in Redis. Expiry is left to
// the key TTL; nothing sweeps these records.
type PendingSignupStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPendingSignupStore(rdb *redis.Client, ttl time.Duration) *PendingSignupStore {
	return &PendingSignupStore{rdb: rdb, ttl: ttl}
}

func (s *PendingSignupStore) Create(ctx context.Context, p *entity.PendingSignup) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	ok, err := helpers.RedisSetNXJSON(ctx, s.rdb, helpers.KeyPendingSignup(p.Email), p, s.ttl)
	if err != nil {
		return fmt.Errorf("store pending signup: %w", err)
	}
	if !ok {
		return repository.ErrDuplicate
	}
	return nil
}

func (s *PendingSignupStore) Get(ctx context.Context, email string) (*entity.PendingSignup, error) {
	var p entity.PendingSignup
	found, err := helpers.RedisGetJSON(ctx, s.rdb, helpers.KeyPendingSignup(email), &p)
	if err != nil {
		return nil, fmt.Errorf("load pending signup: %w", err)
	}
	if !found {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *PendingSignupStore) ReplaceOTP(ctx context.Context, email, otp string) error {
	p, err := s.Get(ctx, email)
	if err != nil {
		return err
	}
	p.OTP = otp
	ok, err := helpers.RedisReplaceJSON(ctx, s.rdb, helpers.KeyPendingSignup(email), p)
	if err != nil {
		return fmt.Errorf("replace otp: %w", err)
	}
	// expired between the read and the write
	if !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (s *PendingSignupStore) RecordFailedAttempt(ctx context.Context, email string) (int, error) {
	n, err := helpers.RedisIncrWithin(ctx, s.rdb, helpers.KeyOTPAttempts(email), helpers.KeyPendingSignup(email), s.ttl)
	if err != nil {
		return int(n), fmt.Errorf("record otp attempt: %w", err)
	}
	return int(n), nil
}

func (s *PendingSignupStore) Delete(ctx context.Context, email string) error {
	if err := helpers.RedisDel(ctx, s.rdb, helpers.KeyPendingSignup(email), helpers.KeyOTPAttempts(email)); err != nil {
		return fmt.Errorf("delete pending signup: %w", err)
	}
	return nil
}

var _ repository.PendingSignupRepository = (*PendingSignupStore)(nil)
