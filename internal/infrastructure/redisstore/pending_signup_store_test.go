package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-travel-assistant/internal/domain/entity"
	"github.com/oksasatya/go-travel-assistant/internal/domain/repository"
)

func newStore(t *testing.T, ttl time.Duration) (*PendingSignupStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewPendingSignupStore(rdb, ttl), mr
}

func TestCreateAndGet(t *testing.T) {
	store, mr := newStore(t, 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &entity.PendingSignup{Email: "a@x.com", Password: "hash", OTP: "123456"}))

	got, err := store.Get(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "hash", got.Password)
	assert.Equal(t, "123456", got.OTP)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, 10*time.Minute, mr.TTL("signup:pending:a@x.com"))
}

func TestCreate_SecondIsDuplicate(t *testing.T) {
	store, _ := newStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &entity.PendingSignup{Email: "a@x.com", Password: "h1", OTP: "111111"}))
	err := store.Create(ctx, &entity.PendingSignup{Email: "a@x.com", Password: "h2", OTP: "222222"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := store.Get(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "h1", got.Password, "first record must survive")
}

func TestGet_ExpiredIsNotFound(t *testing.T) {
	store, mr := newStore(t, 400*time.Second)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &entity.PendingSignup{Email: "a@x.com", OTP: "123456"}))
	mr.FastForward(401 * time.Second)

	_, err := store.Get(ctx, "a@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReplaceOTP_KeepsRemainingTTL(t *testing.T) {
	store, mr := newStore(t, 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &entity.PendingSignup{Email: "a@x.com", Password: "h", OTP: "111111"}))
	mr.FastForward(4 * time.Minute)

	require.NoError(t, store.ReplaceOTP(ctx, "a@x.com", "222222"))

	got, err := store.Get(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", got.OTP)
	assert.Equal(t, "h", got.Password)
	assert.Equal(t, 6*time.Minute, mr.TTL("signup:pending:a@x.com"))
}

func TestReplaceOTP_MissingIsNotFound(t *testing.T) {
	store, _ := newStore(t, time.Minute)
	err := store.ReplaceOTP(context.Background(), "nobody@x.com", "000000")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDelete(t *testing.T) {
	store, mr := newStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &entity.PendingSignup{Email: "a@x.com", OTP: "1"}))
	require.NoError(t, store.Delete(ctx, "a@x.com"))
	assert.False(t, mr.Exists("signup:pending:a@x.com"))

	// deleting again is a no-op
	require.NoError(t, store.Delete(ctx, "a@x.com"))
}

func TestRecordFailedAttempt_SharesRecordLifetime(t *testing.T) {
	store, mr := newStore(t, 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &entity.PendingSignup{Email: "a@x.com", OTP: "111111"}))
	mr.FastForward(3 * time.Minute)

	for want := 1; want <= 3; want++ {
		n, err := store.RecordFailedAttempt(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	assert.Equal(t, 7*time.Minute, mr.TTL("signup:attempts:a@x.com"))

	// a resend keeps the count
	require.NoError(t, store.ReplaceOTP(ctx, "a@x.com", "222222"))
	n, err := store.RecordFailedAttempt(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	require.NoError(t, store.Delete(ctx, "a@x.com"))
	assert.False(t, mr.Exists("signup:attempts:a@x.com"))
}

func TestRecordFailedAttempt_WithoutRecordUsesStoreTTL(t *testing.T) {
	store, mr := newStore(t, 10*time.Minute)

	n, err := store.RecordFailedAttempt(context.Background(), "ghost@x.com")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 10*time.Minute, mr.TTL("signup:attempts:ghost@x.com"))
}
