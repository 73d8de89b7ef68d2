package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-travel-assistant/internal/domain/entity"
	"github.com/oksasatya/go-travel-assistant/internal/domain/repository"
)

var userCols = []string{"id", "email", "password_hash", "name", "avatar_url", "is_verified", "created_at", "updated_at"}

func strPtr(s string) *string { return &s }

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestCreate_SetsGeneratedFields(t *testing.T) {
	mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("a@x.com", strPtr("hash"), "", "", false).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("u-1", now, now))

	repo := NewUserRepository(mock)
	u := &entity.User{Email: "a@x.com", Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), u))

	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, now, u.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolationIsDuplicate(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("a@x.com", pgxmock.AnyArg(), "", "", false).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := NewUserRepository(mock).Create(context.Background(), &entity.User{Email: "a@x.com", Password: "h"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCreateVerifiedIfAbsent_ReturnsStoredRow(t *testing.T) {
	mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (email) DO UPDATE SET is_verified = TRUE")).
		WithArgs("a@x.com", strPtr("hash"), "", "").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow("u-1", "a@x.com", strPtr("hash"), "", "", true, now, now))

	u, err := NewUserRepository(mock).CreateVerifiedIfAbsent(context.Background(), &entity.User{Email: "a@x.com", Password: "hash"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.True(t, u.IsVerified)
	assert.Equal(t, "hash", u.Password)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVerifiedIfAbsent_VerifiesExistingRow(t *testing.T) {
	mock := newMock(t)
	created := time.Now().UTC().Add(-time.Hour)
	now := time.Now().UTC()
	// the existing row keeps its own hash and name
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (email) DO UPDATE SET is_verified = TRUE")).
		WithArgs("a@x.com", strPtr("new-hash"), "", "").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow("u-7", "a@x.com", strPtr("old-hash"), "Ann", "", true, created, now))

	u, err := NewUserRepository(mock).CreateVerifiedIfAbsent(context.Background(), &entity.User{Email: "a@x.com", Password: "new-hash"})
	require.NoError(t, err)
	assert.Equal(t, "u-7", u.ID)
	assert.True(t, u.IsVerified)
	assert.Equal(t, "old-hash", u.Password)
	assert.Equal(t, "Ann", u.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVerifiedIfAbsent_DBError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("a@x.com", strPtr("hash"), "", "").
		WillReturnError(errors.New("connection reset"))

	_, err := NewUserRepository(mock).CreateVerifiedIfAbsent(context.Background(), &entity.User{Email: "a@x.com", Password: "hash"})
	assert.ErrorContains(t, err, "connection reset")
}

func TestGetByEmail_NotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("nobody@x.com").
		WillReturnRows(pgxmock.NewRows(userCols))

	_, err := NewUserRepository(mock).GetByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetByID_NullPassword(t *testing.T) {
	mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs("u-2").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow("u-2", "g@x.com", (*string)(nil), "Gina", "", true, now, now))

	u, err := NewUserRepository(mock).GetByID(context.Background(), "u-2")
	require.NoError(t, err)
	assert.Equal(t, "", u.Password)
	assert.False(t, u.HasPassword())
	assert.Equal(t, "Gina", u.Name)
}

func TestGetByID_MalformedUUIDIsNotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs("not-a-uuid").
		WillReturnError(&pgconn.PgError{Code: "22P02"})

	_, err := NewUserRepository(mock).GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdate_NoRowsIsNotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs("a@x.com", pgxmock.AnyArg(), "New", "", true, pgxmock.AnyArg(), "u-9").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := NewUserRepository(mock).Update(context.Background(), &entity.User{ID: "u-9", Email: "a@x.com", Name: "New", IsVerified: true})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
