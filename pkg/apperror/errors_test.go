package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errInvalidOTP = New(http.StatusBadRequest, KindAuthentication, "Invalid OTP")

func TestWrap_MatchesCatalogueValue(t *testing.T) {
	cause := errors.New("redis down")
	err := Wrap(errInvalidOTP, cause)

	assert.ErrorIs(t, err, errInvalidOTP)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, errInvalidOTP.Err, "catalogue value must stay untouched")
}

func TestIs_DifferentMessageDoesNotMatch(t *testing.T) {
	other := New(http.StatusBadRequest, KindAuthentication, "Invalid credentials")
	assert.False(t, errors.Is(other, errInvalidOTP))
}

func TestFrom(t *testing.T) {
	wrapped := fmt.Errorf("verify: %w", errInvalidOTP)
	assert.Same(t, errInvalidOTP, From(wrapped))

	plain := errors.New("boom")
	got := From(plain)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, KindServer, got.Kind)
	assert.ErrorIs(t, got, plain)
}

func TestError_String(t *testing.T) {
	assert.Equal(t, "authentication_error: Invalid OTP", errInvalidOTP.Error())
	assert.Equal(t, "authentication_error: Invalid OTP: x", Wrap(errInvalidOTP, errors.New("x")).Error())
}
