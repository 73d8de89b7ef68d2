package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-travel-assistant/pkg/apperror"
)

func newCtx() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("request_id", "rid-1")
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestSuccess_FlattensFields(t *testing.T) {
	c, rec := newCtx()
	Success(c, http.StatusCreated, "OTP sent to your email", gin.H{"email": "a@x.com"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	got := decode(t, rec)
	assert.Equal(t, "OTP sent to your email", got["message"])
	assert.Equal(t, "a@x.com", got["email"])
	assert.Equal(t, "rid-1", got["request_id"])
}

func TestFail_AppErrorKeepsStatusAndMessage(t *testing.T) {
	c, rec := newCtx()
	logger, hook := test.NewNullLogger()
	Fail(c, logger, apperror.New(http.StatusBadRequest, apperror.KindAuthentication, "Invalid OTP"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid OTP", decode(t, rec)["message"])
	assert.Empty(t, hook.AllEntries(), "client errors are not logged")
}

func TestFail_UnknownErrorIsGeneric500AndLogged(t *testing.T) {
	c, rec := newCtx()
	logger, hook := test.NewNullLogger()
	Fail(c, logger, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	got := decode(t, rec)
	assert.Equal(t, "Something went wrong. Please try again.", got["message"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}
