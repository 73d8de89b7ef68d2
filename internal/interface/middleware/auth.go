package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-travel-assistant/internal/domain/entity"
	repo "github.com/oksasatya/go-travel-assistant/internal/domain/repository"
	"github.com/oksasatya/go-travel-assistant/pkg/apperror"
	"github.com/oksasatya/go-travel-assistant/pkg/helpers"
	"github.com/oksasatya/go-travel-assistant/pkg/response"
)

// Gin context keys set by Auth.
const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
	CtxUserNameKey  = "userName"
)

// UserFinder resolves the user a session belongs to.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// Auth validates the session cookie and re-resolves its user on every request,
// so a removed or unverified account is locked out before its token expires.
// It sets userID, userEmail and userName in the Gin context on success.
func Auth(users UserFinder, jwt *helpers.JWTManager, cookies *helpers.CookieManager, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookies.Token(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			helpers.LogError(logger, "session user lookup failed", err, logrus.Fields{
				"user_id":    claims.UserID,
				"request_id": c.GetString("request_id"),
			})
			ae := apperror.Internal(err)
			response.Abort(c, ae.Status, ae.Message)
			return
		}
		if u == nil || !u.IsVerified {
			response.Abort(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserEmailKey, u.Email)
		c.Set(CtxUserNameKey, u.Name)
		c.Next()
	}
}
