package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-travel-assistant/internal/container"
	handlers "github.com/oksasatya/go-travel-assistant/internal/interface/http"
	"github.com/oksasatya/go-travel-assistant/internal/interface/middleware"
)

// UserModule wires profile routes.
// Protected: GET /api/profile, PUT /api/profile, POST /api/profile/avatar
type UserModule struct {
	Handler *handlers.UserHandler
	Users   middleware.UserFinder
}

func NewUserModule(h *handlers.UserHandler, users middleware.UserFinder) *UserModule {
	return &UserModule{Handler: h, Users: users}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/profile")
	auth.Use(middleware.Auth(m.Users, container.GetJWT(), container.GetCookies(), container.GetLogger()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("", m.Handler.GetProfile)
		auth.PUT("", m.Handler.UpdateProfile)
		auth.POST("/avatar", middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByUserID(), nil), m.Handler.UploadAvatar)
	}
}
