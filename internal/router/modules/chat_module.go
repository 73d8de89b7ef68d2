package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-travel-assistant/internal/container"
	handlers "github.com/oksasatya/go-travel-assistant/internal/interface/http"
	"github.com/oksasatya/go-travel-assistant/internal/interface/middleware"
)

// ChatModule wires the AI chat relay. Every route requires a session.
type ChatModule struct {
	Handler *handlers.ChatHandler
	Users   middleware.UserFinder
}

func NewChatModule(h *handlers.ChatHandler, users middleware.UserFinder) *ChatModule {
	return &ChatModule{Handler: h, Users: users}
}

func (m *ChatModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/ai")
	auth.Use(middleware.Auth(m.Users, container.GetJWT(), container.GetCookies(), container.GetLogger()))
	{
		// each call costs upstream tokens
		auth.POST("/chat", middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil), m.Handler.Chat)
		auth.GET("/history", middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil), m.Handler.History)
	}
}
