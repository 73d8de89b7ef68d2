package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-travel-assistant/internal/container"
	handlers "github.com/oksasatya/go-travel-assistant/internal/interface/http"
	"github.com/oksasatya/go-travel-assistant/internal/interface/middleware"
)

// AuthModule wires signup, OTP, login and session routes.
// Public: signup, verify-otp, resend-otp, login, logout, google-signin
// Protected: check
type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   middleware.UserFinder
}

func NewAuthModule(h *handlers.AuthHandler, users middleware.UserFinder) *AuthModule {
	return &AuthModule{Handler: h, Users: users}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	// Public endpoints with IP-based rate limits
	signupLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resendLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	verifyLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	googleLimiter := middleware.RateLimit(rdb, 20, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/auth/verify-otp", verifyLimiter, m.Handler.VerifyOTP)
	rg.POST("/auth/resend-otp", resendLimiter, m.Handler.ResendOTP)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/logout", m.Handler.Logout)
	rg.POST("/auth/google-signin", googleLimiter, m.Handler.GoogleSignin)

	guard := middleware.Auth(m.Users, container.GetJWT(), container.GetCookies(), container.GetLogger())
	rg.GET("/auth/check", guard, m.Handler.Check)
}
