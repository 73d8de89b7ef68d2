package router

import (
	"context"

	"github.com/oksasatya/go-travel-assistant/internal/application"
	"github.com/oksasatya/go-travel-assistant/internal/container"
	"github.com/oksasatya/go-travel-assistant/internal/domain/gateway"
	repo "github.com/oksasatya/go-travel-assistant/internal/domain/repository"
	pginfra "github.com/oksasatya/go-travel-assistant/internal/infrastructure/postgres"
	"github.com/oksasatya/go-travel-assistant/internal/infrastructure/redisstore"
	"github.com/oksasatya/go-travel-assistant/internal/infrastructure/search"
	"github.com/oksasatya/go-travel-assistant/internal/infrastructure/storage"
	handlers "github.com/oksasatya/go-travel-assistant/internal/interface/http"
	"github.com/oksasatya/go-travel-assistant/internal/router/modules"
)

type moduleDeps struct {
	Users repo.UserRepository
	Auth  *handlers.AuthHandler
	Chat  *handlers.ChatHandler
	User  *handlers.UserHandler
}

func buildDeps(ctx context.Context) moduleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(container.GetPGPool())
	pending := redisstore.NewPendingSignupStore(container.GetRedis(), cfg.OTPTTL)

	authSvc := application.NewAuthService(
		users,
		pending,
		container.GetOTPMailer(),
		container.GetGoogleVerifier(),
		container.GetJWT(),
		logger,
		application.AuthConfig{
			OTPTTL:         cfg.OTPTTL,
			VerifyTTL:      cfg.SessionVerifyTTL,
			LoginTTL:       cfg.SessionLoginTTL,
			MaxOTPAttempts: cfg.OTPMaxAttempts,
		},
	)

	history := search.NewChatHistory(container.GetES(), cfg.ESChatIndex)
	if err := history.EnsureIndex(ctx); err != nil {
		logger.WithError(err).Warn("chat history index unavailable")
	}
	chatSvc := application.NewChatService(
		container.GetCompleter(),
		history,
		logger,
		cfg.ChatSystemPrompt,
		gateway.CompletionParams{
			Model:       cfg.ChatModel,
			Temperature: cfg.ChatTemperature,
			MaxTokens:   cfg.ChatMaxTokens,
		},
	)

	var avatars gateway.AvatarStore
	if container.GetGCS() != nil && cfg.GCSBucket != "" {
		avatars = storage.NewGCSAvatarStore(container.GetGCS(), cfg.GCSBucket)
	}
	userSvc := application.NewUserService(users, avatars, logger)

	return moduleDeps{
		Users: users,
		Auth:  handlers.NewAuthHandler(authSvc, container.GetCookies(), logger),
		Chat:  handlers.NewChatHandler(chatSvc, logger),
		User:  handlers.NewUserHandler(userSvc, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(ctx context.Context, r *Registry) {
	deps := buildDeps(ctx)
	r.Add(modules.NewHealthModule())
	r.Add(modules.NewAuthModule(deps.Auth, deps.Users))
	r.Add(modules.NewChatModule(deps.Chat, deps.Users))
	r.Add(modules.NewUserModule(deps.User, deps.Users))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
