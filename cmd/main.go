package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/oksasatya/go-travel-assistant/config"
	"github.com/oksasatya/go-travel-assistant/internal/container"
	"github.com/oksasatya/go-travel-assistant/internal/domain/gateway"
	"github.com/oksasatya/go-travel-assistant/internal/infrastructure/google"
	"github.com/oksasatya/go-travel-assistant/internal/infrastructure/llm"
	"github.com/oksasatya/go-travel-assistant/internal/infrastructure/notify"
	pginfra "github.com/oksasatya/go-travel-assistant/internal/infrastructure/postgres"
	"github.com/oksasatya/go-travel-assistant/internal/interface/middleware"
	"github.com/oksasatya/go-travel-assistant/internal/router"
	"github.com/oksasatya/go-travel-assistant/pkg/helpers"
	"github.com/oksasatya/go-travel-assistant/pkg/mailer"
	tpl "github.com/oksasatya/go-travel-assistant/pkg/mailer/templates"
	"github.com/oksasatya/go-travel-assistant/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Initialize Postgres pool
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLife,
		AppName:         cfg.AppName,
	})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	// Run migrations using database/sql with pgx stdlib
	if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// Redis holds pending signups and rate-limit counters
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	// GCS for avatars (optional)
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		container.SetGCS(gcsClient)
	}

	// Elasticsearch for chat history (optional)
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		logger.WithError(err).Warn("elasticsearch disabled")
	} else if es != nil {
		container.SetES(es)
	}

	otpMailer, closeMailer := buildOTPMailer(cfg, logger)
	defer closeMailer()

	// Completion client is built once and shared by all requests
	if cfg.ChatConfigured() {
		container.SetCompleter(llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, &http.Client{Timeout: 60 * time.Second}))
	} else {
		logger.Warn("OPENAI_API_KEY not set; /api/ai/chat will answer 500")
	}

	if cfg.GoogleClientID != "" {
		v, err := google.NewVerifier(ctx, cfg.GoogleClientID, &http.Client{Timeout: 10 * time.Second})
		if err != nil {
			log.Fatalf("failed to init google verifier: %v", err)
		}
		container.SetGoogleVerifier(v)
	} else {
		logger.Warn("GOOGLE_CLIENT_ID not set; google sign-in disabled")
	}

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetRedis(rdb)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret))
	container.SetCookies(helpers.NewCookie(cfg.CookieName, cfg.CookieDomain, cfg.CookieSecure, cfg.SameSite()))
	container.SetOTPMailer(otpMailer)

	// Gin engine and global middleware
	r := gin.New()
	if err := middleware.TrustProxies(r, cfg.TrustedProxyList()); err != nil {
		log.Fatalf("invalid TRUSTED_PROXIES: %v", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	// CORS: the SPA is served from another origin and sends the session cookie
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r, "/api")
	// rate-limit keys and OTP mail metadata read the resolved client IP
	reg.Use(middleware.RealIP())
	router.InitModules(ctx, reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

// buildOTPMailer picks how signup codes leave the process:
// disabled -> log only, direct -> Mailgun in-request, queue -> RabbitMQ + cmd/email_worker.
func buildOTPMailer(cfg *config.Config, logger *logrus.Logger) (gateway.OTPMailer, func()) {
	noop := func() {}
	if !cfg.MailSendEnabled {
		logger.Warn("MAIL_SEND_ENABLED=false; OTP codes are only logged")
		return &notify.LogMailer{Logger: logger}, noop
	}
	if cfg.MailDelivery == "direct" {
		mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
		return notify.NewDirectMailer(mg, cfg, tpl.IPAPIResolver{}), noop
	}
	pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, cfg.AppName)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	return notify.NewQueueMailer(pub, cfg), pub.Close
}

func runMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	// Open sql DB via pgx stdlib
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
