package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-travel-assistant/config"
	"github.com/oksasatya/go-travel-assistant/internal/domain/gateway"
	"github.com/oksasatya/go-travel-assistant/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client
	esClient    *elasticsearch.Client

	jwtManager *helpers.JWTManager
	cookies    *helpers.CookieManager

	otpMailer gateway.OTPMailer
	completer gateway.Completer
	verifier  gateway.IDTokenVerifier
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetGCS(s *storage.Client)     { gcsClient = s }
func GetGCS() *storage.Client      { return gcsClient }
func SetES(c *elasticsearch.Client) { esClient = c }
func GetES() *elasticsearch.Client  { return esClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}

func SetCookies(m *helpers.CookieManager) { cookies = m }
func GetCookies() *helpers.CookieManager {
	if cookies != nil {
		return cookies
	}
	if cfg != nil {
		return helpers.NewCookie(cfg.CookieName, cfg.CookieDomain, cfg.CookieSecure, cfg.SameSite())
	}
	return helpers.NewCookie("", "", true, 0)
}

func SetOTPMailer(m gateway.OTPMailer)           { otpMailer = m }
func GetOTPMailer() gateway.OTPMailer            { return otpMailer }
func SetCompleter(c gateway.Completer)           { completer = c }
func GetCompleter() gateway.Completer            { return completer }
func SetGoogleVerifier(v gateway.IDTokenVerifier) { verifier = v }
func GetGoogleVerifier() gateway.IDTokenVerifier  { return verifier }
