package config

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_VERIFY_TTL", "")
	t.Setenv("SESSION_LOGIN_TTL", "")
	t.Setenv("OTP_TTL", "")
	t.Setenv("COOKIE_NAME", "")
	t.Setenv("CHAT_TEMPERATURE", "")
	t.Setenv("CHAT_MAX_TOKENS", "")

	cfg := Load()
	require.NotNil(t, cfg)
	assert.Equal(t, time.Hour, cfg.SessionVerifyTTL)
	assert.Equal(t, 24*time.Hour, cfg.SessionLoginTTL)
	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, "token", cfg.CookieName)
	assert.InDelta(t, 0.7, cfg.ChatTemperature, 0.0001)
	assert.Equal(t, 256, cfg.ChatMaxTokens)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OTP_TTL", "400s")
	t.Setenv("CHAT_MAX_TOKENS", "512")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("MAIL_DELIVERY", "DIRECT")

	cfg := Load()
	assert.Equal(t, 400*time.Second, cfg.OTPTTL)
	assert.Equal(t, 512, cfg.ChatMaxTokens)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "direct", cfg.MailDelivery)
}

func TestLoad_MalformedFallsBack(t *testing.T) {
	t.Setenv("OTP_TTL", "ten minutes")
	t.Setenv("CHAT_MAX_TOKENS", "many")
	t.Setenv("COOKIE_SECURE", "maybe")
	t.Setenv("CHAT_TEMPERATURE", "warm")

	cfg := Load()
	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 256, cfg.ChatMaxTokens)
	assert.True(t, cfg.CookieSecure)
	assert.InDelta(t, 0.7, cfg.ChatTemperature, 0.0001)
}

func TestCORSOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " https://a.example , ,https://b.example"}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
}

func TestSameSite(t *testing.T) {
	cases := map[string]http.SameSite{
		"lax":    http.SameSiteLaxMode,
		"Strict": http.SameSiteStrictMode,
		"none":   http.SameSiteNoneMode,
		"bogus":  http.SameSiteNoneMode,
	}
	for in, want := range cases {
		cfg := &Config{CookieSameSite: in}
		assert.Equal(t, want, cfg.SameSite(), in)
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.PostgresDSN())
}

func TestLoad_JWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	t.Setenv("APP_ENV", "development")
	cfg := Load()
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.NoError(t, cfg.Validate())

	t.Setenv("APP_ENV", "production")
	cfg = Load()
	assert.Empty(t, cfg.JWTSecret)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)

	t.Setenv("JWT_SECRET", "s3cret")
	cfg = Load()
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.NoError(t, cfg.Validate())
}

func TestTrustedProxyList(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 173.245.48.0/20")
	assert.Equal(t, []string{"10.0.0.0/8", "173.245.48.0/20"}, Load().TrustedProxyList())

	t.Setenv("TRUSTED_PROXIES", "")
	assert.Empty(t, Load().TrustedProxyList())
}
