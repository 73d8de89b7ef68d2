package application

import (
	"net/http"

	"github.com/oksasatya/go-travel-assistant/pkg/apperror"
)

// Error catalogue. Handlers render Message verbatim, so every message here is
// safe to show to end users.
var (
	ErrAccountExists  = apperror.New(http.StatusBadRequest, apperror.KindConflict, "User already exists")
	ErrOTPAlreadySent = apperror.New(http.StatusBadRequest, apperror.KindConflict, "OTP already sent. Please verify your email.")

	ErrInvalidOTP         = apperror.New(http.StatusBadRequest, apperror.KindAuthentication, "Invalid OTP")
	ErrTooManyOTPAttempts = apperror.New(http.StatusTooManyRequests, apperror.KindAuthentication, "Too many incorrect codes. Please sign up again.")
	ErrInvalidCredentials = apperror.New(http.StatusBadRequest, apperror.KindAuthentication, "Invalid credentials")
	ErrNotVerified        = apperror.New(http.StatusBadRequest, apperror.KindAuthentication, "Please verify your email first")
	ErrInvalidGoogleToken = apperror.New(http.StatusUnauthorized, apperror.KindAuthentication, "Invalid Google token")
	ErrUnauthorized       = apperror.New(http.StatusUnauthorized, apperror.KindAuthentication, "Unauthorized")
	ErrInvalidToken       = apperror.New(http.StatusUnauthorized, apperror.KindAuthentication, "Invalid token")

	ErrWeakPassword = apperror.New(http.StatusBadRequest, apperror.KindValidation, "Password must be at least 8 characters")
	ErrEmptyPrompt  = apperror.New(http.StatusBadRequest, apperror.KindValidation, "User prompt is required")

	ErrUpstreamAuth        = apperror.New(http.StatusInternalServerError, apperror.KindUpstream, "AI service authentication failed")
	ErrUpstreamRejected    = apperror.New(http.StatusBadRequest, apperror.KindUpstream, "AI service rejected the request")
	ErrUpstreamUnavailable = apperror.New(http.StatusInternalServerError, apperror.KindUpstream, "AI service is unavailable. Please try again.")

	ErrChatNotConfigured   = apperror.New(http.StatusInternalServerError, apperror.KindServer, "AI service is not configured")
	ErrGoogleNotConfigured = apperror.New(http.StatusInternalServerError, apperror.KindServer, "Google sign-in is not configured")
	ErrAvatarNotConfigured = apperror.New(http.StatusInternalServerError, apperror.KindServer, "Avatar upload is not configured")

	ErrUserNotFound = apperror.New(http.StatusNotFound, apperror.KindNotFound, "User not found")
)

// ErrInternal is the generic 500 shown for anything unexpected.
var ErrInternal = apperror.Internal(nil)
