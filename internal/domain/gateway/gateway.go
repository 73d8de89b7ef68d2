// Package gateway declares the outbound collaborators the application layer
// talks to: the completion API, Google's ID-token verification, OTP mail
// delivery and avatar storage.
package gateway

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrUpstreamAuth means the upstream rejected our credentials.
	ErrUpstreamAuth = errors.New("upstream authentication failed")
	// ErrUpstreamRejected means the upstream refused the request shape.
	ErrUpstreamRejected = errors.New("upstream rejected request")
	// ErrUpstreamUnavailable covers network failures and any other upstream error.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrInvalidIDToken is returned for bad signatures, audience mismatch or expiry.
	ErrInvalidIDToken = errors.New("invalid id token")
)

// CompletionParams are the sampling settings sent with every completion.
type CompletionParams struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

// Completer produces a single, non-streamed completion.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, p CompletionParams) (string, error)
}

// GoogleIdentity holds the claims used from a verified Google ID token.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

type IDTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

// OTPMessage is everything a mailer needs to deliver a signup code.
type OTPMessage struct {
	Email     string
	Code      string
	ExpiresIn time.Duration
	IP        string
	UserAgent string
}

type OTPMailer interface {
	SendOTP(ctx context.Context, msg OTPMessage) error
}

// AvatarStore persists an uploaded image and returns its public URL.
type AvatarStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}
