// Package google verifies Google Sign-In ID tokens.
package google

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"

	"github.com/oksasatya/go-travel-assistant/internal/domain/gateway"
)

// payloadValidator is the part of *idtoken.Validator used here.
type payloadValidator interface {
	Validate(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

type Verifier struct {
	validator payloadValidator
	audience  string
}

// NewVerifier builds a verifier bound to clientID. Google's signing certs are
// fetched through httpClient and cached by the validator.
func NewVerifier(ctx context.Context, clientID string, httpClient *http.Client) (*Verifier, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	v, err := idtoken.NewValidator(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("idtoken validator: %w", err)
	}
	return &Verifier{validator: v, audience: clientID}, nil
}

// Verify checks signature, expiry and audience, then extracts identity claims.
// Every failure is reported as gateway.ErrInvalidIDToken.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*gateway.GoogleIdentity, error) {
	if strings.TrimSpace(idToken) == "" || v.audience == "" {
		return nil, gateway.ErrInvalidIDToken
	}
	p, err := v.validator.Validate(ctx, idToken, v.audience)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gateway.ErrInvalidIDToken, err)
	}
	id := &gateway.GoogleIdentity{
		Subject:       p.Subject,
		Email:         claimString(p.Claims, "email"),
		EmailVerified: claimBool(p.Claims, "email_verified"),
		Name:          claimString(p.Claims, "name"),
		Picture:       claimString(p.Claims, "picture"),
	}
	if id.Email == "" {
		return nil, fmt.Errorf("%w: token has no email", gateway.ErrInvalidIDToken)
	}
	return id, nil
}

func claimString(claims map[string]any, key string) string {
	s, _ := claims[key].(string)
	return strings.TrimSpace(s)
}

// claimBool accepts both JSON booleans and the "true"/"false" strings some
// older tokens carry. A missing claim counts as verified.
func claimBool(claims map[string]any, key string) bool {
	switch v := claims[key].(type) {
	case bool:
		return v
	case string:
		return !strings.EqualFold(v, "false")
	default:
		return true
	}
}

var _ gateway.IDTokenVerifier = (*Verifier)(nil)
