// Package oidc verifies Google Sign-In ID tokens.
package oidc

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/resumeforge/resume-api/internal/core/ports"
)

const GoogleIssuer = "https://accounts.google.com"

// idTokenVerifier is satisfied by *oidc.IDTokenVerifier.
type idTokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)
}

type googleClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleVerifier checks ID tokens against Google's published keys and the
// configured client id.
type GoogleVerifier struct {
	verifier idTokenVerifier
	claims   func(*oidc.IDToken, any) error
}

// NewGoogleVerifier discovers the Google provider. It fails when clientID is
// empty or discovery fails.
func NewGoogleVerifier(ctx context.Context, clientID string) (*GoogleVerifier, error) {
	if clientID == "" {
		return nil, errors.New("google client id is required")
	}
	provider, err := oidc.NewProvider(ctx, GoogleIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	return &GoogleVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
		claims:   func(t *oidc.IDToken, v any) error { return t.Claims(v) },
	}, nil
}

// Verify validates raw and returns the identity it carries.
func (g *GoogleVerifier) Verify(ctx context.Context, raw string) (*ports.GoogleIdentity, error) {
	tok, err := g.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	var c googleClaims
	if err := g.claims(tok, &c); err != nil {
		return nil, fmt.Errorf("decode id token claims: %w", err)
	}

	return &ports.GoogleIdentity{
		Subject:       tok.Subject,
		Email:         c.Email,
		EmailVerified: c.EmailVerified,
		Name:          c.Name,
		Picture:       c.Picture,
	}, nil
}
