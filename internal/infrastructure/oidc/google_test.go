package oidc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	token *oidc.IDToken
	err   error
}

func (f fakeVerifier) Verify(context.Context, string) (*oidc.IDToken, error) {
	return f.token, f.err
}

func staticClaims(raw string) func(*oidc.IDToken, any) error {
	return func(_ *oidc.IDToken, v any) error { return json.Unmarshal([]byte(raw), v) }
}

func TestGoogleVerifier_Verify(t *testing.T) {
	g := &GoogleVerifier{
		verifier: fakeVerifier{token: &oidc.IDToken{Issuer: GoogleIssuer, Subject: "1098"}},
		claims:   staticClaims(`{"email":"ana@example.com","email_verified":true,"name":"Ana","picture":"https://img.example.com/a.png"}`),
	}

	id, err := g.Verify(context.Background(), "raw")
	require.NoError(t, err)
	require.Equal(t, "1098", id.Subject)
	require.Equal(t, "ana@example.com", id.Email)
	require.True(t, id.EmailVerified)
	require.Equal(t, "Ana", id.Name)
	require.Equal(t, "https://img.example.com/a.png", id.Picture)
}

func TestGoogleVerifier_RejectsInvalidToken(t *testing.T) {
	g := &GoogleVerifier{
		verifier: fakeVerifier{err: errors.New("token expired")},
		claims:   staticClaims(`{}`),
	}
	_, err := g.Verify(context.Background(), "raw")
	require.Error(t, err)
}

func TestGoogleVerifier_BadClaims(t *testing.T) {
	g := &GoogleVerifier{
		verifier: fakeVerifier{token: &oidc.IDToken{Subject: "1"}},
		claims:   staticClaims(`not json`),
	}
	_, err := g.Verify(context.Background(), "raw")
	require.Error(t, err)
}

func TestNewGoogleVerifier_RequiresClientID(t *testing.T) {
	_, err := NewGoogleVerifier(context.Background(), "")
	require.Error(t, err)
}
