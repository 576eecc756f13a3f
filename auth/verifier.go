// Package auth delegates identity verification to the external provider and
// gates the admin surface on a configured email allow-list.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// ErrUnauthenticated marks credentials the provider rejected.
var ErrUnauthenticated = errors.New("unauthenticated")

// Identity is the verified subject of a request.
type Identity struct {
	Subject string `json:"subject"`
	Email   string `json:"email"`
}

// TokenVerifier resolves bearer credentials to an identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// VerifierConfig points at the external identity provider.
type VerifierConfig struct {
	JWKSURL     string
	Issuer      string
	Audience    string
	UserInfoURL string
}

// Verifier validates provider-issued tokens against the provider's JWKS and
// resolves the subject's primary email.
type Verifier struct {
	jwks *keyfunc.JWKS
	cfg  VerifierConfig
	rest *resty.Client
	log  *zap.Logger
}

// NewVerifier fetches the provider JWKS and keeps it refreshed in the
// background until Close is called.
func NewVerifier(cfg VerifierConfig, log *zap.Logger) (*Verifier, error) {
	jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
		RefreshInterval: time.Hour,
		RefreshErrorHandler: func(err error) {
			log.Warn("jwks refresh failed", zap.Error(err))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("fetching identity provider JWKS: %w", err)
	}

	return &Verifier{
		jwks: jwks,
		cfg:  cfg,
		rest: resty.New().SetTimeout(10 * time.Second),
		log:  log,
	}, nil
}

// Verify checks the token signature and claims and returns the subject with
// its email, lower-cased. When the token carries no email claim the
// provider's userinfo endpoint is consulted.
func (v *Verifier) Verify(ctx context.Context, raw string) (Identity, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, v.jwks.Keyfunc)
	if err != nil || !token.Valid {
		return Identity{}, ErrUnauthenticated
	}

	if v.cfg.Issuer != "" && !claims.VerifyIssuer(v.cfg.Issuer, true) {
		return Identity{}, ErrUnauthenticated
	}
	if v.cfg.Audience != "" && !claims.VerifyAudience(v.cfg.Audience, true) {
		return Identity{}, ErrUnauthenticated
	}

	subject, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)

	if email == "" && v.cfg.UserInfoURL != "" {
		email, err = v.fetchEmail(ctx, raw)
		if err != nil {
			v.log.Warn("userinfo lookup failed", zap.Error(err))
			return Identity{}, ErrUnauthenticated
		}
	}

	return Identity{Subject: subject, Email: strings.ToLower(email)}, nil
}

func (v *Verifier) fetchEmail(ctx context.Context, raw string) (string, error) {
	var profile struct {
		Email string `json:"email"`
	}
	res, err := v.rest.R().
		SetContext(ctx).
		SetAuthToken(raw).
		SetResult(&profile).
		Get(v.cfg.UserInfoURL)
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", fmt.Errorf("userinfo status %d", res.StatusCode())
	}
	if profile.Email == "" {
		return "", errors.New("userinfo response carries no email")
	}
	return profile.Email, nil
}

// Close stops the background JWKS refresh.
func (v *Verifier) Close() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}
