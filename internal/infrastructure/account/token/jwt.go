package token

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/volley-club/internal/domain/account"
	"github.com/riskibarqy/volley-club/internal/usecase"
)

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWT signs and verifies HS256 access tokens.
type JWT struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewJWT(secret, issuer string, ttl time.Duration) *JWT {
	return &JWT{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (j *JWT) Issue(_ context.Context, principal account.Principal) (usecase.AccessToken, error) {
	now := j.now().UTC()
	expiresAt := now.Add(j.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := tok.SignedString(j.secret)
	if err != nil {
		return usecase.AccessToken{}, fmt.Errorf("sign access token: %w", err)
	}
	return usecase.AccessToken{Token: signed, ExpiresAt: expiresAt}, nil
}

func (j *JWT) VerifyAccessToken(_ context.Context, raw string) (account.Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return account.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return account.Principal{}, fmt.Errorf("%w: token expired", usecase.ErrUnauthorized)
		default:
			return account.Principal{}, fmt.Errorf("%w: invalid token: %v", usecase.ErrUnauthorized, err)
		}
	}

	subject := strings.TrimSpace(parsed.Subject)
	if subject == "" {
		return account.Principal{}, fmt.Errorf("%w: token has no subject", usecase.ErrUnauthorized)
	}
	role, err := account.ParseRole(parsed.Role)
	if err != nil {
		return account.Principal{}, fmt.Errorf("%w: %v", usecase.ErrUnauthorized, err)
	}

	return account.Principal{UserID: subject, Role: role}, nil
}
