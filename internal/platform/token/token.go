package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pawmarket/pawmarket/internal/domain"
)

// Claims is the payload carried by both access and refresh tokens.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer mints and validates HS256 access and refresh tokens. Access and
// refresh tokens are signed with separate secrets so one can never be
// presented in place of the other.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewIssuer creates an Issuer with the given secrets and lifetimes.
func NewIssuer(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration) *Issuer {
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// AccessExpiry returns the configured access token lifetime.
func (i *Issuer) AccessExpiry() time.Duration { return i.accessExpiry }

// RefreshExpiry returns the configured refresh token lifetime.
func (i *Issuer) RefreshExpiry() time.Duration { return i.refreshExpiry }

// IssueAccess mints a short-lived access token for the actor.
func (i *Issuer) IssueAccess(actor domain.Actor) (string, time.Time, error) {
	return i.issue(actor, i.accessSecret, i.accessExpiry)
}

// IssueRefresh mints a longer-lived refresh token for the actor.
func (i *Issuer) IssueRefresh(actor domain.Actor) (string, time.Time, error) {
	return i.issue(actor, i.refreshSecret, i.refreshExpiry)
}

func (i *Issuer) issue(actor domain.Actor, secret []byte, expiry time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(expiry)

	claims := Claims{
		Name:  actor.Name,
		Email: actor.Email,
		Role:  actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(actor.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, domain.NewAppError(domain.CodeInternal, "failed to generate token", err)
	}
	return signed, expiresAt, nil
}

// ParseAccess validates an access token and returns the actor it carries.
// Invalid or expired tokens return ErrUnauthenticated, never a panic or an
// internal error.
func (i *Issuer) ParseAccess(tokenString string) (*domain.Actor, error) {
	return i.parse(tokenString, i.accessSecret)
}

// ParseRefresh validates a refresh token and returns the actor it carries.
func (i *Issuer) ParseRefresh(tokenString string) (*domain.Actor, error) {
	return i.parse(tokenString, i.refreshSecret)
}

func (i *Issuer) parse(tokenString string, secret []byte) (*domain.Actor, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.NewAppError(domain.CodeUnauthenticated, "token expired", err)
		}
		return nil, domain.NewAppError(domain.CodeUnauthenticated, "invalid token", err)
	}
	if !parsed.Valid {
		return nil, domain.ErrUnauthenticated
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeUnauthenticated, "invalid token subject", err)
	}

	return &domain.Actor{
		ID:    uint(id),
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}
