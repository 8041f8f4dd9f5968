// Package auth provides JWT token generation and validation plus the bearer
// middleware that gates the mutating API routes.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. Admin POSTs username/password to /api/auth/login
// 2. Server verifies the bcrypt hash and issues a signed JWT (8-hour expiry)
// 3. The admin UI sends it back as "Authorization: Bearer <token>"
// 4. RequireAuth validates the signature/expiry and puts the identity in the
//    request context before the handler runs
//
// WHY JWT?
// JWT (JSON Web Token) is stateless — the server doesn't store session data.
// Everything needed (user id, username, expiry) is inside the signed token,
// and the HMAC signature means nobody can tamper with it without the secret.
// The flip side: there is no server-side revocation. A token stays valid
// until it expires even if the password changes — acceptable for a
// single-admin personal site, a known trade-off all the same.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is how long an issued token remains valid.
// Eight hours covers a full editing session without forcing mid-write
// re-logins; after that the admin UI has to authenticate again.
const TokenLifetime = 8 * time.Hour

// Identity is the decoded content of a valid token.
type Identity struct {
	UserID   int64
	Username string
}

// TokenService handles JWT creation and validation.
// It holds the HMAC secret used to sign and verify tokens — the same secret
// must be used for both, so it's process-wide configuration loaded once.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload. It embeds jwt.RegisteredClaims (Subject,
// ExpiresAt, IssuedAt, Issuer) and adds the username so the admin UI can
// display who's logged in without an extra lookup. The user id travels in
// "sub", the standard claim for token ownership.
type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Generate creates and signs a new access token for the given identity.
//
// Signing algorithm: HS256 (HMAC-SHA256) — symmetric, fast, and exactly
// right for a single-server deployment where signer and verifier are the
// same process.
func (s *TokenService) Generate(id Identity) (string, error) {
	return s.GenerateWithDuration(id, TokenLifetime)
}

// GenerateWithDuration creates a token with a custom expiry duration.
// Exists so tests can mint already-expired or nearly-expired tokens.
func (s *TokenService) GenerateWithDuration(id Identity, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    "portfolio-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a JWT string and returns the identity it
// encodes.
//
// VALIDATION CHECKS (performed by the jwt library):
//   - Signature is valid (wasn't tampered with)
//   - Token is not expired
//   - Issuer matches "portfolio-backend" (rejects tokens from other apps)
//   - Algorithm is HS256 — jwt.WithValidMethods prevents the classic
//     algorithm-confusion attack where an attacker submits an unsigned
//     "none" token
func (s *TokenService) Validate(tokenStr string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer("portfolio-backend"),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("auth: token expired")
		}
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("auth: invalid token claims")
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("auth: token subject is not a user id: %w", err)
	}

	return &Identity{UserID: userID, Username: c.Username}, nil
}
