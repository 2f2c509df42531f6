package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenExpired = errors.New("token expired")

// TokenClaims are the claims the EventHub API puts in its access tokens.
type TokenClaims struct {
	UserID string `json:"id"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Owner returns the user id carried by the token.
func (c *TokenClaims) Owner() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

func (c *TokenClaims) IsOwner(userID string) bool {
	return userID != "" && c.Owner() == userID
}

func (c *TokenClaims) ExpiredAt(now time.Time) bool {
	return c.ExpiresAt != nil && !c.ExpiresAt.After(now)
}

// TokenVerifier checks access tokens before they are sent upstream. Without
// a JWKS it only inspects the claims; the API stays the authority.
type TokenVerifier struct {
	jwks *keyfunc.JWKS
	now  func() time.Time
}

func NewTokenVerifier(jwks *keyfunc.JWKS) *TokenVerifier {
	return &TokenVerifier{jwks: jwks, now: time.Now}
}

func (v *TokenVerifier) Verified() bool {
	return v != nil && v.jwks != nil
}

func (v *TokenVerifier) ValidateToken(tokenStr string) (*TokenClaims, error) {
	if tokenStr == "" {
		return nil, errors.New("empty token")
	}
	if !v.Verified() {
		return v.parseUnverified(tokenStr)
	}

	token, err := jwt.ParseWithClaims(tokenStr, &TokenClaims{}, v.jwks.Keyfunc,
		jwt.WithTimeFunc(v.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

func (v *TokenVerifier) parseUnverified(tokenStr string) (*TokenClaims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenStr, &TokenClaims{})
	if err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	now := time.Now
	if v != nil && v.now != nil {
		now = v.now
	}
	if claims.ExpiredAt(now()) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}

// Close stops the JWKS background refresh.
func (v *TokenVerifier) Close() {
	if v.Verified() {
		v.jwks.EndBackground()
	}
}
