package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types carried in the "typ" claim. The middleware only accepts
// access tokens; refresh tokens are good for the refresh endpoint alone.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Default validities per the business rules: 24 hours for access tokens,
// 7 days for refresh tokens.
const (
	DefaultAccessTTL  = 24 * time.Hour
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
)

type Claims struct {
	UserID    string `json:"uid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies the service's bearer tokens (HS256).
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (i *Issuer) AccessTTL() time.Duration {
	return i.accessTTL
}

// IssueAccess signs a new access token for the user
func (i *Issuer) IssueAccess(userID uuid.UUID) (string, error) {
	return i.sign(userID, TokenTypeAccess, i.accessTTL)
}

// IssueRefresh signs a new refresh token for the user
func (i *Issuer) IssueRefresh(userID uuid.UUID) (string, error) {
	return i.sign(userID, TokenTypeRefresh, i.refreshTTL)
}

func (i *Issuer) sign(userID uuid.UUID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID.String(),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

// Parse verifies signature and expiry and returns the claims. The caller
// checks the token type against what the route expects.
func (i *Issuer) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if c, ok := token.Claims.(*Claims); ok && token.Valid {
		return c, nil
	}
	return nil, ErrTokenInvalid
}

// ParseOfType verifies the token and rejects it if the "typ" claim differs
// from expected.
func (i *Issuer) ParseOfType(tokenStr, expected string) (*Claims, error) {
	claims, err := i.Parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != expected {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
