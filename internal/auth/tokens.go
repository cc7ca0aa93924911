package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// claims is the JWT payload issued to dashboard and ordering-site users
type claims struct {
	jwt.RegisteredClaims
	Role Role `json:"role"`
}

// TokenStore issues and verifies HS256 bearer tokens
type TokenStore struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenStore creates a new token store
func NewTokenStore(secret, issuer string, ttl time.Duration) *TokenStore {
	return &TokenStore{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the time source (used by tests)
func (s *TokenStore) WithClock(now func() time.Time) *TokenStore {
	s.now = now
	return s
}

// IssueToken signs a token for userID with the given role
func (s *TokenStore) IssueToken(userID string, role Role) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}
	if !role.Valid() {
		return "", fmt.Errorf("invalid role %q", role)
	}

	issuedAt := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
		Role: role,
	})
	return token.SignedString(s.secret)
}

// ValidateToken verifies a raw bearer token and returns its principal
func (s *TokenStore) ValidateToken(rawToken string) (*Principal, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, fmt.Errorf("token is required")
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(rawToken, &parsed, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("token expired")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("invalid token signature")
		default:
			return nil, fmt.Errorf("invalid token")
		}
	}

	if parsed.Subject == "" {
		return nil, fmt.Errorf("token subject is required")
	}
	if !parsed.Role.Valid() {
		return nil, fmt.Errorf("token role is invalid")
	}

	return &Principal{UserID: parsed.Subject, Role: parsed.Role}, nil
}
