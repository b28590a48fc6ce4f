package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

// clockSkew tolerates drift between the account service that issues tokens
// and this service.
const clockSkew = 30 * time.Second

// JWTManager validates HS256 access tokens issued by the account service.
// Issuing is only used by the operator CLI and tests.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	clock     clockwork.Clock
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
func NewJWTManager(secret string, issuer string, accessTTL time.Duration, clock clockwork.Clock) *JWTManager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
		clock:     clock,
	}
}

// accessClaims extends standard JWT claims with the user's role.
type accessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// GenerateAccessToken creates a signed HS256 JWT with user ID as subject and role as a custom claim.
func (m *JWTManager) GenerateAccessToken(userID uuid.UUID, role domain.UserRole) (string, error) {
	now := m.clock.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: role.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ValidateAccessToken accepts only HS256 tokens from the configured issuer
// that carry an expiry. Every failure matches domain.ErrUnauthorized.
// An unknown or missing role claim is downgraded to a regular user.
func (m *JWTManager) ValidateAccessToken(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, fmt.Errorf("token is empty: %w", domain.ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
		jwt.WithTimeFunc(m.clock.Now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("parse token: %v: %w", err, domain.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("invalid token claims: %w", domain.ErrUnauthorized)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("invalid subject UUID: %v: %w", err, domain.ErrUnauthorized)
	}

	role := domain.UserRole(claims.Role)
	if !role.IsValid() {
		role = domain.UserRoleUser
	}

	return Identity{UserID: userID, Role: role}, nil
}
