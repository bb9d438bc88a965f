package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jetsaguirel/simple-blog/internal/domain"
	"github.com/jonboulle/clockwork"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenService issues and verifies the HS256 bearer tokens used by the API.
// The subject claim carries the user's object id.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	clock  clockwork.Clock
}

func NewTokenService(secret string, ttl time.Duration, clock clockwork.Clock) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clock,
	}
}

// Issue creates a signed token for the given user.
func (s *TokenService) Issue(userID primitive.ObjectID) (string, error) {
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the user id it was issued
// for. Any parse, signature, or expiry failure maps to domain.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (primitive.ObjectID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return primitive.NilObjectID, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return primitive.NilObjectID, domain.ErrInvalidToken
	}

	userID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidToken
	}
	return userID, nil
}
