package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/taskhive/taskhive/internal/errors"
	"github.com/taskhive/taskhive/internal/repository"
)

// TokenService mints and validates the signed session credentials. Signature
// and expiry live in the token itself; liveness lives in the stored session
// list, checked separately by the guard.
type TokenService struct {
	secretKey string
	ttl       time.Duration
	tokenRepo *repository.TokenRepository
}

// NewTokenService creates the issuer/verifier. A zero ttl disables expiry;
// revocation still limits a token's life.
func NewTokenService(secretKey string, ttl time.Duration, tokenRepo *repository.TokenRepository) *TokenService {
	return &TokenService{
		secretKey: secretKey,
		ttl:       ttl,
		tokenRepo: tokenRepo,
	}
}

// Issue creates a signed token bound to the user and appends it to the
// user's live session list. Sessions are additive across devices.
func (s *TokenService) Issue(ctx context.Context, userID uint) (string, error) {
	// The jti keeps tokens issued within the same second distinct, so
	// revocation by token string always hits exactly one session.
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"jti":     uuid.NewString(),
	}
	if s.ttl > 0 {
		claims["exp"] = now.Add(s.ttl).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", err
	}

	if err := s.tokenRepo.Add(ctx, userID, tokenString); err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks signature and expiry and returns the embedded user ID. It
// does not consult the stored session list; a verified token may still be
// revoked.
func (s *TokenService) Verify(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.secretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, apperrors.WrapError(apperrors.ErrTokenExpired, err)
		}
		return 0, apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, apperrors.ErrInvalidToken
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, apperrors.ErrInvalidToken
	}

	return uint(userIDFloat), nil
}

// IsLive reports whether the exact token is still in the user's session list.
func (s *TokenService) IsLive(ctx context.Context, userID uint, tokenString string) (bool, error) {
	return s.tokenRepo.Exists(ctx, userID, tokenString)
}

// Revoke removes exactly the matching session token (logout).
func (s *TokenService) Revoke(ctx context.Context, userID uint, tokenString string) error {
	return s.tokenRepo.Remove(ctx, userID, tokenString)
}

// RevokeAll clears every session token for the user (logout-all).
func (s *TokenService) RevokeAll(ctx context.Context, userID uint) error {
	return s.tokenRepo.RemoveAll(ctx, userID)
}
