package repository

import (
	"context"
	"time"

	"github.com/taskhive/taskhive/internal/model"
	ctxutil "github.com/taskhive/taskhive/pkg/context"
	"github.com/taskhive/taskhive/pkg/logger"
	"gorm.io/gorm"
)

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Add appends a freshly issued token to the user's session list. Sessions
// are additive; multiple logins coexist until revoked individually.
func (r *TokenRepository) Add(ctx context.Context, userID uint, token string) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Add")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).Create(&model.SessionToken{
		UserID: userID,
		Token:  token,
	})
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to store session token").
			Uint("owner_id", userID).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}

// Exists reports whether the exact token is still live for the user. This is
// the guard's liveness check on top of signature verification.
func (r *TokenRepository) Exists(ctx context.Context, userID uint, token string) (bool, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Exists")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SessionToken{}).
		Where("user_id = ? AND token = ?", userID, token).
		Count(&count).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to check session token").
			Uint("owner_id", userID).
			Err(err).
			Log()
		return false, err
	}

	return count > 0, nil
}

// Remove revokes exactly the matching token (logout).
func (r *TokenRepository) Remove(ctx context.Context, userID uint, token string) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Remove")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&model.SessionToken{})
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to revoke session token").
			Uint("owner_id", userID).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Session token revoked").
		Uint("owner_id", userID).
		Duration(duration).
		Log()

	return nil
}

// RemoveAll revokes every session for the user (logout-all).
func (r *TokenRepository) RemoveAll(ctx context.Context, userID uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "RemoveAll")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.SessionToken{})
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to revoke all session tokens").
			Uint("owner_id", userID).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "All session tokens revoked").
		Uint("owner_id", userID).
		Int64("revoked_count", result.RowsAffected).
		Duration(duration).
		Log()

	return nil
}
