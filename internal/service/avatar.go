package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	apperrors "github.com/taskhive/taskhive/internal/errors"
	"github.com/taskhive/taskhive/internal/repository"
	ctxutil "github.com/taskhive/taskhive/pkg/context"
	"github.com/taskhive/taskhive/pkg/logger"
	"gorm.io/gorm"
)

// acceptedAvatarTypes restricts uploads to the formats the normalizer can
// decode.
var acceptedAvatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// AvatarService normalizes uploaded profile images to a fixed square PNG
// before they reach storage, so every stored avatar has identical shape and
// format regardless of the upload.
type AvatarService struct {
	userRepo  *repository.UserRepository
	maxBytes  int64
	dimension int
}

func NewAvatarService(userRepo *repository.UserRepository, maxBytes int64, dimension int) *AvatarService {
	return &AvatarService{
		userRepo:  userRepo,
		maxBytes:  maxBytes,
		dimension: dimension,
	}
}

// Set decodes, normalizes and stores the caller's avatar.
func (s *AvatarService) Set(ctx context.Context, userID uint, reader io.Reader, contentType string, size int64) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Set")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if !acceptedAvatarTypes[contentType] {
		return apperrors.WrapError(apperrors.ErrInvalidInput,
			fmt.Errorf("avatar must be a jpg or png image"))
	}
	if size > s.maxBytes {
		return apperrors.WrapError(apperrors.ErrInvalidInput,
			fmt.Errorf("avatar must be at most %d bytes", s.maxBytes))
	}

	img, err := imaging.Decode(io.LimitReader(reader, s.maxBytes+1))
	if err != nil {
		logger.WarnWithContext(ctx, "Avatar decode failed").
			Uint("account_id", userID).
			String("content_type", contentType).
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrInvalidInput,
			fmt.Errorf("avatar image could not be decoded"))
	}

	normalized := imaging.Fill(img, s.dimension, s.dimension, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, normalized, imaging.PNG); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.userRepo.UpdateAvatar(ctx, userID, buf.Bytes()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Avatar stored").
		Uint("account_id", userID).
		Int("normalized_bytes", buf.Len()).
		Log()

	return nil
}

// Delete clears the caller's avatar.
func (s *AvatarService) Delete(ctx context.Context, userID uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Delete")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if err := s.userRepo.UpdateAvatar(ctx, userID, nil); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return nil
}

// Get returns the stored avatar PNG for any user. This is the one public
// read: missing user and missing avatar are both not-found.
func (s *AvatarService) Get(ctx context.Context, userID uint) ([]byte, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Get")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAvatarNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if len(user.Avatar) == 0 {
		return nil, apperrors.ErrAvatarNotFound
	}

	return user.Avatar, nil
}
