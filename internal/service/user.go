package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taskhive/taskhive/internal/dto"
	apperrors "github.com/taskhive/taskhive/internal/errors"
	"github.com/taskhive/taskhive/internal/mailer"
	"github.com/taskhive/taskhive/internal/model"
	"github.com/taskhive/taskhive/internal/repository"
	ctxutil "github.com/taskhive/taskhive/pkg/context"
	"github.com/taskhive/taskhive/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo     *repository.UserRepository
	tokenService *TokenService
	sender       *mailer.Sender
}

func NewUserService(userRepo *repository.UserRepository, tokenService *TokenService, sender *mailer.Sender) *UserService {
	return &UserService{
		userRepo:     userRepo,
		tokenService: tokenService,
		sender:       sender,
	}
}

// hashPassword hashes password using bcrypt
func (s *UserService) hashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedPassword), nil
}

// checkPassword verifies password against hash
func (s *UserService) checkPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// mapUserWriteError classifies storage failures on user writes. A duplicate
// key means the uniqueness pre-check raced a concurrent write on the same
// email; that is still an email conflict, not a server fault.
func mapUserWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrEmailExists
	}
	return apperrors.WrapError(apperrors.ErrInternal, err)
}

// validateEmail checks whether the email is free to use.
func (s *UserService) validateEmail(ctx context.Context, email string, excludeID *uint) error {
	existingUser, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if excludeID != nil && existingUser.ID == *excludeID {
		return nil
	}

	return apperrors.ErrEmailExists
}

func userResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Age:       user.Age,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// Register creates the account, hashes the password exactly once, issues the
// first session token and fires the welcome email.
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Register")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Whitespace padding passes the binding tag; the trimmed name is what
	// must be non-empty.
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.WrapError(apperrors.ErrInvalidInput,
			fmt.Errorf("name must be a non-empty string"))
	}

	logger.InfoWithContext(ctx, "Registering new user").
		String("email", email).
		Log()

	if err := s.validateEmail(ctx, email, nil); err != nil {
		logger.WarnWithContext(ctx, "Email validation failed").
			String("email", email).
			Err(err).
			Log()
		return nil, err
	}

	hashedPassword, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Age:      req.Age,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ErrorWithContext(ctx, "Failed to create user").
			String("email", email).
			Err(err).
			Log()
		return nil, mapUserWriteError(err)
	}

	token, err := s.tokenService.Issue(ctx, user.ID)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to issue session token").
			Uint("created_id", user.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	// Fire-and-forget: a failed welcome email never rolls back registration.
	go func(to, name string) {
		_ = s.sender.SendWelcome(to, name)
	}(user.Email, user.Name)

	return &dto.AuthResponse{
		User:  userResponse(user),
		Token: token,
	}, nil
}

// Login verifies credentials and issues an additional session token. Unknown
// email and wrong password are reported identically.
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Login")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "Login failed: user not found").
				String("email", email).
				Log()
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !s.checkPassword(user.Password, req.Password) {
		logger.WarnWithContext(ctx, "Login failed: incorrect password").
			String("email", email).
			Log()
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokenService.Issue(ctx, user.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User logged in").
		String("email", email).
		Uint("account_id", user.ID).
		Log()

	return &dto.AuthResponse{
		User:  userResponse(user),
		Token: token,
	}, nil
}

// Logout revokes exactly the session token that made the request.
func (s *UserService) Logout(ctx context.Context, userID uint, token string) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Logout")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if err := s.tokenService.Revoke(ctx, userID, token); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Session already gone; logout is idempotent.
			return nil
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

// LogoutAll revokes every live session for the user.
func (s *UserService) LogoutAll(ctx context.Context, userID uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "LogoutAll")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if err := s.tokenService.RevokeAll(ctx, userID); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

// GetProfile returns the caller's own profile.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetProfile")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := userResponse(user)
	return &response, nil
}

// UpdateProfile applies an allow-listed patch to the caller's profile. The
// whole patch is validated before anything is written; the password is
// re-hashed only when the patch actually changed it.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, patch dto.Patch) (*dto.UserResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdateProfile")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	changed, err := patch.ApplyUserPatch(user)
	if err != nil {
		logger.WarnWithContext(ctx, "Profile patch rejected").
			Uint("account_id", userID).
			Err(err).
			Log()
		return nil, err
	}

	if len(changed) == 0 {
		response := userResponse(user)
		return &response, nil
	}

	if dto.Changed(changed, "email") {
		if err := s.validateEmail(ctx, user.Email, &userID); err != nil {
			return nil, err
		}
	}

	values := make(map[string]interface{}, len(changed))
	for _, field := range changed {
		switch field {
		case "name":
			values["name"] = user.Name
		case "email":
			values["email"] = user.Email
		case "age":
			values["age"] = user.Age
		case "password":
			// The setter stored plaintext; hash it here, exactly once.
			hashed, err := s.hashPassword(user.Password)
			if err != nil {
				return nil, apperrors.WrapError(apperrors.ErrInternal, err)
			}
			values["password"] = hashed
		}
	}

	if err := s.userRepo.Update(ctx, userID, values); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, mapUserWriteError(err)
	}

	updated, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Profile updated").
		Uint("account_id", userID).
		Int("changed_fields", len(changed)).
		Log()

	response := userResponse(updated)
	return &response, nil
}

// DeleteAccount removes the caller's account together with every owned task
// and session in one unit, then fires the cancellation email.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "DeleteAccount")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.userRepo.DeleteCascade(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	go func(to, name string) {
		_ = s.sender.SendCancellation(to, name)
	}(user.Email, user.Name)

	logger.InfoWithContext(ctx, "Account deleted").
		Uint("account_id", userID).
		Log()

	response := userResponse(user)
	return &response, nil
}
