package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/internal/constants"
	"github.com/taskhive/taskhive/internal/repository"
	"github.com/taskhive/taskhive/internal/service"
	ctxutil "github.com/taskhive/taskhive/pkg/context"
	"github.com/taskhive/taskhive/pkg/logger"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	tokenService *service.TokenService
	userRepo     *repository.UserRepository
}

func NewAuthMiddleware(tokenService *service.TokenService, userRepo *repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		userRepo:     userRepo,
	}
}

// abortUnauthorized is the single failure exit of the guard. Every cause
// (missing header, bad format, bad signature, expiry, unknown user, revoked
// session) produces this identical response so callers cannot probe for
// account existence.
func abortUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
	c.Abort()
}

// RequireAuth extracts and verifies the bearer credential, checks it is
// still live in the user's session list, and binds the resolved identity and
// the exact presented token to the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			logger.GetLogger().Debug("Missing Authorization header",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			abortUnauthorized(c)
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != constants.BearerPrefix {
			logger.GetLogger().Debug("Invalid Authorization header format",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			abortUnauthorized(c)
			return
		}

		tokenString := tokenParts[1]

		userID, err := m.tokenService.Verify(tokenString)
		if err != nil {
			logger.GetLogger().Debug("Token verification failed",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err))
			abortUnauthorized(c)
			return
		}

		ctx := c.Request.Context()

		// Verified is not live: the session row must still exist.
		live, err := m.tokenService.IsLive(ctx, userID, tokenString)
		if err != nil || !live {
			logger.GetLogger().Debug("Token not found among live sessions",
				zap.String("path", c.Request.URL.Path),
				zap.Uint("claimed_user_id", userID),
				zap.Error(err))
			abortUnauthorized(c)
			return
		}

		if _, err := m.userRepo.GetByID(ctx, userID); err != nil {
			logger.GetLogger().Debug("Token user not found",
				zap.String("path", c.Request.URL.Path),
				zap.Uint("claimed_user_id", userID),
				zap.Error(err))
			abortUnauthorized(c)
			return
		}

		// The identity travels on the request context; downstream code never
		// re-derives it from client-supplied fields.
		ctx = ctxutil.WithUserID(ctx, userID)
		ctx = ctxutil.WithAuthToken(ctx, tokenString)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
