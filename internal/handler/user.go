package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/internal/constants"
	"github.com/taskhive/taskhive/internal/dto"
	apperrors "github.com/taskhive/taskhive/internal/errors"
	"github.com/taskhive/taskhive/internal/service"
	ctxutil "github.com/taskhive/taskhive/pkg/context"
	"github.com/taskhive/taskhive/pkg/logger"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe returns the caller's own profile.
func (h *UserHandler) GetMe(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "GetMe")

	userID, _, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	user, err := h.userService.GetProfile(ctx, userID)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.ErrorWithContext(ctx, "Failed to fetch profile").
			Int("http_status", status).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe applies a partial profile update against the user allow-list.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "UpdateMe")

	userID, _, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	var patch dto.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		logger.WarnWithContext(ctx, "Invalid profile patch body").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, nil))
		return
	}

	user, err := h.userService.UpdateProfile(ctx, userID, patch)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.WarnWithContext(ctx, "Profile update rejected").
			Int("http_status", status).
			Err(err).
			Log()
		// Name the violation for validation failures; leak nothing otherwise.
		var details any
		if status == http.StatusBadRequest {
			details = err.Error()
		}
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), details))
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteMe removes the caller's account and cascades to owned tasks.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "DeleteMe")

	userID, _, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	user, err := h.userService.DeleteAccount(ctx, userID)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.ErrorWithContext(ctx, "Account deletion failed").
			Int("http_status", status).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, user)
}
