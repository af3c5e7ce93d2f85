package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/internal/constants"
	apperrors "github.com/taskhive/taskhive/internal/errors"
	"github.com/taskhive/taskhive/internal/service"
	ctxutil "github.com/taskhive/taskhive/pkg/context"
	"github.com/taskhive/taskhive/pkg/logger"
)

type AvatarHandler struct {
	avatarService *service.AvatarService
}

func NewAvatarHandler(avatarService *service.AvatarService) *AvatarHandler {
	return &AvatarHandler{avatarService: avatarService}
}

// Upload accepts a multipart "avatar" file, normalizes it and stores it on
// the caller's profile.
func (h *AvatarHandler) Upload(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "Upload")

	userID, _, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		logger.WarnWithContext(ctx, "Avatar upload missing file field").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("avatar file is required", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, constants.BuildErrorResponse(constants.MsgInternalError, nil))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.avatarService.Set(ctx, userID, file, contentType, fileHeader.Size); err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.WarnWithContext(ctx, "Avatar upload rejected").
			String("content_type", contentType).
			Int64("size_bytes", fileHeader.Size).
			Int("http_status", status).
			Err(err).
			Log()
		var details any
		if status == http.StatusBadRequest {
			details = err.Error()
		}
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), details))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("avatar updated"))
}

// Remove clears the caller's avatar.
func (h *AvatarHandler) Remove(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "Remove")

	userID, _, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	if err := h.avatarService.Delete(ctx, userID); err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.ErrorWithContext(ctx, "Avatar removal failed").
			Int("http_status", status).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("avatar removed"))
}

// Serve writes any user's avatar as a PNG. Public, no session needed.
func (h *AvatarHandler) Serve(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "Serve")

	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, constants.BuildErrorResponse(apperrors.GetErrorMessage(apperrors.ErrAvatarNotFound), nil))
		return
	}

	avatar, err := h.avatarService.Get(ctx, uint(id64))
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.Data(http.StatusOK, "image/png", avatar)
}
