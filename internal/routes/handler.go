package routes

import (
	"net/http"

	"phonebook/internal/domain/auth"
	"phonebook/internal/domain/contact"
	appErrors "phonebook/internal/errors"
	"phonebook/internal/logger"
	"phonebook/internal/middleware"
	"phonebook/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

type Handler struct {
	AuthService    *auth.Service
	ContactService *contact.Service
	JwtService     *middleware.JwtService

	// UploadDir receives multipart uploads before they are moved to avatar
	// storage. AvatarDir, when set, is served statically at /avatars.
	UploadDir string
	AvatarDir string
}

func (h *Handler) GetUserIDFromContext(c *gin.Context) (ulid.ULID, error) {
	userIDStr, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return ulid.ULID{}, appErrors.ErrUnauthorized
	}

	userID, err := pkg.ParseULID(userIDStr.(string))
	if err != nil {
		return ulid.ULID{}, appErrors.ErrUnauthorized.WithError(err)
	}

	return userID, nil
}

func (h *Handler) parsePagination(c *gin.Context) *pkg.PaginationParams {
	return pkg.ParsePagination(c.Query("page"), c.Query("limit"))
}

func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	event := logger.Warn()
	if appErr.StatusCode >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event = event.Str("code", appErr.Code).Str("path", c.FullPath())
	if appErr.Err != nil {
		event = event.Err(appErr.Err)
	}
	event.Msg("request_error")

	payload := gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		payload["details"] = appErr.Details
	}
	c.JSON(appErr.StatusCode, payload)
}
