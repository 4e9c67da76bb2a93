package routes

import (
	"net/http"
	"os"
	"path/filepath"

	"phonebook/internal/contracts"
	"phonebook/internal/domain/auth"
	"phonebook/internal/domain/user"
	appErrors "phonebook/internal/errors"
	"phonebook/internal/logger"
	"phonebook/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Signup(c *gin.Context) {
	var body contracts.SignupRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	profile, err := h.AuthService.Register(c.Request.Context(), auth.Registration{
		Email:        body.Email,
		Password:     body.Password,
		Subscription: user.Subscription(body.Subscription),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

func (h *Handler) VerifyEmail(c *gin.Context) {
	if err := h.AuthService.Verify(c.Request.Context(), c.Param("verificationToken")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Verification successful"})
}

func (h *Handler) ResendVerifyEmail(c *gin.Context) {
	var body contracts.VerifyEmailRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	if err := h.AuthService.ResendVerification(c.Request.Context(), body.Email); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Verification email sent"})
}

func (h *Handler) Login(c *gin.Context) {
	var body contracts.LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	token, err := h.AuthService.Login(c.Request.Context(), auth.Login{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.TokenResponse{Token: token})
}

func (h *Handler) Logout(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.AuthService.Logout(c.Request.Context(), userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Current(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	profile, err := h.AuthService.Current(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) UpdateAvatar(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		h.respondError(c, appErrors.ErrMissingAvatar.WithError(err))
		return
	}

	tempPath := filepath.Join(h.UploadDir, pkg.GenerateULID()+filepath.Ext(filepath.Base(file.Filename)))
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		h.respondError(c, appErrors.ErrInternalServer.WithError(err))
		return
	}

	ref, err := h.AuthService.UpdateAvatar(c.Request.Context(), userID, auth.Upload{
		TempPath:     tempPath,
		OriginalName: file.Filename,
	})
	if err != nil {
		if rmErr := os.Remove(tempPath); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Warn().Err(rmErr).Str("path", tempPath).Msg("temp upload not removed")
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.AvatarResponse{AvatarURL: ref})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, contracts.HealthResponse{Status: "ok"})
}
