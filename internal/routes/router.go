package routes

import (
	appErrors "phonebook/internal/errors"
	"phonebook/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Register mounts the public and bearer-protected route groups on router.
func (h *Handler) Register(router *gin.Engine) {
	router.GET("/health", h.Health)
	if h.AvatarDir != "" {
		router.Static("/avatars", h.AvatarDir)
	}

	users := router.Group("/users")
	{
		users.POST("/signup", h.Signup)
		users.GET("/verify/:verificationToken", h.VerifyEmail)
		users.POST("/verify", h.ResendVerifyEmail)
		users.POST("/login", h.Login)
	}

	private := router.Group("")
	private.Use(middleware.AuthMiddleware(h.JwtService))
	{
		me := private.Group("/users")
		{
			me.GET("/logout", h.Logout)
			me.GET("/current", h.Current)
			me.PATCH("/avatars", h.UpdateAvatar)
		}

		contacts := private.Group("/contacts")
		{
			contacts.GET("", h.ListContacts)
			contacts.POST("", h.CreateContact)
			contacts.GET("/:id", h.GetContact)
			contacts.PUT("/:id", h.ReplaceContact)
			contacts.PATCH("/:id/favorite", h.UpdateFavorite)
			contacts.DELETE("/:id", h.DeleteContact)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		h.respondError(c, appErrors.ErrNotFound)
	})
}
