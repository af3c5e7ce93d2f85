package router

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/internal/middleware"
)

// userRoutes defines account, session, profile and avatar routes.
func (r *Router) userRoutes(engine *gin.Engine) {
	users := engine.Group("/users")
	{
		// Public routes. Registration and login share one abuse limiter.
		authLimited := users.Group("")
		authLimited.Use(middleware.AuthRateLimit(r.redisClient, r.config.RateLimit.Request, r.config.RateLimit.Duration))
		{
			authLimited.POST("", r.authHandler.Register)
			authLimited.POST("/login", r.authHandler.Login)
		}

		// Avatar reads are public by design: anyone may fetch any avatar.
		users.GET("/:id/avatar", r.avatarHandler.Serve)

		// Protected routes
		protected := users.Group("")
		protected.Use(r.authMw.RequireAuth())
		{
			protected.POST("/logout", r.authHandler.Logout)
			protected.POST("/logoutAll", r.authHandler.LogoutAll)

			protected.GET("/me", r.userHandler.GetMe)
			protected.PATCH("/me", r.userHandler.UpdateMe)
			protected.DELETE("/me", r.userHandler.DeleteMe)

			protected.POST("/me/avatar", r.avatarHandler.Upload)
			protected.DELETE("/me/avatar", r.avatarHandler.Remove)
		}
	}
}
