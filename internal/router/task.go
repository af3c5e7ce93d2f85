package router

import (
	"github.com/gin-gonic/gin"
)

// taskRoutes defines the task CRUD routes. Every route requires a live
// session; all reads and writes are scoped to the caller's own tasks.
func (r *Router) taskRoutes(engine *gin.Engine) {
	tasks := engine.Group("/tasks")
	tasks.Use(r.authMw.RequireAuth())
	{
		tasks.POST("", r.taskHandler.Create)
		tasks.GET("", r.taskHandler.List)
		tasks.GET("/:id", r.taskHandler.Get)
		tasks.PATCH("/:id", r.taskHandler.Update)
		tasks.DELETE("/:id", r.taskHandler.Delete)
	}
}
