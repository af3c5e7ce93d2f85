package router

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/config"
	"github.com/taskhive/taskhive/internal/handler"
	"github.com/taskhive/taskhive/internal/middleware"
	"github.com/taskhive/taskhive/pkg/redis"
)

type Router struct {
	authHandler   *handler.AuthHandler
	userHandler   *handler.UserHandler
	taskHandler   *handler.TaskHandler
	avatarHandler *handler.AvatarHandler
	healthHandler *handler.HealthHandler

	authMw      *middleware.AuthMiddleware
	redisClient *redis.Client
	config      *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	task *handler.TaskHandler,
	avatar *handler.AvatarHandler,
	health *handler.HealthHandler,
	authMw *middleware.AuthMiddleware,
	redisClient *redis.Client,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:   auth,
		userHandler:   user,
		taskHandler:   task,
		avatarHandler: avatar,
		healthHandler: health,
		authMw:        authMw,
		redisClient:   redisClient,
		config:        cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	if r.config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORS())

	router.GET("/health", r.healthHandler.Check)

	r.userRoutes(router)
	r.taskRoutes(router)

	return router
}
