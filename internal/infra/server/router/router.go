// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/goal-agent/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/goal-agent/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	goalAgentController *controller.GoalAgentController
	actionRateLimiter   *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	goalAgentController *controller.GoalAgentController,
	actionRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		goalAgentController: goalAgentController,
		actionRateLimiter:   actionRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	// Goal agent routes (require a service token)
	if r.goalAgentController != nil && r.authMiddleware != nil {
		agent := v1.Group("/goal-agent")
		agent.Use(r.authMiddleware.Authenticate())
		{
			actions := agent.Group("")
			if r.actionRateLimiter != nil {
				actions.Use(r.actionRateLimiter.Middleware())
			}
			actions.POST("/actions", r.goalAgentController.Actions)
			actions.POST("/adjust", r.goalAgentController.Adjust)
			actions.POST("/track", r.goalAgentController.Track)
			actions.POST("/context", r.goalAgentController.Context)

			agent.GET("/users/:user_id/episodes", r.goalAgentController.Episodes)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
