package main

import (
	"github.com/gin-gonic/gin"
	"github.com/thereayou/trail-service/internal/handlers"
	"github.com/thereayou/trail-service/internal/middleware"
)

func APIEndpoints(r *gin.Engine, verifier middleware.TokenVerifier, authH *handlers.AuthHandler, trailH *handlers.TrailHandler, healthH *handlers.HealthHandler) {
	r.GET("/health", healthH.Health)

	// Auth endpoints
	auth := r.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
	}

	trails := r.Group("/trails")
	{
		trails.GET("", trailH.ListTrails)
		trails.GET("/search", trailH.SearchTrails)
		trails.GET("/:id", middleware.OptionalAuth(verifier), trailH.GetTrail)

		owned := trails.Group("", middleware.AuthMiddleware(verifier))
		owned.POST("", trailH.CreateTrail)
		owned.PUT("/:id", trailH.UpdateTrail)
		owned.DELETE("/:id", trailH.DeleteTrail)
	}
}
