package app

import (
	"brightsprout_backend/docs"
	"brightsprout_backend/internal/config"
	"brightsprout_backend/internal/middleware"
	"brightsprout_backend/internal/model"
	"brightsprout_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/children/login", c.child.LoginChild)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.Profile)

		// Learner profiles are managed by the parent; a child token can
		// still read its own profile, path and assessment.
		authGroup.GET("/children/:id", c.child.GetChild)
		authGroup.GET("/children/:id/learning-path", c.learningPath.Get)
		authGroup.GET("/children/:id/assessment", c.assessment.Get)

		authGroup.POST("/learning-paths/generate", c.learningPath.Generate)
		authGroup.POST("/assessments/generate", c.assessment.Generate)
		authGroup.POST("/assessments/generate-visual", c.assessment.GenerateVisual)

		parentOnly := authGroup.Group("")
		parentOnly.Use(middleware.RoleMiddleware(model.RoleParent))
		{
			parentOnly.POST("/children", c.child.AddChild)
			parentOnly.GET("/children", c.child.ListChildren)
			parentOnly.PUT("/children/:id/password", c.child.UpdatePassword)
		}
	}
}
