package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/HarmoniqaOrg/PharmOS/docs"
	"github.com/HarmoniqaOrg/PharmOS/internal/api/v1/modelregistry"
	"github.com/HarmoniqaOrg/PharmOS/internal/middleware"
	"github.com/HarmoniqaOrg/PharmOS/internal/registry"
)

// NewRouter wires the HTTP surface around an already-built registry.
func NewRouter(reg *registry.Registry) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1
	v1 := router.Group("/api/v1")
	{
		modelregistry.RegisterRoutes(v1, reg)
	}

	return router
}
