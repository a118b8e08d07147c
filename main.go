package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/SebastienLaurentt/CRVO-Front-sub000/config"
	"github.com/SebastienLaurentt/CRVO-Front-sub000/controllers"
	"github.com/SebastienLaurentt/CRVO-Front-sub000/middleware"
	"github.com/SebastienLaurentt/CRVO-Front-sub000/services"
)

func main() {
	// Basic logging
	log.Println("Starting CRVO dashboard service...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the CRVO backend client
	services.InitCRVOService(cfg)
	log.Printf("CRVO backend: %s", cfg.CRVOApiURL)

	// Initialize S3 export archiving when configured
	if cfg.ArchiveEnabled() {
		if _, err := services.InitS3Service(); err != nil {
			log.Fatalf("Failed to initialize S3 archive: %v", err)
		}
		log.Printf("Export archiving enabled (bucket %s)", cfg.AWSS3Bucket)
	} else {
		log.Println("Export archiving disabled (no AWS_S3_BUCKET configured)")
	}

	// Initialize Gin router
	router := setupRouter(cfg)

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires middleware and routes
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.CORSAllowedOrigin},
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	clock := services.SystemClock{}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Authentication
		v1.POST("/auth/login", controllers.Login)

		// Authenticated dashboard routes
		authed := v1.Group("")
		authed.Use(middleware.RequireSession(clock))
		{
			authed.GET("/auth/session", controllers.GetSessionInfo)
			authed.GET("/vehicles", controllers.ListVehicles)
			authed.GET("/vehicles/summary", controllers.GetStatusSummary)
			authed.GET("/vehicles/substages", controllers.GetSubStageCounts)
			authed.GET("/vehicles/forecast", controllers.GetForecast)
			authed.GET("/vehicles/dwell", controllers.GetDwell)
			authed.GET("/completed", controllers.ListCompleted)
			authed.GET("/sync", controllers.GetLastSync)
			authed.GET("/exports/vehicles", controllers.ExportVehicles)

			// Staff-only routes
			admin := authed.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/users", controllers.ListUsers)
				admin.PATCH("/users/:id/password", controllers.UpdateUserPassword)
				admin.POST("/imports/vehicles", controllers.ImportVehicles)
				admin.POST("/imports/completed", controllers.ImportCompleted)
			}
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "CRVO dashboard service is running",
	})
}
