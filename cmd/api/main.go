package main

import (
	"fmt"
	"log"
	"os"

	"homeplan/internal/api/handlers"
	"homeplan/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// MET and Nominatim require an identifying User-Agent.
	userAgent := os.Getenv("USER_AGENT")
	if userAgent == "" {
		userAgent = "homeplan/1.0"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	simulateHandler := handlers.NewSimulateHandler(userAgent)
	buildingHandler := handlers.NewBuildingHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.Simulate)
		api.GET("/appliances", handlers.ListAppliances)
		api.GET("/buildings", buildingHandler.ListBuildings)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
