package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"backup-power-sim/internal/api/handlers"
	"backup-power-sim/internal/api/middleware"
	"backup-power-sim/internal/data"

	"github.com/gin-gonic/gin"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	resultTTL := time.Hour
	if ttlStr := os.Getenv("RESULT_TTL"); ttlStr != "" {
		if parsed, err := time.ParseDuration(ttlStr); err == nil {
			resultTTL = parsed
		}
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	store := data.NewResultStore(resultTTL)
	simulateHandler := handlers.NewSimulateHandler(store)
	assetHandler := handlers.NewAssetHandler()
	policyHandler := handlers.NewPolicyHandler()
	streamHandler := handlers.NewStreamHandler()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.RunSimulation)
		api.GET("/simulations/:id/ledger", simulateHandler.GetLedger)
		api.GET("/simulate/stream", streamHandler.StreamSimulation)

		api.GET("/assets", assetHandler.ListAssets)
		api.GET("/policies", policyHandler.ListPolicies)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
