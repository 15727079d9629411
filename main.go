package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Dineshwev/final-project-sub007/citation"
	"github.com/Dineshwev/final-project-sub007/logging"
	"github.com/Dineshwev/final-project-sub007/middleware"
	"github.com/Dineshwev/final-project-sub007/nap"
	"github.com/Dineshwev/final-project-sub007/stats"
)

var (
	extractor    *citation.Extractor
	rateLimiter  *middleware.RateLimiter
	statsStorage *stats.Storage
)

func loadEnv() {
	// Try to load .env.development first (for local development)
	if err := godotenv.Load(".env.development"); err != nil {
		// If .env.development doesn't exist, try regular .env
		if err := godotenv.Load(); err != nil {
			logrus.Info("No .env file found, using environment variables")
		}
	}
}

func setupGinMode() {
	// Set Gin mode based on environment variable
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		// Default to release mode if not specified
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

func main() {
	// Load environment configuration
	loadEnv()

	// Set up Gin mode
	setupGinMode()

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	// Initialize services
	var err error
	statsStorage, err = stats.NewStorage(dataDir)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize stats storage")
	}
	extractor = citation.New(statsStorage)
	rateLimiter = middleware.NewRateLimiter(2, 5) // 2 requests per second, bucket size of 5

	// Initialize usage statistics
	usage := logging.Initialize()

	// Initialize Gin router
	r := gin.Default()

	// Add middlewares
	r.Use(middleware.ErrorHandler())
	r.Use(rateLimiter.RateLimit())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Request tracking
	r.Use(middleware.Stats(usage))

	// API routes
	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			logrus.WithField("ip", c.ClientIP()).Debug("Health check request received")
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		// NAP consistency endpoints
		api.POST("/nap/check", checkConsistency)
		api.POST("/nap/extract", extractCitation)

		// Statistics endpoint
		api.GET("/statistics", func(c *gin.Context) {
			c.JSON(http.StatusOK, usage.GetStatistics())
		})
	}

	// Get port from environment variable or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8082" // Default port
	}

	logrus.Infof("Server starting on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}

// checkConsistency runs the NAP consistency engine over the posted citations.
func checkConsistency(c *gin.Context) {
	logrus.WithField("ip", c.ClientIP()).Info("Consistency check request received")

	var request struct {
		MasterData nap.Record     `json:"masterData"`
		Citations  []nap.Citation `json:"citations"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}

	report := nap.GenerateConsistencyReport(request.Citations, request.MasterData)
	statsStorage.IncrementStats(1, 0, 0, 0)

	if report.Error != "" {
		// The engine reports validation failures as data, not errors
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   report.Error,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"report":  report,
	})
}

// extractCitation scrapes one citation page for its NAP record.
func extractCitation(c *gin.Context) {
	logrus.WithField("ip", c.ClientIP()).Info("Extract request received")

	var request struct {
		URL string `json:"url" binding:"required,url"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid URL provided",
		})
		return
	}

	// Expose the target URL to the stats middleware
	c.Set(middleware.CitationURLKey, request.URL)

	result, err := extractor.Extract(request.URL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to extract citation: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"citation": result,
	})
}
