package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geo-audit/backend/analyzer"
	"github.com/geo-audit/backend/config"
	"github.com/geo-audit/backend/logging"
	"github.com/geo-audit/backend/middleware"
	"github.com/geo-audit/backend/stats"
)

var (
	engine      *analyzer.Analyzer
	auditStats  *stats.Storage
	rateLimiter *middleware.RateLimiter
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	auditStats, err = stats.NewStorage(cfg.DataDir)
	if err != nil {
		logger.Fatalw("failed to initialize stats storage", "error", err)
	}
	defer auditStats.Shutdown()

	engine = analyzer.New(logger, analyzer.Options{
		SitemapRequired:  cfg.SitemapRequired,
		MaxPages:         cfg.MaxPages,
		PageDelay:        cfg.PageDelay,
		ProblemThreshold: cfg.ProblemThreshold,
		Stats:            auditStats,
	})
	rateLimiter = middleware.NewRateLimiter(2, 5) // 2 requests per second, bucket of 5

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(rateLimiter.RateLimit())
	r.Use(corsMiddleware())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/analyze", analyzeSite)
		api.POST("/analyze/page", analyzePage)

		api.GET("/statistics", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"current": auditStats.GetCurrentStats(),
				"months":  auditStats.GetAllMonths(),
			})
		})
	}

	logger.Infow("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalw("failed to start server", "error", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type analyzeRequest struct {
	URL string `json:"url" binding:"required"`
}

func analyzeSite(c *gin.Context) {
	var request analyzeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL provided"})
		return
	}

	report, err := engine.AnalyzeSite(c.Request.Context(), request.URL)
	if err != nil {
		var resolverErr *analyzer.ResolverError
		if errors.As(err, &resolverErr) {
			c.JSON(http.StatusUnprocessableEntity, resolverErr)
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to analyze site: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

func analyzePage(c *gin.Context) {
	var request analyzeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL provided"})
		return
	}

	page, err := engine.AnalyzePage(c.Request.Context(), request.URL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to analyze page: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}
