package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaki95/song-graph/config"
	"github.com/jaki95/song-graph/internal/domain"
)

// Server exposes the similarity query over HTTP. The catalog is loaded once
// at startup and shared read-only across requests; each query's derived
// values stay local to the request, so no locking is needed.
type Server struct {
	cfg     *config.Config
	catalog *domain.Catalog
	router  *gin.Engine
}

// New creates a new HTTP server instance over an already loaded catalog.
func New(cfg *config.Config, catalog *domain.Catalog) *Server {
	router := gin.Default()

	server := &Server{
		cfg:     cfg,
		catalog: catalog,
		router:  router,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes() {
	// Add CORS middleware
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	s.router.GET("/health", s.healthCheck)

	// API endpoints
	api := s.router.Group("/api/v1")
	{
		api.POST("/similar", s.findSimilar)
	}
}

// Start starts the HTTP server
func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
		"service":   "song-graph",
		"tracks":    len(s.catalog.Tracks),
	})
}
