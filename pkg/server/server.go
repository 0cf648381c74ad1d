package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nullspace/nullspace"
	"github.com/nullspace/nullspace/pkg/config"
	"github.com/nullspace/nullspace/pkg/server/handlers"
	"github.com/nullspace/nullspace/pkg/types"
)

// Server represents the HTTP server
type Server struct {
	config   *config.Config
	router   *gin.Engine
	explorer nullspace.Explorer
	server   *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, explorer nullspace.Explorer) *Server {
	return &Server{
		config:   cfg,
		explorer: explorer,
	}
}

// Setup sets up the server routes and middleware
func (s *Server) Setup() {
	// Set gin mode
	gin.SetMode(s.config.Server.Mode)

	// Create router
	s.router = gin.New()

	// Add middleware
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
	s.router.Use(corsMiddleware())
	s.router.Use(contextMiddleware())

	// Setup routes
	s.setupRoutes()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
}

// setupRoutes sets up all the routes
func (s *Server) setupRoutes() {
	// Create handlers
	healthHandler := handlers.NewHealthHandler()
	studyHandler := handlers.NewStudyHandler(s.explorer)
	graphHandler := handlers.NewGraphHandler(s.explorer)
	searchHandler := handlers.NewSearchHandler(s.explorer)
	statsHandler := handlers.NewStatsHandler(s.explorer)

	// Banner and health endpoints
	s.router.GET("/", healthHandler.Root)
	s.router.GET("/health", healthHandler.HealthCheck)
	s.router.GET("/live", healthHandler.LivenessCheck) // Kubernetes liveness probe

	// API routes
	api := s.router.Group("/api")
	{
		api.GET("/experiments", studyHandler.List)
		api.GET("/experiments/:id", studyHandler.Get)
		api.GET("/knowledge-graph", graphHandler.Get)
		api.GET("/search", searchHandler.Search)
		api.GET("/stats", statsHandler.Get)
	}
}

// Router returns the configured gin router. Setup must be called first.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the server
func (s *Server) Start() error {
	fmt.Printf("Starting server on %s\n", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	fmt.Println("Stopping server...")
	return s.server.Shutdown(ctx)
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// contextMiddleware tags each request with an id and route for
// telemetry.
func contextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx = context.WithValue(ctx, types.ContextKeyRequestID, requestID)
		ctx = context.WithValue(ctx, types.ContextKeyRoute, c.FullPath())

		c.Header("X-Request-ID", requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
