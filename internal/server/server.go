package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httperr "github.com/puesto-lab/puesto/internal/core/errors"
	"github.com/puesto-lab/puesto/internal/core/storage"
)

// UploadsPath is the URL prefix under which product images are served.
const UploadsPath = "/uploads"

const rootMessage = "El backend funciona correctamente 🚀"

type Server struct {
	Engine *gin.Engine
	Addr   string
	health storage.HealthChecker
}

// Options configures the middleware stack of a Server.
type Options struct {
	Mode             string // debug | release
	AllowedOrigins   []string
	AllowCredentials bool
	MaxBodySizeMB    int
	UploadsDir       string
}

func New(addr string, health storage.HealthChecker, opts Options) *Server {
	// Set Gin mode based on configuration
	if opts.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	if mw := corsMiddleware(opts.AllowedOrigins, opts.AllowCredentials); mw != nil {
		r.Use(mw)
	}
	if opts.MaxBodySizeMB > 0 {
		r.Use(bodyLimit(int64(opts.MaxBodySizeMB) * 1024 * 1024))
	}

	s := &Server{
		Engine: r,
		Addr:   addr,
		health: health,
	}

	r.GET("/", s.rootHandler)
	r.GET("/health", s.healthHandler)
	if opts.UploadsDir != "" {
		r.Static(UploadsPath, opts.UploadsDir)
	}

	return s
}

// corsMiddleware returns nil when no origin is configured.
func corsMiddleware(origins []string, allowCredentials bool) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}

	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			break
		}
	}
	if !cfg.AllowAllOrigins {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// bodyLimit rejects requests that declare a body larger than maxBytes and caps the
// reader for those that do not declare one.
func bodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			slog.Warn("Request body exceeds maximum size", "size", c.Request.ContentLength, "max", maxBytes)
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidJsonError,
				Message:   "El cuerpo de la solicitud excede el tamaño máximo permitido",
				Details: map[string]interface{}{
					"max_size_mb": maxBytes / (1024 * 1024),
				},
			})
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

func (s *Server) rootHandler(c *gin.Context) {
	c.String(http.StatusOK, rootMessage)
}

func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	// Check that the data directory is still usable
	if s.health != nil {
		if err := s.health.Ping(ctx); err != nil {
			slog.Error("Health check failed: storage unreachable", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "storage unreachable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"storage": "reachable",
	})
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Starting HTTP Server...", "address", s.Addr)

	go func() {
		<-ctx.Done()
		slog.Info("Stopping HTTP Server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP Server forced to shutdown", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
