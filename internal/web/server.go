// Package web provides the HTTP server and handlers for the comments API.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/evcraddock/comments/internal/comment"
	"github.com/evcraddock/comments/internal/logging"
)

// DefaultBasePath is where the comment resource is mounted.
const DefaultBasePath = "/api/comments"

const defaultShutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	// BasePath mounts the comment resource; empty means DefaultBasePath.
	BasePath string
	// CORSOrigins lists allowed browser origins. "*" allows any origin;
	// empty disables CORS handling.
	CORSOrigins []string
}

// Server is the comments API HTTP server.
type Server struct {
	store   comment.Store
	engine  *gin.Engine
	handler http.Handler
}

// NewServer creates an API server backed by store.
func NewServer(store comment.Store, opts Options) (*Server, error) {
	basePath := opts.BasePath
	if basePath == "" {
		basePath = DefaultBasePath
	}
	basePath = "/" + strings.Trim(basePath, "/")

	s := &Server{
		store:  store,
		engine: gin.New(),
	}

	s.engine.HandleMethodNotAllowed = true
	// Serve "<base>/" in place rather than redirecting to "<base>".
	s.engine.RedirectTrailingSlash = false
	s.engine.Use(gin.Recovery())

	if len(opts.CORSOrigins) > 0 {
		mw, err := newCORS(opts.CORSOrigins)
		if err != nil {
			return nil, err
		}
		s.engine.Use(mw)
	}

	s.engine.NoRoute(func(c *gin.Context) {
		apiError(c, "not found", http.StatusNotFound)
	})
	s.engine.NoMethod(func(c *gin.Context) {
		apiError(c, "method not allowed", http.StatusMethodNotAllowed)
	})

	s.engine.GET("/health", s.handleHealth)

	comments := s.engine.Group(basePath)
	comments.GET("", s.apiListComments)
	comments.POST("", s.apiCreateComment)
	if basePath != "/" {
		comments.GET("/", s.apiListComments)
		comments.POST("/", s.apiCreateComment)
	}
	comments.DELETE("/:id", s.apiDeleteComment)

	s.handler = logging.RequestLogger(s.engine)

	return s, nil
}

// newCORS builds the CORS middleware, rejecting malformed origins up front
// since cors.New panics on them.
func newCORS(origins []string) (gin.HandlerFunc, error) {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", logging.RequestIDHeader},
		ExposeHeaders: []string{logging.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowOrigins = nil
			break
		}
		cfg.AllowOrigins = append(cfg.AllowOrigins, o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid CORS origins: %w", err)
	}
	return cors.New(cfg), nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, shutdownTimeout)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully, waiting up to shutdownTimeout for in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	slog.Info("serving comments API", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", shutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// handleHealth reports whether the store is reachable.
func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		slog.WarnContext(ctx, "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
