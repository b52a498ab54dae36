// Package http provides the HTTP server implementation and route setup.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	credentialHTTP "github.com/allisson/photosafe/internal/credential/http"
	envelopeHTTP "github.com/allisson/photosafe/internal/envelope/http"
	safeHTTP "github.com/allisson/photosafe/internal/safe/http"
	userHTTP "github.com/allisson/photosafe/internal/user/http"
)

// Server represents the HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new HTTP server. SetupRouter must be called before
// Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig carries the handlers and per-route middleware for SetupRouter.
// Any nil middleware is simply not applied.
type RouterConfig struct {
	UserHandler       *userHTTP.UserHandler
	TokenHandler      *userHTTP.TokenHandler
	SafeHandler       *safeHTTP.SafeHandler
	SessionHandler    *safeHTTP.SessionHandler
	KeyStoreHandler   *envelopeHTTP.KeyStoreHandler
	CredentialHandler *credentialHTTP.CredentialHandler

	// AuthMiddleware authenticates bearer tokens on every /v1 route except
	// user creation and token issuance.
	AuthMiddleware gin.HandlerFunc

	// RateLimitMiddleware throttles authenticated endpoints per user.
	RateLimitMiddleware gin.HandlerFunc

	// UnlockRateLimitMiddleware throttles the unlock and assertion endpoints
	// more aggressively to slow brute-force attempts.
	UnlockRateLimitMiddleware gin.HandlerFunc

	// TokenRateLimitMiddleware throttles token issuance per client IP.
	TokenRateLimitMiddleware gin.HandlerFunc

	// MetricsMiddleware records per-request HTTP metrics.
	MetricsMiddleware gin.HandlerFunc

	CORSEnabled      bool
	CORSAllowOrigins string
}

// SetupRouter builds the Gin router with all routes and middleware.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsMiddleware != nil {
		router.Use(cfg.MetricsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Unauthenticated routes: account creation and token issuance.
	public := router.Group("/v1")
	public.POST("/users", cfg.UserHandler.CreateHandler)
	if cfg.TokenRateLimitMiddleware != nil {
		public.POST("/auth/tokens", cfg.TokenRateLimitMiddleware, cfg.TokenHandler.IssueTokenHandler)
	} else {
		public.POST("/auth/tokens", cfg.TokenHandler.IssueTokenHandler)
	}

	v1 := router.Group("/v1")
	v1.Use(cfg.AuthMiddleware)
	if cfg.RateLimitMiddleware != nil {
		v1.Use(cfg.RateLimitMiddleware)
	}

	// unlockLimited wraps a handler with the stricter unlock rate limit.
	unlockLimited := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		if cfg.UnlockRateLimitMiddleware == nil {
			return []gin.HandlerFunc{handler}
		}
		return []gin.HandlerFunc{cfg.UnlockRateLimitMiddleware, handler}
	}

	v1.DELETE("/auth/tokens", cfg.TokenHandler.RevokeTokenHandler)

	v1.GET("/users/me", cfg.UserHandler.GetMeHandler)
	v1.PUT("/users/me/encryption", cfg.UserHandler.SetupEncryptionHandler)

	v1.POST("/safes", cfg.SafeHandler.CreateHandler)
	v1.GET("/safes", cfg.SafeHandler.ListHandler)
	v1.GET("/safes/:safe_id", cfg.SafeHandler.GetHandler)
	v1.PATCH("/safes/:safe_id", cfg.SafeHandler.RenameHandler)
	v1.DELETE("/safes/:safe_id", cfg.SafeHandler.DeleteHandler)
	v1.GET("/safes/:safe_id/unlock-challenge", unlockLimited(cfg.SafeHandler.UnlockChallengeHandler)...)
	v1.POST("/safes/:safe_id/unlock", unlockLimited(cfg.SessionHandler.CompleteUnlockHandler)...)
	v1.POST("/safes/:safe_id/lock", cfg.SessionHandler.LockHandler)
	v1.POST("/safes/:safe_id/lock-all", cfg.SessionHandler.LockAllHandler)
	v1.GET("/safes/:safe_id/session", cfg.SessionHandler.GetSessionHandler)

	v1.POST("/items/:item_id/key", cfg.KeyStoreHandler.UploadKeyHandler)
	v1.GET("/items/:item_id/key", cfg.KeyStoreHandler.GetKeyHandler)
	v1.POST("/items/:item_id/shares", cfg.KeyStoreHandler.ShareHandler)
	v1.GET("/items/:item_id/shares", cfg.KeyStoreHandler.ListSharesHandler)
	v1.DELETE("/items/:item_id/shares/:recipient_id", cfg.KeyStoreHandler.RevokeHandler)

	v1.POST("/folders/:folder_id/key", cfg.KeyStoreHandler.CreateFolderKeyHandler)
	v1.GET("/folders/:folder_id/key", cfg.KeyStoreHandler.GetFolderKeyHandler)
	v1.PUT("/folders/:folder_id/members/:member_id", cfg.KeyStoreHandler.ShareFolderKeyHandler)
	v1.DELETE("/folders/:folder_id/members/:member_id", cfg.KeyStoreHandler.RevokeFolderKeyHandler)

	v1.POST("/migrations/envelope", cfg.KeyStoreHandler.MigrateBatchHandler)

	v1.POST("/credentials/registration/begin", cfg.CredentialHandler.BeginRegistrationHandler)
	v1.POST("/credentials/registration/complete", cfg.CredentialHandler.CompleteRegistrationHandler)
	v1.GET("/credentials", cfg.CredentialHandler.ListHandler)
	v1.DELETE("/credentials/:credential_id", cfg.CredentialHandler.DeleteHandler)
	v1.POST("/credentials/:credential_id/bind", cfg.CredentialHandler.BindCachedKeyHandler)
	v1.GET("/credentials/:credential_id/challenge", unlockLimited(cfg.CredentialHandler.ChallengeHandler)...)
	v1.POST("/credentials/:credential_id/verify", unlockLimited(cfg.CredentialHandler.VerifyAssertionHandler)...)

	s.router = router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, checking the
// database connection.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(pingCtx); err != nil {
			s.logger.Error("readiness database ping failed", slog.Any("error", err))
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
