package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	credentialHTTP "github.com/allisson/photosafe/internal/credential/http"
	envelopeHTTP "github.com/allisson/photosafe/internal/envelope/http"
	"github.com/allisson/photosafe/internal/http"
	"github.com/allisson/photosafe/internal/metrics"
	safeHTTP "github.com/allisson/photosafe/internal/safe/http"
	userHTTP "github.com/allisson/photosafe/internal/user/http"
)

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for http server: %w", err)
	}

	authUseCase, err := c.AuthUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth use case for http server: %w", err)
	}

	safeUseCase, err := c.SafeUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get safe use case for http server: %w", err)
	}

	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for http server: %w", err)
	}

	keyStoreUseCase, err := c.KeyStoreUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get key store use case for http server: %w", err)
	}

	credentialUseCase, err := c.CredentialUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential use case for http server: %w", err)
	}

	var rateLimitMiddleware gin.HandlerFunc
	if c.config.RateLimitEnabled {
		rateLimitMiddleware = userHTTP.UserRateLimitMiddleware(
			c.config.RateLimitRequestsPerSec,
			c.config.RateLimitBurst,
			logger,
		)
	}

	var unlockRateLimitMiddleware gin.HandlerFunc
	if c.config.RateLimitUnlockEnabled {
		unlockRateLimitMiddleware = userHTTP.UserRateLimitMiddleware(
			c.config.RateLimitUnlockRequestsPerSec,
			c.config.RateLimitUnlockBurst,
			logger,
		)
	}

	var tokenRateLimitMiddleware gin.HandlerFunc
	if c.config.RateLimitEnabled {
		tokenRateLimitMiddleware = userHTTP.TokenRateLimitMiddleware(
			c.config.RateLimitRequestsPerSec,
			c.config.RateLimitBurst,
			logger,
		)
	}

	var metricsMiddleware gin.HandlerFunc
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}
	if provider != nil {
		metricsMiddleware = metrics.HTTPMetricsMiddleware(provider.MeterProvider(), c.config.MetricsNamespace)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(http.RouterConfig{
		UserHandler:       userHTTP.NewUserHandler(userUseCase, logger),
		TokenHandler:      userHTTP.NewTokenHandler(authUseCase, logger),
		SafeHandler:       safeHTTP.NewSafeHandler(safeUseCase, logger),
		SessionHandler:    safeHTTP.NewSessionHandler(sessionUseCase, logger),
		KeyStoreHandler:   envelopeHTTP.NewKeyStoreHandler(keyStoreUseCase, logger),
		CredentialHandler: credentialHTTP.NewCredentialHandler(credentialUseCase, logger),

		AuthMiddleware:            userHTTP.AuthenticationMiddleware(authUseCase, logger),
		RateLimitMiddleware:       rateLimitMiddleware,
		UnlockRateLimitMiddleware: unlockRateLimitMiddleware,
		TokenRateLimitMiddleware:  tokenRateLimitMiddleware,
		MetricsMiddleware:         metricsMiddleware,

		CORSEnabled:      c.config.CORSEnabled,
		CORSAllowOrigins: c.config.CORSAllowOrigins,
	})

	return server, nil
}
