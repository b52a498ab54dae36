// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/photosafe/internal/config"
	credentialService "github.com/allisson/photosafe/internal/credential/service"
	credentialUsecase "github.com/allisson/photosafe/internal/credential/usecase"
	"github.com/allisson/photosafe/internal/database"
	envelopeUsecase "github.com/allisson/photosafe/internal/envelope/usecase"
	"github.com/allisson/photosafe/internal/http"
	"github.com/allisson/photosafe/internal/keycache"
	"github.com/allisson/photosafe/internal/metrics"
	safeService "github.com/allisson/photosafe/internal/safe/service"
	safeUsecase "github.com/allisson/photosafe/internal/safe/usecase"
	userUsecase "github.com/allisson/photosafe/internal/user/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	keyCache        *keycache.Cache
	tokenService    safeService.TokenService
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Repositories
	userRepo       userUsecase.UserRepository
	tokenRepo      userUsecase.TokenRepository
	safeRepo       safeUsecase.SafeRepository
	sessionRepo    safeUsecase.SessionRepository
	itemRepo       envelopeUsecase.ItemRepository
	itemKeyRepo    envelopeUsecase.ItemKeyRepository
	sharedKeyRepo  envelopeUsecase.SharedKeyRepository
	folderKeyRepo  envelopeUsecase.FolderKeyRepository
	credentialRepo credentialUsecase.CredentialRepository

	// Services
	recoveryEscrow     safeService.RecoveryEscrowService
	cacheKeyWrapper    credentialService.CacheKeyWrapper
	credentialVerifier credentialUsecase.CredentialVerifier

	// Use Cases
	userUseCase       userUsecase.UserUseCase
	authUseCase       userUsecase.AuthUseCase
	safeUseCase       safeUsecase.SafeUseCase
	sessionUseCase    safeUsecase.SessionUseCase
	keyStoreUseCase   envelopeUsecase.KeyStoreUseCase
	credentialUseCase credentialUsecase.CredentialUseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                    sync.Mutex
	loggerInit            sync.Once
	dbInit                sync.Once
	txManagerInit         sync.Once
	keyCacheInit          sync.Once
	tokenServiceInit      sync.Once
	metricsProviderInit   sync.Once
	businessMetricsInit   sync.Once
	userRepoInit          sync.Once
	tokenRepoInit         sync.Once
	safeRepoInit          sync.Once
	sessionRepoInit       sync.Once
	itemRepoInit          sync.Once
	itemKeyRepoInit       sync.Once
	sharedKeyRepoInit     sync.Once
	folderKeyRepoInit     sync.Once
	credentialRepoInit    sync.Once
	recoveryEscrowInit    sync.Once
	cacheKeyWrapperInit   sync.Once
	verifierInit          sync.Once
	userUseCaseInit       sync.Once
	authUseCaseInit       sync.Once
	safeUseCaseInit       sync.Once
	sessionUseCaseInit    sync.Once
	keyStoreUseCaseInit   sync.Once
	credentialUseCaseInit sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	initErrors            map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["txManager"] = fmt.Errorf("failed to get database for tx manager: %w", err)
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// KeyCache returns the in-process cache of decrypted user keys. A single
// instance is shared by the session and credential modules so that locking a
// safe and restoring a credential-bound key act on the same state.
func (c *Container) KeyCache() *keycache.Cache {
	c.keyCacheInit.Do(func() {
		c.keyCache = keycache.New()
	})
	return c.keyCache
}

// TokenService returns the token generator and hasher shared by bearer API
// tokens and safe session tokens.
func (c *Container) TokenService() safeService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = safeService.NewTokenService()
	})
	return c.tokenService
}

// MetricsProvider returns the OpenTelemetry metrics provider, or nil when
// metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. When metrics are
// disabled a no-op recorder is returned so use case decorators stay wired.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to get metrics provider: %w", err)
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}

		businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to create business metrics: %w", err)
			return
		}
		c.businessMetrics = businessMetrics
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics HTTP server, or nil when metrics are
// disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = fmt.Errorf("failed to get metrics provider: %w", err)
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
