package app

import (
	"fmt"

	cryptoService "github.com/allisson/photosafe/internal/crypto/service"
	safeRepository "github.com/allisson/photosafe/internal/safe/repository"
	safeService "github.com/allisson/photosafe/internal/safe/service"
	safeUsecase "github.com/allisson/photosafe/internal/safe/usecase"
)

// SafeRepository returns the safe repository instance.
func (c *Container) SafeRepository() (safeUsecase.SafeRepository, error) {
	c.safeRepoInit.Do(func() {
		repo, err := c.initSafeRepository()
		if err != nil {
			c.initErrors["safeRepo"] = err
			return
		}
		c.safeRepo = repo
	})
	if storedErr, exists := c.initErrors["safeRepo"]; exists {
		return nil, storedErr
	}
	return c.safeRepo, nil
}

// SessionRepository returns the safe session repository instance.
func (c *Container) SessionRepository() (safeUsecase.SessionRepository, error) {
	c.sessionRepoInit.Do(func() {
		repo, err := c.initSessionRepository()
		if err != nil {
			c.initErrors["sessionRepo"] = err
			return
		}
		c.sessionRepo = repo
	})
	if storedErr, exists := c.initErrors["sessionRepo"]; exists {
		return nil, storedErr
	}
	return c.sessionRepo, nil
}

// RecoveryEscrow returns the recovery escrow service. When no escrow KMS key
// is configured, the service stores recovery wraps as-is.
func (c *Container) RecoveryEscrow() safeService.RecoveryEscrowService {
	c.recoveryEscrowInit.Do(func() {
		c.recoveryEscrow = safeService.NewRecoveryEscrowService(
			cryptoService.NewKMSService(),
			c.config.EscrowKMSKeyURI,
		)
	})
	return c.recoveryEscrow
}

// SafeUseCase returns the safe lifecycle use case instance.
func (c *Container) SafeUseCase() (safeUsecase.SafeUseCase, error) {
	c.safeUseCaseInit.Do(func() {
		useCase, err := c.initSafeUseCase()
		if err != nil {
			c.initErrors["safeUseCase"] = err
			return
		}
		c.safeUseCase = useCase
	})
	if storedErr, exists := c.initErrors["safeUseCase"]; exists {
		return nil, storedErr
	}
	return c.safeUseCase, nil
}

// SessionUseCase returns the unlock session use case instance.
func (c *Container) SessionUseCase() (safeUsecase.SessionUseCase, error) {
	c.sessionUseCaseInit.Do(func() {
		useCase, err := c.initSessionUseCase()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
			return
		}
		c.sessionUseCase = useCase
	})
	if storedErr, exists := c.initErrors["sessionUseCase"]; exists {
		return nil, storedErr
	}
	return c.sessionUseCase, nil
}

// initSafeRepository creates the safe repository instance.
func (c *Container) initSafeRepository() (safeUsecase.SafeRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for safe repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return safeRepository.NewPostgreSQLSafeRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSessionRepository creates the session repository instance.
func (c *Container) initSessionRepository() (safeUsecase.SessionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for session repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return safeRepository.NewPostgreSQLSessionRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSafeUseCase creates the safe use case with all its dependencies.
func (c *Container) initSafeUseCase() (safeUsecase.SafeUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for safe use case: %w", err)
	}

	safeRepo, err := c.SafeRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get safe repository for safe use case: %w", err)
	}

	sessionRepo, err := c.SessionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get session repository for safe use case: %w", err)
	}

	itemRepo, err := c.ItemRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get item repository for safe use case: %w", err)
	}

	challenger, err := c.CredentialUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential use case for safe use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for safe use case: %w", err)
	}

	useCase := safeUsecase.NewSafeUseCase(
		txManager,
		safeRepo,
		sessionRepo,
		itemRepo,
		c.RecoveryEscrow(),
		challenger,
	)
	return safeUsecase.NewSafeUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initSessionUseCase creates the session use case with all its dependencies.
func (c *Container) initSessionUseCase() (safeUsecase.SessionUseCase, error) {
	safeRepo, err := c.SafeRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get safe repository for session use case: %w", err)
	}

	sessionRepo, err := c.SessionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get session repository for session use case: %w", err)
	}

	challenger, err := c.CredentialUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential use case for session use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for session use case: %w", err)
	}

	useCase := safeUsecase.NewSessionUseCase(
		safeRepo,
		sessionRepo,
		c.TokenService(),
		challenger,
		c.KeyCache(),
		c.config.SessionDefaultExpiration,
		c.config.SessionMaxExpiration,
	)
	return safeUsecase.NewSessionUseCaseWithMetrics(useCase, businessMetrics), nil
}
