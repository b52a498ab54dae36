package app

import (
	"fmt"

	"github.com/allisson/photosafe/internal/access"
	envelopeRepository "github.com/allisson/photosafe/internal/envelope/repository"
	envelopeUsecase "github.com/allisson/photosafe/internal/envelope/usecase"
)

// ItemRepository returns the item descriptor repository instance.
func (c *Container) ItemRepository() (envelopeUsecase.ItemRepository, error) {
	c.itemRepoInit.Do(func() {
		repo, err := c.initItemRepository()
		if err != nil {
			c.initErrors["itemRepo"] = err
			return
		}
		c.itemRepo = repo
	})
	if storedErr, exists := c.initErrors["itemRepo"]; exists {
		return nil, storedErr
	}
	return c.itemRepo, nil
}

// ItemKeyRepository returns the item key repository instance.
func (c *Container) ItemKeyRepository() (envelopeUsecase.ItemKeyRepository, error) {
	c.itemKeyRepoInit.Do(func() {
		repo, err := c.initItemKeyRepository()
		if err != nil {
			c.initErrors["itemKeyRepo"] = err
			return
		}
		c.itemKeyRepo = repo
	})
	if storedErr, exists := c.initErrors["itemKeyRepo"]; exists {
		return nil, storedErr
	}
	return c.itemKeyRepo, nil
}

// SharedKeyRepository returns the shared key repository instance.
func (c *Container) SharedKeyRepository() (envelopeUsecase.SharedKeyRepository, error) {
	c.sharedKeyRepoInit.Do(func() {
		repo, err := c.initSharedKeyRepository()
		if err != nil {
			c.initErrors["sharedKeyRepo"] = err
			return
		}
		c.sharedKeyRepo = repo
	})
	if storedErr, exists := c.initErrors["sharedKeyRepo"]; exists {
		return nil, storedErr
	}
	return c.sharedKeyRepo, nil
}

// FolderKeyRepository returns the folder key repository instance.
func (c *Container) FolderKeyRepository() (envelopeUsecase.FolderKeyRepository, error) {
	c.folderKeyRepoInit.Do(func() {
		repo, err := c.initFolderKeyRepository()
		if err != nil {
			c.initErrors["folderKeyRepo"] = err
			return
		}
		c.folderKeyRepo = repo
	})
	if storedErr, exists := c.initErrors["folderKeyRepo"]; exists {
		return nil, storedErr
	}
	return c.folderKeyRepo, nil
}

// KeyStoreUseCase returns the envelope key custody use case instance.
func (c *Container) KeyStoreUseCase() (envelopeUsecase.KeyStoreUseCase, error) {
	c.keyStoreUseCaseInit.Do(func() {
		useCase, err := c.initKeyStoreUseCase()
		if err != nil {
			c.initErrors["keyStoreUseCase"] = err
			return
		}
		c.keyStoreUseCase = useCase
	})
	if storedErr, exists := c.initErrors["keyStoreUseCase"]; exists {
		return nil, storedErr
	}
	return c.keyStoreUseCase, nil
}

// initItemRepository creates the item repository instance.
func (c *Container) initItemRepository() (envelopeUsecase.ItemRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for item repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return envelopeRepository.NewPostgreSQLItemRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initItemKeyRepository creates the item key repository instance.
func (c *Container) initItemKeyRepository() (envelopeUsecase.ItemKeyRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for item key repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return envelopeRepository.NewPostgreSQLItemKeyRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSharedKeyRepository creates the shared key repository instance.
func (c *Container) initSharedKeyRepository() (envelopeUsecase.SharedKeyRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for shared key repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return envelopeRepository.NewPostgreSQLSharedKeyRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initFolderKeyRepository creates the folder key repository instance.
func (c *Container) initFolderKeyRepository() (envelopeUsecase.FolderKeyRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for folder key repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return envelopeRepository.NewPostgreSQLFolderKeyRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initKeyStoreUseCase creates the key store use case with all its dependencies.
// The access gate layers lock-state checks on top of ownership and sharing.
func (c *Container) initKeyStoreUseCase() (envelopeUsecase.KeyStoreUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for key store use case: %w", err)
	}

	itemRepo, err := c.ItemRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get item repository for key store use case: %w", err)
	}

	itemKeyRepo, err := c.ItemKeyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get item key repository for key store use case: %w", err)
	}

	sharedKeyRepo, err := c.SharedKeyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get shared key repository for key store use case: %w", err)
	}

	folderKeyRepo, err := c.FolderKeyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get folder key repository for key store use case: %w", err)
	}

	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for key store use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for key store use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for key store use case: %w", err)
	}

	permissions := access.NewOwnershipPermissions(sharedKeyRepo, folderKeyRepo)
	gate := access.NewGate(permissions, sessionUseCase, c.Logger())

	useCase := envelopeUsecase.NewKeyStoreUseCase(
		txManager,
		itemRepo,
		itemKeyRepo,
		sharedKeyRepo,
		folderKeyRepo,
		gate,
		userRepo,
	)
	return envelopeUsecase.NewKeyStoreUseCaseWithMetrics(useCase, businessMetrics), nil
}
