package app

import (
	"fmt"

	credentialRepository "github.com/allisson/photosafe/internal/credential/repository"
	credentialService "github.com/allisson/photosafe/internal/credential/service"
	credentialUsecase "github.com/allisson/photosafe/internal/credential/usecase"
	cryptoService "github.com/allisson/photosafe/internal/crypto/service"
)

// CredentialRepository returns the credential repository instance.
func (c *Container) CredentialRepository() (credentialUsecase.CredentialRepository, error) {
	c.credentialRepoInit.Do(func() {
		repo, err := c.initCredentialRepository()
		if err != nil {
			c.initErrors["credentialRepo"] = err
			return
		}
		c.credentialRepo = repo
	})
	if storedErr, exists := c.initErrors["credentialRepo"]; exists {
		return nil, storedErr
	}
	return c.credentialRepo, nil
}

// CredentialVerifier returns the authenticator protocol verifier.
func (c *Container) CredentialVerifier() (credentialUsecase.CredentialVerifier, error) {
	c.verifierInit.Do(func() {
		repo, err := c.CredentialRepository()
		if err != nil {
			c.initErrors["credentialVerifier"] = fmt.Errorf(
				"failed to get credential repository for verifier: %w", err)
			return
		}
		c.credentialVerifier = credentialService.NewEd25519Verifier(repo)
	})
	if storedErr, exists := c.initErrors["credentialVerifier"]; exists {
		return nil, storedErr
	}
	return c.credentialVerifier, nil
}

// CacheKeyWrapper returns the credential-bound key wrapper.
func (c *Container) CacheKeyWrapper() credentialService.CacheKeyWrapper {
	c.cacheKeyWrapperInit.Do(func() {
		c.cacheKeyWrapper = credentialService.NewCacheKeyWrapper(cryptoService.NewAEADManager())
	})
	return c.cacheKeyWrapper
}

// CredentialUseCase returns the credential use case instance. It also serves
// the safe module as its hardware challenger.
func (c *Container) CredentialUseCase() (credentialUsecase.CredentialUseCase, error) {
	c.credentialUseCaseInit.Do(func() {
		useCase, err := c.initCredentialUseCase()
		if err != nil {
			c.initErrors["credentialUseCase"] = err
			return
		}
		c.credentialUseCase = useCase
	})
	if storedErr, exists := c.initErrors["credentialUseCase"]; exists {
		return nil, storedErr
	}
	return c.credentialUseCase, nil
}

// initCredentialRepository creates the credential repository instance.
func (c *Container) initCredentialRepository() (credentialUsecase.CredentialRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for credential repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return credentialRepository.NewPostgreSQLCredentialRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCredentialUseCase creates the credential use case with all its dependencies.
func (c *Container) initCredentialUseCase() (credentialUsecase.CredentialUseCase, error) {
	repo, err := c.CredentialRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential repository for credential use case: %w", err)
	}

	verifier, err := c.CredentialVerifier()
	if err != nil {
		return nil, fmt.Errorf("failed to get verifier for credential use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for credential use case: %w", err)
	}

	useCase := credentialUsecase.NewCredentialUseCase(
		repo,
		verifier,
		c.CacheKeyWrapper(),
		c.KeyCache(),
		c.Logger(),
		c.config.KeyCacheTTL,
	)
	return credentialUsecase.NewCredentialUseCaseWithMetrics(useCase, businessMetrics), nil
}
