package factory

import (
	"context"
	"fmt"
	"sync"

	"graphauth/internal/command"
	"graphauth/internal/config"
	"graphauth/internal/hashing"
	"graphauth/internal/repository/file"
	"graphauth/internal/service"
	"graphauth/internal/util"
)

// Factory manages the lifecycle of all application dependencies
type Factory struct {
	config *config.Config
	hasher *hashing.Hasher

	credentialRepository file.CredentialRepository
	serviceFactory       *service.ServiceFactory
	dispatcher           *command.Dispatcher

	closeOnce sync.Once
	closed    chan struct{}
}

// NewFactory creates and initializes all application dependencies
func NewFactory() (*Factory, error) {
	cfg := config.LoadConfig()

	util.Init(cfg.Environment, cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File)

	factory := &Factory{
		config: cfg,
		hasher: hashing.NewHasher(),
		closed: make(chan struct{}),
	}

	repo, err := file.NewCredentialRepository(cfg.Store.DataFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential store: %w", err)
	}
	factory.credentialRepository = repo

	util.Info("Factory initialized successfully",
		util.String("environment", cfg.Environment),
		util.String("data_file", cfg.Store.DataFile),
		util.Int("credentials", repo.Count()),
	)

	return factory, nil
}

// CredentialRepository returns the credential repository
func (f *Factory) CredentialRepository() file.CredentialRepository {
	return f.credentialRepository
}

// ServiceFactory returns the service factory (singleton)
func (f *Factory) ServiceFactory() *service.ServiceFactory {
	if f.serviceFactory == nil {
		f.serviceFactory = service.NewServiceFactory(
			f.credentialRepository,
			f.hasher,
			f.config,
		)
	}
	return f.serviceFactory
}

// Dispatcher returns the command dispatcher the presentation layer drives
// (singleton)
func (f *Factory) Dispatcher() *command.Dispatcher {
	if f.dispatcher == nil {
		sf := f.ServiceFactory()
		f.dispatcher = command.NewDispatcher(
			sf.RegistrationService(),
			sf.AuthenticationService(),
			f.config.Auth,
		)
	}
	return f.dispatcher
}

// HealthCheck reports per-component health
func (f *Factory) HealthCheck(ctx context.Context) map[string]error {
	healthErrors := make(map[string]error)

	if f.credentialRepository != nil {
		if err := f.credentialRepository.HealthCheck(ctx); err != nil {
			healthErrors["credential_repository"] = err
		}
	} else {
		healthErrors["credential_repository"] = fmt.Errorf("credential repository not initialized")
	}

	if f.hasher == nil {
		healthErrors["hasher"] = fmt.Errorf("hasher not initialized")
	}

	return healthErrors
}

func (f *Factory) IsHealthy(ctx context.Context) bool {
	return len(f.HealthCheck(ctx)) == 0
}

func (f *Factory) Close() error {
	f.closeOnce.Do(func() {
		close(f.closed)
		util.Info("Shutting down")
		util.Sync()
	})
	return nil
}

func (f *Factory) WaitForClose() {
	<-f.closed
}

func (f *Factory) Config() *config.Config {
	return f.config
}
