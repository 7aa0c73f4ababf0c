package service

import (
	"graphauth/internal/config"
	"graphauth/internal/hashing"
	"graphauth/internal/repository/file"
)

// ServiceFactory creates and manages service instances
type ServiceFactory struct {
	repo   file.CredentialRepository
	hasher *hashing.Hasher
	cfg    *config.Config

	registrationService   *RegistrationService
	authenticationService *AuthenticationService
}

// NewServiceFactory creates a new service factory
func NewServiceFactory(repo file.CredentialRepository, hasher *hashing.Hasher, cfg *config.Config) *ServiceFactory {
	return &ServiceFactory{
		repo:   repo,
		hasher: hasher,
		cfg:    cfg,
	}
}

// RegistrationService returns the registration service instance (singleton)
func (f *ServiceFactory) RegistrationService() *RegistrationService {
	if f.registrationService == nil {
		f.registrationService = NewRegistrationService(f.repo, f.hasher, f.cfg.Auth)
	}
	return f.registrationService
}

// AuthenticationService returns the authentication service instance (singleton)
func (f *ServiceFactory) AuthenticationService() *AuthenticationService {
	if f.authenticationService == nil {
		f.authenticationService = NewAuthenticationService(f.repo, f.cfg.Auth, f.cfg.DefaultImagePath)
	}
	return f.authenticationService
}
