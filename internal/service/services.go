package service

import (
	"fmt"

	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/crypto"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/store"
	"github.com/MKhiriev/go-auth-service/internal/workers"
	"github.com/MKhiriev/go-auth-service/models"
)

type Services struct {
	AuthService    AuthService
	AppInfoService AppInfoService
	HealthService  HealthService
}

// NewServices builds the service layer on top of storages. The auth service
// is wrapped with request validation.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	hasher := crypto.NewPasswordHasher(crypto.Params{
		Memory:      cfg.Hashing.MemoryKiB,
		Iterations:  cfg.Hashing.Iterations,
		Parallelism: cfg.Hashing.Parallelism,
		KeyLength:   cfg.Hashing.KeyLength,
		SaltLength:  cfg.Hashing.SaltLength,
	})
	pool := workers.NewPool(cfg.Hashing.Workers)

	authService := NewAuthValidationService().Wrap(
		NewAuthService(storages.UserRepository, hasher, pool, cfg.App, logger),
	)

	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		AuthService:    authService,
		AppInfoService: appInfoService,
		HealthService:  NewHealthService(storages.UserRepository),
	}, nil
}
