package service

import (
	"context"

	"github.com/MKhiriev/go-auth-service/internal/store"
)

type healthService struct {
	userRepository store.UserRepository
}

// NewHealthService returns a [HealthService] that is healthy while the
// credential store answers pings.
func NewHealthService(userRepository store.UserRepository) HealthService {
	return &healthService{userRepository: userRepository}
}

func (h *healthService) Check(ctx context.Context) error {
	return h.userRepository.Ping(ctx)
}
