// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-auth-service/internal/crypto"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup. Every violated group is
// reported, joined into one error.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.App.TokenSignKey == "" {
		errs = append(errs, fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs))
	}
	if cfg.App.TokenIssuer == "" {
		errs = append(errs, fmt.Errorf("%w: token issuer is required", ErrInvalidAppConfigs))
	}
	if cfg.App.TokenDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs))
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
		if cfg.Storage.DB.DSN == "" {
			errs = append(errs, fmt.Errorf("%w: DSN is required for %s", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver))
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		errs = append(errs, fmt.Errorf("%w: no listen address", ErrInvalidServerConfigs))
	}

	h := cfg.Hashing
	if h.MemoryKiB == 0 || h.Iterations == 0 || h.Parallelism == 0 || h.KeyLength < 16 || h.SaltLength < 8 || h.Workers < 1 ||
		h.MemoryKiB > crypto.MaxMemoryKiB || h.Iterations > crypto.MaxIterations || h.KeyLength > crypto.MaxKeyLength {
		errs = append(errs, ErrInvalidHashingConfigs)
	}

	return errors.Join(errs...)
}

func (cfg *ClientConfig) validate() error {
	if cfg.ServerAddress == "" || cfg.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
