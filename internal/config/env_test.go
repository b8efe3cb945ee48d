// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_TOKEN_SIGN_KEY": "jwt_secret",
		"APP_TOKEN_ISSUER":   "test_issuer",
		"APP_TOKEN_DURATION": "1h",
		"APP_VERSION":        "1.2.3",

		"SERVER_ADDRESS":               "localhost:8080",
		"SERVER_GRPC_ADDRESS":          "localhost:9090",
		"SERVER_REQUEST_TIMEOUT":       "30s",
		"SERVER_SHUTDOWN_TIMEOUT":      "5s",
		"SERVER_HEALTH_CHECK_INTERVAL": "20s",

		"STORAGE_DB_DRIVER":         "sqlite",
		"STORAGE_DB_DATABASE_URI":   "file:auth.db",
		"STORAGE_DB_MAX_OPEN_CONNS": "3",

		"HASHING_MEMORY_KIB":  "1024",
		"HASHING_ITERATIONS":  "2",
		"HASHING_PARALLELISM": "1",
		"HASHING_KEY_LENGTH":  "32",
		"HASHING_SALT_LENGTH": "16",
		"HASHING_WORKERS":     "8",

		"LOG_LEVEL": "warn",
	}
	for k, v := range envVars {
		t.Setenv(k, v)
	}

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "test_issuer", cfg.App.TokenIssuer)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "1.2.3", cfg.App.Version)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "localhost:9090", cfg.Server.GRPCAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 20*time.Second, cfg.Server.HealthCheckInterval)

	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
	assert.Equal(t, "file:auth.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 3, cfg.Storage.DB.MaxOpenConns)

	assert.Equal(t, uint32(1024), cfg.Hashing.MemoryKiB)
	assert.Equal(t, uint32(2), cfg.Hashing.Iterations)
	assert.Equal(t, uint8(1), cfg.Hashing.Parallelism)
	assert.Equal(t, 8, cfg.Hashing.Workers)

	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestParseEnv_NoVariables(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Empty(t, cfg.App.TokenSignKey)
	assert.Zero(t, cfg.Hashing.Workers)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("APP_TOKEN_DURATION", "forever")

	err := parseEnv(&StructuredConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}
