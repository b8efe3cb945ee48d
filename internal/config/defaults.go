package config

import (
	"runtime"
	"time"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-auth-service",
			TokenDuration: 24 * time.Hour,
			Version:       "dev",
		},
		Storage: Storage{
			DB: DB{
				Driver:       DriverPostgres,
				MaxOpenConns: 10,
			},
		},
		Server: Server{
			RequestTimeout:      30 * time.Second,
			ShutdownTimeout:     10 * time.Second,
			HealthCheckInterval: 15 * time.Second,
		},
		// OWASP argon2id baseline: 64 MiB, 1 iteration, 4 lanes.
		Hashing: Hashing{
			MemoryKiB:   64 * 1024,
			Iterations:  1,
			Parallelism: 4,
			KeyLength:   32,
			SaltLength:  16,
			Workers:     runtime.NumCPU(),
		},
		Log: Log{
			Level: "info",
		},
	}
}
