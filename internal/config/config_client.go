package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ClientConfig is the configuration of the command-line API client.
type ClientConfig struct {
	// ServerAddress is the base address of the auth API (e.g. "localhost:8080").
	// Env: CLIENT_SERVER_ADDRESS
	ServerAddress string `env:"SERVER_ADDRESS"`

	// RequestTimeout is the default timeout for outbound requests.
	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// TokenFile is where the CLI keeps the last issued token between runs.
	// Env: CLIENT_TOKEN_FILE
	TokenFile string `env:"TOKEN_FILE"`
}

// GetClientConfig loads the client configuration from environment
// variables (prefix CLIENT_) and the leading flags of args, flags winning.
// It returns the config together with the remaining positional arguments
// (the subcommand and its own flags).
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	envCfg := &ClientConfig{}
	if err := env.ParseWithOptions(envCfg, env.Options{Prefix: "CLIENT_"}); err != nil {
		return nil, nil, fmt.Errorf("error getting client env configs: %w", err)
	}

	cfg := &ClientConfig{
		ServerAddress:  "localhost:8080",
		RequestTimeout: 10 * time.Second,
		TokenFile:      ".auth-token",
	}
	if envCfg.ServerAddress != "" {
		cfg.ServerAddress = envCfg.ServerAddress
	}
	if envCfg.RequestTimeout != 0 {
		cfg.RequestTimeout = envCfg.RequestTimeout
	}
	if envCfg.TokenFile != "" {
		cfg.TokenFile = envCfg.TokenFile
	}

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "Auth API address")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "Request timeout")
	fs.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "File holding the last issued token")
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing client flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: server address %q, timeout %s", err, cfg.ServerAddress, cfg.RequestTimeout)
	}

	return cfg, fs.Args(), nil
}
