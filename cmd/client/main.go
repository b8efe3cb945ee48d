package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-auth-service/internal/adapter"
	"github.com/MKhiriev/go-auth-service/internal/client"
	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	log := logger.NewConsoleLogger(os.Stderr, "go-auth-client")
	if err := logger.SetLevel(os.Getenv("CLIENT_LOG_LEVEL")); err != nil {
		log.Warn().Err(err).Msg("invalid CLIENT_LOG_LEVEL, keeping default")
	}

	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Error().Err(err).Msg("error getting configs")
		return 2
	}

	authAdapter, err := adapter.NewHTTPAuthAdapter(*cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("error creating api adapter")
		return 1
	}

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	app := client.NewApp(authAdapter, client.NewTokenFile(cfg.TokenFile), buildInfo, os.Stdin, os.Stdout, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, client.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}
