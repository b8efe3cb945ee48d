package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppInfoService(t *testing.T) {
	tests := []struct {
		name        string
		cfgVersion  string
		buildInfo   models.AppBuildInfo
		wantVersion string
		wantErr     error
	}{
		{
			name:        "configured version wins",
			cfgVersion:  "1.0.0",
			buildInfo:   models.NewAppBuildInfo("0.9.0", "", ""),
			wantVersion: "1.0.0",
		},
		{
			name:        "falls back to build version",
			buildInfo:   models.NewAppBuildInfo("0.9.0", "2026-03-01", "abc"),
			wantVersion: "0.9.0",
		},
		{
			name:      "build version not injected",
			buildInfo: models.NewAppBuildInfo("", "", ""),
			wantErr:   ErrVersionIsNotSpecified,
		},
		{
			name:    "zero build info",
			wantErr: ErrVersionIsNotSpecified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(config.App{Version: tt.cfgVersion}, tt.buildInfo, logger.Nop())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, svc.GetAppVersion(context.Background()))
		})
	}
}

func TestAppInfoService_BuildInfo(t *testing.T) {
	buildInfo := models.NewAppBuildInfo("2.0.0", "2026-03-01", "deadbeef")
	svc, err := NewAppInfoService(config.App{}, buildInfo, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := svc.GetBuildInfo(ctx)
	assert.Equal(t, "deadbeef", got.BuildCommit())
	assert.Equal(t, "2026-03-01", got.BuildDate())
	assert.Equal(t, "2.0.0", svc.GetAppVersion(ctx))
}
