package service

import (
	"context"

	"github.com/MKhiriev/go-auth-service/models"
)

// AuthService is the security core: account creation, credential checks
// and session token handling.
type AuthService interface {
	// Signup registers a new account and issues its first session token.
	Signup(ctx context.Context, req models.SignupRequest) (models.User, models.Token, error)
	// Login checks credentials and issues a fresh session token.
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error)
	// Authenticate resolves a session token to the user it was issued for.
	Authenticate(ctx context.Context, tokenString string) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// logging or validating.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService // returns a decorated AuthService applying additional behavior
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// HealthService reports whether the service can serve requests.
type HealthService interface {
	Check(ctx context.Context) error
}
