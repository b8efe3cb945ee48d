package store

import (
	"context"

	"github.com/MKhiriev/go-auth-service/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/user_repository_mock.go -package=mock

// UserRepository persists user accounts. Implementations must guarantee
// that no two records share an email, even under concurrent CreateUser
// calls.
type UserRepository interface {
	// CreateUser stores a new user, assigning its ID and timestamps.
	// Returns [ErrEmailAlreadyExists] when the email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail looks a user up by normalized email. PasswordHash is
	// populated only when includeHash is true.
	FindUserByEmail(ctx context.Context, email string, includeHash bool) (models.User, error)
	// FindUserByID looks a user up by ID. PasswordHash is never populated.
	FindUserByID(ctx context.Context, id string) (models.User, error)
	// CountUsers returns the number of stored users.
	CountUsers(ctx context.Context) (int64, error)
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
