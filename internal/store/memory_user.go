package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/utils"
	"github.com/MKhiriev/go-auth-service/models"
)

// memoryUserRepository keeps users in process memory. A single mutex makes
// the email check and the insert one atomic step.
type memoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]models.User
	byEmail map[string]string

	ids    *utils.UUIDGenerator
	now    func() time.Time
	logger *logger.Logger
}

// NewMemoryUserRepository returns an empty in-memory [UserRepository].
// Data does not survive a restart.
func NewMemoryUserRepository(logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating in-memory user repository")
	return &memoryUserRepository{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]string),
		ids:     utils.NewUUIDGenerator(),
		now:     time.Now,
		logger:  logger,
	}
}

func (r *memoryUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	user.Email = models.NormalizeEmail(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return models.User{}, ErrEmailAlreadyExists
	}

	now := r.now().UTC()
	user.ID = r.ids.Generate()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.byID[user.ID] = user
	r.byEmail[user.Email] = user.ID

	return user, nil
}

func (r *memoryUserRepository) FindUserByEmail(ctx context.Context, email string, includeHash bool) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[models.NormalizeEmail(email)]
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	user := r.byID[id]
	if !includeHash {
		user.PasswordHash = ""
	}

	return user, nil
}

func (r *memoryUserRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	user.PasswordHash = ""

	return user, nil
}

func (r *memoryUserRepository) CountUsers(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.byID)), nil
}

func (r *memoryUserRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
