package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/mock"
	"github.com/MKhiriev/go-auth-service/internal/store"
	"github.com/MKhiriev/go-auth-service/internal/workers"
	"github.com/MKhiriev/go-auth-service/models"
)

// newMockedAuthSvc builds an authService with a mocked repository and hasher.
func newMockedAuthSvc(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockUserRepository, *mock.MockPasswordHasher) {
	t.Helper()
	repo := mock.NewMockUserRepository(ctrl)
	hasher := mock.NewMockPasswordHasher(ctrl)
	hasher.EXPECT().Hash(dummyPassword).Return("$argon2id$dummy", nil)

	svc := NewAuthService(repo, hasher, workers.NewPool(2), testAppConfig, logger.Nop()).(*authService)
	return svc, repo, hasher
}

var errDBDown = fmt.Errorf("%w: connection refused", store.ErrStoreUnavailable)

// ── Signup ───────────────────────────────────────────────────────────────────

func TestAuthService_Signup_StoresHashNotPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, hasher := newMockedAuthSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		hasher.EXPECT().Hash("engine42").Return("$argon2id$encoded", nil),
		repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, "$argon2id$encoded", u.PasswordHash)
				assert.Equal(t, "ada@example.com", u.Email)
				assert.Equal(t, "Ada Lovelace", u.FullName)
				u.ID = "u-1"
				return u, nil
			},
		),
	)

	user, token, err := svc.Signup(ctx, models.SignupRequest{FullName: " Ada Lovelace ", Email: "ADA@example.com", Password: "engine42"})
	require.NoError(t, err)

	assert.Equal(t, "u-1", user.ID)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, "u-1", token.UserID)
}

func TestAuthService_Signup_HashingFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, hasher := newMockedAuthSvc(t, ctrl)

	hasher.EXPECT().Hash(gomock.Any()).Return("", errors.New("entropy exhausted"))

	_, _, err := svc.Signup(context.Background(), models.SignupRequest{FullName: "Ada", Email: "ada@example.com", Password: "engine42"})
	assert.ErrorIs(t, err, ErrPasswordHashing)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, hasher := newMockedAuthSvc(t, ctrl)

	hasher.EXPECT().Hash(gomock.Any()).Return("h", nil)
	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

	_, _, err := svc.Signup(context.Background(), models.SignupRequest{FullName: "Ada", Email: "ada@example.com", Password: "engine42"})
	assert.Equal(t, ErrDuplicateEmail, err)
}

func TestAuthService_Signup_StoreUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, hasher := newMockedAuthSvc(t, ctrl)

	hasher.EXPECT().Hash(gomock.Any()).Return("h", nil)
	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, errDBDown)

	_, _, err := svc.Signup(context.Background(), models.SignupRequest{FullName: "Ada", Email: "ada@example.com", Password: "engine42"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, store.ErrStoreUnavailable)
}

func TestAuthService_Signup_CanceledWhileWaitingForWorker(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newMockedAuthSvc(t, ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// no hasher or repository calls expected
	_, _, err := svc.Signup(ctx, models.SignupRequest{FullName: "Ada", Email: "ada@example.com", Password: "engine42"})
	assert.ErrorIs(t, err, ErrPasswordHashing)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAuthService_Signup_TokenCreationFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, hasher := newMockedAuthSvc(t, ctrl)
	svc.tokenSignKey = ""

	hasher.EXPECT().Hash(gomock.Any()).Return("h", nil)
	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{ID: "u-1"}, nil)

	_, _, err := svc.Signup(context.Background(), models.SignupRequest{FullName: "Ada", Email: "ada@example.com", Password: "engine42"})
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_UnknownEmailVerifiesDummyHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, hasher := newMockedAuthSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().FindUserByEmail(ctx, "nobody@example.com", true).Return(models.User{}, store.ErrUserNotFound).Times(2)
	// no Hash call at login time: the dummy was prepared by the constructor
	hasher.EXPECT().Verify("engine42", "$argon2id$dummy").Return(false).Times(2)

	for range 2 {
		_, _, err := svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "engine42"})
		assert.Equal(t, ErrInvalidCredentials, err)
	}
}

func TestNewAuthService_PreparesDummyHashUpFront(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newMockedAuthSvc(t, ctrl)

	assert.Equal(t, "$argon2id$dummy", svc.dummyHash)
}

func TestAuthService_Login_UnknownEmailWhenDummyHashFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	hasher := mock.NewMockPasswordHasher(ctrl)
	hasher.EXPECT().Hash(dummyPassword).Return("", errors.New("entropy exhausted"))

	svc := NewAuthService(repo, hasher, workers.NewPool(1), testAppConfig, logger.Nop())

	repo.EXPECT().FindUserByEmail(gomock.Any(), "nobody@example.com", true).Return(models.User{}, store.ErrUserNotFound)
	hasher.EXPECT().Verify("engine42", "").Return(false)

	_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "engine42"})
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, hasher := newMockedAuthSvc(t, ctrl)

	repo.EXPECT().FindUserByEmail(gomock.Any(), "ada@example.com", true).
		Return(models.User{ID: "u-1", Email: "ada@example.com", PasswordHash: "stored"}, nil)
	hasher.EXPECT().Verify("wrong", "stored").Return(false)

	_, token, err := svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.Equal(t, ErrInvalidCredentials, err)
	assert.Empty(t, token.SignedString)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, hasher := newMockedAuthSvc(t, ctrl)
	issuedAt := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	repo.EXPECT().FindUserByEmail(gomock.Any(), "ada@example.com", true).
		Return(models.User{ID: "u-1", Email: "ada@example.com", PasswordHash: "stored"}, nil)
	hasher.EXPECT().Verify("engine42", "stored").Return(true)

	user, token, err := svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.com", Password: "engine42"})
	require.NoError(t, err)

	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, "u-1", token.Subject)
	assert.Equal(t, testAppConfig.TokenIssuer, token.Issuer)
	assert.True(t, token.ExpiresAt.Time.Equal(issuedAt.Add(testAppConfig.TokenDuration)))
}

func TestAuthService_Login_StoreUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newMockedAuthSvc(t, ctrl)

	repo.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any(), true).Return(models.User{}, errDBDown)

	_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.com", Password: "engine42"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

// ── Authenticate ─────────────────────────────────────────────────────────────

func TestAuthService_Authenticate_UserGone(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newMockedAuthSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{ID: "u-deleted"})
	require.NoError(t, err)

	repo.EXPECT().FindUserByID(ctx, "u-deleted").Return(models.User{}, store.ErrUserNotFound)

	_, err = svc.Authenticate(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_Authenticate_StoreUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newMockedAuthSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{ID: "u-1"})
	require.NoError(t, err)

	repo.EXPECT().FindUserByID(ctx, "u-1").Return(models.User{}, errDBDown)

	_, err = svc.Authenticate(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_Authenticate_NeverReturnsHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newMockedAuthSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{ID: "u-1"})
	require.NoError(t, err)

	repo.EXPECT().FindUserByID(ctx, "u-1").Return(models.User{ID: "u-1", PasswordHash: "leaked"}, nil)

	user, err := svc.Authenticate(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
}

// ── Tokens ───────────────────────────────────────────────────────────────────

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newMockedAuthSvc(t, ctrl)

	_, err := svc.ParseToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_CreateToken_EmptyUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newMockedAuthSvc(t, ctrl)

	_, err := svc.CreateToken(context.Background(), models.User{})
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}
