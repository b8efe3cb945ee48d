// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/crypto"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/store"
	"github.com/MKhiriev/go-auth-service/internal/workers"
	"github.com/MKhiriev/go-auth-service/models"
)

// cheapParams keep argon2id fast in tests.
var cheapParams = crypto.Params{Memory: 64, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16}

var testAppConfig = config.App{
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "go-auth-service-test",
	TokenDuration: time.Hour,
	Version:       "test",
}

// testClock is a settable clock shared by the service under test.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestAuthService(t *testing.T) (AuthService, store.UserRepository, *testClock) {
	t.Helper()

	clock := &testClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
	repo := store.NewMemoryUserRepository(logger.Nop())
	svc := NewAuthValidationService().Wrap(
		NewAuthService(repo, crypto.NewPasswordHasher(cheapParams), workers.NewPool(4), testAppConfig, logger.Nop(), WithClock(clock.Now)),
	)

	return svc, repo, clock
}

func TestAuthService_SignupLoginAuthenticate_RoundTrip(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	user, signupToken, err := svc.Signup(ctx, models.SignupRequest{FullName: "Grace Hopper", Email: "grace@example.com", Password: "cobol1959"})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEmpty(t, signupToken.SignedString)
	assert.Empty(t, user.PasswordHash, "password hash must never leave the service")

	authed, err := svc.Authenticate(ctx, signupToken.SignedString)
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	loggedIn, loginToken, err := svc.Login(ctx, models.LoginRequest{Email: "grace@example.com", Password: "cobol1959"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	authed, err = svc.Authenticate(ctx, loginToken.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", authed.Email)
	assert.Equal(t, "Grace Hopper", authed.FullName)
	assert.Empty(t, authed.PasswordHash)
}

func TestAuthService_AdaLovelaceExample(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	ada, t1, err := svc.Signup(ctx, models.SignupRequest{FullName: "Ada Lovelace", Email: "ada@example.com", Password: "engine42"})
	require.NoError(t, err)

	_, t2, err := svc.Login(ctx, models.LoginRequest{Email: "ada@example.com", Password: "engine42"})
	require.NoError(t, err)
	assert.NotEqual(t, t1.SignedString, t2.SignedString, "a fresh login token must differ from the signup token")

	profile, err := svc.Authenticate(ctx, t2.SignedString)
	require.NoError(t, err)
	assert.Equal(t, ada.ID, profile.ID)
	assert.Equal(t, "Ada Lovelace", profile.FullName)
	assert.Equal(t, "ada@example.com", profile.Email)
}

func TestAuthService_EmailIsNormalized(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	user, _, err := svc.Signup(ctx, models.SignupRequest{FullName: "Ada", Email: "  Ada@Example.COM ", Password: "engine42"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	_, _, err = svc.Login(ctx, models.LoginRequest{Email: "ADA@example.com", Password: "engine42"})
	assert.NoError(t, err)

	_, _, err = svc.Signup(ctx, models.SignupRequest{FullName: "Ada 2", Email: "ada@EXAMPLE.com", Password: "engine42"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthService_DuplicateSignup_CountUnchanged(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, models.SignupRequest{FullName: "Ada", Email: "ada@example.com", Password: "engine42"})
	require.NoError(t, err)

	before, err := repo.CountUsers(ctx)
	require.NoError(t, err)

	_, token, err := svc.Signup(ctx, models.SignupRequest{FullName: "Impostor", Email: "ada@example.com", Password: "other-pass"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Empty(t, token.SignedString)

	after, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// the original password still works
	_, _, err = svc.Login(ctx, models.LoginRequest{Email: "ada@example.com", Password: "engine42"})
	assert.NoError(t, err)
}

func TestAuthService_Login_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, models.SignupRequest{FullName: "Ada", Email: "ada@example.com", Password: "engine42"})
	require.NoError(t, err)

	_, _, errUnknown := svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "engine42"})
	_, _, errWrong := svc.Login(ctx, models.LoginRequest{Email: "ada@example.com", Password: "wrong-password"})

	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.Equal(t, errUnknown, errWrong, "both failures must yield the identical error value")
	assert.Equal(t, ErrInvalidCredentials, errWrong)
}

func TestAuthService_StoredHashesAreSalted(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()

	for _, email := range []string{"one@example.com", "two@example.com"} {
		_, _, err := svc.Signup(ctx, models.SignupRequest{FullName: "Twin", Email: email, Password: "same-password"})
		require.NoError(t, err)
	}

	one, err := repo.FindUserByEmail(ctx, "one@example.com", true)
	require.NoError(t, err)
	two, err := repo.FindUserByEmail(ctx, "two@example.com", true)
	require.NoError(t, err)

	assert.NotEqual(t, one.PasswordHash, two.PasswordHash)
	assert.NotEqual(t, "same-password", one.PasswordHash)

	hasher := crypto.NewPasswordHasher(cheapParams)
	assert.True(t, hasher.Verify("same-password", one.PasswordHash))
	assert.True(t, hasher.Verify("same-password", two.PasswordHash))
}

func TestAuthService_ExpiredToken_Unauthorized(t *testing.T) {
	svc, _, clock := newTestAuthService(t)
	ctx := context.Background()

	_, token, err := svc.Signup(ctx, models.SignupRequest{FullName: "Ada", Email: "ada@example.com", Password: "engine42"})
	require.NoError(t, err)

	clock.Advance(testAppConfig.TokenDuration - time.Second)
	_, err = svc.Authenticate(ctx, token.SignedString)
	require.NoError(t, err, "token must still be valid just before expiry")

	clock.Advance(2 * time.Second)
	_, err = svc.Authenticate(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_Authenticate_InvalidTokens(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, token, err := svc.Signup(ctx, models.SignupRequest{FullName: "Ada", Email: "ada@example.com", Password: "engine42"})
	require.NoError(t, err)

	for name, tokenString := range map[string]string{
		"empty":     "",
		"garbage":   "not-a-jwt",
		"truncated": token.SignedString[:len(token.SignedString)/2],
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Authenticate(ctx, tokenString)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestAuthService_Authenticate_ForeignSignKey(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	user, _, err := svc.Signup(ctx, models.SignupRequest{FullName: "Ada", Email: "ada@example.com", Password: "engine42"})
	require.NoError(t, err)

	otherCfg := testAppConfig
	otherCfg.TokenSignKey = "another-key"
	other := NewAuthService(store.NewMemoryUserRepository(logger.Nop()), crypto.NewPasswordHasher(cheapParams), workers.NewPool(1), otherCfg, logger.Nop())

	forged, err := other.CreateToken(ctx, user)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, forged.SignedString)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_ConcurrentSignupsSameEmail_ExactlyOneSucceeds(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()

	const attempts = 10
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		dupes     atomic.Int32
	)

	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.Signup(ctx, models.SignupRequest{FullName: "Racer", Email: "race@example.com", Password: "engine42"})
			switch {
			case err == nil:
				successes.Add(1)
			case assert.ErrorIs(t, err, ErrDuplicateEmail):
				dupes.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(attempts-1), dupes.Load())

	count, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAuthService_ValidationErrors(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, models.SignupRequest{FullName: "", Email: "bad", Password: "1"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, _, err = svc.Login(ctx, models.LoginRequest{Email: "", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	count, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
