package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/crypto"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/store"
	"github.com/MKhiriev/go-auth-service/internal/utils"
	"github.com/MKhiriev/go-auth-service/internal/workers"
	"github.com/MKhiriev/go-auth-service/models"
)

// dummyPassword is hashed once and verified against on logins for unknown
// emails, so those cost the same as a wrong password.
const dummyPassword = "dummy-password-for-unknown-accounts"

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and argon2id for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// hasher derives and checks password hashes. Every call goes through pool.
	hasher crypto.PasswordHasher
	pool   workers.Pool

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// now is the clock used to issue and verify tokens.
	now func() time.Time

	// dummyHash is verified against for unknown emails. It is built once in
	// NewAuthService with the same cost parameters as real hashes.
	dummyHash string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// AuthServiceOption customizes an [AuthService] built by [NewAuthService].
type AuthServiceOption func(*authService)

// WithClock replaces the wall clock used for token issue and verification.
func WithClock(now func() time.Time) AuthServiceOption {
	return func(a *authService) {
		a.now = now
	}
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, hasher crypto.PasswordHasher, pool workers.Pool, cfg config.App, logger *logger.Logger, opts ...AuthServiceOption) AuthService {
	a := &authService{
		userRepository: userRepository,
		hasher:         hasher,
		pool:           pool,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		now:            time.Now,
		logger:         logger,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.dummyHash = a.prepareDummyHash()

	return a
}

// Signup creates a new user account and issues a session token for it.
//
// The email is normalized, the password hashed in the worker pool, and the
// record created in the store. Returns:
//   - ErrDuplicateEmail if the normalized email is taken.
//   - ErrPasswordHashing if the hasher (or waiting for it) failed.
//   - ErrStoreUnavailable on any other store failure.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)
	req = req.Normalized()

	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return models.User{}, models.Token{}, ErrInvalidDataProvided
	}

	var passwordHash string
	err := a.pool.Do(ctx, func() error {
		var hashErr error
		passwordHash, hashErr = a.hasher.Hash(req.Password)
		return hashErr
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.Signup").Msg("password hashing failed")
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrPasswordHashing, err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: passwordHash,
	})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		log.Debug().Str("func", "*authService.Signup").Msg("email already registered")
		return models.User{}, models.Token{}, ErrDuplicateEmail
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Signup").Msg("user creation ended with error")
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	token, err := a.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*authService.Signup").Str("user_id", user.ID).Msg("token creation failed")
		return models.User{}, models.Token{}, err
	}

	log.Info().Str("user_id", user.ID).Msg("user signed up")
	return user.Public(), token, nil
}

// Login authenticates an existing user and issues a fresh session token.
//
// An unknown email and a wrong password both return ErrInvalidCredentials,
// unwrapped, so callers cannot tell them apart. For unknown emails the
// password is still verified against a dummy hash.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)
	req = req.Normalized()

	if req.Email == "" || req.Password == "" {
		return models.User{}, models.Token{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email, true)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		if _, verifyErr := a.verify(ctx, req.Password, a.dummyHash); verifyErr != nil {
			log.Err(verifyErr).Str("func", "*authService.Login").Msg("dummy verification failed")
			return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrPasswordHashing, verifyErr)
		}
		log.Debug().Str("func", "*authService.Login").Msg("login for unknown email")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	case err != nil:
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	ok, err := a.verify(ctx, req.Password, user.PasswordHash)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("password verification failed")
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrPasswordHashing, err)
	}
	if !ok {
		log.Debug().Str("func", "*authService.Login").Str("user_id", user.ID).Msg("wrong password")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	token, err := a.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Str("user_id", user.ID).Msg("token creation failed")
		return models.User{}, models.Token{}, err
	}

	return user.Public(), token, nil
}

// Authenticate verifies tokenString and re-reads the user it names.
// An invalid or expired token, or a user that no longer exists, yields
// ErrUnauthorized.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		log.Debug().Err(err).Str("func", "*authService.Authenticate").Msg("token rejected")
		return models.User{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Str("func", "*authService.Authenticate").Str("user_id", token.UserID).Msg("token owner no longer exists")
		return models.User{}, ErrUnauthorized
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Authenticate").Msg("user search by id failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return user.Public(), nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey, a.now())
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed, bad signature)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, a.now)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// verify runs the hasher's Verify in the worker pool.
func (a *authService) verify(ctx context.Context, password, encoded string) (bool, error) {
	var ok bool
	err := a.pool.Do(ctx, func() error {
		ok = a.hasher.Verify(password, encoded)
		return nil
	})

	return ok, err
}

// prepareDummyHash hashes dummyPassword with the service's hasher. If that
// fails the empty string is used and Verify returns false immediately.
func (a *authService) prepareDummyHash() string {
	hash, err := a.hasher.Hash(dummyPassword)
	if err != nil {
		a.logger.Err(err).Str("func", "*authService.prepareDummyHash").Msg("failed to prepare dummy hash")
		return ""
	}

	return hash
}
