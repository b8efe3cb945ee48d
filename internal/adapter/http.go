package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/utils"
	"github.com/MKhiriev/go-auth-service/models"
)

type httpAuthAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAuthAdapter constructs an HTTP/REST implementation of [AuthAdapter].
// It normalises and validates the base URL from cfg.ServerAddress and
// configures the underlying resty client with the request timeout.
//
// Returns an error if cfg.ServerAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPAuthAdapter(cfg config.ClientConfig, logger *logger.Logger) (AuthAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	return &httpAuthAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAuthAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAuthAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Signup implements [AuthAdapter] via POST /api/auth/signup.
func (h *httpAuthAdapter) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	return h.authenticate(ctx, "/api/auth/signup", req)
}

// Login implements [AuthAdapter] via POST /api/auth/login.
func (h *httpAuthAdapter) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	return h.authenticate(ctx, "/api/auth/login", req)
}

func (h *httpAuthAdapter) authenticate(ctx context.Context, path string, body any) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(path)
	if err != nil {
		return models.User{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var data models.AuthResponse
	if err = decodeData(resp, &data); err != nil {
		return models.User{}, fmt.Errorf("%s response: %w", path, err)
	}
	if data.Token == "" {
		return models.User{}, fmt.Errorf("%s response: %w: empty token", path, ErrUnexpectedResponse)
	}

	h.SetToken(data.Token)
	return data.User, nil
}

// Profile implements [AuthAdapter] via GET /api/auth/profile.
func (h *httpAuthAdapter) Profile(ctx context.Context) (models.User, error) {
	token := h.Token()
	if token == "" {
		return models.User{}, ErrNoToken
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get("/api/auth/profile")
	if err != nil {
		return models.User{}, fmt.Errorf("profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var user models.User
	if err = decodeData(resp, &user); err != nil {
		return models.User{}, fmt.Errorf("profile response: %w", err)
	}
	return user, nil
}

// Logout implements [AuthAdapter] via POST /api/auth/logout. The local
// token is dropped even when the server cannot be reached.
func (h *httpAuthAdapter) Logout(ctx context.Context) error {
	token := h.Token()
	h.SetToken("")

	req := h.client.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}

	resp, err := req.Post("/api/auth/logout")
	if err != nil {
		h.logger.Warn().Err(err).Msg("logout request failed, token dropped locally")
		return fmt.Errorf("logout request: %w", err)
	}
	return mapHTTPError(resp)
}

// Version implements [AuthAdapter] via GET /api/version.
func (h *httpAuthAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}
