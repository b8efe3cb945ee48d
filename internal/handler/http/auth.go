package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/utils"
	"github.com/MKhiriev/go-auth-service/models"
)

// maxBodyBytes caps auth request payloads.
const maxBodyBytes = 1 << 20

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.Signup(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("user_id", user.ID).Msg("user successfully signed up")

	utils.WriteResponse(w, http.StatusCreated, msgUserCreated, models.AuthResponse{
		User:  user.Public(),
		Token: token.SignedString,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("user_id", user.ID).Msg("user successfully logged in")

	utils.WriteResponse(w, http.StatusOK, msgLoginSuccessful, models.AuthResponse{
		User:  user.Public(),
		Token: token.SignedString,
	})
}

// profile answers with the user resolved by the auth middleware.
func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, fmt.Errorf("profile: no authenticated user in context"))
		return
	}

	utils.WriteResponse(w, http.StatusOK, msgProfileRetrieved, user.Public())
}

// logout is a no-op: tokens are stateless and the client drops its copy.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	utils.WriteResponse(w, http.StatusOK, msgLogoutSuccessful, nil)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}
