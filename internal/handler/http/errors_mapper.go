package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/service"
	"github.com/MKhiriev/go-auth-service/internal/utils"
	"github.com/MKhiriev/go-auth-service/internal/validators"
)

type errorResponse struct {
	status  int
	message string
}

// errorResponses is checked in order; the first match wins.
var errorResponses = []struct {
	target error
	errorResponse
}{
	{service.ErrInvalidDataProvided, errorResponse{http.StatusBadRequest, msgValidationFailed}},
	{ErrInvalidJSON, errorResponse{http.StatusBadRequest, msgInvalidJSON}},
	{service.ErrDuplicateEmail, errorResponse{http.StatusConflict, msgDuplicateEmail}},
	{service.ErrInvalidCredentials, errorResponse{http.StatusUnauthorized, msgInvalidCredentials}},
	{ErrEmptyAuthorizationHeader, errorResponse{http.StatusUnauthorized, msgTokenRequired}},
	{ErrInvalidAuthorizationHeader, errorResponse{http.StatusUnauthorized, msgTokenRequired}},
	{ErrEmptyToken, errorResponse{http.StatusUnauthorized, msgTokenRequired}},
	{service.ErrUnauthorized, errorResponse{http.StatusUnauthorized, msgTokenInvalid}},
	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusUnauthorized, msgTokenInvalid}},
}

func responseFromError(err error) errorResponse {
	for _, e := range errorResponses {
		if errors.Is(err, e.target) {
			return e.errorResponse
		}
	}
	return errorResponse{http.StatusInternalServerError, msgInternalError}
}

func statusFromError(err error) int {
	return responseFromError(err).status
}

// writeError answers with the envelope matching err. Expected domain
// outcomes are logged at debug level, everything else as an error.
// Validation failures carry their field messages in "errors".
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	resp := responseFromError(err)

	if resp.status == http.StatusInternalServerError {
		log.Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("path", r.URL.Path).Int("status", resp.status).Msg("request rejected")
	}

	var details []string
	var vErr *validators.ValidationError
	if errors.As(err, &vErr) {
		details = vErr.Messages
	}

	utils.WriteResponse(w, resp.status, resp.message, nil, details...)
}
