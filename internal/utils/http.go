package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-auth-service/models"
)

// WriteJSON marshals data and writes it with statusCode. A marshal
// failure answers 500 and is returned to the caller.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteResponse writes the standard API envelope
// {success, message, data?, errors?} with the given status code.
// success is derived from the status: any 2xx code is a success.
func WriteResponse(w http.ResponseWriter, statusCode int, message string, data any, errs ...string) (int, error) {
	return WriteJSON(w, models.APIResponse{
		Success: statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices,
		Message: message,
		Data:    data,
		Errors:  errs,
	}, statusCode)
}
