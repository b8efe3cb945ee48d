package models

// APIResponse is the envelope every HTTP endpoint answers with.
type APIResponse struct {
	// Success reports whether the request was handled successfully.
	Success bool `json:"success"`

	// Message is a short human-readable outcome description.
	Message string `json:"message"`

	// Data carries the endpoint-specific payload, if any.
	Data any `json:"data,omitempty"`

	// Errors lists field-level validation problems, if any.
	Errors []string `json:"errors,omitempty"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
