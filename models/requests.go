package models

import "strings"

// SignupRequest is the payload of POST /api/auth/signup.
type SignupRequest struct {
	FullName string `json:"fullName" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// Normalized returns a copy with surrounding whitespace removed from the
// name and the email lower-cased. The password is left untouched.
func (r SignupRequest) Normalized() SignupRequest {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = NormalizeEmail(r.Email)
	return r
}

// LoginRequest is the payload of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Normalized() LoginRequest {
	r.Email = NormalizeEmail(r.Email)
	return r
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
