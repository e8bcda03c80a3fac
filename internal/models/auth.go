package models

import "time"

// LoginRequest represents the admin login form
type LoginRequest struct {
	Login    string `json:"login" example:"admin"`
	Password string `json:"password" example:"secret"`
}

// Session represents an issued admin capability
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	OK        bool      `json:"ok" example:"true"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
