package dto

import "time"

// AuthLoginRequest is the login request payload.
type AuthLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthRegisterRequest is the registration request payload.
type AuthRegisterRequest struct {
	Username   string  `json:"username" binding:"required,max=64"`
	Password   string  `json:"password" binding:"required,min=4,max=72"`
	Role       string  `json:"role" binding:"required,oneof=patient doctor"`
	Name       string  `json:"name" binding:"required,max=100"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Birth      *string `json:"birth" binding:"omitempty,datetime=2006-01-02"`
	Gender     *string `json:"gender" binding:"omitempty,max=16"`
}

// AuthResponse is returned after successful login/registration.
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      UserSummary `json:"user"`
}
