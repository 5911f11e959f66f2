package model

import (
	"time"

	"github.com/google/uuid"
)

// PrincipalKind distinguishes the two disjoint account namespaces.
type PrincipalKind string

const (
	PrincipalAdmin PrincipalKind = "admin"
	PrincipalUser  PrincipalKind = "user"
)

// Account is an admin or a user. Both kinds share the shape but live in separate tables,
// so the same email may exist once per kind.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// SignupRequest is the payload for admin and user signup.
type SignupRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,maxbytes=72"`
}

// SigninRequest is the payload for admin and user signin.
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,maxbytes=72"`
}

// SignupResponse is returned after a successful signup.
type SignupResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// SigninResponse is returned after a successful signin.
type SigninResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
