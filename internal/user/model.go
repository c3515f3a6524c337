package user

import (
	"time"

	"gridiron-be/internal/auth"
)

type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Password  string
	Roles     []auth.Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateUserRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
}

type AuthenticateUserRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ProfileResponse struct {
	Token        string      `json:"token"`
	UserID       int64       `json:"userId"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	EmailAddress string      `json:"emailAddress"`
	Roles        []auth.Role `json:"roles"`
}
