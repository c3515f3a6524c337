package user

import "gridiron-be/internal/apperror"

var (
	ErrAccountExists      = apperror.Exists("Account Already Exists")
	ErrInvalidAccount     = apperror.NotFound("Invalid Account")
	ErrInvalidCredentials = apperror.Unauthorized("Invalid Email or Password")
	ErrPasswordTooLong    = apperror.InvalidInput("password must be at most 72 bytes")

	PgUniqueViolation = "23505"
)
