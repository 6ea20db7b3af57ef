package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
)

// Lifecycle errors
var (
	ErrDonationNotFound  = errors.New("donation not found")
	ErrGaudaanNotFound   = errors.New("gaudaan request not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrShelterNotFound   = errors.New("shelter not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)
