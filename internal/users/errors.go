package users

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUnderage           = errors.New("guardian must be 25 or older")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
