package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrNotAdmin           = errors.New("account is not an administrator")
	ErrAccountNotFound    = errors.New("account not found")
)
