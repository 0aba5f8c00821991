package domain

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrUnauthorized   = errors.New("invalid credentials")
	ErrConflict       = errors.New("already exists")
	ErrNotFound       = errors.New("not found")
	ErrInternal       = errors.New("internal error")
)
