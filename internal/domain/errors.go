package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateFilename = errors.New("filename already exists")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidInput      = errors.New("invalid input")
)
