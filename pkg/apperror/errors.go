// Package apperror holds the error taxonomy shared by repositories, usecases
// and HTTP adaptors. Callers wrap these sentinels with fmt.Errorf("...: %w")
// and adaptors match them with errors.Is.
package apperror

import "errors"

var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrStore        = errors.New("store error")
)
