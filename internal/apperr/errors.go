package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnknownProvider = errors.New("unknown provider")
	ErrInvalidImport   = errors.New("invalid import payload")
)
