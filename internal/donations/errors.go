package donations

import "errors"

var (
	ErrNotFound          = errors.New("donation not found")
	ErrInvalidInput      = errors.New("invalid donation input")
	ErrReceiptNoConflict = errors.New("receipt number conflict")
)
