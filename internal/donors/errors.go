package donors

import "errors"

var (
	ErrNotFound     = errors.New("donor not found")
	ErrInvalidInput = errors.New("invalid donor input")
)
