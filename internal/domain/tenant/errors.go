package tenant

import "errors"

// ErrInvalidInput indicates invalid provisioning input.
var ErrInvalidInput = errors.New("invalid tenant input")
