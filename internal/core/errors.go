package core

import "errors"

// ErrInvalidGridDimensions indicates a non-positive width or height.
var ErrInvalidGridDimensions = errors.New("core: grid dimensions must be positive")
