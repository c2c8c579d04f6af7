package timeline

import (
	"errors"
	"fmt"
)

// Sentinel kinds for generation errors. Every parameter error wraps ErrInvalidParams.
var (
	ErrInvalidParams   = errors.New("invalid generator params")
	ErrNegativeCount   = fmt.Errorf("%w: negative timestamps count", ErrInvalidParams)
	ErrNilRandomSource = fmt.Errorf("%w: nil random source", ErrInvalidParams)
)
