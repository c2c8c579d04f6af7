package scoring

import "errors"

// ErrEmptyTimeline is the panic value raised when a query is run against an
// empty sequence. Generated timelines are never empty.
var ErrEmptyTimeline = errors.New("score query on empty timeline")
