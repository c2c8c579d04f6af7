// Package scoring answers point-in-time score differential queries over a
// generated timeline.
package scoring

import "github.com/okian/matchscore/internal/domain/model"

// Sequence is the read-only view a query needs. Offsets must be strictly
// increasing with index.
type Sequence interface {
	Len() int
	At(i int) model.Stamp
}

// Result is the differential in effect at Offset. Offset echoes the query
// input so callers can correlate batched answers.
type Result struct {
	Differential int
	Offset       int
}

// Resolution describes how a query was answered.
type Resolution int

// Resolution values.
const (
	ResolutionClampedLast Resolution = iota
	ResolutionClampedFirst
	ResolutionExact
	ResolutionFloor
)

// String returns the metric label for the resolution.
func (r Resolution) String() string {
	switch r {
	case ResolutionClampedLast:
		return "clamped_last"
	case ResolutionClampedFirst:
		return "clamped_first"
	case ResolutionExact:
		return "exact"
	case ResolutionFloor:
		return "floor"
	default:
		return "unknown"
	}
}

// Query returns the differential in effect at offset.
func Query(seq Sequence, offset int) Result {
	res, _ := Resolve(seq, offset)
	return res
}

// Resolve returns the differential in effect at offset and how it was found.
//
// Offsets at or past the last stamp are frozen at the final score. Offsets at
// or before the first stamp yield 0 without reading the first stamp's score.
// Anything in between resolves to the floor stamp: the latest stamp whose
// offset does not exceed the query.
//
// Resolve panics with ErrEmptyTimeline if seq is empty.
func Resolve(seq Sequence, offset int) (Result, Resolution) {
	n := seq.Len()
	if n == 0 {
		panic(ErrEmptyTimeline)
	}

	last := seq.At(n - 1)
	if offset >= last.Offset {
		return Result{Differential: last.Differential(), Offset: offset}, ResolutionClampedLast
	}
	if offset <= seq.At(0).Offset {
		return Result{Differential: 0, Offset: offset}, ResolutionClampedFirst
	}

	// Invariant: At(left).Offset < offset < At(right).Offset.
	left, right := 0, n-1
	for left+1 != right {
		middle := left + (right-left)/2
		stamp := seq.At(middle)
		switch {
		case stamp.Offset == offset:
			return Result{Differential: stamp.Differential(), Offset: offset}, ResolutionExact
		case stamp.Offset > offset:
			right = middle
		default:
			left = middle
		}
	}

	return Result{Differential: seq.At(left).Differential(), Offset: offset}, ResolutionFloor
}
