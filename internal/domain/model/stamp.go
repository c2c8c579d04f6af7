// Package model contains domain models passed between layers.
package model

// Score holds the goals scored by each side.
type Score struct {
	Home int
	Away int
}

// Differential returns home minus away.
func (s Score) Differential() int {
	return s.Home - s.Away
}

// Stamp records the score in effect as of Offset.
type Stamp struct {
	Offset int   // logical match time, strictly increasing along a timeline
	Score  Score // score as of Offset
}

// InitialStamp is the sentinel every timeline starts with.
var InitialStamp = Stamp{Offset: 0, Score: Score{Home: 0, Away: 0}}

// Differential returns the score differential of the stamp.
func (s Stamp) Differential() int {
	return s.Score.Differential()
}

// Stamps is a plain ordered slice of stamps. It satisfies the read-only
// sequence contract used by score queries, which makes it handy for fixtures.
type Stamps []Stamp

// Len returns the number of stamps.
func (s Stamps) Len() int { return len(s) }

// At returns the i-th stamp.
func (s Stamps) At(i int) Stamp { return s[i] }
