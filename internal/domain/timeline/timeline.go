package timeline

import "github.com/okian/matchscore/internal/domain/model"

// Timeline is an immutable, non-empty sequence of stamps sorted by strictly
// increasing offset. The first stamp is always model.InitialStamp.
// A Timeline is safe for concurrent readers.
type Timeline struct {
	stamps []model.Stamp
}

// Len returns the number of stamps, including the initial one.
func (t *Timeline) Len() int { return len(t.stamps) }

// At returns the i-th stamp.
func (t *Timeline) At(i int) model.Stamp { return t.stamps[i] }

// First returns the initial stamp.
func (t *Timeline) First() model.Stamp { return t.stamps[0] }

// Last returns the final recorded stamp.
func (t *Timeline) Last() model.Stamp { return t.stamps[len(t.stamps)-1] }

// Stamps returns a copy of the underlying stamps.
func (t *Timeline) Stamps() model.Stamps {
	out := make(model.Stamps, len(t.stamps))
	copy(out, t.stamps)
	return out
}
