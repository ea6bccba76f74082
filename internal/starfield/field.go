package starfield

import (
	"math/rand"
	"time"
)

// Two-tier density policy: narrow surfaces get the sparse field.
const (
	densityThreshold = 768
	sparseStarCount  = 200
	denseStarCount   = 400
)

// Field owns the two star collections and the surface dimensions they live
// in. Advance and Draw must be called from a single frame loop; nothing else
// touches the collections.
type Field struct {
	w, h     float64
	stars    []*Star
	shooting []*ShootingStar
	rng      *rand.Rand
}

// New creates a field populated for the given surface dimensions.
func New(w, h float64) *Field {
	return newField(w, h, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newField(w, h float64, rng *rand.Rand) *Field {
	f := &Field{rng: rng}
	f.regenerate(w, h)
	return f
}

// Resize re-fits the field to new surface dimensions. The whole ambient
// collection is regenerated at the new density tier; no attempt is made to
// carry stars across a resize. Shooting stars are left to fade out on their
// own.
func (f *Field) Resize(w, h float64) {
	if w == f.w && h == f.h {
		return
	}
	f.regenerate(w, h)
}

func (f *Field) regenerate(w, h float64) {
	f.w, f.h = w, h
	count := denseStarCount
	if w < densityThreshold {
		count = sparseStarCount
	}
	f.stars = make([]*Star, count)
	for i := range f.stars {
		f.stars[i] = newStar(f.rng, w, h)
	}
}

// Advance runs one simulation step: every ambient star drifts, approaches
// and twinkles (recycling at the boundary), one shooting-star spawn roll is
// made, and live shooting stars are advanced with expired ones culled.
func (f *Field) Advance() {
	for _, s := range f.stars {
		s.advance(f.rng, f.w, f.h)
	}

	if f.rng.Float64() < spawnChance {
		f.shooting = append(f.shooting, newShootingStar(f.rng, f.w, f.h))
	}

	kept := f.shooting[:0]
	for _, s := range f.shooting {
		if !s.advance() {
			kept = append(kept, s)
		}
	}
	f.shooting = kept
}

// Draw paints the background and renders every star onto the surface in
// collection order, ambient stars first.
func (f *Field) Draw(s Surface) {
	s.Fill()
	for _, st := range f.stars {
		st.draw(s, f.w, f.h)
	}
	for _, sh := range f.shooting {
		sh.draw(s)
	}
}

// StarCount returns the size of the ambient collection.
func (f *Field) StarCount() int {
	return len(f.stars)
}

// Size returns the surface dimensions the field was last fitted to.
func (f *Field) Size() (w, h float64) {
	return f.w, f.h
}
