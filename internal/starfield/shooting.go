package starfield

import (
	"math"
	"math/rand"
)

const (
	// spawnChance is the per-frame probability of a new shooting star.
	spawnChance = 0.003

	// fadeSpeed is the per-frame opacity decay; a shooting star lives
	// 1/fadeSpeed = 50 frames.
	fadeSpeed = 0.02

	headDotRadius = 3.0
)

// ShootingStar is a transient streak. Unlike ambient stars it is never
// recycled: it fades out linearly and is dropped from the field the frame
// its opacity reaches zero.
type ShootingStar struct {
	X, Y    float64
	Length  float64
	Speed   float64
	Angle   float64 // radians, downward-right diagonal band
	Opacity float64
	Fade    float64
}

func newShootingStar(rng *rand.Rand, w, h float64) *ShootingStar {
	return &ShootingStar{
		X:       rng.Float64() * w,
		Y:       rng.Float64() * h / 2, // upper half only
		Length:  40 + rng.Float64()*80,
		Speed:   6 + rng.Float64()*8,
		Angle:   math.Pi/6 + rng.Float64()*math.Pi/4,
		Opacity: 1,
		Fade:    fadeSpeed,
	}
}

// advance moves the streak along its angle and fades it. Returns true when
// the streak has fully faded and must be removed.
func (s *ShootingStar) advance() (expired bool) {
	s.X += math.Cos(s.Angle) * s.Speed
	s.Y += math.Sin(s.Angle) * s.Speed
	s.Opacity -= s.Fade
	return s.Opacity <= 0
}

// draw renders the trail from the head back along the reverse angle, plus a
// small solid head dot.
func (s *ShootingStar) draw(sf Surface) {
	tx := s.X - math.Cos(s.Angle)*s.Length
	ty := s.Y - math.Sin(s.Angle)*s.Length
	sf.Trail(s.X, s.Y, tx, ty, s.Opacity)
	sf.Dot(s.X, s.Y, headDotRadius, s.Opacity)
}
