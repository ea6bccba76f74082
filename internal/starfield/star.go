// Package starfield simulates a pseudo-3D field of drifting, twinkling stars
// with occasional shooting stars. The field advances one step per frame and
// draws itself onto a Surface; it owns all star state exclusively.
package starfield

import (
	"math"
	"math/rand"
)

const (
	// focalLength is the perspective projection constant F in
	// scale = F / (F + z).
	focalLength = 1000.0

	// farPlane is the depth a star is recycled to. Depth runs from just
	// above 0 (at the viewer) to farPlane (the horizon).
	farPlane = 1000.0

	// edgeMargin extends the recycle boundary past the surface edges so
	// stars drift fully out of view before being reset.
	edgeMargin = 50.0

	// glowOpacity and glowRadius gate the soft halo drawn around bright,
	// near stars.
	glowOpacityMin = 0.7
	glowRadiusMin  = 0.8
)

// Star is a persistent background star. It is recycled in place when it
// reaches the viewer or drifts off screen, so a field's star collection
// never grows or shrinks between resizes.
type Star struct {
	X, Y float64 // position in surface pixels
	Z    float64 // distance from viewer, (0, farPlane]

	Radius     float64
	VX, VY, VZ float64 // lateral drift and rate of approach

	Opacity      float64
	BaseOpacity  float64 // twinkle floor
	TwinkleSpeed float64
	TwinkleDir   float64 // +1 or -1, flips at the twinkle bounds
}

func newStar(rng *rand.Rand, w, h float64) *Star {
	s := &Star{
		Z:            rng.Float64() * farPlane,
		Radius:       0.3 + rng.Float64()*1.5,
		VX:           -0.15 + rng.Float64()*0.3,
		VY:           -0.15 + rng.Float64()*0.3,
		VZ:           0.2 + rng.Float64()*0.5,
		Opacity:      rng.Float64(),
		BaseOpacity:  0.3 + rng.Float64()*0.5,
		TwinkleSpeed: 0.005 + rng.Float64()*0.02,
		TwinkleDir:   1,
	}
	if rng.Float64() < 0.5 {
		s.TwinkleDir = -1
	}
	if s.Z == 0 {
		s.Z = farPlane
	}
	s.X = rng.Float64() * w
	s.Y = rng.Float64() * h
	return s
}

// advance moves the star one frame: lateral drift, approach, twinkle, and a
// boundary check that recycles the star to the far plane. The twinkle bound
// check runs after the step, so a single-step overshoot past either bound is
// expected and corrected on the next frame.
func (s *Star) advance(rng *rand.Rand, w, h float64) {
	s.X += s.VX
	s.Y += s.VY
	s.Z -= s.VZ

	s.Opacity += s.TwinkleSpeed * s.TwinkleDir
	if s.Opacity <= s.BaseOpacity || s.Opacity >= 1 {
		s.TwinkleDir = -s.TwinkleDir
	}

	if s.Z <= 0 || s.X < -edgeMargin || s.X > w+edgeMargin || s.Y < -edgeMargin || s.Y > h+edgeMargin {
		s.recycle(rng, w, h)
	}
}

// recycle resets the star to a fresh position on the far plane. Radius,
// velocities and twinkle parameters survive the reset: a given star's size
// and drift direction stay fixed for its entire lifetime.
func (s *Star) recycle(rng *rand.Rand, w, h float64) {
	s.X = rng.Float64() * w
	s.Y = rng.Float64() * h
	s.Z = farPlane
}

// project maps the star through a pinhole projection centered on the
// surface. As z shrinks the scale approaches 1 and the projected position
// converges on the raw position, which reads as outward radial motion.
func (s *Star) project(w, h float64) (px, py, pr, po float64) {
	scale := focalLength / (focalLength + s.Z)
	cx, cy := w/2, h/2
	px = cx + (s.X-cx)*scale
	py = cy + (s.Y-cy)*scale
	pr = s.Radius * scale
	po = math.Min(s.Opacity*scale, 1)
	return px, py, pr, po
}

func (s *Star) draw(sf Surface, w, h float64) {
	px, py, pr, po := s.project(w, h)
	sf.Dot(px, py, pr, po)
	if po > glowOpacityMin && pr > glowRadiusMin {
		sf.Glow(px, py, pr*3, 0.15*po)
	}
}
