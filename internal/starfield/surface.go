package starfield

// Surface is the drawing target a Field renders onto. Implementations exist
// for the terminal canvas and for an ebiten window; the field never knows
// which one it is talking to.
//
// All coordinates are in surface pixel space. Opacity and alpha values are
// in [0, 1].
type Surface interface {
	// Fill paints the entire surface with the background color. Called once
	// per frame; there is no blending with the previous frame.
	Fill()

	// Dot draws a filled white circle of radius r at the given opacity.
	Dot(x, y, r, opacity float64)

	// Glow draws a soft accent-tinted radial gradient of radius r, fading
	// from alpha at the center to fully transparent at the edge.
	Glow(x, y, r, alpha float64)

	// Trail strokes a 2px line from the head (x, y) to the tail (tx, ty),
	// fading from white at the head opacity to a transparent accent tint at
	// the tail.
	Trail(x, y, tx, ty, opacity float64)
}
