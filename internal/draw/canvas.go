// Package draw renders the starfield into a terminal. The canvas keeps a
// sub-pixel brightness buffer at 2x vertical resolution and emits half-block
// characters with truecolor foreground/background pairs, so each terminal
// cell carries two independently shaded pixels.
package draw

import (
	"fmt"
	"io"
	"math"
	"strings"
)

type rgb struct{ r, g, b uint8 }

var (
	// backgroundColor is the opaque dark navy the whole surface is painted
	// with each frame.
	backgroundColor = rgb{10, 14, 39}
	starColor       = rgb{255, 255, 255}
	accentColor     = rgb{96, 165, 250}
)

// cell is one sub-pixel: a brightness in [0, 1] and a tint blend between
// star white (0) and accent blue (1).
type cell struct {
	intensity float32
	tint      float32
}

// minVisible is the brightness below which a sub-pixel renders as plain
// background.
const minVisible = 0.02

// Canvas is a drawing buffer with 2x vertical resolution. Logical pixel
// space is width × height*2: one unit per column, one unit per half-row.
// It implements the starfield Surface.
type Canvas struct {
	termWidth  int
	termHeight int
	subHeight  int // termHeight * 2
	cells      []cell

	renderBuf strings.Builder
}

// NewCanvas creates a canvas for the given terminal dimensions.
func NewCanvas(termWidth, termHeight int) *Canvas {
	c := &Canvas{}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize refits the canvas to new terminal dimensions, dropping the buffer
// contents.
func (c *Canvas) Resize(termWidth, termHeight int) {
	subHeight := termHeight * 2
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.cells = make([]cell, subHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subHeight = subHeight
	}
}

// Width returns the logical pixel width (terminal columns).
func (c *Canvas) Width() float64 { return float64(c.termWidth) }

// Height returns the logical pixel height (half-rows).
func (c *Canvas) Height() float64 { return float64(c.subHeight) }

// Fill resets every sub-pixel to the background. Together with the skipped
// emission of dark cells in Render this is the per-frame background paint;
// nothing persists across frames.
func (c *Canvas) Fill() {
	clear(c.cells)
}

// blend lights a sub-pixel. Overlapping draws keep the brightest
// contributor.
func (c *Canvas) blend(x, y int, alpha, tint float64) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subHeight || alpha <= 0 {
		return
	}
	p := &c.cells[y*c.termWidth+x]
	if float32(alpha) > p.intensity {
		p.intensity = float32(alpha)
		p.tint = float32(tint)
	}
}

// Dot draws a filled white circle with a soft half-pixel edge. Sub-pixel
// radii collapse to a single lit cell.
func (c *Canvas) Dot(x, y, r, opacity float64) {
	if opacity <= 0 {
		return
	}
	if r <= 0.6 {
		c.blend(int(math.Round(x)), int(math.Round(y)), opacity, 0)
		return
	}
	const edge = 0.7
	x0, x1 := int(math.Floor(x-r)), int(math.Ceil(x+r))
	y0, y1 := int(math.Floor(y-r)), int(math.Ceil(y+r))
	for iy := y0; iy <= y1; iy++ {
		for ix := x0; ix <= x1; ix++ {
			d := math.Hypot(float64(ix)-x, float64(iy)-y)
			switch {
			case d <= r:
				c.blend(ix, iy, opacity, 0)
			case d <= r+edge:
				c.blend(ix, iy, opacity*(r+edge-d)/edge, 0)
			}
		}
	}
}

// Glow draws an accent-tinted radial gradient, full alpha at the center
// falling linearly to transparent at radius r.
func (c *Canvas) Glow(x, y, r, alpha float64) {
	if alpha <= 0 || r <= 0 {
		return
	}
	x0, x1 := int(math.Floor(x-r)), int(math.Ceil(x+r))
	y0, y1 := int(math.Floor(y-r)), int(math.Ceil(y+r))
	for iy := y0; iy <= y1; iy++ {
		for ix := x0; ix <= x1; ix++ {
			d := math.Hypot(float64(ix)-x, float64(iy)-y)
			if d <= r {
				c.blend(ix, iy, alpha*(1-d/r), 1)
			}
		}
	}
}

// Trail strokes a 2px line from the head to the tail, fading from white at
// the head opacity to transparent accent at the tail.
func (c *Canvas) Trail(x, y, tx, ty, opacity float64) {
	if opacity <= 0 {
		return
	}
	dist := math.Hypot(tx-x, ty-y)
	if dist == 0 {
		return
	}
	// Unit normal for the second pixel of line width.
	nx, ny := -(ty-y)/dist, (tx-x)/dist

	steps := int(dist) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		px := x + (tx-x)*t
		py := y + (ty-y)*t
		a := opacity * (1 - t)
		c.blend(int(math.Round(px)), int(math.Round(py)), a, t)
		c.blend(int(math.Round(px+nx)), int(math.Round(py+ny)), a, t)
	}
}

// composite resolves a sub-pixel to its on-screen color: star white lerped
// toward the accent by tint, then alpha-blended over the navy background.
func composite(p cell) rgb {
	a := float64(p.intensity)
	t := float64(p.tint)
	return rgb{
		r: channel(starColor.r, accentColor.r, backgroundColor.r, t, a),
		g: channel(starColor.g, accentColor.g, backgroundColor.g, t, a),
		b: channel(starColor.b, accentColor.b, backgroundColor.b, t, a),
	}
}

func channel(star, accent, bg uint8, tint, alpha float64) uint8 {
	c := float64(star) + (float64(accent)-float64(star))*tint
	return uint8(float64(bg) + (c-float64(bg))*alpha + 0.5)
}

// Render emits the canvas as positioned upper-half-block characters, the
// foreground carrying the top sub-pixel and the background the bottom one.
// Cells at background level are skipped; the caller paints the backdrop
// first. Color sequences are elided when unchanged from the previous cell.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 8)

	var lastFg, lastBg rgb
	colorSet := false

	for row := 0; row < c.termHeight; row++ {
		topOff := (row * 2) * c.termWidth
		botOff := (row*2 + 1) * c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.cells[topOff+col]
			bot := c.cells[botOff+col]
			if top.intensity < minVisible && bot.intensity < minVisible {
				continue
			}

			fg := composite(top)
			bg := composite(bot)

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1, col+1)
			if !colorSet || fg != lastFg {
				fmt.Fprintf(&c.renderBuf, "\033[38;2;%d;%d;%dm", fg.r, fg.g, fg.b)
			}
			if !colorSet || bg != lastBg {
				fmt.Fprintf(&c.renderBuf, "\033[48;2;%d;%d;%dm", bg.r, bg.g, bg.b)
			}
			colorSet = true
			lastFg, lastBg = fg, bg

			c.renderBuf.WriteRune('▀')
		}
	}

	if c.renderBuf.Len() > 0 {
		c.renderBuf.WriteString("\033[0m")
	}
	io.WriteString(w, c.renderBuf.String())
}
