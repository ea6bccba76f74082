package main

import (
	"image/color"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/venkm/starfield/internal/starfield"
)

const (
	defaultWidth  = 1024
	defaultHeight = 768
)

var (
	backgroundColor = color.RGBA{R: 10, G: 14, B: 39, A: 255}
	accentColor     = [3]float64{96, 165, 250}
	whiteColor      = [3]float64{255, 255, 255}
)

type game struct {
	field   *starfield.Field
	surface *imageSurface
	width   int
	height  int
}

func (g *game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.field.Advance()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.surface.target = screen
	g.field.Draw(g.surface)
}

// Layout runs the field at window resolution; a resize regenerates the
// field at the new density tier.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.field.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// imageSurface draws starfield primitives onto an ebiten image.
type imageSurface struct {
	target *ebiten.Image
}

func (s *imageSurface) Fill() {
	s.target.Fill(backgroundColor)
}

func (s *imageSurface) Dot(x, y, r, opacity float64) {
	if opacity <= 0 {
		return
	}
	if r < 0.5 {
		r = 0.5
	}
	vector.DrawFilledCircle(s.target, float32(x), float32(y), float32(r), premultiplied(whiteColor, opacity), true)
}

// Glow approximates the radial falloff with three concentric translucent
// discs.
func (s *imageSurface) Glow(x, y, r, alpha float64) {
	if alpha <= 0 || r <= 0 {
		return
	}
	for i := 3; i >= 1; i-- {
		rr := r * float64(i) / 3
		vector.DrawFilledCircle(s.target, float32(x), float32(y), float32(rr), premultiplied(accentColor, alpha/3), true)
	}
}

func (s *imageSurface) Trail(x, y, tx, ty, opacity float64) {
	if opacity <= 0 {
		return
	}
	const segments = 12
	for i := 0; i < segments; i++ {
		t0 := float64(i) / segments
		t1 := float64(i+1) / segments
		x0, y0 := x+(tx-x)*t0, y+(ty-y)*t0
		x1, y1 := x+(tx-x)*t1, y+(ty-y)*t1

		mid := (t0 + t1) / 2
		c := [3]float64{
			whiteColor[0] + (accentColor[0]-whiteColor[0])*mid,
			whiteColor[1] + (accentColor[1]-whiteColor[1])*mid,
			whiteColor[2] + (accentColor[2]-whiteColor[2])*mid,
		}
		a := opacity * (1 - mid)
		vector.StrokeLine(s.target, float32(x0), float32(y0), float32(x1), float32(y1), 2, premultiplied(c, a), true)
	}
}

// premultiplied converts a color and alpha to ebiten's premultiplied-alpha
// RGBA.
func premultiplied(c [3]float64, alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.RGBA{
		R: uint8(c[0]*alpha + 0.5),
		G: uint8(c[1]*alpha + 0.5),
		B: uint8(c[2]*alpha + 0.5),
		A: uint8(255*alpha + 0.5),
	}
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "desktop"})

	ebiten.SetWindowTitle("Starfield")
	ebiten.SetWindowSize(defaultWidth, defaultHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	g := &game{
		field:   starfield.New(defaultWidth, defaultHeight),
		surface: &imageSurface{},
		width:   defaultWidth,
		height:  defaultHeight,
	}
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("starfield error", "err", err)
	}
}
