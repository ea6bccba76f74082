// Package loop drives the starfield at a fixed frame rate: poll terminal
// size, drain input, advance the field once, draw, sleep the remainder.
// One cooperative timeline; every tick completes before the next is
// scheduled.
package loop

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/venkm/starfield/internal/draw"
	"github.com/venkm/starfield/internal/input"
	"github.com/venkm/starfield/internal/starfield"
)

const (
	defaultFPS = 60
	minWidth   = 10
	minHeight  = 5
)

var helpStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("60")).
	Faint(true)

// Options configures a renderer loop.
type Options struct {
	// TermSizeFunc reports the terminal dimensions each frame. Defaults to
	// querying os.Stdout.
	TermSizeFunc draw.TermSizeFunc

	// FPS is the target frame rate. Defaults to 60.
	FPS int

	// HideHelp suppresses the quit hint in the bottom row.
	HideHelp bool
}

// Run renders the starfield to w until the context is canceled, a quit key
// arrives on r, or the terminal size can no longer be read.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	frameTime := time.Second / time.Duration(fps)

	stream := input.StartStream(r)
	cw := draw.NewChunkWriter(w)

	draw.HideCursor(cw)
	defer func() {
		draw.ClearScreen(cw)
		draw.ShowCursor(cw)
		cw.Flush()
	}()

	termWidth, termHeight, err := sizeFunc()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	termWidth, termHeight = clampSize(termWidth, termHeight)

	canvas := draw.NewCanvas(termWidth, termHeight)
	field := starfield.New(canvas.Width(), canvas.Height())

	help := helpStyle.Render("press q to quit")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frameStart := time.Now()

		// Resize takes effect at the top of the tick: the canvas refits
		// and the field regenerates at the new density tier.
		tw, th, err := sizeFunc()
		if err != nil {
			return fmt.Errorf("terminal size: %w", err)
		}
		tw, th = clampSize(tw, th)
		if tw != termWidth || th != termHeight {
			termWidth, termHeight = tw, th
			canvas.Resize(tw, th)
			field.Resize(canvas.Width(), canvas.Height())
		}

		if stream.QuitRequested() {
			return nil
		}

		field.Advance()

		draw.PaintBackground(cw)
		field.Draw(canvas)
		canvas.Render(cw)
		if !opts.HideHelp {
			cw.WriteAt(2, termHeight, help)
		}
		if err := cw.Flush(); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		if elapsed := time.Since(frameStart); elapsed < frameTime {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(frameTime - elapsed):
			}
		}
	}
}

func clampSize(w, h int) (int, int) {
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}
	return w, h
}
