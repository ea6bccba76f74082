package starfield

import (
	"math"
	"math/rand"
	"testing"
)

// recordingSurface captures draw calls for assertions.
type recordingSurface struct {
	ops    []string
	dots   int
	glows  int
	trails int
}

func (r *recordingSurface) Fill()                              { r.ops = append(r.ops, "fill") }
func (r *recordingSurface) Dot(x, y, rr, opacity float64)      { r.dots++ }
func (r *recordingSurface) Glow(x, y, rr, alpha float64)       { r.glows++ }
func (r *recordingSurface) Trail(x, y, tx, ty, opacity float64) { r.trails++ }

func TestDensityTiers(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
		want int
	}{
		{"desktop window", 1024, 768, 400},
		{"narrow surface", 500, 400, 200},
		{"at threshold", 768, 600, 400},
		{"just under threshold", 767, 600, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newField(tt.w, tt.h, rand.New(rand.NewSource(1)))
			if got := f.StarCount(); got != tt.want {
				t.Errorf("StarCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResizeRegeneratesField(t *testing.T) {
	f := newField(1024, 768, rand.New(rand.NewSource(2)))
	if f.StarCount() != 400 {
		t.Fatalf("initial count %d, want 400", f.StarCount())
	}

	f.Resize(500, 400)

	if f.StarCount() != 200 {
		t.Fatalf("post-resize count %d, want 200", f.StarCount())
	}
	for i, s := range f.stars {
		if s.X < 0 || s.X > 500 || s.Y < 0 || s.Y > 400 {
			t.Errorf("star %d at (%v, %v) outside new bounds", i, s.X, s.Y)
		}
	}
}

func TestResizeSameDimensionsIsNoop(t *testing.T) {
	f := newField(800, 600, rand.New(rand.NewSource(3)))
	before := f.stars[0]

	f.Resize(800, 600)

	if f.stars[0] != before {
		t.Errorf("resize to identical dimensions must keep the field intact")
	}
}

func TestAdvanceKeepsCollectionSize(t *testing.T) {
	f := newField(400, 300, rand.New(rand.NewSource(4)))
	want := f.StarCount()

	for i := 0; i < 1000; i++ {
		f.Advance()
		if got := f.StarCount(); got != want {
			t.Fatalf("frame %d: collection size %d, want constant %d", i, got, want)
		}
	}
}

func TestAdvanceHoldsStarInvariants(t *testing.T) {
	f := newField(400, 300, rand.New(rand.NewSource(5)))

	for i := 0; i < 2000; i++ {
		f.Advance()
		for _, s := range f.stars {
			if s.Z <= 0 {
				t.Fatalf("frame %d: live star with z = %v", i, s.Z)
			}
		}
	}
}

func TestSpawnRollEventuallyFires(t *testing.T) {
	f := newField(400, 300, rand.New(rand.NewSource(6)))

	spawned := false
	for i := 0; i < 20000 && !spawned; i++ {
		f.Advance()
		spawned = spawned || len(f.shooting) > 0
	}
	if !spawned {
		t.Errorf("no shooting star in 20000 frames at spawn chance %v", spawnChance)
	}
}

func TestShootingStarCulledWhenFaded(t *testing.T) {
	f := newField(400, 300, rand.New(rand.NewSource(7)))
	f.shooting = append(f.shooting, &ShootingStar{
		X: 10, Y: 10, Length: 60, Speed: 8, Angle: math.Pi / 4,
		Opacity: 1, Fade: fadeSpeed,
	})

	for i := 0; i < 60; i++ {
		f.Advance()
		// Present if and only if still visible. The injected star is the
		// head of the collection; later random spawns append after it.
		if len(f.shooting) > 0 && f.shooting[0].Opacity <= 0 {
			t.Fatalf("frame %d: fully faded star still in collection", i)
		}
	}
}

func TestDrawPaintsBackgroundThenStars(t *testing.T) {
	f := newField(1024, 768, rand.New(rand.NewSource(8)))
	f.shooting = append(f.shooting, &ShootingStar{
		X: 100, Y: 100, Length: 60, Speed: 8, Angle: math.Pi / 4,
		Opacity: 1, Fade: fadeSpeed,
	})

	rec := &recordingSurface{}
	f.Draw(rec)

	if len(rec.ops) == 0 || rec.ops[0] != "fill" {
		t.Fatalf("background fill must come first, ops = %v", rec.ops)
	}
	// One dot per ambient star plus the shooting star's head dot.
	if rec.dots != f.StarCount()+1 {
		t.Errorf("dots = %d, want %d", rec.dots, f.StarCount()+1)
	}
	if rec.trails != 1 {
		t.Errorf("trails = %d, want 1", rec.trails)
	}
}
