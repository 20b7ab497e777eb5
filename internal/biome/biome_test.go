package biome

import (
	"crypto/sha256"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stevenvo780/duo-eterno/internal/seam"
	"github.com/stevenvo780/duo-eterno/internal/seed"
)

func hashImage(img *image.RGBA) [32]byte {
	return sha256.Sum256(img.Pix)
}

// TestEveryKindSynthesizes verifies each registered kind produces a valid,
// seamless, opaque texture across sizes
func TestEveryKindSynthesizes(t *testing.T) {
	for _, k := range Kinds() {
		for _, size := range []int{8, 13, 32} {
			s := seed.Derive(7, string(k), "0")
			res, err := Synthesize(k, size, s, Options{})
			if err != nil {
				t.Fatalf("Synthesize(%s, %d): %v", k, size, err)
			}
			if b := res.Image.Bounds(); b.Dx() != size || b.Dy() != size {
				t.Fatalf("%s size %d: image bounds %v", k, size, b)
			}
			if res.Height.Size != size {
				t.Fatalf("%s size %d: height size %d", k, size, res.Height.Size)
			}
			if err := seam.Verify(string(k), res.Image); err != nil {
				t.Errorf("%s size %d: %v", k, size, err)
			}
			if !res.Height.SeamExact() {
				t.Errorf("%s size %d: height field not seamless", k, size)
			}
			for i, v := range res.Height.Data {
				if math.IsNaN(v) || v < 0 || v > 1 {
					t.Fatalf("%s size %d: height[%d] = %f, expected in [0,1]", k, size, i, v)
				}
			}
			for i := 3; i < len(res.Image.Pix); i += 4 {
				if res.Image.Pix[i] != 255 {
					t.Fatalf("%s size %d: alpha %d at byte %d, expected opaque", k, size, res.Image.Pix[i], i)
				}
			}
		}
	}
}

// TestSynthesizeDeterministic verifies repeated synthesis gives identical bytes
func TestSynthesizeDeterministic(t *testing.T) {
	for _, k := range Kinds() {
		a, err := Synthesize(k, 24, 99, Options{})
		if err != nil {
			t.Fatal(err)
		}
		b, err := Synthesize(k, 24, 99, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if hashImage(a.Image) != hashImage(b.Image) {
			t.Errorf("%s: image differs between identical calls", k)
		}
		for i := range a.Height.Data {
			if a.Height.Data[i] != b.Height.Data[i] {
				t.Errorf("%s: height differs at %d", k, i)
				break
			}
		}
	}
}

func TestSeedChangesOutput(t *testing.T) {
	for _, k := range Kinds() {
		a, _ := Synthesize(k, 32, 1, Options{})
		b, _ := Synthesize(k, 32, 2, Options{})
		if hashImage(a.Image) == hashImage(b.Image) {
			t.Errorf("%s: seeds 1 and 2 produced identical images", k)
		}
	}
}

// TestStoneScenario covers the 32px stone tile from master seed 7
func TestStoneScenario(t *testing.T) {
	s := seed.Derive(7, string(Stone), "0")
	res, err := Synthesize(Stone, 32, s, Options{})
	if err != nil {
		t.Fatal(err)
	}
	distinct := make(map[color.RGBA]struct{})
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			distinct[res.Image.RGBAAt(x, y)] = struct{}{}
		}
	}
	if len(distinct) > 32*32 {
		t.Errorf("distinct colors = %d, expected <= %d", len(distinct), 32*32)
	}
	if len(distinct) < 2 {
		t.Errorf("stone texture is a single flat color")
	}
	again, _ := Synthesize(Stone, 32, s, Options{})
	if hashImage(res.Image) != hashImage(again.Image) {
		t.Error("stone scenario not reproducible")
	}
}

func TestSynthesizeErrors(t *testing.T) {
	if _, err := Synthesize("basalt", 32, 1, Options{}); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unknown kind error = %v, expected ErrUnknownKind", err)
	}
	if _, err := Synthesize(Stone, 7, 1, Options{}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("size 7 error = %v, expected ErrInvalidSize", err)
	}
	if _, err := Synthesize(Stone, 16, 1, Options{Contrast: 2}); err == nil {
		t.Error("contrast 2 accepted, expected range error")
	}
}

func TestContrastKeepsSeam(t *testing.T) {
	plain, err := Synthesize(Desert, 32, 5, Options{})
	if err != nil {
		t.Fatal(err)
	}
	boosted, err := Synthesize(Desert, 32, 5, Options{Contrast: 0.4})
	if err != nil {
		t.Fatal(err)
	}
	if hashImage(plain.Image) == hashImage(boosted.Image) {
		t.Error("contrast boost left the image unchanged")
	}
	if err := seam.Verify("desert", boosted.Image); err != nil {
		t.Error(err)
	}
}

func TestRegistry(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 12 || kinds[0] != Stone || kinds[11] != Metal {
		t.Fatalf("Kinds() = %v, expected 12 kinds from stone to metal", kinds)
	}
	tags := TagTable()
	if !tags[Lava].Hazard || tags[Stone].Hazard {
		t.Errorf("hazard tags wrong: lava=%v stone=%v", tags[Lava].Hazard, tags[Stone].Hazard)
	}
	for k, tg := range tags {
		if tg.WalkCost < 0 || tg.Friction < 0 || tg.Friction > 1 || tg.Flammable < 0 || tg.Flammable > 1 || tg.Fluid < 0 || tg.Fluid > 1 {
			t.Errorf("%s tags out of range: %+v", k, tg)
		}
	}
	for _, k := range kinds {
		def, err := Lookup(k)
		if err != nil {
			t.Fatal(err)
		}
		if n := len(def.Ramp.Colors); n < 2 || n > 4 {
			t.Errorf("%s ramp has %d colors, expected 2-4", k, n)
		}
	}
}

func TestParseKinds(t *testing.T) {
	got, err := ParseKinds(" Stone, lava,,ocean ")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != Stone || got[1] != Lava || got[2] != Ocean {
		t.Errorf("ParseKinds = %v", got)
	}
	if _, err := ParseKinds("stone,granite"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseKinds with granite error = %v, expected ErrUnknownKind", err)
	}
}

func TestRampEndpointsAndCurves(t *testing.T) {
	r := ramp(Linear, "a", "#000000", "b", "#ffffff")
	if r.At(0) != (color.RGBA{0, 0, 0, 255}) || r.At(1) != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("ramp endpoints = %v, %v", r.At(0), r.At(1))
	}
	if mid := r.At(0.5); mid.R != 128 {
		t.Errorf("linear midpoint R = %d, expected 128", mid.R)
	}
	for _, c := range []Curve{Linear, EaseIn, EaseOut, EaseInOut, Sine} {
		if c.apply(0) != 0 || math.Abs(c.apply(1)-1) > 1e-12 {
			t.Errorf("curve %s endpoints = %f, %f", c, c.apply(0), c.apply(1))
		}
		prev := -1.0
		for i := 0; i <= 20; i++ {
			v := c.apply(float64(i) / 20)
			if v < prev {
				t.Errorf("curve %s not monotonic at step %d", c, i)
			}
			prev = v
		}
	}
	if EaseIn.apply(0.5) >= 0.5 || EaseOut.apply(0.5) <= 0.5 {
		t.Errorf("ease curves wrong: in(0.5)=%f out(0.5)=%f", EaseIn.apply(0.5), EaseOut.apply(0.5))
	}
}

func TestPoissonDiskSpacing(t *testing.T) {
	size, r := 32, 3.2
	pts := poissonDisk(size, 11, r, 20)
	if len(pts) < 10 {
		t.Fatalf("only %d points placed", len(pts))
	}
	fs := float64(size)
	for i := range pts {
		if pts[i][0] < 0 || pts[i][0] >= fs || pts[i][1] < 0 || pts[i][1] >= fs {
			t.Fatalf("point %v outside tile", pts[i])
		}
		for j := i + 1; j < len(pts); j++ {
			dx := math.Abs(pts[i][0] - pts[j][0])
			dy := math.Abs(pts[i][1] - pts[j][1])
			dx = math.Min(dx, fs-dx)
			dy = math.Min(dy, fs-dy)
			if math.Sqrt(dx*dx+dy*dy) < r-1e-9 {
				t.Fatalf("points %d and %d closer than %f", i, j, r)
			}
		}
	}
}

func TestDivisors(t *testing.T) {
	if fitDivisor(32, 4) != 4 || fitDivisor(9, 4) != 3 || fitDivisor(13, 4) != 1 {
		t.Errorf("fitDivisor: 32->%d 9->%d 13->%d", fitDivisor(32, 4), fitDivisor(9, 4), fitDivisor(13, 4))
	}
	if tileCells(32) != 4 || tileCells(8) != 2 || tileCells(12) != 3 || tileCells(13) != 1 {
		t.Errorf("tileCells: 32->%d 8->%d 12->%d 13->%d", tileCells(32), tileCells(8), tileCells(12), tileCells(13))
	}
}

func BenchmarkSynthesizeStone64(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Synthesize(Stone, 64, uint64(i), Options{}); err != nil {
			b.Fatal(err)
		}
	}
}
