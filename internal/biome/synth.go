// Package biome turns seeds into seamless material textures. Each kind owns
// a synthesizer that composes periodic noise into a height field, paints it
// through a color ramp and adds kind-specific decoration.
package biome

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/adjust"

	"github.com/stevenvo780/duo-eterno/internal/field"
	"github.com/stevenvo780/duo-eterno/internal/noise"
	"github.com/stevenvo780/duo-eterno/internal/seam"
	"github.com/stevenvo780/duo-eterno/internal/seed"
)

type Options struct {
	// Contrast is passed to bild's adjust.Contrast, in [-1,1]. 0 disables.
	Contrast float64
}

// Result is a finished, seam-enforced texture and the height field it was
// painted from.
type Result struct {
	Image  *image.RGBA
	Height *field.Field
}

type synthFunc func(g gen) (*field.Field, *image.RGBA, error)

// gen carries the inputs of one synthesis call.
type gen struct {
	size int
	seed uint64
	def  *Definition
}

func (g gen) sub(labels ...string) uint64 { return seed.Derive(g.seed, labels...) }

// Synthesize builds the texture for kind at size from s. The same inputs
// always produce byte-identical output.
func Synthesize(kind Kind, size int, s uint64, opts Options) (*Result, error) {
	def, err := Lookup(kind)
	if err != nil {
		return nil, err
	}
	if size < MinSize {
		return nil, fmt.Errorf("%w: %d < %d", ErrInvalidSize, size, MinSize)
	}
	if opts.Contrast < -1 || opts.Contrast > 1 || math.IsNaN(opts.Contrast) {
		return nil, fmt.Errorf("biome: contrast %v outside [-1,1]", opts.Contrast)
	}

	h, img, err := def.synth(gen{size: size, seed: s, def: def})
	if err != nil {
		return nil, fmt.Errorf("synthesize %s: %w", kind, err)
	}
	if opts.Contrast != 0 {
		img = adjust.Contrast(img, opts.Contrast)
	}
	h.Clamp().EnforceSeam()
	seam.Enforce(img)
	return &Result{Image: img, Height: h}, nil
}

// warpedFBM is fBm pushed through a low-frequency domain warp of amount
// pixels.
func (g gen) warpedFBM(label string, opts noise.FBMOptions, amount float64) (*field.Field, error) {
	base := noise.FBM(g.size, g.sub(label), opts)
	return g.warp(base, label, amount)
}

func (g gen) warp(f *field.Field, label string, amount float64) (*field.Field, error) {
	u := noise.FBM(g.size, g.sub(label, "warp-u"), noise.FBMOptions{Octaves: 2, BasePeriod: 2})
	v := noise.FBM(g.size, g.sub(label, "warp-v"), noise.FBMOptions{Octaves: 2, BasePeriod: 2})
	return noise.Warp(f, u, v, amount)
}

// cells scales a Worley cell count with the tile, never below 2.
func (g gen) cells(div int) int {
	return max(2, g.size/div)
}

// fitDivisor returns the largest d <= want that divides size and leaves
// at least two pixels per part.
func fitDivisor(size, want int) int {
	for d := want; d > 1; d-- {
		if size%d == 0 && size/d >= 2 {
			return d
		}
	}
	return 1
}

// poissonDisk places points over a size x size torus with no two closer
// than r, trying k candidates around each active point (Bridson).
func poissonDisk(size int, s uint64, r float64, k int) [][2]float64 {
	rng := seed.NewRNG(s)
	fs := float64(size)
	var pts [][2]float64
	var active []int

	accept := func(p [2]float64) bool {
		for _, q := range pts {
			dx := math.Abs(p[0] - q[0])
			dy := math.Abs(p[1] - q[1])
			dx = math.Min(dx, fs-dx)
			dy = math.Min(dy, fs-dy)
			if dx*dx+dy*dy < r*r {
				return false
			}
		}
		return true
	}

	pts = append(pts, [2]float64{rng.Float64() * fs, rng.Float64() * fs})
	active = append(active, 0)
	limit := size * size
	for len(active) > 0 && len(pts) < limit {
		ai := rng.IntN(len(active))
		origin := pts[active[ai]]
		placed := false
		for try := 0; try < k; try++ {
			a := rng.Float64() * 2 * math.Pi
			d := r * (1 + rng.Float64())
			c := [2]float64{
				math.Mod(origin[0]+d*math.Cos(a)+fs, fs),
				math.Mod(origin[1]+d*math.Sin(a)+fs, fs),
			}
			if accept(c) {
				pts = append(pts, c)
				active = append(active, len(pts)-1)
				placed = true
				break
			}
		}
		if !placed {
			active[ai] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}
	return pts
}

// boxBlurX averages each row over a window of 2*radius+1, wrapping.
func boxBlurX(f *field.Field, radius int) *field.Field {
	n := f.Size
	out := field.New(n)
	w := float64(2*radius + 1)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			sum := 0.0
			for d := -radius; d <= radius; d++ {
				sum += f.At(x+d, y)
			}
			out.Data[y*n+x] = sum / w
		}
	}
	return out
}
