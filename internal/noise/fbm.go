package noise

import (
	"github.com/stevenvo780/duo-eterno/internal/field"
	"github.com/stevenvo780/duo-eterno/internal/seed"
)

// FBMOptions controls octave layering. Zero values pick the defaults.
type FBMOptions struct {
	Octaves    int
	Gain       float64
	BasePeriod int // lattice cells across the tile for the first octave
}

func (o FBMOptions) withDefaults() FBMOptions {
	if o.Octaves <= 0 {
		o.Octaves = 4
	}
	if o.Gain <= 0 {
		o.Gain = 0.5
	}
	if o.BasePeriod <= 0 {
		o.BasePeriod = 4
	}
	return o
}

// FBM sums octaves of periodic Perlin noise. Octave i has BasePeriod<<i
// lattice cells across the tile (capped at size) so every octave wraps at the
// tile edge. Pixels are sampled at their centers. The result is remapped to [0,1] and clamped.
func FBM(size int, s uint64, opts FBMOptions) *field.Field {
	opts = opts.withDefaults()
	out := field.New(size)
	amplitude := 1.0
	total := 0.0
	for i := 0; i < opts.Octaves; i++ {
		period := opts.BasePeriod << i
		if period > size {
			period = size
		}
		p := NewPerlin(seed.Derive(s, "octave", seed.Index(i)), period)
		scale := float64(period) / float64(size)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				out.Data[y*size+x] += p.Eval((float64(x)+0.5)*scale, (float64(y)+0.5)*scale) * amplitude
			}
		}
		total += amplitude
		amplitude *= opts.Gain
	}
	for i, v := range out.Data {
		out.Data[i] = field.Clamp01(0.5 + 0.5*v/total)
	}
	return out
}

// Ridged folds one fBm pass into ridges and mixes in a second independent
// pass so the ridges are not perfectly symmetric.
func Ridged(size int, s uint64, opts FBMOptions) *field.Field {
	a := FBM(size, seed.Derive(s, "ridge-a"), opts)
	b := FBM(size, seed.Derive(s, "ridge-b"), opts)
	for i, h := range a.Data {
		r := 2*h - 1
		if r < 0 {
			r = -r
		}
		a.Data[i] = field.Clamp01(0.7*(1-r) + 0.3*b.Data[i])
	}
	return a
}
