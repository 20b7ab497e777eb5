package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Wobble returns a periodic 1D offset signal of length size in [-amp, amp],
// from go-perlin evaluated around a circle.
func Wobble(size int, s uint64, amp float64) []float64 {
	p := perlin.NewPerlin(2, 2, 3, int64(s))
	out := make([]float64, size)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(size)
		v := p.Noise2D(1.5*math.Cos(a)+8, 1.5*math.Sin(a)+8)
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		out[i] = v * amp
	}
	return out
}
