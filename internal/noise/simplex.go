package noise

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/stevenvo780/duo-eterno/internal/field"
)

// Simplex samples 4D opensimplex noise on a torus embedded in 4D: each axis
// of the tile maps to a full circle, so the result repeats exactly at the
// tile edge. radius controls feature scale (larger is finer).
func Simplex(size int, s uint64, radius float64) *field.Field {
	if radius <= 0 {
		radius = 1
	}
	n := opensimplex.NewNormalized(int64(s))
	out := field.New(size)
	step := 2 * math.Pi / float64(size)
	for y := 0; y < size; y++ {
		ay := float64(y) * step
		cy, sy := math.Cos(ay)*radius, math.Sin(ay)*radius
		for x := 0; x < size; x++ {
			ax := float64(x) * step
			out.Data[y*size+x] = field.Clamp01(n.Eval4(math.Cos(ax)*radius, math.Sin(ax)*radius, cy, sy))
		}
	}
	return out
}
