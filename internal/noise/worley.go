package noise

import (
	"math"

	"github.com/stevenvo780/duo-eterno/internal/field"
	"github.com/stevenvo780/duo-eterno/internal/seed"
)

type point struct{ x, y float64 }

// Worley scatters one jittered feature point per grid cell (cells x cells)
// and returns the nearest and second-nearest toroidal distances, normalized
// by the half diagonal of the tile.
func Worley(size int, s uint64, cells int) (d1, d2 *field.Field) {
	if cells < 1 {
		cells = 1
	}
	if cells > size {
		cells = size
	}
	rng := seed.NewRNG(s)
	cw := float64(size) / float64(cells)
	pts := make([]point, cells*cells)
	for j := 0; j < cells; j++ {
		for i := 0; i < cells; i++ {
			pts[j*cells+i] = point{
				x: (float64(i) + rng.Float64()) * cw,
				y: (float64(j) + rng.Float64()) * cw,
			}
		}
	}

	d1 = field.New(size)
	d2 = field.New(size)
	norm := float64(size) * math.Sqrt2 / 2
	fs := float64(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			best, second := math.Inf(1), math.Inf(1)
			visit := func(p point) {
				d := torusDist(px, py, p.x, p.y, fs)
				if d < best {
					best, second = d, best
				} else if d < second {
					second = d
				}
			}
			if cells <= 8 {
				for _, p := range pts {
					visit(p)
				}
			} else {
				ci := int(px / cw)
				cj := int(py / cw)
				for dj := -3; dj <= 3; dj++ {
					for di := -3; di <= 3; di++ {
						visit(pts[wrap(cj+dj, cells)*cells+wrap(ci+di, cells)])
					}
				}
			}
			if math.IsInf(second, 1) {
				second = best
			}
			d1.Data[y*size+x] = field.Clamp01(best / norm)
			d2.Data[y*size+x] = field.Clamp01(second / norm)
		}
	}
	return d1, d2
}

func torusDist(ax, ay, bx, by, size float64) float64 {
	dx := math.Abs(ax - bx)
	dy := math.Abs(ay - by)
	dx = math.Min(dx, size-dx)
	dy = math.Min(dy, size-dy)
	return math.Sqrt(dx*dx + dy*dy)
}

// Edges returns d2-d1 rescaled to [0,1]; low values sit on cell borders.
func Edges(d1, d2 *field.Field) *field.Field {
	out := field.New(d1.Size)
	for i := range out.Data {
		out.Data[i] = d2.Data[i] - d1.Data[i]
	}
	return out.Normalize()
}
