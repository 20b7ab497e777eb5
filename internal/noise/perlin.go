package noise

import (
	"math"

	"github.com/stevenvo780/duo-eterno/internal/seed"
)

// 2D gradient directions, selected by hash&7.
var (
	gradX = [8]float64{1, -1, 0, 0, 1, -1, 1, -1}
	gradY = [8]float64{0, 0, 1, -1, 1, 1, -1, -1}
)

// Perlin is lattice gradient noise whose lattice repeats every period cells.
type Perlin struct {
	perm   [512]int
	period int
}

// NewPerlin shuffles a 256-entry permutation with a generator scoped to s and
// duplicates it so hash lookups never need a bounds check.
func NewPerlin(s uint64, period int) *Perlin {
	if period < 1 {
		period = 1
	}
	p := &Perlin{period: period}
	rng := seed.NewRNG(s)
	for i := 0; i < 256; i++ {
		p.perm[i] = i
	}
	for i := 0; i < 256; i++ {
		j := rng.IntN(256-i) + i
		p.perm[i], p.perm[j] = p.perm[j], p.perm[i]
		p.perm[i+256] = p.perm[i]
	}
	return p
}

func (p *Perlin) Period() int { return p.period }

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func (p *Perlin) hash(xi, yi int) int {
	return p.perm[p.perm[xi&255]+(yi&255)]
}

func (p *Perlin) grad(h int, x, y float64) float64 {
	i := h & 7
	return gradX[i]*x + gradY[i]*y
}

// Eval returns noise at lattice-space coordinates in roughly [-1,1].
// Sampling at x and x+period gives the same value.
func (p *Perlin) Eval(x, y float64) float64 {
	x0f := math.Floor(x)
	y0f := math.Floor(y)
	fx := x - x0f
	fy := y - y0f

	x0 := wrap(int(x0f), p.period)
	y0 := wrap(int(y0f), p.period)
	x1 := wrap(x0+1, p.period)
	y1 := wrap(y0+1, p.period)

	n00 := p.grad(p.hash(x0, y0), fx, fy)
	n10 := p.grad(p.hash(x1, y0), fx-1, fy)
	n01 := p.grad(p.hash(x0, y1), fx, fy-1)
	n11 := p.grad(p.hash(x1, y1), fx-1, fy-1)

	u := fade(fx)
	v := fade(fy)
	return lerp(lerp(n00, n10, u), lerp(n01, n11, u), v)
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
