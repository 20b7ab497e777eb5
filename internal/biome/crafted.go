package biome

import (
	"image"
	"math"

	"github.com/stevenvo780/duo-eterno/internal/field"
	"github.com/stevenvo780/duo-eterno/internal/noise"
	"github.com/stevenvo780/duo-eterno/internal/seed"
)

// wood: horizontal planks with wobbling ring grain, a seam row at the top of
// each plank and one butt joint per plank.
func synthWood(g gen) (*field.Field, *image.RGBA, error) {
	n := g.size
	planks := fitDivisor(n, 4)
	ph := n / planks
	wobble := noise.Wobble(n, g.sub("wobble"), float64(ph)/4)
	grain := noise.FBM(n, g.sub("grain"), noise.FBMOptions{Octaves: 3, BasePeriod: 8})

	rng := seed.NewRNG(g.sub("planks"))
	shade := make([]float64, planks)
	joint := make([]int, planks)
	for p := range shade {
		shade[p] = rng.Float64()
		joint[p] = rng.IntN(n)
	}

	rings := float64(planks * 3)
	h := field.New(n)
	isSeam := make([]bool, n*n)
	for y := 0; y < n; y++ {
		p := y / ph
		for x := 0; x < n; x++ {
			i := y*n + x
			yy := float64(y) + wobble[x]
			ring := 0.5 + 0.5*math.Sin(2*math.Pi*rings*yy/float64(n)+3*grain.Data[i])
			v := 0.55*ring + 0.3*grain.Data[i] + 0.15*shade[p]
			if y%ph == 0 || x == joint[p] {
				v *= 0.3
				isSeam[i] = true
			}
			h.Data[i] = field.Clamp01(v)
		}
	}
	img := paint(h, g.def.Ramp)
	dark := g.def.accent("seam")
	for i, s := range isSeam {
		if s {
			tint(img, i%n, i/n, dark, 0.75)
		}
	}
	return h, img, nil
}

// tileCells picks n in {4,3,2,1} dividing size with cells at least 4px wide.
func tileCells(size int) int {
	for _, d := range []int{4, 3, 2} {
		if size%d == 0 && size/d >= 4 {
			return d
		}
	}
	return 1
}

// tile: grid of ceramic cells with grout and a two-sided bevel.
func synthTile(g gen) (*field.Field, *image.RGBA, error) {
	n := g.size
	cells := tileCells(n)
	cell := n / cells
	fine := noise.FBM(n, g.sub("glaze"), noise.FBMOptions{Octaves: 2, BasePeriod: 8})
	rng := seed.NewRNG(g.sub("cells"))
	tints := make([]float64, cells*cells)
	for i := range tints {
		tints[i] = (rng.Float64() - 0.5) * 0.16
	}

	h := field.New(n)
	grout := make([]bool, n*n)
	for y := 0; y < n; y++ {
		cy := y % cell
		for x := 0; x < n; x++ {
			cx := x % cell
			i := y*n + x
			switch {
			case cx == 0 || cy == 0 || cx == cell-1 || cy == cell-1:
				h.Data[i] = 0.1
				grout[i] = true
			case cx == 1 || cy == 1:
				h.Data[i] = 0.9
			case cx == cell-2 || cy == cell-2:
				h.Data[i] = 0.3
			default:
				h.Data[i] = field.Clamp01(0.6 + 0.1*(fine.Data[i]-0.5) + tints[(y/cell)*cells+x/cell])
			}
		}
	}
	img := paint(h, g.def.Ramp)
	groutColor := g.def.accent("grout")
	for i, gr := range grout {
		if gr {
			tint(img, i%n, i/n, groutColor, 1)
		}
	}
	return h, img, nil
}

// road: aggregate speckle with a centered lane stripe 1/16 of the tile wide.
func synthRoad(g gen) (*field.Field, *image.RGBA, error) {
	n := g.size
	base := noise.FBM(n, g.sub("aggregate"), noise.FBMOptions{Octaves: 3, BasePeriod: 8})
	rng := seed.NewRNG(g.sub("speckle"))
	h := field.New(n)
	for i := range h.Data {
		h.Data[i] = field.Clamp01(0.6*base.Data[i] + 0.4*rng.Float64())
	}
	lane := max(1, n/16)
	x0 := (n - lane) / 2
	for y := 0; y < n; y++ {
		for x := x0; x < x0+lane; x++ {
			h.Data[y*n+x] = field.Clamp01(0.7 + 0.1*(h.Data[y*n+x]-0.5))
		}
	}
	img := paint(h, g.def.Ramp)
	paintColor := g.def.accent("lane")
	for y := 0; y < n; y++ {
		for x := x0; x < x0+lane; x++ {
			tint(img, x, y, paintColor, 0.85)
		}
	}
	return h, img, nil
}

// carpet: sine weave checker with fuzz and two patterned border rows.
func synthCarpet(g gen) (*field.Field, *image.RGBA, error) {
	n := g.size
	k := float64(max(2, n/4))
	fuzz := noise.FBM(n, g.sub("fuzz"), noise.FBMOptions{Octaves: 2, BasePeriod: 16})
	h := field.New(n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			weave := math.Sin(2*math.Pi*k*float64(x)/float64(n)) * math.Sin(2*math.Pi*k*float64(y)/float64(n))
			h.Data[y*n+x] = field.Clamp01(0.5 + 0.25*weave + 0.25*(fuzz.Data[y*n+x]-0.5))
		}
	}
	band := max(1, n/8)
	rows := []int{band, n - 1 - band}
	for _, y := range rows {
		for x := 0; x < n; x++ {
			h.Data[y*n+x] = 0.8
		}
	}
	img := paint(h, g.def.Ramp)
	border := g.def.accent("border")
	for _, y := range rows {
		for x := 0; x < n; x++ {
			if (x+y)%4 < 2 {
				tint(img, x, y, border, 0.9)
			}
		}
	}
	return h, img, nil
}

// metal: horizontally brushed fBm streaks with shallow Worley dents.
func synthMetal(g gen) (*field.Field, *image.RGBA, error) {
	n := g.size
	streaks := boxBlurX(noise.FBM(n, g.sub("brush"), noise.FBMOptions{Octaves: 4, BasePeriod: 8}), max(1, n/8))
	d1, _ := noise.Worley(n, g.sub("dents"), g.cells(12))
	d1.Normalize()
	h := field.New(n)
	for i := range h.Data {
		dent := 0.0
		if d1.Data[i] < 0.2 {
			dent = 0.25 * (1 - d1.Data[i]/0.2)
		}
		h.Data[i] = field.Clamp01(0.2 + 0.8*streaks.Data[i] - dent)
	}
	return h, paint(h, g.def.Ramp), nil
}
