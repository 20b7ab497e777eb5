package biome

import (
	"image"
	"math"

	"github.com/stevenvo780/duo-eterno/internal/field"
	"github.com/stevenvo780/duo-eterno/internal/noise"
	"github.com/stevenvo780/duo-eterno/internal/seed"
)

// stone: warped fBm cut by dark Worley cracks along cell borders.
func synthStone(g gen) (*field.Field, *image.RGBA, error) {
	n := g.size
	h, err := g.warpedFBM("fbm", noise.FBMOptions{Octaves: 5, BasePeriod: 4}, float64(n)/8)
	if err != nil {
		return nil, nil, err
	}
	d1, d2 := noise.Worley(n, g.sub("cracks"), g.cells(8))
	edges := noise.Edges(d1, d2)
	for i, e := range edges.Data {
		h.Data[i] = field.Clamp01(h.Data[i] * (0.55 + 0.45*smoothstep(0, 0.15, e)))
	}
	img := paint(h, g.def.Ramp)
	mortar := g.def.accent("mortar")
	for i, e := range edges.Data {
		if e < 0.05 {
			tint(img, i%n, i/n, mortar, 0.8)
		}
	}
	return h, img, nil
}

// grassland: soft fBm ground with Poisson-disk blades.
func synthGrassland(g gen) (*field.Field, *image.RGBA, error) {
	n := g.size
	h := noise.FBM(n, g.sub("fbm"), noise.FBMOptions{BasePeriod: 4})
	r := math.Max(2, float64(n)/10)
	blades := poissonDisk(n, g.sub("blades"), r, 20)
	rng := seed.NewRNG(g.sub("blade-len"))

	type stroke struct{ x, y, length int }
	strokes := make([]stroke, len(blades))
	for i, p := range blades {
		strokes[i] = stroke{int(p[0]), int(p[1]), max(2, n/12) + rng.IntN(2)}
		for k := 0; k < strokes[i].length; k++ {
			x, y := strokes[i].x, strokes[i].y-k
			h.Set(x, y, field.Clamp01(h.At(x, y)+0.15))
		}
	}
	img := paint(h, g.def.Ramp)
	base, tip := g.def.accent("blade"), g.def.accent("blade_tip")
	for _, s := range strokes {
		for k := 0; k < s.length; k++ {
			t := float64(k) / float64(s.length-1)
			tint(img, s.x, s.y-k, mix(base, tip, t), 0.85)
		}
	}
	return h, img, nil
}

// desert: warped ridged dunes with fine wind ripples.
func synthDesert(g gen) (*field.Field, *image.RGBA, error) {
	n := g.size
	dunes := noise.Ridged(n, g.sub("dunes"), noise.FBMOptions{Octaves: 4, BasePeriod: 2})
	h, err := g.warp(dunes, "dunes", float64(n)/6)
	if err != nil {
		return nil, nil, err
	}
	k := float64(max(2, n/8))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			i := y*n + x
			ripple := 0.5 + 0.5*math.Sin(2*math.Pi*(k*float64(y)/float64(n)+0.5*h.Data[i]))
			h.Data[i] = field.Clamp01(0.85*h.Data[i] + 0.15*ripple)
		}
	}
	return h, paint(h, g.def.Ramp), nil
}

// snow: torus simplex drifts over fine fBm, with sparkle crosses.
func synthSnow(g gen) (*field.Field, *image.RGBA, error) {
	n := g.size
	drifts := noise.Simplex(n, g.sub("drift"), 1.0)
	fine := noise.FBM(n, g.sub("fine"), noise.FBMOptions{Octaves: 3, BasePeriod: 8})
	h := field.New(n)
	for i := range h.Data {
		h.Data[i] = field.Clamp01(0.7*drifts.Data[i] + 0.3*fine.Data[i])
	}
	img := paint(h, g.def.Ramp)

	rng := seed.NewRNG(g.sub("sparkle"))
	sparkle := g.def.accent("sparkle")
	count := max(1, n*n/96)
	for i := 0; i < count; i++ {
		x, y := rng.IntN(n), rng.IntN(n)
		tint(img, x, y, sparkle, 1)
		tint(img, x-1, y, sparkle, 0.5)
		tint(img, x+1, y, sparkle, 0.5)
		tint(img, x, y-1, sparkle, 0.5)
		tint(img, x, y+1, sparkle, 0.5)
	}
	return h, img, nil
}

// ocean: warped waves; foam on crests where the negated 5-point Laplacian
// reaches the 92nd percentile.
func synthOcean(g gen) (*field.Field, *image.RGBA, error) {
	n := g.size
	h, err := g.warpedFBM("waves", noise.FBMOptions{Octaves: 4, BasePeriod: 4}, float64(n)/5)
	if err != nil {
		return nil, nil, err
	}
	crest := field.New(n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			crest.Data[y*n+x] = 4*h.At(x, y) - h.At(x-1, y) - h.At(x+1, y) - h.At(x, y-1) - h.At(x, y+1)
		}
	}
	threshold := crest.Percentile(0.92)
	img := paint(h, g.def.Ramp)
	foam := g.def.accent("foam")
	for i, c := range crest.Data {
		if c >= threshold {
			tint(img, i%n, i/n, foam, 0.7)
		}
	}
	return h, img, nil
}

// swamp: muddy fBm with dark Worley puddles.
func synthSwamp(g gen) (*field.Field, *image.RGBA, error) {
	n := g.size
	h := noise.FBM(n, g.sub("mud"), noise.FBMOptions{BasePeriod: 4})
	d1, _ := noise.Worley(n, g.sub("puddles"), g.cells(10))
	d1.Normalize()
	wet := make([]float64, len(h.Data))
	for i, d := range d1.Data {
		wet[i] = smoothstep(0.45, 0.25, d)
		h.Data[i] = field.Clamp01(h.Data[i] * (1 - 0.6*wet[i]))
	}
	img := paint(h, g.def.Ramp)
	puddle := g.def.accent("puddle")
	for i, w := range wet {
		if w > 0.5 {
			tint(img, i%n, i/n, puddle, w)
		}
	}
	return h, img, nil
}

// lava: ridged crust plates split by glowing Worley cracks.
func synthLava(g gen) (*field.Field, *image.RGBA, error) {
	n := g.size
	h := noise.Ridged(n, g.sub("crust"), noise.FBMOptions{BasePeriod: 3})
	d1, d2 := noise.Worley(n, g.sub("plates"), g.cells(8))
	edges := noise.Edges(d1, d2)
	glow := make([]float64, len(h.Data))
	for i, e := range edges.Data {
		glow[i] = 1 - smoothstep(0, 0.18, e)
		h.Data[i] = field.Clamp01(h.Data[i] * (0.4 + 0.6*(1-glow[i])))
	}
	img := paint(h, g.def.Ramp)
	warm, hot := g.def.accent("glow"), g.def.accent("hot")
	for i, v := range glow {
		if v > 0.05 {
			tint(img, i%n, i/n, mix(warm, hot, v), v)
		}
	}
	return h, img, nil
}
