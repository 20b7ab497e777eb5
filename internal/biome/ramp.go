package biome

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/stevenvo780/duo-eterno/internal/field"
	"github.com/stevenvo780/duo-eterno/internal/palette"
)

// Curve reshapes the ramp parameter before color lookup.
type Curve string

const (
	Linear    Curve = "linear"
	EaseIn    Curve = "ease_in"
	EaseOut   Curve = "ease_out"
	EaseInOut Curve = "ease_in_out"
	Sine      Curve = "sine"
)

func (c Curve) apply(t float64) float64 {
	t = field.Clamp01(t)
	switch c {
	case EaseIn:
		return t * t
	case EaseOut:
		return 1 - (1-t)*(1-t)
	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		u := -2*t + 2
		return 1 - u*u/2
	case Sine:
		return math.Sin(t * math.Pi / 2)
	}
	return t
}

type NamedColor struct {
	Name  string
	Color color.RGBA
}

// Ramp is a short gradient of named colors, evenly spaced over [0,1].
type Ramp struct {
	Colors []NamedColor
	Curve  Curve
}

func ramp(curve Curve, pairs ...string) Ramp {
	if len(pairs)%2 != 0 {
		panic("biome: ramp needs name/hex pairs")
	}
	r := Ramp{Curve: curve}
	for i := 0; i < len(pairs); i += 2 {
		r.Colors = append(r.Colors, NamedColor{Name: pairs[i], Color: palette.MustHex(pairs[i+1])})
	}
	return r
}

// At interpolates the ramp at t in [0,1].
func (r Ramp) At(t float64) color.RGBA {
	switch len(r.Colors) {
	case 0:
		return color.RGBA{A: 255}
	case 1:
		return r.Colors[0].Color
	}
	t = r.Curve.apply(t)
	pos := t * float64(len(r.Colors)-1)
	i := int(pos)
	if i >= len(r.Colors)-1 {
		return r.Colors[len(r.Colors)-1].Color
	}
	return mix(r.Colors[i].Color, r.Colors[i+1].Color, pos-float64(i))
}

func (r Ramp) String() string {
	s := ""
	for i, c := range r.Colors {
		if i > 0 {
			s += " > "
		}
		s += fmt.Sprintf("%s %s", c.Name, palette.Hex(c.Color))
	}
	if r.Curve != "" && r.Curve != Linear {
		s += " (" + string(r.Curve) + ")"
	}
	return s
}

// paint colors every pixel of h through the ramp.
func paint(h *field.Field, r Ramp) *image.RGBA {
	n := h.Size
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			img.SetRGBA(x, y, r.At(h.Data[y*n+x]))
		}
	}
	return img
}

func mix(a, b color.RGBA, t float64) color.RGBA {
	t = field.Clamp01(t)
	ch := func(p, q uint8) uint8 {
		return uint8(math.Round(float64(p) + t*(float64(q)-float64(p))))
	}
	return color.RGBA{ch(a.R, b.R), ch(a.G, b.G), ch(a.B, b.B), 255}
}

// tint blends pixel (x,y) toward c by t.
func tint(img *image.RGBA, x, y int, c color.RGBA, t float64) {
	b := img.Bounds()
	x = field.Wrap(x, b.Dx())
	y = field.Wrap(y, b.Dy())
	img.SetRGBA(x, y, mix(img.RGBAAt(x, y), c, t))
}

func smoothstep(e0, e1, v float64) float64 {
	if e0 == e1 {
		if v < e0 {
			return 0
		}
		return 1
	}
	t := field.Clamp01((v - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}
