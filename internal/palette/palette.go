// Package palette holds fixed color palettes and the error-diffusion
// quantizer that maps textures onto them.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var (
	ErrMalformed = errors.New("malformed palette")
	ErrEmpty     = errors.New("palette has no colors")
)

// Palette is an ordered list of unique opaque colors. Index order is the
// insertion order. The zero value is empty and unusable.
type Palette struct {
	colors []color.RGBA
}

// New copies colors into a palette, forcing alpha to 255. Duplicate RGB
// triples are rejected.
func New(colors []color.RGBA) (Palette, error) {
	if len(colors) == 0 {
		return Palette{}, ErrEmpty
	}
	seen := make(map[[3]uint8]int, len(colors))
	out := make([]color.RGBA, len(colors))
	for i, c := range colors {
		key := [3]uint8{c.R, c.G, c.B}
		if j, dup := seen[key]; dup {
			return Palette{}, fmt.Errorf("%w: entry %d duplicates entry %d (%s)", ErrMalformed, i, j, Hex(c))
		}
		seen[key] = i
		out[i] = color.RGBA{c.R, c.G, c.B, 255}
	}
	return Palette{colors: out}, nil
}

func (p Palette) Len() int { return len(p.colors) }

func (p Palette) At(i int) color.RGBA { return p.colors[i] }

// Colors returns a copy of the entries.
func (p Palette) Colors() []color.RGBA {
	out := make([]color.RGBA, len(p.colors))
	copy(out, p.colors)
	return out
}

// Contains reports whether the RGB triple of c is an entry.
func (p Palette) Contains(c color.RGBA) bool {
	for _, e := range p.colors {
		if e.R == c.R && e.G == c.G && e.B == c.B {
			return true
		}
	}
	return false
}

// Nearest returns the index of the closest entry by squared RGB distance.
// Ties go to the lower index.
func (p Palette) Nearest(r, g, b float64) int {
	best := 0
	bestD := -1.0
	for i, e := range p.colors {
		dr := r - float64(e.R)
		dg := g - float64(e.G)
		db := b - float64(e.B)
		d := dr*dr + dg*dg + db*db
		if bestD < 0 || d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex accepts "#rrggbb", "rrggbb" or the short "#rgb" form.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 3 {
		return color.RGBA{}, fmt.Errorf("%w: bad hex color %q", ErrMalformed, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: bad hex color %q", ErrMalformed, s)
	}
	if len(h) == 3 {
		r, g, b := uint8(v>>8&0xf), uint8(v>>4&0xf), uint8(v&0xf)
		return color.RGBA{r * 17, g * 17, b * 17, 255}, nil
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
}

// MustHex panics on a malformed literal. Only for package-level tables.
func MustHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// defaultHex is the DB32 reference palette.
var defaultHex = []string{
	"000000", "222034", "45283c", "663931", "8f563b", "df7126", "d9a066", "eec39a",
	"fbf236", "99e550", "6abe30", "37946e", "4b692f", "524b24", "323c39", "3f3f74",
	"306082", "5b6ee1", "639bff", "5fcde4", "cbdbfc", "ffffff", "9badb7", "847e87",
	"696a6a", "595652", "76428a", "ac3232", "d95763", "d77bba", "8f974a", "8a6f30",
}

// Default returns the built-in 32-color palette.
func Default() Palette {
	colors := make([]color.RGBA, len(defaultHex))
	for i, h := range defaultHex {
		colors[i] = MustHex(h)
	}
	p, err := New(colors)
	if err != nil {
		panic(err)
	}
	return p
}
