// Package autotile builds blob transition tiles between two textures.
//
// A neighbour mask has one bit per compass direction. Bit set means that
// neighbour belongs to the foreground texture B. Diagonal bits only matter
// when both adjacent cardinals are set; every other diagonal collapses
// during deduplication, which is what reduces 256 masks to the blob set.
package autotile

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/stevenvo780/duo-eterno/internal/palette"
)

const (
	N  uint8 = 1 << iota // 1
	NE                   // 2
	E                    // 4
	SE                   // 8
	S                    // 16
	SW                   // 32
	W                    // 64
	NW                   // 128
)

// Options tunes synthesis. A non-nil Palette quantizes every blended tile
// before deduplication so the set stays inside it.
type Options struct {
	Palette *palette.Palette
}

// Set is the deduplicated transition set.
type Set struct {
	Size int

	// Tiles are numbered in the order their first mask was generated.
	Tiles []*image.NRGBA

	// MaskToIndex maps every neighbour mask to a tile index.
	MaskToIndex [256]int

	// Canonical holds the first mask that produced each tile.
	Canonical []uint8
}

// Lookup returns the tile for an observed neighbourhood.
func (s *Set) Lookup(mask uint8) *image.NRGBA {
	return s.Tiles[s.MaskToIndex[mask]]
}

// Synthesize blends a (background) and b (foreground) for all 256 masks and
// collapses byte-identical results onto one index.
func Synthesize(a, b image.Image, opts Options) (*Set, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return nil, fmt.Errorf("autotile: tile sizes differ (%v vs %v)", ab.Size(), bb.Size())
	}
	if ab.Dx() != ab.Dy() || ab.Dx() == 0 {
		return nil, fmt.Errorf("autotile: tiles must be square and non-empty, got %v", ab.Size())
	}
	size := ab.Dx()
	an, bn := toNRGBA(a), toNRGBA(b)

	set := &Set{Size: size}
	buckets := make(map[uint64][]int)
	for m := 0; m < 256; m++ {
		tile := Blend(an, bn, Weights(uint8(m), size))
		if opts.Palette != nil {
			tile = palette.Quantize(tile, *opts.Palette)
		}
		h := xxhash.Sum64(tile.Pix)
		idx := -1
		for _, cand := range buckets[h] {
			if bytes.Equal(set.Tiles[cand].Pix, tile.Pix) {
				idx = cand
				break
			}
		}
		if idx < 0 {
			idx = len(set.Tiles)
			set.Tiles = append(set.Tiles, tile)
			set.Canonical = append(set.Canonical, uint8(m))
			buckets[h] = append(buckets[h], idx)
		}
		set.MaskToIndex[m] = idx
	}
	return set, nil
}

// Mask builds the raw 0/1 occupancy for mask at size: a band of
// max(1,size/4) along each set cardinal, full fill when all four cardinals
// are set, and an inner-corner notch wherever two adjacent cardinals are
// set but the diagonal between them is not.
func Mask(mask uint8, size int) []float64 {
	m := make([]float64, size*size)
	band := max(1, size/4)
	full := mask&(N|E|S|W) == N|E|S|W
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			on := full ||
				(mask&N != 0 && y < band) ||
				(mask&S != 0 && y >= size-band) ||
				(mask&W != 0 && x < band) ||
				(mask&E != 0 && x >= size-band)
			if on {
				m[y*size+x] = 1
			}
		}
	}

	notch := max(1, band/2)
	corners := []struct {
		a, b, diag uint8
		left, top  bool
	}{
		{N, E, NE, false, true},
		{S, E, SE, false, false},
		{S, W, SW, true, false},
		{N, W, NW, true, true},
	}
	for _, c := range corners {
		if mask&c.a == 0 || mask&c.b == 0 || mask&c.diag != 0 {
			continue
		}
		x0, y0 := size-notch, size-notch
		if c.left {
			x0 = 0
		}
		if c.top {
			y0 = 0
		}
		for y := y0; y < y0+notch; y++ {
			for x := x0; x < x0+notch; x++ {
				m[y*size+x] = 0
			}
		}
	}
	return m
}

// Weights softens Mask by mixing in its 3x3 box average (edge density):
// w = 0.5*m + 0.5*box/9. Edges clamp rather than wrap since transition
// tiles border different neighbours on each side.
func Weights(mask uint8, size int) []float64 {
	m := Mask(mask, size)
	w := make([]float64, len(m))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			sum := 0.0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					sum += m[clampi(y+dy, size)*size+clampi(x+dx, size)]
				}
			}
			w[y*size+x] = 0.5*m[y*size+x] + 0.5*sum/9
		}
	}
	return w
}

func clampi(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Blend computes a*(1-w) + b*w per channel.
func Blend(a, b *image.NRGBA, w []float64) *image.NRGBA {
	size := a.Rect.Dx()
	out := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		ra := a.Pix[y*a.Stride : y*a.Stride+4*size]
		rb := b.Pix[y*b.Stride : y*b.Stride+4*size]
		ro := out.Pix[y*out.Stride : y*out.Stride+4*size]
		for x := 0; x < size; x++ {
			t := w[y*size+x]
			for c := 0; c < 4; c++ {
				i := 4*x + c
				ro[i] = uint8(math.Round(float64(ra[i])*(1-t) + float64(rb[i])*t))
			}
		}
	}
	return out
}

func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.SetNRGBA(x, y, color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA))
		}
	}
	return out
}

// MaskAt reads the eight neighbours of (x,y) through fg and packs them.
// fg reports whether a cell holds the foreground biome.
func MaskAt(fg func(x, y int) bool, x, y int) uint8 {
	var m uint8
	dirs := [8]struct {
		dx, dy int
		bit    uint8
	}{
		{0, -1, N}, {1, -1, NE}, {1, 0, E}, {1, 1, SE},
		{0, 1, S}, {-1, 1, SW}, {-1, 0, W}, {-1, -1, NW},
	}
	for _, d := range dirs {
		if fg(x+d.dx, y+d.dy) {
			m |= d.bit
		}
	}
	return m
}
