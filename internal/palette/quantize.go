package palette

import (
	"image"
	"image/color"
	"math"
)

// Quantize maps every pixel with non-zero alpha onto its nearest palette
// entry with Floyd-Steinberg error diffusion. Error only flows into pixels
// that are themselves non-transparent. Alpha is copied through unchanged.
func Quantize(img image.Image, p Palette) *image.NRGBA {
	out := toNRGBA(img)
	w, h := out.Rect.Dx(), out.Rect.Dy()
	if p.Len() == 0 || w == 0 || h == 0 {
		return out
	}

	// two rows of RGB error, current and next
	cur := make([]float64, 3*w)
	next := make([]float64, 3*w)
	opaque := func(x, y int) bool {
		return x >= 0 && x < w && y < h && out.Pix[y*out.Stride+x*4+3] != 0
	}
	spread := func(row []float64, x int, er, eg, eb, wgt float64) {
		row[3*x] += er * wgt
		row[3*x+1] += eg * wgt
		row[3*x+2] += eb * wgt
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := y*out.Stride + x*4
			if out.Pix[off+3] == 0 {
				continue
			}
			r := clampByte(float64(out.Pix[off]) + cur[3*x])
			g := clampByte(float64(out.Pix[off+1]) + cur[3*x+1])
			bl := clampByte(float64(out.Pix[off+2]) + cur[3*x+2])

			c := p.colors[p.Nearest(r, g, bl)]
			out.Pix[off] = c.R
			out.Pix[off+1] = c.G
			out.Pix[off+2] = c.B

			er := r - float64(c.R)
			eg := g - float64(c.G)
			eb := bl - float64(c.B)
			if opaque(x+1, y) {
				spread(cur, x+1, er, eg, eb, 7.0/16)
			}
			if opaque(x-1, y+1) {
				spread(next, x-1, er, eg, eb, 3.0/16)
			}
			if opaque(x, y+1) {
				spread(next, x, er, eg, eb, 5.0/16)
			}
			if opaque(x+1, y+1) {
				spread(next, x+1, er, eg, eb, 1.0/16)
			}
		}
		cur, next = next, cur
		clear(next)
	}
	return out
}

// toNRGBA copies img into a fresh zero-origin NRGBA. NRGBA sources are
// copied byte for byte so fully transparent pixels keep their RGB.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+4*b.Dx()], src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		return out
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.SetNRGBA(x, y, color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA))
		}
	}
	return out
}

func clampByte(v float64) float64 {
	return math.Max(0, math.Min(255, v))
}

// Closed reports whether every non-transparent pixel of img is a palette
// entry. Used as a post-condition check on quantized output.
func Closed(img image.Image, p Palette) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			if !p.Contains(color.RGBA{c.R, c.G, c.B, 255}) {
				return false
			}
		}
	}
	return true
}
