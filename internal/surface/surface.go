// Package surface derives lighting side maps from a finished height field.
package surface

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/stevenvo780/duo-eterno/internal/field"
	"github.com/stevenvo780/duo-eterno/internal/seam"
)

const (
	DefaultStrength  = 2.0
	DefaultAOSamples = 8
)

// NormalMap runs 3x3 Sobel kernels over h with wrap padding and encodes
// normalize(-Gx*strength, -Gy*strength, 1) remapped from [-1,1] to RGB.
func NormalMap(h *field.Field, strength float64) *image.RGBA {
	if strength <= 0 {
		strength = DefaultStrength
	}
	n := h.Size
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			tl, t, tr := h.At(x-1, y-1), h.At(x, y-1), h.At(x+1, y-1)
			l, r := h.At(x-1, y), h.At(x+1, y)
			bl, b, br := h.At(x-1, y+1), h.At(x, y+1), h.At(x+1, y+1)

			gx := (tr + 2*r + br) - (tl + 2*l + bl)
			gy := (bl + 2*b + br) - (tl + 2*t + tr)

			v := mgl32.Vec3{float32(-gx * strength), float32(-gy * strength), 1}.Normalize()
			img.SetRGBA(x, y, color.RGBA{
				R: encode(v.X()),
				G: encode(v.Y()),
				B: encode(v.Z()),
				A: 255,
			})
		}
	}
	seam.Enforce(img)
	return img
}

func encode(c float32) uint8 {
	return toByte(float64(c)*0.5 + 0.5)
}

// DefaultAORadius is max(1, size/16).
func DefaultAORadius(size int) int {
	return max(1, size/16)
}

// AmbientOcclusion counts, over samples evenly spaced compass directions at
// radius pixels, how often the wrapped neighbour sits above the center.
// Output is 0.6*ao + 0.4 so creases never render fully black.
func AmbientOcclusion(h *field.Field, samples, radius int) *image.Gray {
	if samples <= 0 {
		samples = DefaultAOSamples
	}
	if radius <= 0 {
		radius = DefaultAORadius(h.Size)
	}
	offsets := make([][2]int, samples)
	for i := range offsets {
		a := 2 * math.Pi * float64(i) / float64(samples)
		offsets[i] = [2]int{
			int(math.Round(math.Cos(a) * float64(radius))),
			int(math.Round(math.Sin(a) * float64(radius))),
		}
	}
	n := h.Size
	img := image.NewGray(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c := h.At(x, y)
			hits := 0
			for _, o := range offsets {
				if h.At(x+o[0], y+o[1]) > c {
					hits++
				}
			}
			ao := 1 - float64(hits)/float64(samples)
			img.SetGray(x, y, color.Gray{Y: toByte(0.6*ao + 0.4)})
		}
	}
	seam.Enforce(img)
	return img
}

// HeightImage encodes h as 8-bit grayscale.
func HeightImage(h *field.Field) *image.Gray {
	n := h.Size
	img := image.NewGray(image.Rect(0, 0, n, n))
	for i, v := range h.Data {
		img.Pix[(i/n)*img.Stride+i%n] = toByte(v)
	}
	seam.Enforce(img)
	return img
}

func toByte(v float64) uint8 {
	return uint8(math.Round(field.Clamp01(v) * 255))
}

// Options tunes Derive. Zero values pick the defaults above.
type Options struct {
	Strength  float64
	AOSamples int
	AORadius  int
}

// Maps bundles the side images written next to a texture.
type Maps struct {
	Height *image.Gray
	Normal *image.RGBA
	AO     *image.Gray
}

func Derive(h *field.Field, opts Options) Maps {
	return Maps{
		Height: HeightImage(h),
		Normal: NormalMap(h, opts.Strength),
		AO:     AmbientOcclusion(h, opts.AOSamples, opts.AORadius),
	}
}
