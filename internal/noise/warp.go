package noise

import (
	"fmt"
	"math"

	"github.com/stevenvo780/duo-eterno/internal/field"
)

// Warp resamples f at (x + amount*(2u-1), y + amount*(2v-1)) with toroidal
// bilinear interpolation. All three fields must share a size.
func Warp(f, u, v *field.Field, amount float64) (*field.Field, error) {
	if f.Size != u.Size || f.Size != v.Size {
		return nil, fmt.Errorf("warp: field sizes differ (%d, %d, %d)", f.Size, u.Size, v.Size)
	}
	size := f.Size
	out := field.New(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := y*size + x
			sx := float64(x) + amount*(u.Data[i]*2-1)
			sy := float64(y) + amount*(v.Data[i]*2-1)
			out.Data[i] = field.Clamp01(Bilinear(f, sx, sy))
		}
	}
	return out, nil
}

// Bilinear interpolates f at a fractional position, wrapping on both axes.
func Bilinear(f *field.Field, x, y float64) float64 {
	x0f := math.Floor(x)
	y0f := math.Floor(y)
	tx := x - x0f
	ty := y - y0f
	x0, y0 := int(x0f), int(y0f)
	a := lerp(f.At(x0, y0), f.At(x0+1, y0), tx)
	b := lerp(f.At(x0, y0+1), f.At(x0+1, y0+1), tx)
	return lerp(a, b, ty)
}
