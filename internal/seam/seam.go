// Package seam forces and checks the tiling invariant on finished images:
// the last row equals the first row and the last column equals the first.
package seam

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
)

// Axis names the edge that failed verification.
type Axis string

const (
	Row    Axis = "row"
	Column Axis = "column"
)

// SeamError reports the first pixel where the edges disagree.
type SeamError struct {
	Name  string
	Axis  Axis
	Index int
}

func (e *SeamError) Error() string {
	return fmt.Sprintf("seam mismatch in %q: %s edge differs at index %d", e.Name, e.Axis, e.Index)
}

// buffer exposes the packed pixel storage shared by the std image types.
func buffer(img image.Image) (pix []byte, stride, bpp int, ok bool) {
	switch m := img.(type) {
	case *image.RGBA:
		return m.Pix, m.Stride, 4, true
	case *image.NRGBA:
		return m.Pix, m.Stride, 4, true
	case *image.Gray:
		return m.Pix, m.Stride, 1, true
	}
	return nil, 0, 0, false
}

// Enforce overwrites the last row and column with the first.
// Image types without a packed buffer are enforced through draw.Image.
func Enforce(img image.Image) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 2 || h < 2 {
		return
	}
	pix, stride, bpp, ok := buffer(img)
	if !ok {
		dst, ok := img.(draw.Image)
		if !ok {
			return
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, b.Max.Y-1, img.At(x, b.Min.Y))
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			dst.Set(b.Max.X-1, y, img.At(b.Min.X, y))
		}
		return
	}
	rowBytes := w * bpp
	copy(pix[(h-1)*stride:(h-1)*stride+rowBytes], pix[:rowBytes])
	for y := 0; y < h; y++ {
		off := y * stride
		copy(pix[off+(w-1)*bpp:off+w*bpp], pix[off:off+bpp])
	}
}

// Verify checks the seam with exact integer equality. It never repairs.
func Verify(name string, img image.Image) error {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix, stride, bpp, ok := buffer(img)
	if !ok {
		for x := 0; x < w; x++ {
			if !sameColor(img, b.Min.X+x, b.Min.Y, b.Min.X+x, b.Max.Y-1) {
				return &SeamError{Name: name, Axis: Row, Index: x}
			}
		}
		for y := 0; y < h; y++ {
			if !sameColor(img, b.Min.X, b.Min.Y+y, b.Max.X-1, b.Min.Y+y) {
				return &SeamError{Name: name, Axis: Column, Index: y}
			}
		}
		return nil
	}
	rowBytes := w * bpp
	first := pix[:rowBytes]
	last := pix[(h-1)*stride : (h-1)*stride+rowBytes]
	if !bytes.Equal(first, last) {
		for x := 0; x < w; x++ {
			if !bytes.Equal(first[x*bpp:(x+1)*bpp], last[x*bpp:(x+1)*bpp]) {
				return &SeamError{Name: name, Axis: Row, Index: x}
			}
		}
	}
	for y := 0; y < h; y++ {
		off := y * stride
		if !bytes.Equal(pix[off:off+bpp], pix[off+(w-1)*bpp:off+w*bpp]) {
			return &SeamError{Name: name, Axis: Column, Index: y}
		}
	}
	return nil
}

func sameColor(img image.Image, x0, y0, x1, y1 int) bool {
	r0, g0, b0, a0 := img.At(x0, y0).RGBA()
	r1, g1, b1, a1 := img.At(x1, y1).RGBA()
	return r0 == r1 && g0 == g1 && b0 == b1 && a0 == a1
}
