// Package preview renders inspection images: a tile repeated in a grid so
// seams are visible at a glance, scaled up with nearest-neighbour sampling.
package preview

import (
	"fmt"
	"image"
	_ "image/png"
	"os"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/draw"
)

// Tiled repeats img repeat x repeat times.
func Tiled(img image.Image, repeat int) *image.RGBA {
	if repeat < 1 {
		repeat = 1
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w*repeat, h*repeat))
	for ty := 0; ty < repeat; ty++ {
		for tx := 0; tx < repeat; tx++ {
			r := image.Rect(tx*w, ty*h, (tx+1)*w, (ty+1)*h)
			draw.Draw(out, r, img, b.Min, draw.Src)
		}
	}
	return out
}

// Scale enlarges img by an integer factor without smoothing.
func Scale(img image.Image, factor int) *image.RGBA {
	b := img.Bounds()
	if factor <= 1 {
		out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
		return out
	}
	return transform.Resize(img, b.Dx()*factor, b.Dy()*factor, transform.NearestNeighbor)
}

// Seams builds the 3x3 repeat of img, scaled by factor.
func Seams(img image.Image, factor int) *image.RGBA {
	return Scale(Tiled(img, 3), factor)
}

// LoadPNG decodes an image file into RGBA.
func LoadPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}
