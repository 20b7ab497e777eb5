// Package atlas packs equally sized tiles into one square grid image and
// describes where each one landed.
package atlas

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/stevenvo780/duo-eterno/internal/biome"
)

var (
	ErrDuplicateName = errors.New("duplicate atlas item name")
	ErrEmptyName     = errors.New("empty atlas item name")
	ErrNoItems       = errors.New("atlas has no items")
	ErrTileSize      = errors.New("atlas item does not match tile size")
)

// Item is one tile waiting to be packed.
type Item struct {
	Name      string
	Image     image.Image
	Kind      string
	Seed      uint64
	Variation int
}

// Rect locates a packed item. Seed is serialized as a string so 64-bit
// values survive JSON readers that use doubles.
type Rect struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	W         int    `json:"w"`
	H         int    `json:"h"`
	Index     int    `json:"index"`
	Kind      string `json:"kind,omitempty"`
	Seed      uint64 `json:"seed,string"`
	Variation int    `json:"variation"`
}

func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// TransitionMeta is attached to transition atlases.
type TransitionMeta struct {
	From        string   `json:"from"`
	To          string   `json:"to"`
	Unique      int      `json:"unique"`
	MaskToIndex [256]int `json:"mask_to_index"`
}

type Metadata struct {
	TileSize    int                       `json:"tile_size"`
	Columns     int                       `json:"columns"`
	Rows        int                       `json:"rows"`
	Width       int                       `json:"width"`
	Height      int                       `json:"height"`
	Order       []string                  `json:"order"`
	Items       map[string]Rect           `json:"items"`
	Tags        map[biome.Kind]biome.Tags `json:"tags,omitempty"`
	Transitions *TransitionMeta           `json:"transitions,omitempty"`
}

type Atlas struct {
	Image    *image.NRGBA
	Metadata Metadata
}

// Validate checks names and sizes without allocating the atlas image.
func Validate(items []Item, tileSize int) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	if tileSize <= 0 {
		return fmt.Errorf("%w: tile size %d", ErrTileSize, tileSize)
	}
	seen := make(map[string]int, len(items))
	for i, it := range items {
		if it.Name == "" {
			return fmt.Errorf("%w: item %d", ErrEmptyName, i)
		}
		if j, dup := seen[it.Name]; dup {
			return fmt.Errorf("%w: %q at %d and %d", ErrDuplicateName, it.Name, j, i)
		}
		seen[it.Name] = i
		if it.Image == nil {
			return fmt.Errorf("%w: %q has no image", ErrTileSize, it.Name)
		}
		if b := it.Image.Bounds(); b.Dx() != tileSize || b.Dy() != tileSize {
			return fmt.Errorf("%w: %q is %dx%d, expected %d", ErrTileSize, it.Name, b.Dx(), b.Dy(), tileSize)
		}
	}
	return nil
}

// Grid returns the side of the square grid for n items: ceil(sqrt(n)).
func Grid(n int) (cols, rows int) {
	if n <= 0 {
		return 0, 0
	}
	side := int(math.Ceil(math.Sqrt(float64(n))))
	return side, side
}

// Pack lays items out in insertion order, row-major, and composites each
// image at its cell origin with draw.Src so alpha is kept.
func Pack(items []Item, tileSize int) (*Atlas, error) {
	if err := Validate(items, tileSize); err != nil {
		return nil, err
	}
	cols, rows := Grid(len(items))
	w, h := cols*tileSize, rows*tileSize
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	meta := Metadata{
		TileSize: tileSize,
		Columns:  cols,
		Rows:     rows,
		Width:    w,
		Height:   h,
		Order:    make([]string, 0, len(items)),
		Items:    make(map[string]Rect, len(items)),
	}
	for i, it := range items {
		r := Rect{
			X:         (i % cols) * tileSize,
			Y:         (i / cols) * tileSize,
			W:         tileSize,
			H:         tileSize,
			Index:     i,
			Kind:      it.Kind,
			Seed:      it.Seed,
			Variation: it.Variation,
		}
		draw.Draw(img, r.Bounds(), it.Image, it.Image.Bounds().Min, draw.Src)
		meta.Items[it.Name] = r
		meta.Order = append(meta.Order, it.Name)
	}
	return &Atlas{Image: img, Metadata: meta}, nil
}

// Tile returns the packed pixels of name as a sub-image.
func (a *Atlas) Tile(name string) (image.Image, bool) {
	r, ok := a.Metadata.Items[name]
	if !ok {
		return nil, false
	}
	return a.Image.SubImage(r.Bounds()), true
}
