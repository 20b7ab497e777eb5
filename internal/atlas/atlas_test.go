package atlas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tile(size int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func items(n, size int) []Item {
	out := make([]Item, n)
	for i := range out {
		out[i] = Item{
			Name:      fmt.Sprintf("stone_%d", i),
			Image:     tile(size, color.NRGBA{uint8(i * 20), uint8(255 - i*20), 7, 255}),
			Kind:      "stone",
			Seed:      uint64(i) << 60,
			Variation: i,
		}
	}
	return out
}

func TestGrid(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 4: 2, 5: 3, 9: 3, 10: 4}
	for n, want := range cases {
		cols, rows := Grid(n)
		if cols != want || rows != want {
			t.Errorf("Grid(%d) = %dx%d, expected %dx%d", n, cols, rows, want, want)
		}
	}
}

// TestPackIntegrity verifies every item appears once, inside bounds, without overlap
func TestPackIntegrity(t *testing.T) {
	in := items(7, 8)
	a, err := Pack(in, 8)
	if err != nil {
		t.Fatal(err)
	}
	m := a.Metadata
	if m.Columns != 3 || m.Rows != 3 || m.Width != 24 || m.Height != 24 {
		t.Fatalf("grid %dx%d (%dx%d px), expected 3x3 (24x24)", m.Columns, m.Rows, m.Width, m.Height)
	}
	if len(m.Items) != len(in) || len(m.Order) != len(in) {
		t.Fatalf("metadata has %d items / %d order entries, expected %d", len(m.Items), len(m.Order), len(in))
	}
	bounds := a.Image.Bounds()
	var rects []image.Rectangle
	for i, it := range in {
		r, ok := m.Items[it.Name]
		if !ok {
			t.Fatalf("item %s missing from metadata", it.Name)
		}
		if m.Order[i] != it.Name || r.Index != i {
			t.Errorf("item %s order=%s index=%d, expected insertion position %d", it.Name, m.Order[i], r.Index, i)
		}
		rb := r.Bounds()
		if !rb.In(bounds) {
			t.Errorf("item %s rect %v outside atlas %v", it.Name, rb, bounds)
		}
		for _, other := range rects {
			if rb.Overlaps(other) {
				t.Errorf("item %s rect %v overlaps %v", it.Name, rb, other)
			}
		}
		rects = append(rects, rb)
		if r.Kind != "stone" || r.Seed != it.Seed || r.Variation != i {
			t.Errorf("item %s metadata %+v does not match input", it.Name, r)
		}
	}
}

func TestPackCompositesPixels(t *testing.T) {
	in := items(5, 4)
	a, err := Pack(in, 4)
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range in {
		r := a.Metadata.Items[it.Name]
		want := it.Image.(*image.NRGBA).NRGBAAt(1, 2)
		if got := a.Image.NRGBAAt(r.X+1, r.Y+2); got != want {
			t.Errorf("%s pixel = %v, expected %v (alpha kept)", it.Name, got, want)
		}
		sub, ok := a.Tile(it.Name)
		if !ok || sub.Bounds().Dx() != 4 {
			t.Errorf("Tile(%s) = %v, %v", it.Name, sub, ok)
		}
	}
	// unused cell stays transparent
	if c := a.Image.NRGBAAt(3*4-1, 3*4-1); c.A != 0 {
		t.Errorf("empty cell pixel = %v, expected transparent", c)
	}
}

func TestPackKeepsTransparency(t *testing.T) {
	sprite := tile(4, color.NRGBA{200, 100, 50, 255})
	sprite.SetNRGBA(2, 2, color.NRGBA{})
	a, err := Pack([]Item{{Name: "a", Image: tile(4, color.NRGBA{1, 2, 3, 255})}, {Name: "b", Image: sprite}}, 4)
	if err != nil {
		t.Fatal(err)
	}
	r := a.Metadata.Items["b"]
	if c := a.Image.NRGBAAt(r.X+2, r.Y+2); c.A != 0 {
		t.Errorf("transparent sprite pixel packed as %v", c)
	}
	if c := a.Image.NRGBAAt(r.X+1, r.Y+1); c != (color.NRGBA{200, 100, 50, 255}) {
		t.Errorf("opaque sprite pixel packed as %v", c)
	}
}

func TestPackValidation(t *testing.T) {
	if _, err := Pack(nil, 8); !errors.Is(err, ErrNoItems) {
		t.Errorf("empty list error = %v, expected ErrNoItems", err)
	}

	dup := items(3, 8)
	dup[2].Name = dup[0].Name
	if _, err := Pack(dup, 8); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate name error = %v, expected ErrDuplicateName", err)
	}

	blank := items(2, 8)
	blank[1].Name = ""
	if _, err := Pack(blank, 8); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty name error = %v, expected ErrEmptyName", err)
	}

	wrong := items(2, 8)
	wrong[1].Image = tile(9, color.NRGBA{A: 255})
	if _, err := Pack(wrong, 8); !errors.Is(err, ErrTileSize) {
		t.Errorf("size mismatch error = %v, expected ErrTileSize", err)
	}
}

func TestWriteAndReadBack(t *testing.T) {
	dir := t.TempDir()
	a, err := Pack(items(3, 8), 8)
	if err != nil {
		t.Fatal(err)
	}
	a.Metadata.Transitions = &TransitionMeta{From: "stone", To: "lava", Unique: 2}
	a.Metadata.Transitions.MaskToIndex[255] = 1

	pngPath := filepath.Join(dir, "atlas.png")
	jsonPath := filepath.Join(dir, "atlas.json")
	if err := a.Write(pngPath, jsonPath); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"seed": "1152921504606846976"`) {
		t.Error("seed not serialized as a JSON string")
	}

	m, err := ReadMetadata(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if m.Items["stone_1"].Seed != 1<<60 || m.Transitions.MaskToIndex[255] != 1 {
		t.Errorf("metadata read back wrong: %+v", m.Items["stone_1"])
	}

	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != a.Image.Bounds() {
		t.Errorf("decoded bounds %v, expected %v", img.Bounds(), a.Image.Bounds())
	}
}
