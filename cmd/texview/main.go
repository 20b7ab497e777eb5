//go:build ebiten

// Command texview shows textures tiled 3x3 so seams are easy to spot.
// It either reads an atlas written by texforge (-dir) or synthesizes every
// biome kind live.
//
//	space / right  next texture
//	left           previous texture
//	r              reseed (live mode)
//	esc            quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/stevenvo780/duo-eterno/internal/atlas"
	"github.com/stevenvo780/duo-eterno/internal/batch"
	"github.com/stevenvo780/duo-eterno/internal/biome"
	"github.com/stevenvo780/duo-eterno/internal/preview"
)

type entry struct {
	name string
	img  image.Image
}

type viewer struct {
	entries []entry
	current int
	scale   int
	size    int
	seed    uint64
	live    bool
	frame   *ebiten.Image
}

func main() {
	dir := flag.String("dir", "", "texforge output directory (empty = live synthesis)")
	size := flag.Int("size", 32, "tile edge for live synthesis")
	seed := flag.Uint64("seed", 1, "master seed for live synthesis")
	scale := flag.Int("scale", 4, "pixel scale")
	flag.Parse()

	v := &viewer{scale: *scale, size: *size, seed: *seed, live: *dir == ""}
	var err error
	if v.live {
		err = v.synthesize()
	} else {
		v.entries, err = loadAtlas(*dir)
		if err == nil && len(v.entries) > 0 {
			v.size = v.entries[0].img.Bounds().Dx()
		}
	}
	if err != nil {
		log.Fatal(err)
	}
	if len(v.entries) == 0 {
		log.Fatal("nothing to show")
	}
	v.refresh()

	side := v.size * 3 * v.scale
	ebiten.SetWindowTitle("texview")
	ebiten.SetWindowSize(side, side)
	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

func loadAtlas(dir string) ([]entry, error) {
	meta, err := atlas.ReadMetadata(filepath.Join(dir, "atlas.json"))
	if err != nil {
		return nil, err
	}
	img, err := preview.LoadPNG(filepath.Join(dir, "atlas.png"))
	if err != nil {
		return nil, err
	}
	out := make([]entry, 0, len(meta.Order))
	for _, name := range meta.Order {
		out = append(out, entry{name: name, img: img.SubImage(meta.Items[name].Bounds())})
	}
	return out, nil
}

func (v *viewer) synthesize() error {
	v.entries = v.entries[:0]
	for _, k := range biome.Kinds() {
		res, err := biome.Synthesize(k, v.size, batch.TileSeed(v.seed, k, 0), biome.Options{})
		if err != nil {
			return err
		}
		v.entries = append(v.entries, entry{name: string(k), img: res.Image})
	}
	return nil
}

func (v *viewer) refresh() {
	v.frame = ebiten.NewImageFromImage(preview.Seams(v.entries[v.current].img, v.scale))
}

func (v *viewer) Update() error {
	n := len(v.entries)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace), inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		v.current = (v.current + 1) % n
		v.refresh()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		v.current = (v.current + n - 1) % n
		v.refresh()
	case v.live && inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.seed++
		if err := v.synthesize(); err != nil {
			return err
		}
		v.refresh()
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.DrawImage(v.frame, nil)
	label := v.entries[v.current].name
	if v.live {
		label = fmt.Sprintf("%s  seed %d", label, v.seed)
	}
	ebitenutil.DebugPrint(screen, label)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	side := v.size * 3 * v.scale
	return side, side
}
