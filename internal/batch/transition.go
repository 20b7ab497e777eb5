package batch

import (
	"fmt"
	"image"

	"github.com/stevenvo780/duo-eterno/internal/atlas"
	"github.com/stevenvo780/duo-eterno/internal/autotile"
	"github.com/stevenvo780/duo-eterno/internal/biome"
	"github.com/stevenvo780/duo-eterno/internal/profiling"
)

// TransitionResult is one autotile set and the atlas it was packed into.
type TransitionResult struct {
	Pair  Pair
	Set   *autotile.Set
	Atlas *atlas.Atlas
}

// transition synthesizes variation 0 of both kinds and blends them.
func (j Job) transition(p Pair, prof *profiling.Recorder) (*TransitionResult, error) {
	opts := biome.Options{Contrast: j.Contrast}
	a, err := biome.Synthesize(p.From, j.Size, TileSeed(j.Seed, p.From, 0), opts)
	if err != nil {
		return nil, fmt.Errorf("transition %s: %w", p, err)
	}
	b, err := biome.Synthesize(p.To, j.Size, TileSeed(j.Seed, p.To, 0), opts)
	if err != nil {
		return nil, fmt.Errorf("transition %s: %w", p, err)
	}
	return Transition(string(p.From), string(p.To), a.Image, b.Image, autotile.Options{Palette: j.Palette}, prof)
}

// Transition builds the blob set between two arbitrary images and packs its
// unique tiles, named "<from>_<to>_<index>", into an atlas.
func Transition(from, to string, a, b image.Image, opts autotile.Options, prof *profiling.Recorder) (*TransitionResult, error) {
	stop := prof.Track("autotile.Synthesize")
	set, err := autotile.Synthesize(a, b, opts)
	stop()
	if err != nil {
		return nil, fmt.Errorf("transition %s_%s: %w", from, to, err)
	}

	items := make([]atlas.Item, len(set.Tiles))
	for i, t := range set.Tiles {
		items[i] = atlas.Item{
			Name:      fmt.Sprintf("%s_%s_%02d", from, to, i),
			Image:     t,
			Kind:      to,
			Variation: int(set.Canonical[i]), // first mask that produced the tile
		}
	}
	a2, err := atlas.Pack(items, set.Size)
	if err != nil {
		return nil, fmt.Errorf("transition %s_%s: %w", from, to, err)
	}
	a2.Metadata.Transitions = &atlas.TransitionMeta{
		From:        from,
		To:          to,
		Unique:      len(set.Tiles),
		MaskToIndex: set.MaskToIndex,
	}
	return &TransitionResult{Pair: Pair{From: biome.Kind(from), To: biome.Kind(to)}, Set: set, Atlas: a2}, nil
}
