package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/stevenvo780/duo-eterno/internal/autotile"
	"github.com/stevenvo780/duo-eterno/internal/batch"
	"github.com/stevenvo780/duo-eterno/internal/biome"
	"github.com/stevenvo780/duo-eterno/internal/config"
	"github.com/stevenvo780/duo-eterno/internal/palette"
	"github.com/stevenvo780/duo-eterno/internal/preview"
	"github.com/stevenvo780/duo-eterno/internal/profiling"
)

// transition builds one blob set. Each side is either a biome kind,
// synthesized with the same seed generate would use for variation 0, or an
// existing PNG given with -from-image / -to-image.
func transition(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("transition", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg := config.Default()
	from := fs.String("from", "", "background biome kind")
	to := fs.String("to", "", "foreground biome kind")
	fromImage := fs.String("from-image", "", "background PNG instead of -from")
	toImage := fs.String("to-image", "", "foreground PNG instead of -to")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "master seed")
	fs.IntVar(&cfg.Size, "size", cfg.Size, "tile edge in pixels")
	fs.Float64Var(&cfg.Contrast, "contrast", cfg.Contrast, "contrast change in [-1,1]")
	fs.BoolVar(&cfg.Quantize, "quantize", cfg.Quantize, "reduce tiles to the palette")
	fs.StringVar(&cfg.Palette, "palette", cfg.Palette, "palette file or remote source (empty = built-in)")
	fs.BoolVar(&cfg.PaletteFallback, "palette-fallback", cfg.PaletteFallback, "use the built-in palette when -palette fails")
	fs.StringVar(&cfg.Output, "out", cfg.Output, "output directory")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	log := newLogger(stderr, *verbose)

	a, aName, err := side(*from, *fromImage, cfg)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}
	b, bName, err := side(*to, *toImage, cfg)
	if err != nil {
		return fmt.Errorf("foreground: %w", err)
	}

	var opts autotile.Options
	if cfg.Quantize {
		res, err := palette.Resolve(ctx, cfg.Palette, cfg.PaletteDir(), cfg.PaletteFallback)
		if err != nil {
			return fmt.Errorf("palette: %w", err)
		}
		if res.Fallback != nil {
			log.Warn("palette unavailable, using built-in", "source", cfg.Palette, "err", res.Fallback)
		}
		opts.Palette = &res.Palette
	}

	prof := profiling.New()
	tr, err := batch.Transition(aName, bName, a, b, opts, prof)
	if err != nil {
		return err
	}
	if err := tr.Write(cfg.Output); err != nil {
		return err
	}
	log.Info("transition set", "pair", tr.Pair.String(), "unique", len(tr.Set.Tiles), "dir", cfg.Output)
	log.Debug("timings", "top", prof.TopN(3))
	return nil
}

// side resolves one half of a transition.
func side(kind, path string, cfg *config.Job) (image.Image, string, error) {
	if path != "" {
		img, err := preview.LoadPNG(path)
		if err != nil {
			return nil, "", err
		}
		return img, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), nil
	}
	if kind == "" {
		return nil, "", errors.New("need a kind or an image")
	}
	k, err := biome.ParseKind(kind)
	if err != nil {
		return nil, "", err
	}
	res, err := biome.Synthesize(k, cfg.Size, batch.TileSeed(cfg.Seed, k, 0), biome.Options{Contrast: cfg.Contrast})
	if err != nil {
		return nil, "", err
	}
	return res.Image, string(k), nil
}
