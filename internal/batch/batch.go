// Package batch runs many independent tile syntheses on a bounded worker
// pool and gathers them into atlases in a reproducible order.
package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/stevenvo780/duo-eterno/internal/atlas"
	"github.com/stevenvo780/duo-eterno/internal/biome"
	"github.com/stevenvo780/duo-eterno/internal/palette"
	"github.com/stevenvo780/duo-eterno/internal/profiling"
	"github.com/stevenvo780/duo-eterno/internal/seam"
	"github.com/stevenvo780/duo-eterno/internal/seed"
	"github.com/stevenvo780/duo-eterno/internal/surface"
)

var ErrConfig = errors.New("batch configuration")

// Job lists the tiles to generate. Every output is a pure function of it.
// A non-nil Palette quantizes every tile and transition tile.
type Job struct {
	Seed        uint64
	Size        int
	Kinds       []biome.Kind
	Variations  int
	ExportMaps  bool
	VerifySeams bool
	Palette     *palette.Palette
	Contrast    float64
	Transitions []Pair
}

// Pair names a background and a foreground kind for one transition set.
type Pair struct {
	From biome.Kind
	To   biome.Kind
}

func (p Pair) String() string { return string(p.From) + "_" + string(p.To) }

// Options controls how a Job runs. Workers <= 0 means one per CPU.
// SkipFailures records failing tiles in the report instead of aborting.
type Options struct {
	Workers      int
	SkipFailures bool
	Logger       *slog.Logger
	Profiler     *profiling.Recorder
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Tile is one finished texture.
type Tile struct {
	Name      string
	Kind      biome.Kind
	Variation int
	Seed      uint64
	Image     image.Image
	Maps      *surface.Maps
}

type Failure struct {
	Name string
	Err  error
}

type Report struct {
	Tiles       []Tile // sorted by name
	Failures    []Failure
	Atlas       *atlas.Atlas
	Transitions []TransitionResult
}

// TileName is "<kind>_<variation>".
func TileName(k biome.Kind, variation int) string {
	return fmt.Sprintf("%s_%d", k, variation)
}

// TileSeed derives the seed of one (kind, variation) pair.
func TileSeed(master uint64, k biome.Kind, variation int) uint64 {
	return seed.Derive(master, string(k), strconv.Itoa(variation))
}

func (j Job) validate() error {
	if j.Size < biome.MinSize {
		return fmt.Errorf("%w: size %d below %d", ErrConfig, j.Size, biome.MinSize)
	}
	if len(j.Kinds) == 0 && len(j.Transitions) == 0 {
		return fmt.Errorf("%w: no kinds or transitions", ErrConfig)
	}
	if len(j.Kinds) > 0 && j.Variations < 1 {
		return fmt.Errorf("%w: variations %d", ErrConfig, j.Variations)
	}
	for _, k := range j.Kinds {
		if _, err := biome.Lookup(k); err != nil {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
	}
	seen := make(map[biome.Kind]bool, len(j.Kinds))
	for _, k := range j.Kinds {
		if seen[k] {
			return fmt.Errorf("%w: %w: kind %s listed twice", ErrConfig, atlas.ErrDuplicateName, k)
		}
		seen[k] = true
	}
	for _, p := range j.Transitions {
		if p.From == p.To {
			return fmt.Errorf("%w: transition %s needs two different kinds", ErrConfig, p)
		}
		for _, k := range []biome.Kind{p.From, p.To} {
			if _, err := biome.Lookup(k); err != nil {
				return fmt.Errorf("%w: transition %s: %w", ErrConfig, p, err)
			}
		}
	}
	return nil
}

type work struct {
	kind      biome.Kind
	variation int
}

// Run generates every (kind, variation) of job concurrently. Results are
// written into per-work slots, then sorted by name and packed, so the atlas
// layout does not depend on completion order.
func Run(ctx context.Context, job Job, opts Options) (*Report, error) {
	if err := job.validate(); err != nil {
		return nil, err
	}
	log := opts.logger()
	prof := opts.Profiler

	var queue []work
	for _, k := range job.Kinds {
		for v := 0; v < job.Variations; v++ {
			queue = append(queue, work{kind: k, variation: v})
		}
	}
	tiles := make([]*Tile, len(queue))
	errs := make([]error, len(queue))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, w := range queue {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := job.tile(w, prof)
			if err != nil {
				if opts.SkipFailures {
					errs[i] = err
					return nil
				}
				return err
			}
			tiles[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{}
	for i, t := range tiles {
		if errs[i] != nil {
			name := TileName(queue[i].kind, queue[i].variation)
			log.Warn("tile failed", "name", name, "err", errs[i])
			report.Failures = append(report.Failures, Failure{Name: name, Err: errs[i]})
			continue
		}
		report.Tiles = append(report.Tiles, *t)
	}
	sort.Slice(report.Tiles, func(a, b int) bool { return report.Tiles[a].Name < report.Tiles[b].Name })
	if len(report.Failures) > 0 && len(report.Tiles) == 0 {
		return report, fmt.Errorf("batch: every tile failed (%d)", len(report.Failures))
	}
	if len(report.Tiles) > 0 {
		stop := prof.Track("atlas.Pack")
		items := make([]atlas.Item, len(report.Tiles))
		for i, t := range report.Tiles {
			items[i] = atlas.Item{Name: t.Name, Image: t.Image, Kind: string(t.Kind), Seed: t.Seed, Variation: t.Variation}
		}
		a, err := atlas.Pack(items, job.Size)
		stop()
		if err != nil {
			return nil, err
		}
		a.Metadata.Tags = biome.TagTable()
		report.Atlas = a
	}

	for _, p := range job.Transitions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tr, err := job.transition(p, prof)
		if err != nil {
			if !opts.SkipFailures {
				return nil, err
			}
			log.Warn("transition failed", "pair", p.String(), "err", err)
			report.Failures = append(report.Failures, Failure{Name: p.String(), Err: err})
			continue
		}
		log.Debug("transition set", "pair", p.String(), "unique", len(tr.Set.Tiles))
		report.Transitions = append(report.Transitions, *tr)
	}

	log.Info("batch done", "tiles", len(report.Tiles), "transitions", len(report.Transitions),
		"failures", len(report.Failures))
	return report, nil
}

// tile runs the whole per-tile pipeline: synthesize, quantize, re-enforce
// the seam, verify, derive side maps.
func (j Job) tile(w work, prof *profiling.Recorder) (*Tile, error) {
	name := TileName(w.kind, w.variation)
	s := TileSeed(j.Seed, w.kind, w.variation)

	stop := prof.Track("biome.Synthesize")
	res, err := biome.Synthesize(w.kind, j.Size, s, biome.Options{Contrast: j.Contrast})
	stop()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	var img image.Image = res.Image
	if j.Palette != nil {
		stop := prof.Track("palette.Quantize")
		q := palette.Quantize(res.Image, *j.Palette)
		seam.Enforce(q)
		stop()
		img = q
	}
	if j.VerifySeams {
		if err := seam.Verify(name, img); err != nil {
			return nil, err
		}
	}

	t := &Tile{Name: name, Kind: w.kind, Variation: w.variation, Seed: s, Image: img}
	if j.ExportMaps {
		stop := prof.Track("surface.Derive")
		m := surface.Derive(res.Height, surface.Options{})
		stop()
		t.Maps = &m
	}
	return t, nil
}
