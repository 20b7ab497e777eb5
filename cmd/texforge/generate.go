package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/stevenvo780/duo-eterno/internal/batch"
	"github.com/stevenvo780/duo-eterno/internal/biome"
	"github.com/stevenvo780/duo-eterno/internal/config"
	"github.com/stevenvo780/duo-eterno/internal/palette"
	"github.com/stevenvo780/duo-eterno/internal/profiling"
)

func bindJob(fs *flag.FlagSet, cfg *config.Job) *string {
	kinds := fs.String("kinds", strings.Join(cfg.Kinds, ","), "comma separated biome kinds")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "master seed")
	fs.IntVar(&cfg.Size, "size", cfg.Size, "tile edge in pixels")
	fs.IntVar(&cfg.Variations, "variations", cfg.Variations, "variations per kind")
	fs.BoolVar(&cfg.ExportMaps, "maps", cfg.ExportMaps, "write height, normal and AO maps")
	fs.BoolVar(&cfg.VerifySeams, "verify", cfg.VerifySeams, "fail tiles whose opposite edges differ")
	fs.BoolVar(&cfg.Quantize, "quantize", cfg.Quantize, "reduce tiles to the palette")
	fs.StringVar(&cfg.Palette, "palette", cfg.Palette, "palette file or remote source (empty = built-in)")
	fs.BoolVar(&cfg.PaletteFallback, "palette-fallback", cfg.PaletteFallback, "use the built-in palette when -palette fails")
	fs.StringVar(&cfg.PaletteCache, "palette-cache", cfg.PaletteCache, "download directory for remote palettes")
	fs.Float64Var(&cfg.Contrast, "contrast", cfg.Contrast, "contrast change in [-1,1]")
	fs.StringVar(&cfg.Output, "out", cfg.Output, "output directory")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "worker goroutines (0 = one per CPU)")
	fs.BoolVar(&cfg.SkipFailures, "skip-failures", cfg.SkipFailures, "report failing tiles instead of aborting")
	fs.IntVar(&cfg.PreviewScale, "preview", cfg.PreviewScale, "write 3x3 seam previews at this scale (0 = off)")
	return kinds
}

// loadJob parses args into a validated config. Values from -config apply
// only where the matching flag was not given.
func loadJob(args []string, fs *flag.FlagSet) (*config.Job, bool, error) {
	cfg := config.Default()
	kinds := bindJob(fs, cfg)
	path := fs.String("config", "", "YAML job file")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}
	explicit := explicitFlags(fs)
	if explicit["kinds"] {
		cfg.Kinds = splitList(*kinds)
	}
	if *path != "" {
		fromFile, err := config.Load(*path)
		if err != nil {
			return nil, false, err
		}
		config.Merge(cfg, fromFile, explicit)
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return cfg, *verbose, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// batchJob converts a validated config into a batch job, resolving the
// palette when quantization is on.
func batchJob(ctx context.Context, cfg *config.Job, log *slog.Logger) (batch.Job, error) {
	kinds, err := cfg.ParsedKinds()
	if err != nil {
		return batch.Job{}, err
	}
	job := batch.Job{
		Seed:        cfg.Seed,
		Size:        cfg.Size,
		Kinds:       kinds,
		Variations:  cfg.Variations,
		ExportMaps:  cfg.ExportMaps,
		VerifySeams: cfg.VerifySeams,
		Contrast:    cfg.Contrast,
	}
	for _, t := range cfg.Transitions {
		from, err := biome.ParseKind(t.From)
		if err != nil {
			return batch.Job{}, err
		}
		to, err := biome.ParseKind(t.To)
		if err != nil {
			return batch.Job{}, err
		}
		job.Transitions = append(job.Transitions, batch.Pair{From: from, To: to})
	}
	if cfg.Quantize {
		res, err := palette.Resolve(ctx, cfg.Palette, cfg.PaletteDir(), cfg.PaletteFallback)
		if err != nil {
			return batch.Job{}, fmt.Errorf("palette: %w", err)
		}
		if res.Fallback != nil {
			log.Warn("palette unavailable, using built-in", "source", cfg.Palette, "err", res.Fallback)
		}
		log.Info("palette", "source", res.Source, "colors", res.Palette.Len())
		job.Palette = &res.Palette
	}
	return job, nil
}

func generate(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg, verbose, err := loadJob(args, fs)
	if err != nil {
		return err
	}
	log := newLogger(stderr, verbose)

	job, err := batchJob(ctx, cfg, log)
	if err != nil {
		return err
	}
	prof := profiling.New()
	report, err := batch.Run(ctx, job, batch.Options{
		Workers:      cfg.WorkerCount(),
		SkipFailures: cfg.SkipFailures,
		Logger:       log,
		Profiler:     prof,
	})
	if err != nil {
		return err
	}
	stop := prof.Track("write")
	err = report.Write(cfg.Output, cfg.PreviewScale)
	stop()
	if err != nil {
		return err
	}
	for _, f := range report.Failures {
		log.Warn("skipped", "name", f.Name, "err", f.Err)
	}
	log.Info("wrote", "dir", cfg.Output, "tiles", len(report.Tiles), "transitions", len(report.Transitions))
	log.Debug("timings", "top", prof.TopN(5))
	return nil
}
