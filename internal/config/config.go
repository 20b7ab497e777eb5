package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/stevenvo780/duo-eterno/internal/biome"
)

var ErrInvalid = errors.New("invalid configuration")

// Transition requests one autotile set between two kinds.
type Transition struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Job describes one batch run.
type Job struct {
	Seed            uint64       `yaml:"seed"`
	Size            int          `yaml:"size"`
	Kinds           []string     `yaml:"kinds"`
	Variations      int          `yaml:"variations"`
	ExportMaps      bool         `yaml:"export_maps"`
	VerifySeams     bool         `yaml:"verify_seams"`
	Quantize        bool         `yaml:"quantize"`
	Palette         string       `yaml:"palette"` // local path or go-getter source
	PaletteFallback bool         `yaml:"palette_fallback"`
	PaletteCache    string       `yaml:"palette_cache"`
	Contrast        float64      `yaml:"contrast"`
	Transitions     []Transition `yaml:"transitions"`
	Output          string       `yaml:"output"`
	Workers         int          `yaml:"workers"` // 0 = one per CPU
	SkipFailures    bool         `yaml:"skip_failures"`
	PreviewScale    int          `yaml:"preview_scale"` // 0 = no preview
}

// Default returns a Job with sensible defaults.
func Default() *Job {
	return &Job{
		Seed:        1,
		Size:        32,
		Kinds:       []string{string(biome.Stone)},
		Variations:  1,
		VerifySeams: true,
		Output:      "out",
	}
}

// Load reads a YAML job file on top of Default and validates it.
// Unknown keys are rejected.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	job := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(job); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

// Merge applies file-loaded values into cfg, but only for fields that were
// NOT explicitly set on the command line. explicit holds flag names.
func Merge(cfg, fromFile *Job, explicit map[string]bool) {
	if !explicit["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicit["size"] {
		cfg.Size = fromFile.Size
	}
	if !explicit["kinds"] {
		cfg.Kinds = fromFile.Kinds
	}
	if !explicit["variations"] {
		cfg.Variations = fromFile.Variations
	}
	if !explicit["maps"] {
		cfg.ExportMaps = fromFile.ExportMaps
	}
	if !explicit["verify"] {
		cfg.VerifySeams = fromFile.VerifySeams
	}
	if !explicit["quantize"] {
		cfg.Quantize = fromFile.Quantize
	}
	if !explicit["palette"] {
		cfg.Palette = fromFile.Palette
	}
	if !explicit["palette-fallback"] {
		cfg.PaletteFallback = fromFile.PaletteFallback
	}
	if !explicit["palette-cache"] {
		cfg.PaletteCache = fromFile.PaletteCache
	}
	if !explicit["contrast"] {
		cfg.Contrast = fromFile.Contrast
	}
	if !explicit["out"] {
		cfg.Output = fromFile.Output
	}
	if !explicit["workers"] {
		cfg.Workers = fromFile.Workers
	}
	if !explicit["skip-failures"] {
		cfg.SkipFailures = fromFile.SkipFailures
	}
	if !explicit["preview"] {
		cfg.PreviewScale = fromFile.PreviewScale
	}
	// transitions only come from files
	cfg.Transitions = fromFile.Transitions
}

// Validate checks the job before any synthesis starts.
func (j *Job) Validate() error {
	if j.Size < biome.MinSize {
		return fmt.Errorf("%w: size %d below minimum %d", ErrInvalid, j.Size, biome.MinSize)
	}
	if len(j.Kinds) == 0 && len(j.Transitions) == 0 {
		return fmt.Errorf("%w: no kinds or transitions requested", ErrInvalid)
	}
	if len(j.Kinds) > 0 && j.Variations < 1 {
		return fmt.Errorf("%w: variations must be at least 1, got %d", ErrInvalid, j.Variations)
	}
	if _, err := j.ParsedKinds(); err != nil {
		return err
	}
	for i, t := range j.Transitions {
		if _, err := biome.ParseKind(t.From); err != nil {
			return fmt.Errorf("%w: transition %d from: %v", ErrInvalid, i, err)
		}
		if _, err := biome.ParseKind(t.To); err != nil {
			return fmt.Errorf("%w: transition %d to: %v", ErrInvalid, i, err)
		}
	}
	if j.Contrast < -1 || j.Contrast > 1 {
		return fmt.Errorf("%w: contrast %v outside [-1,1]", ErrInvalid, j.Contrast)
	}
	if j.Workers < 0 {
		return fmt.Errorf("%w: workers %d is negative", ErrInvalid, j.Workers)
	}
	if j.PreviewScale < 0 || j.PreviewScale > 16 {
		return fmt.Errorf("%w: preview scale %d outside [0,16]", ErrInvalid, j.PreviewScale)
	}
	if j.Output == "" {
		return fmt.Errorf("%w: output directory is empty", ErrInvalid)
	}
	return nil
}

// ParsedKinds resolves Kinds against the biome registry, dropping repeats.
func (j *Job) ParsedKinds() ([]biome.Kind, error) {
	out := make([]biome.Kind, 0, len(j.Kinds))
	seen := make(map[biome.Kind]bool, len(j.Kinds))
	for _, name := range j.Kinds {
		k, err := biome.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out, nil
}

// WorkerCount resolves Workers, mapping 0 to one worker per CPU.
func (j *Job) WorkerCount() int {
	if j.Workers > 0 {
		return j.Workers
	}
	return runtime.NumCPU()
}

// PaletteDir is where remote palettes are downloaded.
func (j *Job) PaletteDir() string {
	if j.PaletteCache != "" {
		return j.PaletteCache
	}
	return filepath.Join(j.Output, "palettes")
}
