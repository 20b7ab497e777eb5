package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stevenvo780/duo-eterno/internal/biome"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() returned error: %v", err)
	}
}

func TestValidateRejectsInvalidJobs(t *testing.T) {
	tests := map[string]func(j *Job){
		"size below minimum":   func(j *Job) { j.Size = 7 },
		"no kinds":             func(j *Job) { j.Kinds = nil },
		"zero variations":      func(j *Job) { j.Variations = 0 },
		"unknown kind":         func(j *Job) { j.Kinds = []string{"stone", "granite"} },
		"bad transition":       func(j *Job) { j.Transitions = []Transition{{From: "stone", To: "magma"}} },
		"contrast too high":    func(j *Job) { j.Contrast = 1.5 },
		"negative workers":     func(j *Job) { j.Workers = -1 },
		"preview out of range": func(j *Job) { j.PreviewScale = 40 },
		"empty output":         func(j *Job) { j.Output = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			j := Default()
			mutate(j)
			err := j.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestTransitionsOnlyJobValidates(t *testing.T) {
	j := Default()
	j.Kinds = nil
	j.Transitions = []Transition{{From: "stone", To: "lava"}}
	if err := j.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
}

func TestLoadReadsYAMLAndKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml")
	data := []byte(`
seed: 7
kinds: [stone, Lava, stone]
variations: 2
export_maps: true
transitions:
  - from: stone
    to: lava
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	j, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if j.Seed != 7 || j.Variations != 2 || !j.ExportMaps {
		t.Fatalf("Load() = %+v, file values not applied", j)
	}
	if j.Size != 32 || !j.VerifySeams || j.Output != "out" {
		t.Fatalf("Load() = %+v, defaults not kept", j)
	}
	kinds, err := j.ParsedKinds()
	if err != nil {
		t.Fatal(err)
	}
	if len(kinds) != 2 || kinds[0] != biome.Stone || kinds[1] != biome.Lava {
		t.Fatalf("ParsedKinds() = %v, want [stone lava]", kinds)
	}
	if len(j.Transitions) != 1 || j.Transitions[0].To != "lava" {
		t.Fatalf("Transitions = %+v", j.Transitions)
	}
}

func TestLoadRejectsUnknownKeysAndInvalidValues(t *testing.T) {
	dir := t.TempDir()
	typo := filepath.Join(dir, "typo.yaml")
	if err := os.WriteFile(typo, []byte("sizee: 16\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(typo); err == nil {
		t.Error("Load() accepted an unknown key")
	}

	small := filepath.Join(dir, "small.yaml")
	if err := os.WriteFile(small, []byte("size: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(small); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() = %v, want ErrInvalid", err)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing file returned nil error")
	}
}

func TestLoadEmptyFileIsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	j, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if j.Size != Default().Size {
		t.Errorf("Size = %d, want default %d", j.Size, Default().Size)
	}
}

func TestMergeRespectsExplicitFlags(t *testing.T) {
	cfg := Default()
	cfg.Seed = 99
	cfg.Size = 64

	fromFile := Default()
	fromFile.Seed = 7
	fromFile.Size = 16
	fromFile.Kinds = []string{"ocean"}
	fromFile.Transitions = []Transition{{From: "ocean", To: "desert"}}

	Merge(cfg, fromFile, map[string]bool{"seed": true})
	if cfg.Seed != 99 {
		t.Errorf("Seed = %d, explicit flag value should win", cfg.Seed)
	}
	if cfg.Size != 16 || cfg.Kinds[0] != "ocean" {
		t.Errorf("Size=%d Kinds=%v, file values should apply to unset flags", cfg.Size, cfg.Kinds)
	}
	if len(cfg.Transitions) != 1 {
		t.Errorf("Transitions = %+v, expected file transitions", cfg.Transitions)
	}
}

func TestWorkerCountAndPaletteDir(t *testing.T) {
	j := Default()
	if j.WorkerCount() < 1 {
		t.Errorf("WorkerCount() = %d with workers 0", j.WorkerCount())
	}
	j.Workers = 3
	if j.WorkerCount() != 3 {
		t.Errorf("WorkerCount() = %d, want 3", j.WorkerCount())
	}
	if got := j.PaletteDir(); got != filepath.Join("out", "palettes") {
		t.Errorf("PaletteDir() = %q", got)
	}
	j.PaletteCache = "/tmp/p"
	if j.PaletteDir() != "/tmp/p" {
		t.Errorf("PaletteDir() = %q, want /tmp/p", j.PaletteDir())
	}
}
