package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/stevenvo780/duo-eterno/internal/atlas"
	"github.com/stevenvo780/duo-eterno/internal/preview"
)

// Write stores every artifact of the report under dir:
// <name>.png per tile (plus _h, _n and _ao when maps were derived),
// atlas.png with atlas.json, <from>_<to>_transitions.png with its json,
// and preview_<name>.png seam previews when previewScale > 0.
func (r *Report) Write(dir string, previewScale int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, t := range r.Tiles {
		files := map[string]image.Image{t.Name: t.Image}
		if t.Maps != nil {
			files[t.Name+"_h"] = t.Maps.Height
			files[t.Name+"_n"] = t.Maps.Normal
			files[t.Name+"_ao"] = t.Maps.AO
		}
		if previewScale > 0 {
			files["preview_"+t.Name] = preview.Seams(t.Image, previewScale)
		}
		for name, img := range files {
			if err := atlas.WritePNG(filepath.Join(dir, name+".png"), img); err != nil {
				return err
			}
		}
	}
	if r.Atlas != nil {
		if err := r.Atlas.Write(filepath.Join(dir, "atlas.png"), filepath.Join(dir, "atlas.json")); err != nil {
			return err
		}
	}
	for _, tr := range r.Transitions {
		if err := tr.Write(dir); err != nil {
			return err
		}
	}
	return nil
}

// Write stores the transition atlas as <from>_<to>_transitions.{png,json}.
func (tr *TransitionResult) Write(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	base := filepath.Join(dir, tr.Pair.String()+"_transitions")
	return tr.Atlas.Write(base+".png", base+".json")
}
