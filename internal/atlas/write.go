package atlas

import (
	"bufio"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
)

// WritePNG encodes img to path through a buffered writer.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := png.Encode(w, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// WriteJSON writes v as indented JSON.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Write stores the atlas image and its metadata side file.
func (a *Atlas) Write(pngPath, jsonPath string) error {
	if err := WritePNG(pngPath, a.Image); err != nil {
		return err
	}
	return WriteJSON(jsonPath, a.Metadata)
}

// ReadMetadata loads a metadata side file written by Write.
func ReadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read atlas metadata: %w", err)
	}
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse atlas metadata: %w", err)
	}
	return &m, nil
}
