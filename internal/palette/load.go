package palette

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	getter "github.com/hashicorp/go-getter"
)

// Parse reads either a JSON array of hex strings or a GPL-like text file of
// "R G B [name]" lines. Blank lines, "#" comments and GIMP header lines are
// ignored.
func Parse(data []byte) (Palette, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return parseJSON(trimmed)
	}
	return parseGPL(trimmed)
}

func parseJSON(data []byte) (Palette, error) {
	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return Palette{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	colors := make([]color.RGBA, 0, len(entries))
	for i, e := range entries {
		c, err := ParseHex(e)
		if err != nil {
			return Palette{}, fmt.Errorf("entry %d: %w", i, err)
		}
		colors = append(colors, c)
	}
	return New(colors)
}

func parseGPL(data []byte) (Palette, error) {
	var colors []color.RGBA
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") || isGPLHeader(text) {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 3 {
			return Palette{}, fmt.Errorf("%w: line %d: expected R G B, got %q", ErrMalformed, line, text)
		}
		var rgb [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.Atoi(fields[i])
			if err != nil || v < 0 || v > 255 {
				return Palette{}, fmt.Errorf("%w: line %d: component %q out of range", ErrMalformed, line, fields[i])
			}
			rgb[i] = uint8(v)
		}
		colors = append(colors, color.RGBA{rgb[0], rgb[1], rgb[2], 255})
	}
	if err := sc.Err(); err != nil {
		return Palette{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return New(colors)
}

func isGPLHeader(line string) bool {
	return line == "GIMP Palette" ||
		strings.HasPrefix(line, "Name:") ||
		strings.HasPrefix(line, "Columns:")
}

// Load reads and parses a palette file.
func Load(path string) (Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Palette{}, fmt.Errorf("read palette: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return Palette{}, fmt.Errorf("parse palette %s: %w", path, err)
	}
	return p, nil
}

// Fetch downloads a remote palette into dir with go-getter and loads it.
// src may be any go-getter source (http, s3, git::, ...).
func Fetch(ctx context.Context, src, dir string) (Palette, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Palette{}, fmt.Errorf("palette cache dir: %w", err)
	}
	dst := filepath.Join(dir, fetchName(src))
	if err := getter.GetFile(dst, src, getter.WithContext(ctx)); err != nil {
		return Palette{}, fmt.Errorf("fetch palette %s: %w", src, err)
	}
	return Load(dst)
}

func fetchName(src string) string {
	s := src
	if i := strings.Index(s, "::"); i >= 0 {
		s = s[i+2:]
	}
	if u, err := url.Parse(s); err == nil && u.Path != "" {
		s = u.Path
	}
	base := path.Base(s)
	if base == "." || base == "/" || base == "" {
		return "palette.txt"
	}
	return base
}

// IsRemote reports whether src needs go-getter rather than a local read.
func IsRemote(src string) bool {
	return strings.Contains(src, "://") || strings.Contains(src, "::")
}

// Resolved records where a palette came from.
type Resolved struct {
	Palette Palette
	Source  string

	// Fallback holds the load failure that was replaced by the default.
	Fallback error
}

// Resolve loads src (local path or remote source). An empty src selects the
// default palette. A failing src falls back to the default only when
// fallback is set; otherwise the failure is returned.
func Resolve(ctx context.Context, src, cacheDir string, fallback bool) (Resolved, error) {
	if src == "" {
		return Resolved{Palette: Default(), Source: "default"}, nil
	}
	var (
		p   Palette
		err error
	)
	if IsRemote(src) {
		p, err = Fetch(ctx, src, cacheDir)
	} else {
		p, err = Load(src)
	}
	if err != nil {
		if !fallback {
			return Resolved{}, err
		}
		return Resolved{Palette: Default(), Source: "default", Fallback: err}, nil
	}
	return Resolved{Palette: p, Source: src}, nil
}
