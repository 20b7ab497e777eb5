package surface

import (
	"image"
	"image/color"
	"testing"

	"github.com/stevenvo780/duo-eterno/internal/field"
	"github.com/stevenvo780/duo-eterno/internal/seam"
)

func flat(size int, v float64) *field.Field {
	f := field.New(size)
	for i := range f.Data {
		f.Data[i] = v
	}
	return f
}

// TestNormalMapFlat verifies a flat height field points straight up
func TestNormalMapFlat(t *testing.T) {
	img := NormalMap(flat(16, 0.3), 2)
	want := color.RGBA{128, 128, 255, 255}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("normal at (%d,%d) = %v, expected %v", x, y, got, want)
			}
		}
	}
}

func TestNormalMapSlopeDirection(t *testing.T) {
	h := field.New(16)
	// rising toward +x in the interior
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			h.Set(x, y, float64(x)/15)
		}
	}
	img := NormalMap(h, 2)
	c := img.RGBAAt(8, 8)
	if c.R >= 128 {
		t.Errorf("normal R at slope = %d, expected < 128 for height rising in +x", c.R)
	}
	if c.G != 128 {
		t.Errorf("normal G at slope = %d, expected 128 with no y gradient", c.G)
	}
	if err := seam.Verify("normal", img); err != nil {
		t.Errorf("normal map not seamless: %v", err)
	}
}

func TestAmbientOcclusionPeakAndPit(t *testing.T) {
	h := flat(16, 0.5)
	h.Set(4, 4, 1)
	h.Set(10, 10, 0)
	ao := AmbientOcclusion(h, 8, 2)

	if got := ao.GrayAt(4, 4).Y; got != 255 {
		t.Errorf("AO at peak = %d, expected 255", got)
	}
	if got := ao.GrayAt(10, 10).Y; got != 102 {
		t.Errorf("AO at pit = %d, expected 102 (0.4 floor)", got)
	}
	if got := ao.GrayAt(1, 13).Y; got != 255 {
		t.Errorf("AO on flat ground = %d, expected 255", got)
	}
}

func TestAmbientOcclusionDefaults(t *testing.T) {
	h := field.New(32)
	for i := range h.Data {
		h.Data[i] = float64(i%7) / 7
	}
	a := AmbientOcclusion(h, 0, 0)
	b := AmbientOcclusion(h, DefaultAOSamples, DefaultAORadius(32))
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("AO with zero options differs from explicit defaults at byte %d", i)
		}
	}
	if DefaultAORadius(8) != 1 || DefaultAORadius(64) != 4 {
		t.Errorf("DefaultAORadius(8)=%d, (64)=%d, expected 1 and 4", DefaultAORadius(8), DefaultAORadius(64))
	}
}

func TestDeriveMapsSeamless(t *testing.T) {
	h := field.New(24)
	for i := range h.Data {
		h.Data[i] = float64((i*37)%101) / 100
	}
	m := Derive(h, Options{})
	for name, img := range map[string]image.Image{"height": m.Height, "normal": m.Normal, "ao": m.AO} {
		if img.Bounds().Dx() != 24 || img.Bounds().Dy() != 24 {
			t.Errorf("%s map bounds %v, expected 24x24", name, img.Bounds())
		}
	}
	if err := seam.Verify("h", m.Height); err != nil {
		t.Error(err)
	}
	if err := seam.Verify("n", m.Normal); err != nil {
		t.Error(err)
	}
	if err := seam.Verify("ao", m.AO); err != nil {
		t.Error(err)
	}
}

func TestHeightImageEncoding(t *testing.T) {
	h := flat(8, 0)
	h.Set(2, 3, 1)
	h.Set(4, 4, 0.5)
	img := HeightImage(h)
	if img.GrayAt(2, 3).Y != 255 || img.GrayAt(4, 4).Y != 128 || img.GrayAt(1, 1).Y != 0 {
		t.Errorf("HeightImage encoding wrong: %d %d %d", img.GrayAt(2, 3).Y, img.GrayAt(4, 4).Y, img.GrayAt(1, 1).Y)
	}
}
