package field

import (
	"math"
	"testing"
)

func TestWrapNegative(t *testing.T) {
	cases := []struct{ v, size, want int }{
		{-1, 8, 7},
		{-8, 8, 0},
		{-9, 8, 7},
		{8, 8, 0},
		{17, 8, 1},
		{3, 8, 3},
	}
	for _, c := range cases {
		if got := Wrap(c.v, c.size); got != c.want {
			t.Errorf("Wrap(%d, %d) = %d, expected %d", c.v, c.size, got, c.want)
		}
	}
}

func TestAtWrapsToroidally(t *testing.T) {
	f := New(4)
	for i := range f.Data {
		f.Data[i] = float64(i)
	}
	if f.At(-1, 0) != f.At(3, 0) {
		t.Errorf("At(-1,0)=%f, expected At(3,0)=%f", f.At(-1, 0), f.At(3, 0))
	}
	if f.At(0, 4) != f.At(0, 0) {
		t.Errorf("At(0,4)=%f, expected At(0,0)=%f", f.At(0, 4), f.At(0, 0))
	}
}

// TestClampRemovesNaN verifies no NaN or out-of-range value survives Clamp
func TestClampRemovesNaN(t *testing.T) {
	f := New(2)
	f.Data = []float64{math.NaN(), -3, 0.25, 7}
	f.Clamp()
	want := []float64{0, 0, 0.25, 1}
	for i, v := range f.Data {
		if v != want[i] {
			t.Errorf("Data[%d] = %f after Clamp, expected %f", i, v, want[i])
		}
	}
}

func TestNormalizeFlatField(t *testing.T) {
	f := New(3)
	for i := range f.Data {
		f.Data[i] = 4
	}
	f.Normalize()
	for i, v := range f.Data {
		if v != 0.5 {
			t.Fatalf("flat field Data[%d] = %f after Normalize, expected 0.5", i, v)
		}
	}
}

func TestEnforceSeam(t *testing.T) {
	f := New(8)
	for i := range f.Data {
		f.Data[i] = float64(i%13) / 13
	}
	if f.SeamExact() {
		t.Fatal("test field unexpectedly seamless before enforcement")
	}
	f.EnforceSeam()
	if !f.SeamExact() {
		t.Fatal("field not seamless after EnforceSeam")
	}
	for x := 0; x < 8; x++ {
		if f.At(x, 0) != f.At(x, 7) {
			t.Errorf("row seam mismatch at x=%d: %f != %f", x, f.At(x, 0), f.At(x, 7))
		}
	}
}

func TestPercentile(t *testing.T) {
	f := New(10)
	for i := range f.Data {
		f.Data[i] = float64(i) / 99
	}
	if got := f.Percentile(0); got != 0 {
		t.Errorf("Percentile(0) = %f, expected 0", got)
	}
	if got := f.Percentile(1); got != 1 {
		t.Errorf("Percentile(1) = %f, expected 1", got)
	}
	if got := f.Percentile(0.5); math.Abs(got-0.5) > 0.02 {
		t.Errorf("Percentile(0.5) = %f, expected about 0.5", got)
	}
}
