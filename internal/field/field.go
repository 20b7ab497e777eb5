package field

import (
	"math"
	"sort"
)

// Field is a square scalar grid stored row-major. Values are expected in [0,1]
// once a producer has clamped them.
type Field struct {
	Size int
	Data []float64
}

func New(size int) *Field {
	return &Field{Size: size, Data: make([]float64, size*size)}
}

// Wrap maps any integer coordinate onto [0,size).
func Wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}

func (f *Field) Index(x, y int) int { return y*f.Size + x }

// At samples toroidally; out-of-range coordinates wrap on both axes.
func (f *Field) At(x, y int) float64 {
	return f.Data[Wrap(y, f.Size)*f.Size+Wrap(x, f.Size)]
}

func (f *Field) Set(x, y int, v float64) {
	f.Data[Wrap(y, f.Size)*f.Size+Wrap(x, f.Size)] = v
}

func (f *Field) Clone() *Field {
	out := &Field{Size: f.Size, Data: make([]float64, len(f.Data))}
	copy(out.Data, f.Data)
	return out
}

// Clamp forces every value into [0,1]. NaN becomes 0.
func (f *Field) Clamp() *Field {
	for i, v := range f.Data {
		f.Data[i] = Clamp01(v)
	}
	return f
}

// Normalize rescales to the full [0,1] range. A flat field becomes 0.5.
func (f *Field) Normalize() *Field {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range f.Data {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	for i, v := range f.Data {
		if span <= 1e-12 || math.IsNaN(v) {
			f.Data[i] = 0.5
			continue
		}
		f.Data[i] = (v - lo) / span
	}
	return f
}

// EnforceSeam copies row 0 onto the last row and column 0 onto the last
// column so the field tiles without a visible edge.
func (f *Field) EnforceSeam() *Field {
	n := f.Size
	if n < 2 {
		return f
	}
	copy(f.Data[(n-1)*n:], f.Data[:n])
	for y := 0; y < n; y++ {
		f.Data[y*n+n-1] = f.Data[y*n]
	}
	return f
}

// SeamExact reports whether the edge rows and columns already match.
func (f *Field) SeamExact() bool {
	n := f.Size
	for i := 0; i < n; i++ {
		if f.Data[i] != f.Data[(n-1)*n+i] || f.Data[i*n] != f.Data[i*n+n-1] {
			return false
		}
	}
	return true
}

// Percentile returns the value below which p (0..1) of the samples fall.
func (f *Field) Percentile(p float64) float64 {
	if len(f.Data) == 0 {
		return 0
	}
	sorted := make([]float64, len(f.Data))
	copy(sorted, f.Data)
	sort.Float64s(sorted)
	p = Clamp01(p)
	idx := int(math.Round(p * float64(len(sorted)-1)))
	return sorted[idx]
}

func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
