package pixz

import (
	"fmt"
	"math"
)

// MaxKernelRadius is the largest half-width or half-height a Kernel may
// have. Kernels are at most (2*MaxKernelRadius+1) weights on a side.
const MaxKernelRadius = 64

// Kernel is a convolution kernel with odd width and height. Weights are
// stored row-major; the center weight sits at (Width/2, Height/2).
type Kernel struct {
	weights []float64
	width   int
	height  int
}

// NewKernel builds a kernel from rows of weights. Rows must be non-empty,
// of equal odd length, with an odd number of rows and finite weights, and
// neither side may exceed 2*MaxKernelRadius+1.
func NewKernel(rows [][]float64) (Kernel, error) {
	if len(rows) == 0 || len(rows)%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: kernel needs an odd number of rows, got %d", ErrInvalidOperation, len(rows))
	}
	width := len(rows[0])
	if width == 0 || width%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: kernel needs an odd row length, got %d", ErrInvalidOperation, width)
	}
	if limit := 2*MaxKernelRadius + 1; width > limit || len(rows) > limit {
		return Kernel{}, fmt.Errorf("%w: kernel is %dx%d, limit is %dx%d", ErrInvalidOperation, width, len(rows), limit, limit)
	}
	weights := make([]float64, 0, width*len(rows))
	for i, row := range rows {
		if len(row) != width {
			return Kernel{}, fmt.Errorf("%w: kernel row %d has %d weights, want %d", ErrInvalidOperation, i, len(row), width)
		}
		for _, w := range row {
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return Kernel{}, fmt.Errorf("%w: kernel row %d has non-finite weight", ErrInvalidOperation, i)
			}
		}
		weights = append(weights, row...)
	}
	return Kernel{weights: weights, width: width, height: len(rows)}, nil
}

// BoxBlur returns a (2r+1) x (2r+1) averaging kernel. The radius is
// clamped into [0, MaxKernelRadius].
func BoxBlur(radius int) Kernel {
	radius = min(max(radius, 0), MaxKernelRadius)
	side := 2*radius + 1
	w := 1 / float64(side*side)
	weights := make([]float64, side*side)
	for i := range weights {
		weights[i] = w
	}
	return Kernel{weights: weights, width: side, height: side}
}

// Sharpen returns the 3x3 sharpening kernel.
func Sharpen() Kernel {
	return Kernel{
		weights: []float64{
			0, -1, 0,
			-1, 5, -1,
			0, -1, 0,
		},
		width:  3,
		height: 3,
	}
}

// Size returns the kernel's width and height.
func (k Kernel) Size() (width, height int) { return k.width, k.height }

// Weight returns the weight at column i, row j.
func (k Kernel) Weight(i, j int) float64 { return k.weights[j*k.width+i] }

// Sum returns the sum of all weights.
func (k Kernel) Sum() float64 {
	var s float64
	for _, w := range k.weights {
		s += w
	}
	return s
}

// valid reports whether the kernel was built by one of the constructors.
func (k Kernel) valid() bool {
	return k.width > 0 && k.height > 0 && k.width%2 == 1 && k.height%2 == 1 && len(k.weights) == k.width*k.height
}

// String implements fmt.Stringer.
func (k Kernel) String() string {
	return fmt.Sprintf("%dx%d", k.width, k.height)
}
