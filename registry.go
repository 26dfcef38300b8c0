package pixz

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// OperationFunc builds an Operation from positional parameters. It is the
// unit stored in an OperationBuilder's registry.
type OperationFunc func(b *OperationBuilder, params ...float64) (Operation, error)

// OperationBuilder is the only way to construct Operations. Its named
// constructors build a single variant directly; its registry maps names to
// OperationFuncs so tooling can turn "brighten" with [1.5] into an
// Operation without knowing the Go constructors.
//
// Building never executes anything. The registry is safe for concurrent use.
//
// Example:
//
//	b := pixz.NewOperationBuilder()
//	b.Register("half", func(b *pixz.OperationBuilder, _ ...float64) (pixz.Operation, error) {
//	    return b.Pointwise(pixz.Brighten(0.5)), nil
//	})
//	op, err := b.Build("half")
type OperationBuilder struct {
	registry map[string]OperationFunc
	mu       sync.RWMutex
}

// NewOperationBuilder returns a builder with an empty registry.
func NewOperationBuilder() *OperationBuilder {
	return &OperationBuilder{registry: make(map[string]OperationFunc)}
}

// NewStandardBuilder returns a builder with the standard operations
// registered: identity, negate, brighten, contrast, gamma, levels, box-blur
// and sharpen.
func NewStandardBuilder() *OperationBuilder {
	b := NewOperationBuilder()
	for name, fn := range standardOperations {
		b.registry[name] = fn
	}
	return b
}

// Pointwise builds a pointwise operation.
func (*OperationBuilder) Pointwise(op PointwiseOp) Operation {
	o := newOperation(KindPointwise, op.String())
	o.pointwise = op
	return o
}

// Convolve builds a convolution from rows of weights, failing with
// ErrInvalidOperation when the rows do not form a valid kernel.
func (b *OperationBuilder) Convolve(rows [][]float64) (Operation, error) {
	k, err := NewKernel(rows)
	if err != nil {
		return Operation{}, err
	}
	return b.ConvolveKernel(k), nil
}

// ConvolveKernel builds a convolution from a prepared kernel.
func (*OperationBuilder) ConvolveKernel(k Kernel) Operation {
	o := newOperation(KindConvolution, k.String())
	o.kernel = k
	return o
}

// Custom builds an opaque operation. The payload is interpreted by the
// backend; CPUBackend accepts a CPUKernel, or a []P holding one pixel per
// source pixel that becomes the output as is.
func (*OperationBuilder) Custom(name string, payload any) Operation {
	o := newOperation(KindCustom, name)
	o.payload = payload
	return o
}

// Register adds a named constructor. It fails with ErrDuplicateOperation
// when the name is taken and with ErrInvalidOperation for an empty name or
// nil function.
func (b *OperationBuilder) Register(name string, fn OperationFunc) error {
	if name == "" || fn == nil {
		return fmt.Errorf("%w: register needs a name and a function", ErrInvalidOperation)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.registry[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateOperation, name)
	}
	b.registry[name] = fn
	return nil
}

// Build constructs the operation registered under name.
func (b *OperationBuilder) Build(name string, params ...float64) (Operation, error) {
	b.mu.RLock()
	fn, ok := b.registry[name]
	b.mu.RUnlock()
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	return fn(b, params...)
}

// Names returns the registered names in sorted order.
func (b *OperationBuilder) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.registry))
	for name := range b.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultBuilder is the process-wide builder behind RegisterOperation and
// BuildOperation. It starts with the standard operations.
var DefaultBuilder = NewStandardBuilder()

// RegisterOperation registers fn on DefaultBuilder, typically from init.
func RegisterOperation(name string, fn OperationFunc) error {
	return DefaultBuilder.Register(name, fn)
}

// BuildOperation builds a named operation from DefaultBuilder.
func BuildOperation(name string, params ...float64) (Operation, error) {
	return DefaultBuilder.Build(name, params...)
}

var standardOperations = map[string]OperationFunc{
	"identity": pointwiseFunc(0, func([]float64) PointwiseOp { return IdentityOp() }),
	"negate":   pointwiseFunc(0, func([]float64) PointwiseOp { return Negate() }),
	"brighten": pointwiseFunc(1, func(p []float64) PointwiseOp { return Brighten(p[0]) }),
	"contrast": pointwiseFunc(1, func(p []float64) PointwiseOp { return Contrast(p[0]) }),
	"gamma":    pointwiseFunc(1, func(p []float64) PointwiseOp { return Gamma(p[0]) }),
	"levels":   pointwiseFunc(2, func(p []float64) PointwiseOp { return Levels(p[0], p[1]) }),
	"box-blur": func(b *OperationBuilder, params ...float64) (Operation, error) {
		if err := wantParams("box-blur", params, 1); err != nil {
			return Operation{}, err
		}
		r := params[0]
		if r < 0 || r > MaxKernelRadius || r != math.Trunc(r) {
			return Operation{}, fmt.Errorf("%w: box-blur radius must be an integer in [0, %d], got %g", ErrInvalidOperation, MaxKernelRadius, r)
		}
		return b.ConvolveKernel(BoxBlur(int(r))), nil
	},
	"sharpen": func(b *OperationBuilder, params ...float64) (Operation, error) {
		if err := wantParams("sharpen", params, 0); err != nil {
			return Operation{}, err
		}
		return b.ConvolveKernel(Sharpen()), nil
	},
}

func pointwiseFunc(n int, build func([]float64) PointwiseOp) OperationFunc {
	return func(b *OperationBuilder, params ...float64) (Operation, error) {
		if err := wantParams("pointwise", params, n); err != nil {
			return Operation{}, err
		}
		op := build(params)
		if err := op.Validate(); err != nil {
			return Operation{}, err
		}
		return b.Pointwise(op), nil
	}
}

func wantParams(name string, params []float64, n int) error {
	if len(params) != n {
		return fmt.Errorf("%w: %s takes %d parameters, got %d", ErrInvalidOperation, name, n, len(params))
	}
	return nil
}
