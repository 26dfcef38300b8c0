package pixz

import (
	"fmt"
	"math"

	"github.com/rs/xid"
)

// PointwiseKind enumerates the per-channel adjustments a PointwiseOp can
// describe.
type PointwiseKind int

const (
	// PointwiseIdentity leaves channels unchanged.
	PointwiseIdentity PointwiseKind = iota
	// PointwiseNegate mirrors channels across their range.
	PointwiseNegate
	// PointwiseBrighten multiplies channels by a factor.
	PointwiseBrighten
	// PointwiseContrast scales channels away from the middle of their range.
	PointwiseContrast
	// PointwiseGamma applies a power curve on the normalized range.
	PointwiseGamma
	// PointwiseLevels remaps an input black/white range onto the full range.
	PointwiseLevels
)

// String returns the registry name of the kind.
func (k PointwiseKind) String() string {
	switch k {
	case PointwiseIdentity:
		return "identity"
	case PointwiseNegate:
		return "negate"
	case PointwiseBrighten:
		return "brighten"
	case PointwiseContrast:
		return "contrast"
	case PointwiseGamma:
		return "gamma"
	case PointwiseLevels:
		return "levels"
	default:
		return "unknown"
	}
}

// PointwiseOp is a named per-channel arithmetic rule with its parameters.
// Build one with IdentityOp, Negate, Brighten, Contrast, Gamma or Levels.
type PointwiseOp struct {
	kind PointwiseKind
	a, b float64
}

// IdentityOp leaves every channel unchanged.
func IdentityOp() PointwiseOp { return PointwiseOp{kind: PointwiseIdentity} }

// Negate mirrors each channel across its range: lo + hi - v.
func Negate() PointwiseOp { return PointwiseOp{kind: PointwiseNegate} }

// Brighten multiplies each channel by factor. A factor of 1 is the
// identity.
func Brighten(factor float64) PointwiseOp {
	return PointwiseOp{kind: PointwiseBrighten, a: factor}
}

// Contrast scales each channel's distance from the middle of its range by
// factor. A factor of 1 is the identity.
func Contrast(factor float64) PointwiseOp {
	return PointwiseOp{kind: PointwiseContrast, a: factor}
}

// Gamma raises each normalized channel to the power 1/gamma. A gamma of 1
// is the identity.
func Gamma(gamma float64) PointwiseOp {
	return PointwiseOp{kind: PointwiseGamma, a: gamma}
}

// Levels maps the normalized input range [black, white] onto the full
// channel range, clipping values outside it.
func Levels(black, white float64) PointwiseOp {
	return PointwiseOp{kind: PointwiseLevels, a: black, b: white}
}

// Kind returns the adjustment kind.
func (op PointwiseOp) Kind() PointwiseKind { return op.kind }

// Params returns the operation's parameters in constructor order.
func (op PointwiseOp) Params() []float64 {
	switch op.kind {
	case PointwiseBrighten, PointwiseContrast, PointwiseGamma:
		return []float64{op.a}
	case PointwiseLevels:
		return []float64{op.a, op.b}
	default:
		return nil
	}
}

// Validate reports parameters the rule cannot be evaluated with.
func (op PointwiseOp) Validate() error {
	for _, p := range op.Params() {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: %s parameter %g is not finite", ErrInvalidOperation, op.kind, p)
		}
	}
	switch op.kind {
	case PointwiseIdentity, PointwiseNegate, PointwiseBrighten, PointwiseContrast:
	case PointwiseGamma:
		if op.a <= 0 {
			return fmt.Errorf("%w: gamma must be positive, got %g", ErrInvalidOperation, op.a)
		}
	case PointwiseLevels:
		if op.b <= op.a {
			return fmt.Errorf("%w: levels white %g must exceed black %g", ErrInvalidOperation, op.b, op.a)
		}
	default:
		return fmt.Errorf("%w: pointwise kind %d", ErrOperationMismatch, int(op.kind))
	}
	return nil
}

// Apply evaluates the rule on one channel value v whose range is [lo, hi].
// The result is not clamped; pixels saturate it in MapChannels.
func (op PointwiseOp) Apply(v, lo, hi float64) float64 {
	switch op.kind {
	case PointwiseNegate:
		return lo + hi - v
	case PointwiseBrighten:
		return v * op.a
	case PointwiseContrast:
		mid := (lo + hi) / 2
		return mid + (v-mid)*op.a
	case PointwiseGamma:
		n := (v - lo) / (hi - lo)
		if n <= 0 {
			return lo
		}
		return lo + math.Pow(n, 1/op.a)*(hi-lo)
	case PointwiseLevels:
		n := (v - lo) / (hi - lo)
		n = (n - op.a) / (op.b - op.a)
		return lo + n*(hi-lo)
	default:
		return v
	}
}

// String implements fmt.Stringer.
func (op PointwiseOp) String() string {
	switch op.kind {
	case PointwiseBrighten, PointwiseContrast, PointwiseGamma:
		return fmt.Sprintf("%s(%g)", op.kind, op.a)
	case PointwiseLevels:
		return fmt.Sprintf("%s(%g, %g)", op.kind, op.a, op.b)
	default:
		return op.kind.String()
	}
}

// OperationKind enumerates the Operation variants.
type OperationKind int

const (
	// KindUnknown is the zero Operation; no backend accepts it.
	KindUnknown OperationKind = iota
	// KindPointwise is a per-pixel channel adjustment.
	KindPointwise
	// KindConvolution is a weighted neighbourhood sum.
	KindConvolution
	// KindCustom is an opaque, backend-specific step.
	KindCustom
)

// String implements fmt.Stringer.
func (k OperationKind) String() string {
	switch k {
	case KindPointwise:
		return "pointwise"
	case KindConvolution:
		return "convolution"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Operation is an immutable, backend-independent description of a pixel
// computation. It holds no pixels and performs no work; hand it to a
// Backend to execute it.
//
// Create operations through an OperationBuilder. Every built operation gets
// a unique ID that backends report in errors and events.
type Operation struct {
	payload   any
	id        string
	name      string
	kernel    Kernel
	pointwise PointwiseOp
	kind      OperationKind
}

func newOperation(kind OperationKind, name string) Operation {
	return Operation{kind: kind, name: name, id: xid.New().String()}
}

// ID returns the operation's unique identifier, or "" for the zero
// Operation.
func (o Operation) ID() string { return o.id }

// Kind returns the operation variant.
func (o Operation) Kind() OperationKind { return o.kind }

// Name returns a readable name such as "pointwise:brighten(1.5)".
func (o Operation) Name() string {
	if o.name == "" {
		return o.kind.String()
	}
	return o.kind.String() + ":" + o.name
}

// Pointwise returns the adjustment of a pointwise operation.
func (o Operation) Pointwise() (PointwiseOp, bool) {
	return o.pointwise, o.kind == KindPointwise
}

// Kernel returns the kernel of a convolution.
func (o Operation) Kernel() (Kernel, bool) {
	return o.kernel, o.kind == KindConvolution
}

// Custom returns the name and payload of a custom operation.
func (o Operation) Custom() (name string, payload any, ok bool) {
	if o.kind != KindCustom {
		return "", nil, false
	}
	return o.name, o.payload, true
}

// String implements fmt.Stringer.
func (o Operation) String() string {
	if o.id == "" {
		return o.Name()
	}
	return o.Name() + " [" + o.id + "]"
}
