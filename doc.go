// Package pixz provides a functional, pull-based pixel processing library for Go.
//
// # Overview
//
// pixz builds image pipelines out of small processors. A pipeline is
// evaluated one coordinate at a time: asking it for the pixel at (x, y)
// asks each stage in turn, down to a leaf that actually holds pixels. There
// is no background work and no shared mutable state, so the same pipeline
// can be queried from several goroutines for disjoint coordinates.
//
// # Core Concepts
//
// The library is built around a single interface:
//
//   - Processor[P]: ProcessPixel(x, y int) (P, bool, error)
//   - Leaves: Frame, Uniform, ImageSource and ProcessorFunc hold or compute pixels
//   - Combinators: Map, Apply, Filter, Chain and Transformed wrap other processors
//
// A query has three outcomes. (p, true, nil) means a pixel exists.
// (zero, false, nil) means there is no pixel here, which is normal and is
// what Chain's fallback intercepts. (zero, false, err) means the query
// could not be evaluated; combinators never swallow errors.
//
// Combinators are generic value types parameterized over the concrete type
// of the processor they wrap, so a nested pipeline is resolved at compile
// time and evaluates without interface dispatch or allocation.
//
// # Combinators
//
//   - Map: Transform every pixel with a pure function
//   - Apply: Transform every pixel with a function that may fail
//   - Filter: Keep pixels matching a predicate, report "no pixel" otherwise
//   - Chain: Ask a primary, fall back to a second processor on "no pixel"
//   - Transformed: Remap coordinates through an Affine transform
//   - Observed: Count hits, misses and failures without changing results
//
// # Affine Transforms
//
// Affine is a 2x3 matrix with the usual constructors (Identity,
// Translation, Scaling, Rotation, Shear) and composition with Then, which
// applies the receiver first. Transformed maps output coordinates back
// through the inverse, so a singular transform is reported as
// ErrNonInvertibleTransform on every query.
//
// # Operations and Backends
//
// Whole-frame computations are described by an Operation: a pointwise
// channel rule, a convolution kernel, or a custom backend-specific payload.
// Operations hold no pixels and do nothing on their own. They are built by
// an OperationBuilder, directly or by registered name:
//
//	op, err := pixz.BuildOperation("brighten", 1.2)
//
// A Backend executes them. CPUBackend runs every variant in Go and reports
// metrics, spans and events. GPUBackend is a placeholder that rejects every
// operation with ErrBackendUnsupported; nothing falls back automatically.
// NewBackendProcessor turns one execution into a leaf processor, so a
// backend's output can feed further combinators.
//
// # Usage Example
//
//	type Gray8 = pixz.Gray[uint8]
//
//	leaf := pixz.NewUniformIn(Gray8{Value: 100}, image.Rect(0, 0, 10, 10))
//
//	doubled := pixz.NewMap(leaf, func(p Gray8) Gray8 {
//	    return Gray8{Value: p.Value * 2}
//	})
//	bright := pixz.NewFilter(doubled, func(p Gray8) bool { return p.Value > 128 })
//	moved := pixz.Translate[Gray8](bright, 5, 0)
//
//	frame, err := pixz.Render(ctx, moved, image.Rect(0, 0, 20, 10), Gray8{})
//	if err != nil {
//	    return err
//	}
//
//	cpu := pixz.NewCPUBackend[Gray8]()
//	defer cpu.Close()
//	out, err := cpu.Execute(ctx, pixz.DefaultBuilder.ConvolveKernel(pixz.BoxBlur(1)), frame)
//
// # Errors
//
// Failures are values. Match kinds with errors.Is against ErrOutOfBounds,
// ErrNonInvertibleTransform, ErrBackendUnsupported, ErrOperationMismatch
// and ErrInvalidOperation; use errors.As for *PixelError (which coordinate)
// and *BackendError (which backend, device and operation).
//
// # Configuration
//
// Configuration is code-first through constructor arguments and WithXxx
// methods. Two environment variables are read: PIXZ_DEBUG switches loggers
// to debug level and PIXZ_NO_SIMD forces Features to report "scalar".
package pixz
