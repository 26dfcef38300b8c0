package pixz

import (
	"context"
	"fmt"
	"image"
)

// Backend names.
const (
	BackendCPU Name = "cpu"
	BackendGPU Name = "gpu"
)

// Backend executes Operations on frames. Execute is the only way an
// Operation turns into pixels.
//
// Implementations must be deterministic for pointwise operations and must
// fail explicitly, never silently no-op, on operations they cannot run.
// Failures are returned as *BackendError carrying the operation's identity.
// Execute never modifies src.
type Backend[P any] interface {
	Execute(ctx context.Context, op Operation, src *Frame[P]) (*Frame[P], error)
	Name() Name
}

// CPUKernel is the payload a custom Operation carries for CPUBackend.
// Run receives a private copy of the source frame and returns a new frame,
// which may differ in size.
type CPUKernel[P any] interface {
	Run(ctx context.Context, src *Frame[P]) (*Frame[P], error)
}

// CPUKernelFunc adapts a function into a CPUKernel.
type CPUKernelFunc[P any] func(ctx context.Context, src *Frame[P]) (*Frame[P], error)

// Run implements CPUKernel.
func (f CPUKernelFunc[P]) Run(ctx context.Context, src *Frame[P]) (*Frame[P], error) {
	return f(ctx, src)
}

// ExecutePixel runs op on a single pixel by wrapping it in a 1x1 frame.
//
// Example:
//
//	out, err := pixz.ExecutePixel(ctx, cpu, op, pixz.Gray[uint8]{Value: 100})
func ExecutePixel[P any](ctx context.Context, b Backend[P], op Operation, p P) (P, error) {
	var zero P
	out, err := b.Execute(ctx, op, &Frame[P]{Pix: []P{p}, Width: 1, Height: 1})
	if err != nil {
		return zero, err
	}
	if out == nil || len(out.Pix) == 0 {
		return zero, newBackendError(b.Name(), deviceOf(b), op,
			fmt.Errorf("%w: operation produced no pixels", ErrInvalidOperation))
	}
	return out.Pix[0], nil
}

// deviceOf returns the device index of backends bound to one, or -1.
func deviceOf(b any) int {
	if d, ok := b.(interface{ Device() int }); ok {
		return d.Device()
	}
	return -1
}

// Executed is a leaf processor whose pixels are the output of running an
// Operation on a Backend. The operation runs exactly once, in
// NewBackendProcessor; queries only read the stored result.
//
// A failed execution is kept and returned by every query, so a pipeline
// built on a GPUBackend fails with ErrBackendUnsupported wherever it is
// asked. Outside the output frame a successful Executed reports "no pixel".
//
// Example:
//
//	blurred := pixz.NewBackendProcessor(ctx, cpu, pixz.DefaultBuilder.ConvolveKernel(pixz.BoxBlur(2)), frame)
//	shifted := pixz.Translate[pixz.Gray[uint8]](blurred, 10, 0)
type Executed[P any] struct {
	frame   *Frame[P]
	err     error
	backend Name
	op      Operation
}

// NewBackendProcessor executes op on src with b and wraps the outcome as a
// leaf processor.
func NewBackendProcessor[P any](ctx context.Context, b Backend[P], op Operation, src *Frame[P]) Executed[P] {
	out, err := b.Execute(ctx, op, src)
	if err == nil && out == nil {
		err = newBackendError(b.Name(), deviceOf(b), op,
			fmt.Errorf("%w: operation produced no frame", ErrInvalidOperation))
	}
	if err != nil {
		out = nil
	}
	return Executed[P]{frame: out, err: err, backend: b.Name(), op: op}
}

// ProcessPixel implements Processor.
func (e Executed[P]) ProcessPixel(x, y int) (P, bool, error) {
	var zero P
	if e.err != nil {
		return zero, false, e.err
	}
	if e.frame == nil {
		return zero, false, nil
	}
	return e.frame.ProcessPixel(x, y)
}

// Bounds implements Bounded. A failed execution has empty bounds.
func (e Executed[P]) Bounds() image.Rectangle {
	if e.frame == nil {
		return image.Rectangle{}
	}
	return e.frame.Bounds()
}

// Frame returns the backend's output, or nil when execution failed.
func (e Executed[P]) Frame() *Frame[P] {
	return e.frame
}

// Err returns the execution error, if any.
func (e Executed[P]) Err() error {
	return e.err
}

// Backend returns the name of the backend that ran the operation.
func (e Executed[P]) Backend() Name {
	return e.backend
}

// Operation returns the executed operation.
func (e Executed[P]) Operation() Operation {
	return e.op
}
