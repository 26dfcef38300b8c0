package pixz

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/zoobzio/metricz"
)

// Observability constants for the GPU backend.
const (
	// Metrics.
	GPURejectedTotal = metricz.Key("gpu.rejected.total")
)

// GPUBackend is the placeholder for device execution. It accepts any
// operation and always fails with a *BackendError wrapping
// ErrBackendUnsupported that names the device and the operation, so
// callers can tell an unavailable backend apart from a malformed
// operation. Nothing falls back to the CPU; choosing a backend is the
// caller's job.
//
// Example:
//
//	gpu := pixz.NewGPUBackend[pixz.Gray[uint8]](0)
//	if _, err := gpu.Execute(ctx, op, frame); errors.Is(err, pixz.ErrBackendUnsupported) {
//	    out, err = cpu.Execute(ctx, op, frame)
//	}
type GPUBackend[P any] struct {
	logger  *logrus.Logger
	metrics *metricz.Registry
	device  int
}

// NewGPUBackend creates a placeholder backend for the given device index.
func NewGPUBackend[P any](device int) *GPUBackend[P] {
	metrics := metricz.New()
	metrics.Counter(GPURejectedTotal)
	return &GPUBackend[P]{
		logger:  NewLogger(),
		metrics: metrics,
		device:  device,
	}
}

// Name implements Backend.
func (*GPUBackend[P]) Name() Name {
	return BackendGPU
}

// Device returns the device index the backend was created for.
func (g *GPUBackend[P]) Device() int {
	return g.device
}

// Execute implements Backend. It never succeeds.
func (g *GPUBackend[P]) Execute(_ context.Context, op Operation, _ *Frame[P]) (*Frame[P], error) {
	g.metrics.Counter(GPURejectedTotal).Inc()
	g.logger.WithFields(logrus.Fields{
		LogFieldBackend:   BackendGPU,
		LogFieldDevice:    g.device,
		LogFieldOperation: op.Name(),
		LogFieldKind:      op.Kind().String(),
	}).Debug("operation rejected")
	return nil, newBackendError(BackendGPU, g.device, op, ErrBackendUnsupported)
}

// WithLogger replaces the backend's logger.
func (g *GPUBackend[P]) WithLogger(logger *logrus.Logger) *GPUBackend[P] {
	if logger != nil {
		g.logger = logger
	}
	return g
}

// Metrics returns the metrics registry for this backend.
func (g *GPUBackend[P]) Metrics() *metricz.Registry {
	return g.metrics
}
