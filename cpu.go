package pixz

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Observability constants for the CPU backend.
const (
	// Metrics.
	CPUExecutedTotal  = metricz.Key("cpu.executed.total")
	CPUSucceededTotal = metricz.Key("cpu.succeeded.total")
	CPUFailedTotal    = metricz.Key("cpu.failed.total")
	CPUDurationMs     = metricz.Key("cpu.duration.ms")

	// Spans.
	CPUExecuteSpan = tracez.Key("cpu.execute")

	// Tags.
	CPUTagOperation = tracez.Tag("cpu.operation")
	CPUTagKind      = tracez.Tag("cpu.kind")
	CPUTagFeatures  = tracez.Tag("cpu.features")
	CPUTagSize      = tracez.Tag("cpu.size")
	CPUTagSuccess   = tracez.Tag("cpu.success")
	CPUTagError     = tracez.Tag("cpu.error")

	// Hook event keys.
	CPUEventExecuted = hookz.Key("cpu.executed")
	CPUEventFailed   = hookz.Key("cpu.failed")
)

// CPUEvent describes one CPU backend execution. It is emitted via hookz
// after every Execute call.
type CPUEvent struct {
	Timestamp     time.Time     // When the execution finished
	Error         error         // Failure, nil on success
	OperationID   string        // Operation.ID()
	OperationName string        // Operation.Name()
	Kind          OperationKind // Operation variant
	Width         int           // Source frame width
	Height        int           // Source frame height
	Duration      time.Duration // Time spent executing
	Success       bool          // Whether the execution succeeded
}

// CPUBackend executes operations in Go on the calling goroutine.
//
// Pointwise operations apply their rule to every channel of every pixel.
// Convolutions sum the weighted neighbourhood of each pixel per channel,
// clamping reads at the frame edge. Custom operations carry either a
// CPUKernel or a []P of precomputed pixels matching the source size; any
// other payload fails with ErrBackendUnsupported.
// The zero Operation fails with ErrOperationMismatch.
//
// The source frame is never modified. The context is checked before each
// row.
//
// # Observability
//
// Metrics:
//   - cpu.executed.total: Counter of Execute calls
//   - cpu.succeeded.total: Counter of successful executions
//   - cpu.failed.total: Counter of failed executions
//   - cpu.duration.ms: Gauge of the last execution's duration
//
// Traces:
//   - cpu.execute: Span per Execute call
//
// Events (via hooks):
//   - cpu.executed: Fired after a successful execution
//   - cpu.failed: Fired after a failed execution
//
// Example:
//
//	cpu := pixz.NewCPUBackend[pixz.Gray[uint8]]()
//	defer cpu.Close()
//
//	op := pixz.DefaultBuilder.Pointwise(pixz.Brighten(1.2))
//	out, err := cpu.Execute(ctx, op, frame)
type CPUBackend[P Pixel[P]] struct {
	clock    clockz.Clock
	logger   *logrus.Logger
	metrics  *metricz.Registry
	tracer   *tracez.Tracer
	hooks    *hookz.Hooks[CPUEvent]
	features string
	mu       sync.RWMutex
}

// NewCPUBackend creates a CPU backend for pixel type P.
func NewCPUBackend[P Pixel[P]]() *CPUBackend[P] {
	metrics := metricz.New()
	metrics.Counter(CPUExecutedTotal)
	metrics.Counter(CPUSucceededTotal)
	metrics.Counter(CPUFailedTotal)
	metrics.Gauge(CPUDurationMs)

	return &CPUBackend[P]{
		clock:    clockz.RealClock,
		logger:   NewLogger(),
		metrics:  metrics,
		tracer:   tracez.New(),
		hooks:    hookz.New[CPUEvent](),
		features: Features(),
	}
}

// Name implements Backend.
func (*CPUBackend[P]) Name() Name {
	return BackendCPU
}

// Features returns the host feature level recorded at construction.
func (c *CPUBackend[P]) Features() string {
	return c.features
}

// Execute implements Backend.
func (c *CPUBackend[P]) Execute(ctx context.Context, op Operation, src *Frame[P]) (out *Frame[P], err error) {
	c.mu.RLock()
	clock := c.getClock()
	logger := c.logger
	c.mu.RUnlock()

	c.metrics.Counter(CPUExecutedTotal).Inc()
	start := clock.Now()

	var width, height int
	if src != nil {
		width, height = src.Width, src.Height
	}

	ctx, span := c.tracer.StartSpan(ctx, CPUExecuteSpan)
	span.SetTag(CPUTagOperation, op.Name())
	span.SetTag(CPUTagKind, op.Kind().String())
	span.SetTag(CPUTagFeatures, c.features)
	span.SetTag(CPUTagSize, strconv.Itoa(width)+"x"+strconv.Itoa(height))
	defer func() {
		elapsed := clock.Since(start)
		c.metrics.Gauge(CPUDurationMs).Set(float64(elapsed.Milliseconds()))

		event := CPUEvent{
			OperationID:   op.ID(),
			OperationName: op.Name(),
			Kind:          op.Kind(),
			Width:         width,
			Height:        height,
			Duration:      elapsed,
			Success:       err == nil,
			Error:         err,
			Timestamp:     clock.Now(),
		}
		entry := logger.WithFields(logrus.Fields{
			LogFieldBackend:   BackendCPU,
			LogFieldOperation: op.Name(),
			LogFieldKind:      op.Kind().String(),
			LogFieldSize:      strconv.Itoa(width) + "x" + strconv.Itoa(height),
			LogFieldDuration:  elapsed,
		})

		if err == nil {
			span.SetTag(CPUTagSuccess, "true")
			c.metrics.Counter(CPUSucceededTotal).Inc()
			_ = c.hooks.Emit(ctx, CPUEventExecuted, event) //nolint:errcheck
			entry.Debug("operation executed")
		} else {
			span.SetTag(CPUTagSuccess, "false")
			span.SetTag(CPUTagError, err.Error())
			c.metrics.Counter(CPUFailedTotal).Inc()
			_ = c.hooks.Emit(ctx, CPUEventFailed, event) //nolint:errcheck
			entry.WithError(err).Warn("operation failed")
		}
		span.Finish()
	}()

	out, err = c.run(ctx, op, src)
	if err != nil {
		return nil, newBackendError(BackendCPU, -1, op, err)
	}
	return out, nil
}

func (c *CPUBackend[P]) run(ctx context.Context, op Operation, src *Frame[P]) (*Frame[P], error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source frame", ErrInvalidOperation)
	}
	if src.Width < 0 || src.Height < 0 || len(src.Pix) != src.Width*src.Height {
		return nil, fmt.Errorf("%w: %d pixels for a %dx%d frame", ErrInvalidOperation, len(src.Pix), src.Width, src.Height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch op.Kind() {
	case KindPointwise:
		pw, _ := op.Pointwise()
		if err := pw.Validate(); err != nil {
			return nil, err
		}
		return pointwise(ctx, pw, src)
	case KindConvolution:
		k, _ := op.Kernel()
		if !k.valid() {
			return nil, fmt.Errorf("%w: malformed kernel %s", ErrInvalidOperation, k)
		}
		return convolve(ctx, k, src)
	case KindCustom:
		name, payload, _ := op.Custom()
		if data, ok := payload.([]P); ok {
			return customData(name, data, src)
		}
		kernel, ok := payload.(CPUKernel[P])
		if !ok || kernel == nil {
			return nil, fmt.Errorf("%w: custom operation %q carries %T, not a CPU kernel", ErrBackendUnsupported, name, payload)
		}
		out, err := kernel.Run(ctx, src.Clone())
		if err != nil {
			return nil, err
		}
		if out == nil {
			return nil, fmt.Errorf("%w: custom operation %q returned no frame", ErrInvalidOperation, name)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s operation", ErrOperationMismatch, op.Kind())
	}
}

// customData returns a frame of src's size holding a copy of data.
func customData[P any](name string, data []P, src *Frame[P]) (*Frame[P], error) {
	if len(data) != len(src.Pix) {
		return nil, fmt.Errorf("%w: custom operation %q carries %d pixels for a %dx%d frame",
			ErrInvalidOperation, name, len(data), src.Width, src.Height)
	}
	pix := make([]P, len(data))
	copy(pix, data)
	return &Frame[P]{Pix: pix, Width: src.Width, Height: src.Height}, nil
}

func pointwise[P Pixel[P]](ctx context.Context, op PointwiseOp, src *Frame[P]) (*Frame[P], error) {
	var zero P
	lo, hi := zero.ChannelRange()
	apply := func(_ int, v float64) float64 { return op.Apply(v, lo, hi) }

	out := NewFrame[P](src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := y * src.Width
		for x := 0; x < src.Width; x++ {
			out.Pix[row+x] = src.Pix[row+x].MapChannels(apply)
		}
	}
	return out, nil
}

func convolve[P Pixel[P]](ctx context.Context, k Kernel, src *Frame[P]) (*Frame[P], error) {
	var zero P
	sums := make([]float64, zero.Channels())
	cx, cy := k.width/2, k.height/2
	sum := func(i int, _ float64) float64 { return sums[i] }

	out := NewFrame[P](src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for x := 0; x < src.Width; x++ {
			clear(sums)
			for j := 0; j < k.height; j++ {
				for i := 0; i < k.width; i++ {
					w := k.weights[j*k.width+i]
					if w == 0 {
						continue
					}
					px := src.clampAt(x+i-cx, y+j-cy)
					for ch := range sums {
						sums[ch] += w * px.Channel(ch)
					}
				}
			}
			out.Pix[y*src.Width+x] = src.Pix[y*src.Width+x].MapChannels(sum)
		}
	}
	return out, nil
}

// WithClock sets a custom clock for testing.
func (c *CPUBackend[P]) WithClock(clock clockz.Clock) *CPUBackend[P] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock = clock
	return c
}

// WithLogger replaces the backend's logger.
func (c *CPUBackend[P]) WithLogger(logger *logrus.Logger) *CPUBackend[P] {
	if logger == nil {
		return c
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = logger
	return c
}

// getClock returns the clock to use.
func (c *CPUBackend[P]) getClock() clockz.Clock {
	if c.clock == nil {
		return clockz.RealClock
	}
	return c.clock
}

// Metrics returns the metrics registry for this backend.
func (c *CPUBackend[P]) Metrics() *metricz.Registry {
	return c.metrics
}

// Tracer returns the tracer for this backend.
func (c *CPUBackend[P]) Tracer() *tracez.Tracer {
	return c.tracer
}

// Close shuts down the tracer and hooks.
func (c *CPUBackend[P]) Close() error {
	if c.tracer != nil {
		c.tracer.Close()
	}
	c.hooks.Close()
	return nil
}

// OnExecuted registers a handler called asynchronously after each
// successful execution.
func (c *CPUBackend[P]) OnExecuted(handler func(context.Context, CPUEvent) error) error {
	_, err := c.hooks.Hook(CPUEventExecuted, handler)
	return err
}

// OnFailed registers a handler called asynchronously after each failed
// execution.
func (c *CPUBackend[P]) OnFailed(handler func(context.Context, CPUEvent) error) error {
	_, err := c.hooks.Hook(CPUEventFailed, handler)
	return err
}
