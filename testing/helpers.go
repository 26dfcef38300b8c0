// Package testing provides test utilities and helpers for pixz-based applications.
//
// This package includes mock processors, grid leaves, assertion helpers and
// deterministic chaos processors to make testing pixz pipelines easier.
//
// Example usage:
//
//	func TestMyPipeline(t *testing.T) {
//		mock := pixztest.NewMockProcessor[pixz.Gray[uint8]](t, "leaf")
//		mock.WithReturn(pixz.Gray[uint8]{Value: 100})
//
//		pipeline := pixz.NewMap(mock, brighten)
//		pixztest.AssertPixel(t, pipeline, 3, 4, pixz.Gray[uint8]{Value: 150})
//		pixztest.AssertProcessed(t, mock, 1)
//	}
package testing

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/pixz"
)

// ErrChaos is the error injected by ChaosProcessor.
var ErrChaos = errors.New("chaos: injected failure")

// MockProcessor provides a configurable mock implementation of pixz.Processor[P].
// It tracks calls, allows configuring the outcome returned for every
// coordinate, and provides assertion methods for testing pipeline behavior.
type MockProcessor[P any] struct { //nolint:govet // fieldalignment: Test helper struct optimized for functionality over memory efficiency
	t           *testing.T
	name        string
	callCount   int64
	lastCall    MockCall
	returnVal   P
	returnOK    bool
	returnErr   error
	fn          pixz.ProcessorFunc[P]
	panicMsg    string
	mu          sync.RWMutex
	callHistory []MockCall
	maxHistory  int
}

// MockCall represents a single query to the mock processor.
type MockCall struct {
	X, Y      int
	Timestamp time.Time
}

// NewMockProcessor creates a new mock processor for testing.
// Until configured it reports "no pixel" everywhere.
func NewMockProcessor[P any](t *testing.T, name string) *MockProcessor[P] {
	return &MockProcessor[P]{
		t:          t,
		name:       name,
		maxHistory: 100, // Keep last 100 calls by default
	}
}

// WithReturn configures the mock to produce pixel p at every coordinate.
func (m *MockProcessor[P]) WithReturn(p P) *MockProcessor[P] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.returnVal, m.returnOK, m.returnErr, m.fn = p, true, nil, nil
	return m
}

// WithMiss configures the mock to report "no pixel" at every coordinate.
func (m *MockProcessor[P]) WithMiss() *MockProcessor[P] {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero P
	m.returnVal, m.returnOK, m.returnErr, m.fn = zero, false, nil, nil
	return m
}

// WithError configures the mock to fail every query with err.
func (m *MockProcessor[P]) WithError(err error) *MockProcessor[P] {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero P
	m.returnVal, m.returnOK, m.returnErr, m.fn = zero, false, err, nil
	return m
}

// WithFunc configures the mock to answer queries with fn.
func (m *MockProcessor[P]) WithFunc(fn pixz.ProcessorFunc[P]) *MockProcessor[P] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = fn
	return m
}

// WithPanic configures the mock to panic with a specific message.
// This is useful for checking that a pipeline never queries a stage.
func (m *MockProcessor[P]) WithPanic(msg string) *MockProcessor[P] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panicMsg = msg
	return m
}

// WithHistorySize configures how many calls to keep in history.
// Set to 0 to disable history tracking.
func (m *MockProcessor[P]) WithHistorySize(size int) *MockProcessor[P] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxHistory = size
	if size == 0 {
		m.callHistory = nil
	} else if len(m.callHistory) > size {
		m.callHistory = m.callHistory[len(m.callHistory)-size:]
	}
	return m
}

// Name returns the name of the mock processor.
func (m *MockProcessor[P]) Name() pixz.Name {
	return m.name
}

// ProcessPixel implements pixz.Processor[P]. It records the call and
// returns the configured outcome.
func (m *MockProcessor[P]) ProcessPixel(x, y int) (P, bool, error) {
	atomic.AddInt64(&m.callCount, 1)

	m.mu.Lock()
	call := MockCall{X: x, Y: y, Timestamp: time.Now()}
	m.lastCall = call
	if m.maxHistory > 0 {
		m.callHistory = append(m.callHistory, call)
		if len(m.callHistory) > m.maxHistory {
			m.callHistory = m.callHistory[1:] // Remove oldest
		}
	}
	returnVal, returnOK, returnErr := m.returnVal, m.returnOK, m.returnErr
	fn := m.fn
	panicMsg := m.panicMsg
	m.mu.Unlock()

	if panicMsg != "" {
		panic(panicMsg)
	}
	if fn != nil {
		return fn(x, y)
	}
	return returnVal, returnOK, returnErr
}

// CallCount returns the number of times ProcessPixel has been called.
func (m *MockProcessor[P]) CallCount() int {
	return int(atomic.LoadInt64(&m.callCount))
}

// LastCall returns the most recent query.
func (m *MockProcessor[P]) LastCall() MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastCall
}

// CallHistory returns a copy of all recorded calls.
// Returns nil if history tracking is disabled.
func (m *MockProcessor[P]) CallHistory() []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.maxHistory == 0 {
		return nil
	}
	history := make([]MockCall, len(m.callHistory))
	copy(history, m.callHistory)
	return history
}

// Reset clears all call tracking.
func (m *MockProcessor[P]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	atomic.StoreInt64(&m.callCount, 0)
	m.lastCall = MockCall{}
	m.callHistory = nil
}

// GridProcessor is a leaf holding pixels in rows, with the origin at the
// first pixel of the first row. Rows may differ in length; coordinates past
// the end of a row are "no pixel".
type GridProcessor[P any] struct {
	rows  [][]P
	width int
}

// NewGridProcessor builds a leaf from rows of pixels.
func NewGridProcessor[P any](rows ...[]P) GridProcessor[P] {
	width := 0
	copied := make([][]P, len(rows))
	for i, row := range rows {
		copied[i] = append([]P(nil), row...)
		width = max(width, len(row))
	}
	return GridProcessor[P]{rows: copied, width: width}
}

// ProcessPixel implements pixz.Processor[P].
func (g GridProcessor[P]) ProcessPixel(x, y int) (P, bool, error) {
	if y < 0 || y >= len(g.rows) || x < 0 || x >= len(g.rows[y]) {
		var zero P
		return zero, false, nil
	}
	return g.rows[y][x], true, nil
}

// Bounds implements pixz.Bounded.
func (g GridProcessor[P]) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, len(g.rows))
}

// Assertion Helpers

// AssertProcessed verifies that a mock processor was called exactly n times.
func AssertProcessed[P any](t *testing.T, mock *MockProcessor[P], expectedCalls int) {
	t.Helper()
	actualCalls := mock.CallCount()
	if actualCalls != expectedCalls {
		t.Errorf("expected mock processor %s to be called %d times, but was called %d times",
			mock.name, expectedCalls, actualCalls)
	}
}

// AssertNotProcessed verifies that a mock processor was never called.
func AssertNotProcessed[P any](t *testing.T, mock *MockProcessor[P]) {
	t.Helper()
	AssertProcessed(t, mock, 0)
}

// AssertQueriedAt verifies that the most recent query was for (x, y).
func AssertQueriedAt[P any](t *testing.T, mock *MockProcessor[P], x, y int) {
	t.Helper()
	if mock.CallCount() == 0 {
		t.Errorf("expected mock processor %s to be queried at (%d, %d), but it was never called",
			mock.name, x, y)
		return
	}
	if last := mock.LastCall(); last.X != x || last.Y != y {
		t.Errorf("expected mock processor %s to be queried at (%d, %d), but was queried at (%d, %d)",
			mock.name, x, y, last.X, last.Y)
	}
}

// AssertPixel verifies that p produces want at (x, y).
func AssertPixel[P comparable](t *testing.T, p pixz.Processor[P], x, y int, want P) {
	t.Helper()
	got, ok, err := p.ProcessPixel(x, y)
	switch {
	case err != nil:
		t.Errorf("expected %v at (%d, %d), got error %v", want, x, y, err)
	case !ok:
		t.Errorf("expected %v at (%d, %d), got no pixel", want, x, y)
	case got != want:
		t.Errorf("expected %v at (%d, %d), got %v", want, x, y, got)
	}
}

// AssertMiss verifies that p produces no pixel and no error at (x, y).
func AssertMiss[P any](t *testing.T, p pixz.Processor[P], x, y int) {
	t.Helper()
	got, ok, err := p.ProcessPixel(x, y)
	if err != nil {
		t.Errorf("expected no pixel at (%d, %d), got error %v", x, y, err)
	} else if ok {
		t.Errorf("expected no pixel at (%d, %d), got %v", x, y, got)
	}
}

// AssertFailure verifies that p fails at (x, y) with an error matching target.
func AssertFailure[P any](t *testing.T, p pixz.Processor[P], x, y int, target error) {
	t.Helper()
	_, _, err := p.ProcessPixel(x, y)
	if !errors.Is(err, target) {
		t.Errorf("expected %v at (%d, %d), got %v", target, x, y, err)
	}
}

// AssertFramesEqual verifies that two frames have the same size and pixels.
func AssertFramesEqual[P comparable](t *testing.T, want, got *pixz.Frame[P]) {
	t.Helper()
	if want.Width != got.Width || want.Height != got.Height {
		t.Errorf("expected %dx%d frame, got %dx%d", want.Width, want.Height, got.Width, got.Height)
		return
	}
	for i := range want.Pix {
		if want.Pix[i] != got.Pix[i] {
			t.Errorf("first difference at (%d, %d): expected %v, got %v",
				i%want.Width, i/want.Width, want.Pix[i], got.Pix[i])
			return
		}
	}
}

// ChaosProcessor wraps another processor and injects failures and misses
// at a configured rate. Decisions are a pure function of the coordinate and
// seed, so the wrapped pipeline stays referentially transparent: a
// coordinate that fails once fails every time.
type ChaosProcessor[P any] struct { //nolint:govet // fieldalignment: Test helper struct optimized for functionality over memory efficiency
	name    string
	wrapped pixz.Processor[P]
	config  ChaosConfig

	totalCalls    atomic.Int64
	failedCalls   atomic.Int64
	missedCalls   atomic.Int64
	passedThrough atomic.Int64
}

// ChaosConfig configures chaos behavior.
type ChaosConfig struct {
	FailureRate float64 // 0.0 to 1.0, fraction of coordinates that fail
	MissRate    float64 // 0.0 to 1.0, fraction of coordinates forced to "no pixel"
	Seed        uint64  // Selects which coordinates are affected
}

// NewChaosProcessor creates a chaos processor wrapping another processor.
func NewChaosProcessor[P any](name string, wrapped pixz.Processor[P], config ChaosConfig) *ChaosProcessor[P] {
	return &ChaosProcessor[P]{name: name, wrapped: wrapped, config: config}
}

// Name returns the name of the chaos processor.
func (c *ChaosProcessor[P]) Name() pixz.Name {
	return c.name
}

// ProcessPixel implements pixz.Processor[P].
func (c *ChaosProcessor[P]) ProcessPixel(x, y int) (P, bool, error) {
	c.totalCalls.Add(1)
	var zero P

	roll := unitHash(uint64(int64(x)), uint64(int64(y)), c.config.Seed)
	if roll < c.config.FailureRate {
		c.failedCalls.Add(1)
		return zero, false, &pixz.PixelError{X: x, Y: y, Err: ErrChaos}
	}
	if roll < c.config.FailureRate+c.config.MissRate {
		c.missedCalls.Add(1)
		return zero, false, nil
	}

	c.passedThrough.Add(1)
	return c.wrapped.ProcessPixel(x, y)
}

// Stats returns statistics about chaos behavior.
func (c *ChaosProcessor[P]) Stats() ChaosStats {
	return ChaosStats{
		TotalCalls:    c.totalCalls.Load(),
		FailedCalls:   c.failedCalls.Load(),
		MissedCalls:   c.missedCalls.Load(),
		PassedThrough: c.passedThrough.Load(),
	}
}

// ChaosStats provides statistics about chaos processor behavior.
type ChaosStats struct {
	TotalCalls    int64
	FailedCalls   int64
	MissedCalls   int64
	PassedThrough int64
}

// FailureRate returns the actual failure rate.
func (s ChaosStats) FailureRate() float64 {
	if s.TotalCalls == 0 {
		return 0
	}
	return float64(s.FailedCalls) / float64(s.TotalCalls)
}

// MissRate returns the actual forced-miss rate.
func (s ChaosStats) MissRate() float64 {
	if s.TotalCalls == 0 {
		return 0
	}
	return float64(s.MissedCalls) / float64(s.TotalCalls)
}

// String returns a human-readable summary of chaos statistics.
func (s ChaosStats) String() string {
	return fmt.Sprintf("ChaosStats{Total: %d, Failed: %d (%.1f%%), Missed: %d (%.1f%%), Passed: %d}",
		s.TotalCalls, s.FailedCalls, s.FailureRate()*100,
		s.MissedCalls, s.MissRate()*100, s.PassedThrough)
}

// unitHash maps a coordinate and seed to [0, 1) with a splitmix64 finalizer.
func unitHash(x, y, seed uint64) float64 {
	h := seed ^ (x * 0x9e3779b97f4a7c15) ^ (y * 0xbf58476d1ce4e5b9)
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return float64(h>>11) / (1 << 53)
}

// WaitForCalls waits for a mock processor to be called at least n times,
// with a timeout. Returns true if the expected calls were reached.
func WaitForCalls[P any](mock *MockProcessor[P], expectedCalls int, timeout time.Duration) bool {
	start := time.Now()
	for time.Since(start) < timeout {
		if mock.CallCount() >= expectedCalls {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// ParallelTest runs a test function in parallel with multiple goroutines.
// Useful for checking that a pipeline can be queried concurrently.
func ParallelTest(t *testing.T, goroutines int, testFunc func(int)) {
	t.Helper()

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			testFunc(id)
		}(i)
	}

	wg.Wait()
}

// RenderAll renders p over its bounds, failing the test on error. The
// processor must be pixz.Bounded.
func RenderAll[P any](t *testing.T, p pixz.Processor[P], fill P) *pixz.Frame[P] {
	t.Helper()
	b, ok := p.(pixz.Bounded)
	if !ok {
		t.Fatalf("processor %T has no bounds", p)
	}
	f, err := pixz.Render(context.Background(), p, b.Bounds(), fill)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return f
}
