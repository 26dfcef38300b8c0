package pixz

import (
	"errors"
	"fmt"
)

// Error kinds reported by pixz. Match them with errors.Is; the structured
// types below wrap them with context.
var (
	// ErrOutOfBounds is returned by leaf accessors asked for a coordinate
	// outside their storage. Processors report out-of-range queries as
	// "no pixel" instead.
	ErrOutOfBounds = errors.New("pixz: coordinate out of bounds")

	// ErrNonInvertibleTransform is returned when an affine transform has a
	// singular linear part.
	ErrNonInvertibleTransform = errors.New("pixz: transform is not invertible")

	// ErrBackendUnsupported is returned when a backend cannot run an
	// operation at all, either because the backend is unavailable or because
	// it does not implement that kind of operation.
	ErrBackendUnsupported = errors.New("pixz: operation not supported by backend")

	// ErrOperationMismatch is returned when a backend does not recognize the
	// operation variant it was given.
	ErrOperationMismatch = errors.New("pixz: operation not recognized by backend")

	// ErrInvalidOperation is returned for malformed operations and inputs.
	ErrInvalidOperation = errors.New("pixz: invalid operation")

	// ErrUnknownOperation is returned when building an unregistered name.
	ErrUnknownOperation = errors.New("pixz: unknown operation")

	// ErrDuplicateOperation is returned when registering a name twice.
	ErrDuplicateOperation = errors.New("pixz: operation already registered")
)

// BackendError describes a failed backend execution. It identifies the
// backend and the operation that was attempted so callers can tell an
// unavailable backend apart from a malformed operation.
type BackendError struct {
	Err           error
	Backend       Name
	OperationID   string
	OperationName string
	Device        int
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	if e.Device >= 0 {
		return fmt.Sprintf("%s backend (device %d) failed %s [%s]: %v",
			e.Backend, e.Device, e.OperationName, e.OperationID, e.Err)
	}
	return fmt.Sprintf("%s backend failed %s [%s]: %v", e.Backend, e.OperationName, e.OperationID, e.Err)
}

// Unwrap returns the underlying error.
func (e *BackendError) Unwrap() error {
	return e.Err
}

// PixelError records the coordinate at which a pixel query failed.
type PixelError struct {
	Err  error
	X, Y int
}

// Error implements the error interface.
func (e *PixelError) Error() string {
	return fmt.Sprintf("pixel (%d, %d): %v", e.X, e.Y, e.Err)
}

// Unwrap returns the underlying error.
func (e *PixelError) Unwrap() error {
	return e.Err
}

func newBackendError(backend Name, device int, op Operation, err error) *BackendError {
	return &BackendError{
		Err:           err,
		Backend:       backend,
		OperationID:   op.ID(),
		OperationName: op.Name(),
		Device:        device,
	}
}
