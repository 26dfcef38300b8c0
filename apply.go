package pixz

import "image"

// ApplyFunc is a pixel transformation that may fail, for example when a
// conversion would overflow.
type ApplyFunc[In, Out any] func(In) (Out, error)

// Apply is the fallible counterpart of Map. Use it when the transformation
// can reject a pixel; prefer Map when it cannot.
//
// A non-nil error from the function stops evaluation of that coordinate and
// is returned as a *PixelError carrying the coordinate. The original error
// stays reachable with errors.Is and errors.As. Errors and "no pixel" from
// the source pass through unchanged.
//
// Example:
//
//	narrow := pixz.NewApply(wide, func(p pixz.Gray[uint16]) (pixz.Gray[uint8], error) {
//	    if p.Value > 255 {
//	        return pixz.Gray[uint8]{}, ErrOverflow
//	    }
//	    return pixz.Gray[uint8]{Value: uint8(p.Value)}, nil
//	})
type Apply[In, Out any, S Processor[In]] struct {
	source S
	fn     ApplyFunc[In, Out]
}

// NewApply wraps source so every produced pixel is transformed by fn.
func NewApply[In, Out any, S Processor[In]](source S, fn ApplyFunc[In, Out]) Apply[In, Out, S] {
	if fn == nil {
		panic("pixz.NewApply: nil apply function")
	}
	return Apply[In, Out, S]{source: source, fn: fn}
}

// ProcessPixel implements Processor.
func (a Apply[In, Out, S]) ProcessPixel(x, y int) (Out, bool, error) {
	var zero Out
	p, ok, err := a.source.ProcessPixel(x, y)
	if err != nil || !ok {
		return zero, false, err
	}
	out, err := a.fn(p)
	if err != nil {
		return zero, false, &PixelError{X: x, Y: y, Err: err}
	}
	return out, true, nil
}

// Source returns the wrapped processor.
func (a Apply[In, Out, S]) Source() S {
	return a.source
}

// Bounds forwards the source's bounds when it has any.
func (a Apply[In, Out, S]) Bounds() image.Rectangle {
	r, _ := boundsOf(a.source)
	return r
}
