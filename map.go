package pixz

import "image"

// MapFunc is a pure pixel transformation used by Map. It must be total over
// the inner processor's pixel type.
type MapFunc[In, Out any] func(In) Out

// Map is a processor that passes every pixel produced by its source through
// a pure function. The output pixel type may differ from the input type.
//
// "No pixel" and errors from the source pass through unchanged, so
// mapping twice is the same as mapping once with the composed function:
//
//	NewMap(NewMap(src, f), g) ≡ NewMap(src, func(p In) Out { return g(f(p)) })
//
// Map is a value type parameterized over its source's concrete type, so a
// nested pipeline is resolved statically and evaluates without allocating.
//
// Example:
//
//	doubled := pixz.NewMap(leaf, func(p pixz.Gray[uint8]) pixz.Gray[uint8] {
//	    return pixz.Gray[uint8]{Value: p.Value * 2}
//	})
type Map[In, Out any, S Processor[In]] struct {
	source S
	fn     MapFunc[In, Out]
}

// NewMap wraps source so every produced pixel is transformed by fn.
func NewMap[In, Out any, S Processor[In]](source S, fn MapFunc[In, Out]) Map[In, Out, S] {
	if fn == nil {
		panic("pixz.NewMap: nil map function")
	}
	return Map[In, Out, S]{source: source, fn: fn}
}

// ProcessPixel implements Processor.
func (m Map[In, Out, S]) ProcessPixel(x, y int) (Out, bool, error) {
	p, ok, err := m.source.ProcessPixel(x, y)
	if err != nil || !ok {
		var zero Out
		return zero, false, err
	}
	return m.fn(p), true, nil
}

// Source returns the wrapped processor.
func (m Map[In, Out, S]) Source() S {
	return m.source
}

// Bounds forwards the source's bounds when it has any.
func (m Map[In, Out, S]) Bounds() image.Rectangle {
	r, _ := boundsOf(m.source)
	return r
}
