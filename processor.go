package pixz

import "image"

// Processor is the contract every pipeline stage implements: given a
// coordinate, produce zero or one pixel, or fail.
//
// The three outcomes are:
//   - (p, true, nil): a pixel exists at (x, y) and equals p
//   - (zero, false, nil): no pixel at (x, y); a normal outcome, not an error
//   - (zero, false, err): the query itself could not be evaluated
//
// Implementations must be referentially transparent: querying the same
// coordinate twice returns equal results. Combinators rely on this to
// compose without surprises, and it is what makes a processor safe to query
// from several goroutines at once.
//
// Deciding what counts as out of range is the job of leaf processors.
// Wrappers never bounds-check on their own.
type Processor[P any] interface {
	ProcessPixel(x, y int) (P, bool, error)
}

// Name identifies backends and observed stages in metrics, spans, logs and
// errors. Store names as constants rather than inline strings.
type Name = string

// Bounded is implemented by processors that know the rectangle in which
// they can produce pixels.
type Bounded interface {
	Bounds() image.Rectangle
}

// ProcessorFunc adapts an ordinary function into a leaf Processor.
//
// Example:
//
//	checker := pixz.ProcessorFunc[pixz.Gray[uint8]](func(x, y int) (pixz.Gray[uint8], bool, error) {
//	    if x < 0 || y < 0 || x >= 8 || y >= 8 {
//	        return pixz.Gray[uint8]{}, false, nil
//	    }
//	    return pixz.Gray[uint8]{Value: uint8(255 * ((x + y) % 2))}, true, nil
//	})
type ProcessorFunc[P any] func(x, y int) (P, bool, error)

// ProcessPixel implements Processor.
func (f ProcessorFunc[P]) ProcessPixel(x, y int) (P, bool, error) {
	return f(x, y)
}

// Uniform is a leaf processor producing the same pixel everywhere inside
// its rectangle, or everywhere when the rectangle is empty.
type Uniform[P any] struct {
	pixel P
	rect  image.Rectangle
}

// NewUniform creates an unbounded Uniform processor.
func NewUniform[P any](pixel P) Uniform[P] {
	return Uniform[P]{pixel: pixel}
}

// NewUniformIn creates a Uniform processor clipped to rect.
func NewUniformIn[P any](pixel P, rect image.Rectangle) Uniform[P] {
	return Uniform[P]{pixel: pixel, rect: rect.Canon()}
}

// ProcessPixel implements Processor.
func (u Uniform[P]) ProcessPixel(x, y int) (P, bool, error) {
	if !u.rect.Empty() && !image.Pt(x, y).In(u.rect) {
		var zero P
		return zero, false, nil
	}
	return u.pixel, true, nil
}

// boundsOf returns the bounds of p when it is Bounded.
func boundsOf(p any) (image.Rectangle, bool) {
	if b, ok := p.(Bounded); ok {
		return b.Bounds(), true
	}
	return image.Rectangle{}, false
}
