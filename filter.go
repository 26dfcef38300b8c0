package pixz

import "image"

// Predicate reports whether a pixel should be kept.
type Predicate[P any] func(P) bool

// Filter is a processor that suppresses pixels rejected by a predicate.
//
// Filter never changes the pixel type and never turns a rejection into an
// error: a pixel for which the predicate returns false becomes "no pixel"
// at that coordinate. Errors and "no pixel" from the source pass through
// unchanged, and the predicate is not consulted for them.
//
// Combined with Chain, Filter gives masking:
//
//	bright := pixz.NewFilter(photo, func(p pixz.Gray[uint8]) bool { return p.Value > 128 })
//	masked := pixz.NewChain[pixz.Gray[uint8]](bright, pixz.NewUniform(pixz.Gray[uint8]{}))
type Filter[P any, S Processor[P]] struct {
	source    S
	predicate Predicate[P]
}

// NewFilter wraps source so only pixels accepted by predicate are produced.
func NewFilter[P any, S Processor[P]](source S, predicate Predicate[P]) Filter[P, S] {
	if predicate == nil {
		panic("pixz.NewFilter: nil predicate")
	}
	return Filter[P, S]{source: source, predicate: predicate}
}

// ProcessPixel implements Processor.
func (f Filter[P, S]) ProcessPixel(x, y int) (P, bool, error) {
	var zero P
	p, ok, err := f.source.ProcessPixel(x, y)
	if err != nil || !ok {
		return zero, false, err
	}
	if !f.predicate(p) {
		return zero, false, nil
	}
	return p, true, nil
}

// Source returns the wrapped processor.
func (f Filter[P, S]) Source() S {
	return f.source
}

// Bounds forwards the source's bounds when it has any.
func (f Filter[P, S]) Bounds() image.Rectangle {
	r, _ := boundsOf(f.source)
	return r
}
