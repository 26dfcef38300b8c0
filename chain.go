package pixz

import "image"

// Chain is an ordered fallback between two processors of the same pixel
// type. The primary is queried first; only an explicit "no pixel" from the
// primary makes Chain query the fallback at the same coordinate.
//
// A failure from the primary is not a reason to fall back. It is returned
// as is, without querying the fallback, so a broken stage can never hide
// behind a default.
//
// Chains nest, giving a fallback list of any length:
//
//	type Gray8 = pixz.Gray[uint8]
//	layered := pixz.NewChain[Gray8](overlay, pixz.NewChain[Gray8](photo, background))
type Chain[P any, A Processor[P], B Processor[P]] struct {
	primary  A
	fallback B
}

// NewChain creates a Chain querying primary and then fallback. The pixel
// type cannot be inferred from the processors and is given explicitly:
//
//	pixz.NewChain[pixz.Gray[uint8]](primary, fallback)
func NewChain[P any, A Processor[P], B Processor[P]](primary A, fallback B) Chain[P, A, B] {
	return Chain[P, A, B]{primary: primary, fallback: fallback}
}

// ProcessPixel implements Processor.
func (c Chain[P, A, B]) ProcessPixel(x, y int) (P, bool, error) {
	p, ok, err := c.primary.ProcessPixel(x, y)
	if err != nil || ok {
		return p, ok, err
	}
	return c.fallback.ProcessPixel(x, y)
}

// Primary returns the processor queried first.
func (c Chain[P, A, B]) Primary() A {
	return c.primary
}

// Fallback returns the processor queried when the primary has no pixel.
func (c Chain[P, A, B]) Fallback() B {
	return c.fallback
}

// Bounds reports the union of both processors' bounds. A side without
// bounds contributes nothing.
func (c Chain[P, A, B]) Bounds() image.Rectangle {
	a, _ := boundsOf(c.primary)
	b, _ := boundsOf(c.fallback)
	return a.Union(b)
}
