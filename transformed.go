package pixz

import (
	"image"
	"math"
)

// Transformed is a processor that remaps coordinates through an affine
// transform before delegating to its source.
//
// The transform describes how the output frame relates to the source frame:
// a pixel at source coordinate q appears at output coordinate t(q). Lookups
// therefore run backward. A request for output (x, y) is answered by the
// source at inverse(x, y), rounded to the nearest integer coordinate (half
// away from zero).
//
// The inverse is computed once, when the Transformed is constructed. If the
// transform is singular the construction still succeeds, and every
// ProcessPixel call returns the stored ErrNonInvertibleTransform error.
// Err reports it up front.
//
// A backward-mapped coordinate that is not finite, or that does not fit in
// an int, produces no pixel. Every other coordinate is passed to the
// source, which decides what is in range.
type Transformed[P any, S Processor[P]] struct {
	source  S
	forward Affine
	inverse Affine
	err     error
}

// NewTransformed wraps source so its pixels appear moved by t. The pixel
// type is given explicitly:
//
//	moved := pixz.NewTransformed[pixz.Gray[uint8]](leaf, pixz.Translation(4, 0))
func NewTransformed[P any, S Processor[P]](source S, t Affine) Transformed[P, S] {
	inv, err := t.Inverse()
	return Transformed[P, S]{source: source, forward: t, inverse: inv, err: err}
}

// Transform is shorthand for NewTransformed.
func Transform[P any, S Processor[P]](source S, t Affine) Transformed[P, S] {
	return NewTransformed[P](source, t)
}

// Translate moves source's pixels by (dx, dy).
func Translate[P any, S Processor[P]](source S, dx, dy float64) Transformed[P, S] {
	return NewTransformed[P](source, Translation(dx, dy))
}

// Scale scales source's pixels by (sx, sy) around the origin.
func Scale[P any, S Processor[P]](source S, sx, sy float64) Transformed[P, S] {
	return NewTransformed[P](source, Scaling(sx, sy))
}

// Rotate rotates source's pixels counter-clockwise by theta radians around
// the origin.
func Rotate[P any, S Processor[P]](source S, theta float64) Transformed[P, S] {
	return NewTransformed[P](source, Rotation(theta))
}

// ProcessPixel implements Processor.
func (t Transformed[P, S]) ProcessPixel(x, y int) (P, bool, error) {
	var zero P
	if t.err != nil {
		return zero, false, t.err
	}
	sx, sy := t.inverse.TransformPoint(float64(x), float64(y))
	ix, ok := nearest(sx)
	if !ok {
		return zero, false, nil
	}
	iy, ok := nearest(sy)
	if !ok {
		return zero, false, nil
	}
	return t.source.ProcessPixel(ix, iy)
}

// Source returns the wrapped processor.
func (t Transformed[P, S]) Source() S {
	return t.source
}

// Transform returns the forward transform.
func (t Transformed[P, S]) Transform() Affine {
	return t.forward
}

// Inverse returns the precomputed inverse transform and the error stored
// when the forward transform was singular.
func (t Transformed[P, S]) Inverse() (Affine, error) {
	return t.inverse, t.err
}

// Err returns ErrNonInvertibleTransform when the transform is singular.
func (t Transformed[P, S]) Err() error {
	return t.err
}

// Bounds returns the bounding box of the source's bounds after the forward
// transform, or the empty rectangle when the source is unbounded or the
// transform is singular.
func (t Transformed[P, S]) Bounds() image.Rectangle {
	r, ok := boundsOf(t.source)
	if !ok || r.Empty() || t.err != nil {
		return image.Rectangle{}
	}
	// Pixel centers at the corners of the source rectangle.
	xs := [2]float64{float64(r.Min.X), float64(r.Max.X - 1)}
	ys := [2]float64{float64(r.Min.Y), float64(r.Max.Y - 1)}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, cx := range xs {
		for _, cy := range ys {
			px, py := t.forward.TransformPoint(cx, cy)
			minX, maxX = math.Min(minX, px), math.Max(maxX, px)
			minY, maxY = math.Min(minY, py), math.Max(maxY, py)
		}
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	)
}

// nearest rounds v half away from zero and reports whether the result fits
// in an int.
func nearest(v float64) (int, bool) {
	r := math.Round(v)
	if math.IsNaN(r) || r < math.MinInt || r >= -math.MinInt {
		return 0, false
	}
	return int(r), true
}
