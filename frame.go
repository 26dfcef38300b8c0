package pixz

import (
	"context"
	"fmt"
	"image"
)

// Frame is an in-memory image of Width x Height pixels stored row-major in
// Pix, with the origin at (0, 0).
//
// A Frame is also a leaf Processor: coordinates inside the frame produce
// their stored pixel, coordinates outside produce no pixel. Use At when an
// out-of-range coordinate should be an error instead.
type Frame[P any] struct {
	Pix    []P
	Width  int
	Height int
}

// NewFrame allocates a zero-valued frame. Negative dimensions are treated
// as zero.
func NewFrame[P any](width, height int) *Frame[P] {
	width, height = max(width, 0), max(height, 0)
	return &Frame[P]{Pix: make([]P, width*height), Width: width, Height: height}
}

// FrameOf wraps existing row-major pixels. It fails with ErrInvalidOperation
// when len(pix) does not equal width*height.
func FrameOf[P any](width, height int, pix []P) (*Frame[P], error) {
	if width < 0 || height < 0 || len(pix) != width*height {
		return nil, fmt.Errorf("%w: %d pixels for a %dx%d frame", ErrInvalidOperation, len(pix), width, height)
	}
	return &Frame[P]{Pix: pix, Width: width, Height: height}, nil
}

// In reports whether (x, y) lies inside the frame.
func (f *Frame[P]) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.Width && y < f.Height
}

// At returns the pixel at (x, y) or ErrOutOfBounds.
func (f *Frame[P]) At(x, y int) (P, error) {
	if !f.In(x, y) {
		var zero P
		return zero, &PixelError{X: x, Y: y, Err: ErrOutOfBounds}
	}
	return f.Pix[y*f.Width+x], nil
}

// Set stores p at (x, y) or fails with ErrOutOfBounds.
func (f *Frame[P]) Set(x, y int, p P) error {
	if !f.In(x, y) {
		return &PixelError{X: x, Y: y, Err: ErrOutOfBounds}
	}
	f.Pix[y*f.Width+x] = p
	return nil
}

// ProcessPixel implements Processor.
func (f *Frame[P]) ProcessPixel(x, y int) (P, bool, error) {
	if !f.In(x, y) {
		var zero P
		return zero, false, nil
	}
	return f.Pix[y*f.Width+x], true, nil
}

// Bounds implements Bounded.
func (f *Frame[P]) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// Clone returns a deep copy of the frame.
func (f *Frame[P]) Clone() *Frame[P] {
	pix := make([]P, len(f.Pix))
	copy(pix, f.Pix)
	return &Frame[P]{Pix: pix, Width: f.Width, Height: f.Height}
}

// clampAt returns the pixel nearest to (x, y) inside the frame. The frame
// must not be empty.
func (f *Frame[P]) clampAt(x, y int) P {
	x = min(max(x, 0), f.Width-1)
	y = min(max(y, 0), f.Height-1)
	return f.Pix[y*f.Width+x]
}

// Render evaluates p over rect, row by row, into a new frame whose (0, 0)
// corresponds to rect.Min. Coordinates where p produces no pixel are filled
// with fill.
//
// The first error stops rendering and is returned as a *PixelError naming
// the coordinate. The context is checked before each row.
func Render[P any, S Processor[P]](ctx context.Context, p S, rect image.Rectangle, fill P) (*Frame[P], error) {
	rect = rect.Canon()
	out := NewFrame[P](rect.Dx(), rect.Dy())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := out.Pix[(y-rect.Min.Y)*out.Width:]
		for x := rect.Min.X; x < rect.Max.X; x++ {
			px, ok, err := p.ProcessPixel(x, y)
			if err != nil {
				return nil, &PixelError{X: x, Y: y, Err: err}
			}
			if !ok {
				px = fill
			}
			row[x-rect.Min.X] = px
		}
	}
	return out, nil
}
