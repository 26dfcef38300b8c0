package pixz

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// NewImage exposes a frame as an image.Image without copying. Gray and RGB
// pixels implement color.Color, so any frame of them qualifies.
func NewImage[P color.Color](f *Frame[P]) image.Image {
	return frameImage[P]{frame: f}
}

type frameImage[P color.Color] struct {
	frame *Frame[P]
}

func (frameImage[P]) ColorModel() color.Model { return color.RGBA64Model }

func (i frameImage[P]) Bounds() image.Rectangle { return i.frame.Bounds() }

func (i frameImage[P]) At(x, y int) color.Color {
	if !i.frame.In(x, y) {
		return color.RGBA64{}
	}
	return i.frame.Pix[y*i.frame.Width+x]
}

// FromImage copies img into a new frame, converting every pixel with
// convert. The frame's origin corresponds to img.Bounds().Min.
//
// Example:
//
//	frame := pixz.FromImage(img, pixz.GrayModel[uint8])
func FromImage[P any](img image.Image, convert func(color.Color) P) *Frame[P] {
	b := img.Bounds()
	f := NewFrame[P](b.Dx(), b.Dy())
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			f.Pix[y*f.Width+x] = convert(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return f
}

// ImageSource is a leaf processor that reads an image.Image lazily,
// converting each pixel as it is queried. Coordinates are relative to
// img.Bounds().Min; anything outside the image is "no pixel".
type ImageSource[P any] struct {
	img     image.Image
	convert func(color.Color) P
	bounds  image.Rectangle
}

// NewImageSource creates a leaf processor over img. It panics when convert
// is nil.
func NewImageSource[P any](img image.Image, convert func(color.Color) P) ImageSource[P] {
	if convert == nil {
		panic("pixz.NewImageSource: nil color conversion")
	}
	return ImageSource[P]{img: img, convert: convert, bounds: img.Bounds()}
}

// ProcessPixel implements Processor.
func (s ImageSource[P]) ProcessPixel(x, y int) (P, bool, error) {
	p := image.Pt(x, y).Add(s.bounds.Min)
	if !p.In(s.bounds) {
		var zero P
		return zero, false, nil
	}
	return s.convert(s.img.At(p.X, p.Y)), true, nil
}

// Bounds implements Bounded.
func (s ImageSource[P]) Bounds() image.Rectangle {
	return s.bounds.Sub(s.bounds.Min)
}

// ResampleKernel is a CPUKernel that resizes a frame with an interpolator
// from golang.org/x/image/draw. Wrap it in a custom operation:
//
//	k := pixz.NewResampleKernel(64, 64, pixz.GrayModel[uint8])
//	op := pixz.DefaultBuilder.Custom(pixz.ResampleName, k)
//	small, err := cpu.Execute(ctx, op, frame)
type ResampleKernel[P color.Color] struct {
	interp  draw.Interpolator
	convert func(color.Color) P
	width   int
	height  int
}

// ResampleName is the custom operation name conventionally used for
// resampling.
const ResampleName = "resample"

// NewResampleKernel returns a kernel producing width x height frames with
// Catmull-Rom interpolation.
func NewResampleKernel[P color.Color](width, height int, convert func(color.Color) P) ResampleKernel[P] {
	return ResampleKernel[P]{interp: draw.CatmullRom, convert: convert, width: width, height: height}
}

// WithInterpolator returns a copy of the kernel using interp, for example
// draw.NearestNeighbor or draw.BiLinear.
func (k ResampleKernel[P]) WithInterpolator(interp draw.Interpolator) ResampleKernel[P] {
	if interp != nil {
		k.interp = interp
	}
	return k
}

// Size returns the output frame size.
func (k ResampleKernel[P]) Size() (width, height int) {
	return k.width, k.height
}

// Run implements CPUKernel.
func (k ResampleKernel[P]) Run(ctx context.Context, src *Frame[P]) (*Frame[P], error) {
	if k.width <= 0 || k.height <= 0 {
		return nil, fmt.Errorf("%w: resample to %dx%d", ErrInvalidOperation, k.width, k.height)
	}
	if k.convert == nil {
		return nil, fmt.Errorf("%w: resample needs a color conversion", ErrInvalidOperation)
	}
	if src.Width == 0 || src.Height == 0 {
		return nil, fmt.Errorf("%w: resample of an empty frame", ErrInvalidOperation)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	in := NewImage(src)
	dst := image.NewRGBA64(image.Rect(0, 0, k.width, k.height))
	k.interp.Scale(dst, dst.Bounds(), in, in.Bounds(), draw.Src, nil)
	return FromImage[P](dst, k.convert), nil
}
