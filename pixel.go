package pixz

import (
	"image/color"
	"math"
)

// Channel is the set of numeric types a pixel channel may be stored as.
// Integer channels span their native range; float channels are normalized
// to [0, 1].
type Channel interface {
	uint8 | uint16 | uint32 | int8 | int16 | int32 | float32 | float64
}

// Pixel is the capability backends and kernels need from a pixel value:
// indexed channel access widened to float64 and a way to derive a new pixel
// channel by channel.
//
// Implementations are immutable values. MapChannels returns a new pixel and
// never modifies the receiver. Pixel embeds comparable, so it is used only
// as a constraint, as in CPUBackend[P Pixel[P]].
type Pixel[P any] interface {
	comparable
	// Channels returns the number of channels in the pixel.
	Channels() int
	// Channel returns channel i widened to float64.
	Channel(i int) float64
	// MapChannels builds a new pixel by applying fn to every channel.
	// Results are rounded and saturated into ChannelRange.
	MapChannels(fn func(i int, v float64) float64) P
	// ChannelRange reports the representable channel range.
	ChannelRange() (lo, hi float64)
}

// Gray is a single-channel grayscale sample.
type Gray[T Channel] struct {
	Value T
}

// Channels implements Pixel.
func (Gray[T]) Channels() int { return 1 }

// Channel implements Pixel.
func (g Gray[T]) Channel(_ int) float64 { return float64(g.Value) }

// MapChannels implements Pixel.
func (g Gray[T]) MapChannels(fn func(i int, v float64) float64) Gray[T] {
	return Gray[T]{Value: saturate[T](fn(0, float64(g.Value)))}
}

// ChannelRange implements Pixel.
func (Gray[T]) ChannelRange() (lo, hi float64) { return channelRange[T]() }

// RGBA implements color.Color.
func (p Gray[T]) RGBA() (r, g, b, a uint32) {
	v := toColor16[T](p.Value)
	return v, v, v, 0xffff
}

// RGB is a three-channel color sample.
type RGB[T Channel] struct {
	R, G, B T
}

// Channels implements Pixel.
func (RGB[T]) Channels() int { return 3 }

// Channel implements Pixel. Channel 0 is red, 1 is green, 2 is blue.
func (p RGB[T]) Channel(i int) float64 {
	switch i {
	case 0:
		return float64(p.R)
	case 1:
		return float64(p.G)
	default:
		return float64(p.B)
	}
}

// MapChannels implements Pixel.
func (p RGB[T]) MapChannels(fn func(i int, v float64) float64) RGB[T] {
	return RGB[T]{
		R: saturate[T](fn(0, float64(p.R))),
		G: saturate[T](fn(1, float64(p.G))),
		B: saturate[T](fn(2, float64(p.B))),
	}
}

// ChannelRange implements Pixel.
func (RGB[T]) ChannelRange() (lo, hi float64) { return channelRange[T]() }

// RGBA implements color.Color.
func (p RGB[T]) RGBA() (r, g, b, a uint32) {
	return toColor16[T](p.R), toColor16[T](p.G), toColor16[T](p.B), 0xffff
}

// GrayModel converts any color to a Gray sample of channel type T using the
// luma weights of image/color.
func GrayModel[T Channel](c color.Color) Gray[T] {
	g := color.Gray16Model.Convert(c).(color.Gray16)
	return Gray[T]{Value: fromColor16[T](uint32(g.Y))}
}

// RGBModel converts any color to an RGB sample of channel type T. Alpha is
// discarded after un-premultiplying.
func RGBModel[T Channel](c color.Color) RGB[T] {
	r, g, b, a := c.RGBA()
	if a != 0 && a != 0xffff {
		r = r * 0xffff / a
		g = g * 0xffff / a
		b = b * 0xffff / a
	}
	return RGB[T]{R: fromColor16[T](r), G: fromColor16[T](g), B: fromColor16[T](b)}
}

// channelRange returns the representable range for channel type T.
func channelRange[T Channel]() (lo, hi float64) {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 0, math.MaxUint8
	case uint16:
		return 0, math.MaxUint16
	case uint32:
		return 0, math.MaxUint32
	case int8:
		return math.MinInt8, math.MaxInt8
	case int16:
		return math.MinInt16, math.MaxInt16
	case int32:
		return math.MinInt32, math.MaxInt32
	default:
		return 0, 1
	}
}

func isFloat[T Channel]() bool {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return true
	}
	return false
}

// saturate clamps v into T's range, rounding integer channels half away
// from zero. NaN maps to the low end of the range.
func saturate[T Channel](v float64) T {
	lo, hi := channelRange[T]()
	if math.IsNaN(v) {
		return T(lo)
	}
	if !isFloat[T]() {
		v = math.Round(v)
	}
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return T(v)
}

// toColor16 scales a channel value onto the 16-bit range of color.Color.
func toColor16[T Channel](v T) uint32 {
	lo, hi := channelRange[T]()
	n := (float64(v) - lo) / (hi - lo)
	if n < 0 {
		n = 0
	}
	if n > 1 {
		n = 1
	}
	return uint32(math.Round(n * 0xffff))
}

// fromColor16 is the inverse of toColor16.
func fromColor16[T Channel](v uint32) T {
	lo, hi := channelRange[T]()
	return saturate[T](lo + float64(v)/0xffff*(hi-lo))
}
