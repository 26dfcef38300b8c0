package pixz

import (
	"image/color"
	"math"
	"testing"
)

func isPixel[P Pixel[P]]() {}

var (
	_ = isPixel[Gray[uint8]]
	_ = isPixel[Gray[float64]]
	_ = isPixel[RGB[float32]]
	_ = isPixel[RGB[int8]]

	_ color.Color           = Gray[int16]{}
	_ color.Color           = RGB[uint16]{}
	_ Processor[RGB[uint8]] = NewUniform(RGB[uint8]{})
)

func TestGray(t *testing.T) {
	t.Run("Channel Access", func(t *testing.T) {
		g := Gray[uint8]{Value: 77}
		if g.Channels() != 1 || g.Channel(0) != 77 {
			t.Errorf("unexpected channels %d / %g", g.Channels(), g.Channel(0))
		}
	})

	t.Run("Map Channels Saturates", func(t *testing.T) {
		tests := []struct {
			name string
			in   uint8
			fn   func(int, float64) float64
			want uint8
		}{
			{"overflow", 250, func(_ int, v float64) float64 { return v * 2 }, 255},
			{"underflow", 10, func(_ int, v float64) float64 { return v - 50 }, 0},
			{"round half up", 2, func(_ int, v float64) float64 { return v + 0.5 }, 3},
			{"round down", 2, func(_ int, v float64) float64 { return v + 0.49 }, 2},
			{"nan", 9, func(int, float64) float64 { return math.NaN() }, 0},
			{"inf", 9, func(int, float64) float64 { return math.Inf(1) }, 255},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got := Gray[uint8]{Value: tt.in}.MapChannels(tt.fn)
				if got.Value != tt.want {
					t.Errorf("expected %d, got %d", tt.want, got.Value)
				}
			})
		}
	})

	t.Run("Signed Range", func(t *testing.T) {
		g := Gray[int8]{Value: -100}.MapChannels(func(_ int, v float64) float64 { return v * 2 })
		if g.Value != math.MinInt8 {
			t.Errorf("expected %d, got %d", math.MinInt8, g.Value)
		}
		if lo, hi := g.ChannelRange(); lo != math.MinInt8 || hi != math.MaxInt8 {
			t.Errorf("unexpected range [%g, %g]", lo, hi)
		}
	})

	t.Run("Float Range Is Normalized", func(t *testing.T) {
		g := Gray[float32]{Value: 0.5}
		if lo, hi := g.ChannelRange(); lo != 0 || hi != 1 {
			t.Errorf("unexpected range [%g, %g]", lo, hi)
		}
		if got := g.MapChannels(func(_ int, v float64) float64 { return v * 4 }); got.Value != 1 {
			t.Errorf("expected saturation to 1, got %g", got.Value)
		}
		if got := g.MapChannels(func(_ int, v float64) float64 { return v / 2 }); got.Value != 0.25 {
			t.Errorf("expected 0.25 without rounding, got %g", got.Value)
		}
	})

	t.Run("Map Channels Does Not Modify Receiver", func(t *testing.T) {
		g := Gray[uint16]{Value: 1000}
		_ = g.MapChannels(func(int, float64) float64 { return 0 })
		if g.Value != 1000 {
			t.Errorf("receiver modified to %d", g.Value)
		}
	})

	t.Run("Color Interop", func(t *testing.T) {
		if r, _, _, a := (Gray[uint8]{Value: 255}).RGBA(); r != 0xffff || a != 0xffff {
			t.Errorf("expected full white, got r=%#x a=%#x", r, a)
		}
		if r, _, _, _ := (Gray[int8]{Value: math.MinInt8}).RGBA(); r != 0 {
			t.Errorf("expected black for the lowest int8, got %#x", r)
		}
		if got := GrayModel[uint8](color.Gray{Y: 100}); got.Value != 100 {
			t.Errorf("expected 100, got %d", got.Value)
		}
		if got := GrayModel[float64](color.White); got.Value != 1 {
			t.Errorf("expected 1, got %g", got.Value)
		}
	})
}

func TestRGB(t *testing.T) {
	t.Run("Channel Order", func(t *testing.T) {
		p := RGB[uint8]{R: 1, G: 2, B: 3}
		if p.Channels() != 3 {
			t.Fatalf("expected 3 channels, got %d", p.Channels())
		}
		for i, want := range []float64{1, 2, 3} {
			if p.Channel(i) != want {
				t.Errorf("channel %d: expected %g, got %g", i, want, p.Channel(i))
			}
		}
	})

	t.Run("Map Channels Per Channel", func(t *testing.T) {
		p := RGB[uint8]{R: 10, G: 200, B: 30}.MapChannels(func(i int, v float64) float64 {
			if i == 1 {
				return v * 2
			}
			return v + float64(i)
		})
		if p != (RGB[uint8]{R: 10, G: 255, B: 32}) {
			t.Errorf("unexpected pixel %+v", p)
		}
	})

	t.Run("Color Interop", func(t *testing.T) {
		r, g, b, a := RGB[uint8]{R: 255, G: 0, B: 128}.RGBA()
		if r != 0xffff || g != 0 || b != 128*0x101 || a != 0xffff {
			t.Errorf("unexpected RGBA %#x %#x %#x %#x", r, g, b, a)
		}
		if got := RGBModel[uint8](color.RGBA{R: 10, G: 20, B: 30, A: 255}); got != (RGB[uint8]{R: 10, G: 20, B: 30}) {
			t.Errorf("unexpected conversion %+v", got)
		}
		in := RGB[uint16]{R: 1000, G: 2000, B: 3000}
		if got := RGBModel[uint16](in); got != in {
			t.Errorf("round trip: expected %+v, got %+v", in, got)
		}
	})

	t.Run("Transparent Converts To Black", func(t *testing.T) {
		if got := RGBModel[uint8](color.Transparent); got != (RGB[uint8]{}) {
			t.Errorf("expected black, got %+v", got)
		}
	})
}
