package pixz

import (
	"context"
	"errors"
	"image"
	"testing"
)

func TestFrame(t *testing.T) {
	t.Run("New Frame Is Zeroed", func(t *testing.T) {
		f := NewFrame[gray8](3, 2)
		if f.Width != 3 || f.Height != 2 || len(f.Pix) != 6 {
			t.Fatalf("unexpected frame %dx%d with %d pixels", f.Width, f.Height, len(f.Pix))
		}
		for i, p := range f.Pix {
			if p != (gray8{}) {
				t.Errorf("pixel %d: expected zero, got %v", i, p)
			}
		}
		if empty := NewFrame[gray8](-1, 5); empty.Width != 0 || len(empty.Pix) != 0 {
			t.Errorf("expected negative width treated as zero, got %dx%d", empty.Width, empty.Height)
		}
	})

	t.Run("Frame Of Checks Length", func(t *testing.T) {
		if _, err := FrameOf(2, 2, make([]gray8, 3)); !errors.Is(err, ErrInvalidOperation) {
			t.Errorf("expected ErrInvalidOperation, got %v", err)
		}
		pix := []gray8{{1}, {2}}
		f, err := FrameOf(2, 1, pix)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if px, _ := f.At(1, 0); px.Value != 2 {
			t.Errorf("expected 2, got %d", px.Value)
		}
	})

	t.Run("At And Set Bounds Checks", func(t *testing.T) {
		f := NewFrame[gray8](2, 2)
		if err := f.Set(1, 1, gray8{Value: 5}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if px, err := f.At(1, 1); err != nil || px.Value != 5 {
			t.Errorf("expected 5, got %v err=%v", px, err)
		}

		_, err := f.At(2, 0)
		if !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("expected ErrOutOfBounds, got %v", err)
		}
		var pe *PixelError
		if !errors.As(err, &pe) || pe.X != 2 || pe.Y != 0 {
			t.Errorf("expected *PixelError at (2, 0), got %v", err)
		}
		if err := f.Set(0, -1, gray8{}); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("expected ErrOutOfBounds from Set, got %v", err)
		}
	})

	t.Run("Leaf Processor", func(t *testing.T) {
		f := ramp(3, 3)
		if px, ok, err := f.ProcessPixel(2, 1); err != nil || !ok || px.Value != 5 {
			t.Errorf("expected 5, got %v ok=%v err=%v", px, ok, err)
		}
		for _, pt := range []image.Point{{-1, 0}, {3, 0}, {0, 3}, {0, -1}} {
			if _, ok, err := f.ProcessPixel(pt.X, pt.Y); ok || err != nil {
				t.Errorf("%v: expected no pixel, got ok=%v err=%v", pt, ok, err)
			}
		}
		if f.Bounds() != image.Rect(0, 0, 3, 3) {
			t.Errorf("unexpected bounds %v", f.Bounds())
		}
	})

	t.Run("Clone Is Independent", func(t *testing.T) {
		f := ramp(2, 2)
		c := f.Clone()
		c.Pix[0] = gray8{Value: 200}
		if f.Pix[0].Value != 0 {
			t.Error("clone shares storage with the original")
		}
	})

	t.Run("Clamp At Edges", func(t *testing.T) {
		f := ramp(3, 2)
		if got := f.clampAt(-5, -5); got.Value != 0 {
			t.Errorf("expected top-left, got %d", got.Value)
		}
		if got := f.clampAt(10, 10); got.Value != 5 {
			t.Errorf("expected bottom-right, got %d", got.Value)
		}
	})
}

func TestRender(t *testing.T) {
	t.Run("Fills Misses", func(t *testing.T) {
		leaf := NewUniformIn(gray8{Value: 100}, image.Rect(0, 0, 2, 2))
		out, err := Render(context.Background(), leaf, image.Rect(0, 0, 3, 3), gray8{Value: 7})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []uint8{
			100, 100, 7,
			100, 100, 7,
			7, 7, 7,
		}
		for i, w := range want {
			if out.Pix[i].Value != w {
				t.Errorf("pixel %d: expected %d, got %d", i, w, out.Pix[i].Value)
			}
		}
	})

	t.Run("Offset Rectangle", func(t *testing.T) {
		out, err := Render(context.Background(), ramp(4, 4), image.Rect(2, 1, 4, 3), gray8{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Width != 2 || out.Height != 2 {
			t.Fatalf("expected 2x2, got %dx%d", out.Width, out.Height)
		}
		if out.Pix[0].Value != 6 || out.Pix[3].Value != 11 {
			t.Errorf("unexpected pixels %v", out.Pix)
		}
	})

	t.Run("First Error Aborts", func(t *testing.T) {
		calls := 0
		p := counted[gray8](mixed, &calls)
		_, err := Render(context.Background(), p, image.Rect(-2, 0, 3, 2), gray8{})
		if !errors.Is(err, errQuery) {
			t.Fatalf("expected errQuery, got %v", err)
		}
		var pe *PixelError
		if !errors.As(err, &pe) || pe.X != -2 || pe.Y != 0 {
			t.Errorf("expected failure at (-2, 0), got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected rendering to stop after one query, got %d", calls)
		}
	})

	t.Run("Canceled Context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Render(ctx, ramp(2, 2), image.Rect(0, 0, 2, 2), gray8{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("Empty Rectangle", func(t *testing.T) {
		out, err := Render(context.Background(), ramp(2, 2), image.Rectangle{}, gray8{})
		if err != nil || out.Width != 0 || out.Height != 0 {
			t.Errorf("expected empty frame, got %v err=%v", out, err)
		}
	})
}
