package pixz

import (
	"image"
	"testing"
)

func TestChain(t *testing.T) {
	fallback := NewUniform(gray8{Value: 99})

	t.Run("Primary Hit Skips Fallback", func(t *testing.T) {
		calls := 0
		c := NewChain[gray8](mixed, counted[gray8](fallback, &calls))
		px, ok, err := c.ProcessPixel(2, 0)
		if err != nil || !ok || px.Value != 20 {
			t.Errorf("expected primary pixel 20, got %v ok=%v err=%v", px, ok, err)
		}
		if calls != 0 {
			t.Errorf("expected fallback not queried, got %d calls", calls)
		}
	})

	t.Run("Primary Miss Uses Fallback", func(t *testing.T) {
		calls := 0
		c := NewChain[gray8](mixed, counted[gray8](fallback, &calls))
		got, gotOK, gotErr := c.ProcessPixel(6, 3)
		want, wantOK, wantErr := fallback.ProcessPixel(6, 3)
		if got != want || gotOK != wantOK || gotErr != wantErr {
			t.Errorf("expected fallback result (%v, %v, %v), got (%v, %v, %v)", want, wantOK, wantErr, got, gotOK, gotErr)
		}
		if calls != 1 {
			t.Errorf("expected one fallback query, got %d", calls)
		}
	})

	t.Run("Primary Error Skips Fallback", func(t *testing.T) {
		calls := 0
		c := NewChain[gray8](mixed, counted[gray8](fallback, &calls))
		_, ok, err := c.ProcessPixel(-1, 0)
		if ok || err != errQuery {
			t.Errorf("expected errQuery unchanged, got ok=%v err=%v", ok, err)
		}
		if calls != 0 {
			t.Errorf("expected fallback not queried on error, got %d calls", calls)
		}
	})

	t.Run("Fallback Miss Is Miss", func(t *testing.T) {
		c := NewChain[gray8](mixed, NewFrame[gray8](1, 1))
		if _, ok, err := c.ProcessPixel(6, 6); ok || err != nil {
			t.Errorf("expected no pixel, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("Nested Chains", func(t *testing.T) {
		left := NewUniformIn(gray8{Value: 1}, image.Rect(0, 0, 2, 1))
		middle := NewUniformIn(gray8{Value: 2}, image.Rect(2, 0, 4, 1))
		c := NewChain[gray8](NewChain[gray8](left, middle), fallback)
		for x, want := range []uint8{1, 1, 2, 2, 99} {
			px, ok, err := c.ProcessPixel(x, 0)
			if err != nil || !ok || px.Value != want {
				t.Errorf("x=%d: expected %d, got %v ok=%v err=%v", x, want, px, ok, err)
			}
		}
	})

	t.Run("Bounds Union", func(t *testing.T) {
		a := NewFrame[gray8](2, 2)
		b := NewFrame[gray8](5, 1)
		c := NewChain[gray8](a, b)
		if got := c.Bounds(); got != image.Rect(0, 0, 5, 2) {
			t.Errorf("expected union bounds, got %v", got)
		}
		if c.Primary() != a || c.Fallback() != b {
			t.Error("accessors should return the wrapped processors")
		}
	})
}
