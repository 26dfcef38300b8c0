package pixz

import (
	"errors"
	"image"
	"math"
	"strconv"
	"testing"
)

// ramp returns a w x h frame whose pixel at (x, y) is y*w + x.
func ramp(w, h int) *Frame[gray8] {
	f := NewFrame[gray8](w, h)
	for i := range f.Pix {
		f.Pix[i] = gray8{Value: uint8(i)}
	}
	return f
}

func TestTransformed(t *testing.T) {
	t.Run("Translate Moves Pixels", func(t *testing.T) {
		src := ramp(4, 3)
		moved := Translate[gray8](src, 4, 0)

		px, ok, err := moved.ProcessPixel(5, 2)
		if err != nil || !ok {
			t.Fatalf("expected pixel, got ok=%v err=%v", ok, err)
		}
		want, _ := src.At(1, 2)
		if px != want {
			t.Errorf("expected %v, got %v", want, px)
		}
		if _, ok, _ := moved.ProcessPixel(1, 2); ok {
			t.Error("expected no pixel left of the moved frame")
		}
	})

	t.Run("Rotate Quarter Turn", func(t *testing.T) {
		src := ramp(3, 3)
		rotated := Rotate[gray8](src, math.Pi/2)

		// Source (1, 0) lands on output (0, 1).
		px, ok, err := rotated.ProcessPixel(0, 1)
		if err != nil || !ok {
			t.Fatalf("expected pixel, got ok=%v err=%v", ok, err)
		}
		if px.Value != 1 {
			t.Errorf("expected source pixel 1, got %d", px.Value)
		}
	})

	t.Run("Scale Samples Nearest", func(t *testing.T) {
		src := ramp(2, 1)
		scaled := Scale[gray8](src, 2, 1)
		for x, want := range []uint8{0, 1, 1} {
			px, ok, err := scaled.ProcessPixel(x, 0)
			if err != nil || !ok || px.Value != want {
				t.Errorf("x=%d: expected %d, got %v ok=%v err=%v", x, want, px, ok, err)
			}
		}
	})

	t.Run("Rounds Half Away From Zero", func(t *testing.T) {
		var gotX []int
		recorder := ProcessorFunc[gray8](func(x, _ int) (gray8, bool, error) {
			gotX = append(gotX, x)
			return gray8{}, true, nil
		})
		shifted := Translate[gray8](recorder, 0.5, 0)
		for _, x := range []int{0, 1, 2} {
			_, _, _ = shifted.ProcessPixel(x, 0)
		}
		want := []int{-1, 1, 2}
		for i := range want {
			if gotX[i] != want[i] {
				t.Errorf("query %d: expected source x %d, got %d", i, want[i], gotX[i])
			}
		}
	})

	t.Run("Singular Transform Fails Every Query", func(t *testing.T) {
		calls := 0
		flat := Scale[gray8](counted[gray8](ramp(3, 3), &calls), 0, 1)
		if !errors.Is(flat.Err(), ErrNonInvertibleTransform) {
			t.Fatalf("expected ErrNonInvertibleTransform from Err, got %v", flat.Err())
		}
		for i := 0; i < 3; i++ {
			_, ok, err := flat.ProcessPixel(i, i)
			if ok || !errors.Is(err, ErrNonInvertibleTransform) {
				t.Errorf("query %d: expected ErrNonInvertibleTransform, got ok=%v err=%v", i, ok, err)
			}
		}
		if calls != 0 {
			t.Errorf("expected source never queried, got %d calls", calls)
		}
		if !flat.Bounds().Empty() {
			t.Errorf("expected empty bounds, got %v", flat.Bounds())
		}
	})

	t.Run("Out Of Range Coordinate Is Miss", func(t *testing.T) {
		far := Translate[gray8](NewUniform(gray8{Value: 1}), -1e19, 0)
		if _, ok, err := far.ProcessPixel(0, 0); ok || err != nil {
			t.Errorf("expected no pixel, got ok=%v err=%v", ok, err)
		}
		tiny := Scale[gray8](NewUniform(gray8{Value: 1}), 1e-4, 1e-4)
		if _, ok, err := tiny.ProcessPixel(0, 0); !ok || err != nil {
			t.Errorf("expected pixel at origin, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("Coordinates Use Full Int Range", func(t *testing.T) {
		if strconv.IntSize < 64 {
			t.Skip("needs 64-bit int")
		}
		var seen int
		recorder := ProcessorFunc[gray8](func(x, _ int) (gray8, bool, error) {
			seen = x
			return gray8{Value: 1}, true, nil
		})
		far := Translate[gray8](recorder, -(1 << 40), 0)
		if _, ok, err := far.ProcessPixel(0, 0); !ok || err != nil {
			t.Fatalf("expected pixel, got ok=%v err=%v", ok, err)
		}
		if want := int64(1) << 40; int64(seen) != want {
			t.Errorf("expected source x %d, got %d", want, seen)
		}
	})

	t.Run("Non Finite Coordinate Is Miss", func(t *testing.T) {
		broken := Translate[gray8](NewUniform(gray8{Value: 1}), math.NaN(), 0)
		if _, ok, err := broken.ProcessPixel(0, 0); ok || err != nil {
			t.Errorf("expected no pixel, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("Errors Pass Through", func(t *testing.T) {
		moved := Translate[gray8](mixed, 1, 0)
		if _, _, err := moved.ProcessPixel(0, 0); err != errQuery {
			t.Errorf("expected errQuery unchanged, got %v", err)
		}
	})

	t.Run("Accessors", func(t *testing.T) {
		src := ramp(2, 2)
		tr := Transform[gray8](src, Scaling(2, 4))
		if tr.Source() != src {
			t.Error("Source should return the wrapped frame")
		}
		if tr.Transform() != Scaling(2, 4) {
			t.Errorf("unexpected forward transform %v", tr.Transform())
		}
		inv, err := tr.Inverse()
		if err != nil || !inv.ApproxEqual(Scaling(0.5, 0.25), affineTol) {
			t.Errorf("unexpected inverse %v err=%v", inv, err)
		}
		if tr.Err() != nil {
			t.Errorf("expected no error, got %v", tr.Err())
		}
	})

	t.Run("Bounds Follow Transform", func(t *testing.T) {
		moved := Translate[gray8](NewFrame[gray8](3, 2), 4, 1)
		if got := moved.Bounds(); got != image.Rect(4, 1, 7, 3) {
			t.Errorf("expected (4,1)-(7,3), got %v", got)
		}
		if got := Translate[gray8](NewUniform(gray8{}), 1, 1).Bounds(); !got.Empty() {
			t.Errorf("expected empty bounds for unbounded source, got %v", got)
		}
	})

	t.Run("Composes With Map", func(t *testing.T) {
		src := ramp(3, 1)
		p := NewMap(Translate[gray8](src, 1, 0), func(p gray8) gray8 { return gray8{Value: p.Value + 100} })
		px, ok, err := p.ProcessPixel(3, 0)
		if err != nil || !ok || px.Value != 102 {
			t.Errorf("expected 102, got %v ok=%v err=%v", px, ok, err)
		}
	})
}
