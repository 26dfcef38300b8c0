package pixz

import (
	"errors"
	"math"
	"testing"
)

const affineTol = 1e-9

func TestAffine(t *testing.T) {
	t.Run("Constructors Move Points", func(t *testing.T) {
		tests := []struct {
			name   string
			t      Affine
			x, y   float64
			wx, wy float64
		}{
			{"identity", Identity(), 3, -2, 3, -2},
			{"translation", Translation(5, -1), 1, 1, 6, 0},
			{"scaling", Scaling(2, 3), 1, 1, 2, 3},
			{"rotation quarter turn", Rotation(math.Pi / 2), 1, 0, 0, 1},
			{"shear", Shear(2, 0), 1, 1, 3, 1},
			{"rotation about center", RotationAbout(math.Pi, 1, 1), 2, 1, 0, 1},
			{"scaling about center", ScalingAbout(2, 2, 1, 1), 2, 2, 3, 3},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				x, y := tt.t.TransformPoint(tt.x, tt.y)
				if math.Abs(x-tt.wx) > affineTol || math.Abs(y-tt.wy) > affineTol {
					t.Errorf("expected (%g, %g), got (%g, %g)", tt.wx, tt.wy, x, y)
				}
			})
		}
	})

	t.Run("Translation Round Trip Is Identity", func(t *testing.T) {
		for _, d := range [][2]float64{{0, 0}, {1.5, -2.25}, {-1e6, 3e5}, {1e-7, 42}} {
			got := Translation(d[0], d[1]).Then(Translation(-d[0], -d[1]))
			if !got.ApproxEqual(Identity(), affineTol) {
				t.Errorf("translation %v: expected identity, got %v", d, got)
			}
		}
	})

	t.Run("Rotation Inverse Is Negative Rotation", func(t *testing.T) {
		for _, theta := range []float64{0, 0.1, 1, math.Pi / 3, math.Pi, -2.5, 10} {
			inv, err := Rotation(theta).Inverse()
			if err != nil {
				t.Fatalf("theta %g: unexpected error: %v", theta, err)
			}
			if !inv.ApproxEqual(Rotation(-theta), affineTol) {
				t.Errorf("theta %g: expected %v, got %v", theta, Rotation(-theta), inv)
			}
		}
	})

	t.Run("Singular Transform Fails", func(t *testing.T) {
		for _, s := range []Affine{Scaling(0, 1), Scaling(1, 0), {A: 1, B: 2, C: 2, D: 4}, Scaling(1e-6, 1e-6)} {
			_, err := s.Inverse()
			if !errors.Is(err, ErrNonInvertibleTransform) {
				t.Errorf("%v: expected ErrNonInvertibleTransform, got %v", s, err)
			}
		}
	})

	t.Run("Non Finite Transform Fails", func(t *testing.T) {
		_, err := Scaling(math.NaN(), 1).Inverse()
		if !errors.Is(err, ErrNonInvertibleTransform) {
			t.Errorf("expected ErrNonInvertibleTransform, got %v", err)
		}
		_, err = Scaling(math.Inf(1), 1).Inverse()
		if !errors.Is(err, ErrNonInvertibleTransform) {
			t.Errorf("expected ErrNonInvertibleTransform, got %v", err)
		}
	})

	t.Run("Inverse Then Self Is Identity", func(t *testing.T) {
		composite := Scaling(2, 0.5).Then(Rotation(0.7)).Then(Shear(0.3, -0.2)).Then(Translation(4, -9))
		inv, err := composite.Inverse()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := inv.Then(composite); !got.ApproxEqual(Identity(), affineTol) {
			t.Errorf("inverse.Then(t): expected identity, got %v", got)
		}
		if got := composite.Then(inv); !got.ApproxEqual(Identity(), affineTol) {
			t.Errorf("t.Then(inverse): expected identity, got %v", got)
		}
	})

	t.Run("Then Applies Receiver First", func(t *testing.T) {
		x, y := Translation(5, 0).Then(Scaling(2, 2)).TransformPoint(1, 1)
		if x != 12 || y != 2 {
			t.Errorf("translate then scale: expected (12, 2), got (%g, %g)", x, y)
		}
		x, y = Scaling(2, 2).Then(Translation(5, 0)).TransformPoint(1, 1)
		if x != 7 || y != 2 {
			t.Errorf("scale then translate: expected (7, 2), got (%g, %g)", x, y)
		}
	})

	t.Run("Then Matches Sequential Application", func(t *testing.T) {
		a := Rotation(0.4).Then(Translation(1, 2))
		b := Shear(0.5, 0).Then(Scaling(3, -1))
		px, py := a.TransformPoint(2, -3)
		wx, wy := b.TransformPoint(px, py)
		gx, gy := a.Then(b).TransformPoint(2, -3)
		if math.Abs(gx-wx) > affineTol || math.Abs(gy-wy) > affineTol {
			t.Errorf("expected (%g, %g), got (%g, %g)", wx, wy, gx, gy)
		}
	})

	t.Run("Then Is Associative", func(t *testing.T) {
		a, b, c := Rotation(1.1), Translation(3, 4), Scaling(2, 5)
		left := a.Then(b).Then(c)
		right := a.Then(b.Then(c))
		if !left.ApproxEqual(right, affineTol) {
			t.Errorf("expected %v == %v", left, right)
		}
	})

	t.Run("Determinant", func(t *testing.T) {
		if d := Scaling(2, 3).Determinant(); d != 6 {
			t.Errorf("expected 6, got %g", d)
		}
		if d := Rotation(0.9).Determinant(); math.Abs(d-1) > affineTol {
			t.Errorf("expected 1, got %g", d)
		}
	})

	t.Run("Identity Checks", func(t *testing.T) {
		if !Identity().IsIdentity() {
			t.Error("Identity should be the identity")
		}
		if Translation(0, 1).IsIdentity() {
			t.Error("a translation is not the identity")
		}
		if (Affine{}).IsIdentity() {
			t.Error("the zero Affine is not the identity")
		}
	})

	t.Run("String", func(t *testing.T) {
		if got := Translation(2, 3).String(); got != "[1 0 2; 0 1 3]" {
			t.Errorf("unexpected string %q", got)
		}
	})
}
