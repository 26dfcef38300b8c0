package pixz

import (
	"fmt"
	"math"
)

// DeterminantTolerance is the magnitude below which the linear part of an
// Affine is treated as singular.
const DeterminantTolerance = 1e-10

// Affine is a 2D affine coordinate transform: a 2x2 linear part plus a
// translation.
//
//	| x' |   | A  B  Tx |   | x |
//	| y' | = | C  D  Ty | * | y |
//	| 1  |   | 0  0  1  |   | 1 |
//
// Affine is a plain value. Composition and inversion return new values.
type Affine struct {
	A, B, C, D float64
	Tx, Ty     float64
}

// Identity returns the transform that leaves every point in place. It is
// the unit of Then.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Translation returns a transform shifting points by (tx, ty).
func Translation(tx, ty float64) Affine {
	return Affine{A: 1, D: 1, Tx: tx, Ty: ty}
}

// Scaling returns a transform scaling by (sx, sy) around the origin.
// Negative factors mirror; a zero factor is not invertible.
func Scaling(sx, sy float64) Affine {
	return Affine{A: sx, D: sy}
}

// Rotation returns a counter-clockwise rotation by theta radians around the
// origin.
func Rotation(theta float64) Affine {
	sin, cos := math.Sincos(theta)
	return Affine{A: cos, B: -sin, C: sin, D: cos}
}

// Shear returns a transform skewing x by shx*y and y by shy*x.
func Shear(shx, shy float64) Affine {
	return Affine{A: 1, B: shx, C: shy, D: 1}
}

// RotationAbout returns a counter-clockwise rotation by theta radians around
// the point (cx, cy).
func RotationAbout(theta, cx, cy float64) Affine {
	return Translation(-cx, -cy).Then(Rotation(theta)).Then(Translation(cx, cy))
}

// ScalingAbout returns a scaling by (sx, sy) that keeps (cx, cy) fixed.
func ScalingAbout(sx, sy, cx, cy float64) Affine {
	return Translation(-cx, -cy).Then(Scaling(sx, sy)).Then(Translation(cx, cy))
}

// TransformPoint applies the linear part to (x, y) and then adds the
// translation.
func (t Affine) TransformPoint(x, y float64) (float64, float64) {
	return t.A*x + t.B*y + t.Tx, t.C*x + t.D*y + t.Ty
}

// Determinant returns the determinant of the linear part.
func (t Affine) Determinant() float64 {
	return t.A*t.D - t.B*t.C
}

// Inverse returns the transform undoing t, so that t.Inverse().Then(t) is
// the identity within floating-point tolerance. It fails with
// ErrNonInvertibleTransform when the determinant is within
// DeterminantTolerance of zero or is not finite.
func (t Affine) Inverse() (Affine, error) {
	det := t.Determinant()
	if math.Abs(det) < DeterminantTolerance || math.IsNaN(det) || math.IsInf(det, 0) {
		return Affine{}, fmt.Errorf("%w: determinant %g", ErrNonInvertibleTransform, det)
	}
	inv := 1 / det
	return Affine{
		A:  t.D * inv,
		B:  -t.B * inv,
		C:  -t.C * inv,
		D:  t.A * inv,
		Tx: (t.B*t.Ty - t.D*t.Tx) * inv,
		Ty: (t.C*t.Tx - t.A*t.Ty) * inv,
	}, nil
}

// Then returns the transform equivalent to applying t first and other
// second. In matrix terms the result is other * t.
//
// Then is associative but not commutative:
//
//	Translation(5, 0).Then(Scaling(2, 2))  // (x, y) -> (2x+10, 2y)
//	Scaling(2, 2).Then(Translation(5, 0))  // (x, y) -> (2x+5, 2y)
func (t Affine) Then(other Affine) Affine {
	return Affine{
		A:  other.A*t.A + other.B*t.C,
		B:  other.A*t.B + other.B*t.D,
		C:  other.C*t.A + other.D*t.C,
		D:  other.C*t.B + other.D*t.D,
		Tx: other.A*t.Tx + other.B*t.Ty + other.Tx,
		Ty: other.C*t.Tx + other.D*t.Ty + other.Ty,
	}
}

// ApproxEqual reports whether every coefficient of t is within tol of the
// corresponding coefficient of other.
func (t Affine) ApproxEqual(other Affine, tol float64) bool {
	return math.Abs(t.A-other.A) <= tol &&
		math.Abs(t.B-other.B) <= tol &&
		math.Abs(t.C-other.C) <= tol &&
		math.Abs(t.D-other.D) <= tol &&
		math.Abs(t.Tx-other.Tx) <= tol &&
		math.Abs(t.Ty-other.Ty) <= tol
}

// IsIdentity reports whether t is exactly the identity.
func (t Affine) IsIdentity() bool {
	return t == Identity()
}

// String implements fmt.Stringer.
func (t Affine) String() string {
	return fmt.Sprintf("[%g %g %g; %g %g %g]", t.A, t.B, t.Tx, t.C, t.D, t.Ty)
}
