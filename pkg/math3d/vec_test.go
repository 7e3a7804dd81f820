package math3d

import (
	"math"
	"testing"
)

func TestVec3NormalizeIdempotent(t *testing.T) {
	v := V3(3, 4, 0)
	n1 := v.Normalize()
	n2 := n1.Normalize()
	if math.Abs(n1.X-n2.X) > 1e-12 || math.Abs(n1.Y-n2.Y) > 1e-12 {
		t.Errorf("normalize not idempotent: %v vs %v", n1, n2)
	}
	if math.Abs(n1.Len()-1) > 1e-9 {
		t.Errorf("normalized length = %v, want 1", n1.Len())
	}
}

func TestVec3NormalizeNearZeroUnchanged(t *testing.T) {
	v := V3(1e-12, 0, 0)
	got := v.Normalize()
	if got != v {
		t.Errorf("near-zero normalize should be a no-op, got %v", got)
	}
}

func TestVec3DivNearZeroYieldsZero(t *testing.T) {
	v := V3(1, 2, 3)
	got := v.Div(1e-12)
	if got != (Vec3{}) {
		t.Errorf("div by near-zero scalar should yield zero vector, got %v", got)
	}
}

func TestVec2LerpMidpoint(t *testing.T) {
	a := V2(0, 0)
	b := V2(1, 1)
	got := a.Lerp(b, 0.5)
	want := V2(0.5, 0.5)
	if got != want {
		t.Errorf("lerp = %v, want %v", got, want)
	}
}

func TestVec4NormalizeIdempotent(t *testing.T) {
	v := V4(1, 2, 3, 4)
	n1 := v.Normalize()
	n2 := n1.Normalize()
	if math.Abs(n1.Len()-n2.Len()) > 1e-9 {
		t.Errorf("vec4 normalize not idempotent")
	}
}

func TestVec3CrossOrthogonal(t *testing.T) {
	x := V3(1, 0, 0)
	y := V3(0, 1, 0)
	z := x.Cross(y)
	if math.Abs(z.Dot(x)) > 1e-12 || math.Abs(z.Dot(y)) > 1e-12 {
		t.Errorf("cross product not orthogonal to inputs: %v", z)
	}
}
