package math3d

import (
	"math"
	"testing"
)

func TestVec4LerpEndpoints(t *testing.T) {
	a := V4(1, -2, 3, 0.5)
	b := V4(-7, 11, 0.25, 4)

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(b, 0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(b, 1) = %v, want %v", got, b)
	}

	mid := a.Lerp(b, 0.5)
	want := V4(-3, 4.5, 1.625, 2.25)
	if mid != want {
		t.Errorf("Lerp(b, 0.5) = %v, want %v", mid, want)
	}
}

func TestPerspectiveClipVolume(t *testing.T) {
	near, far := 1.0, 10.0
	proj := Perspective(math.Pi/2, 1, near, far)

	tests := []struct {
		name  string
		point Vec3
		z     float64 // expected NDC z
	}{
		{"near plane", V3(0, 0, -near), -1},
		{"far plane", V3(0, 0, -far), 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clip := proj.MulVec4(V4FromV3(tc.point, 1))
			ndc := clip.PerspectiveDivide()
			if math.Abs(ndc.Z-tc.z) > 1e-9 {
				t.Errorf("ndc.Z = %v, want %v", ndc.Z, tc.z)
			}
		})
	}

	// Behind the camera w goes negative.
	if w := proj.MulVec4(V4(0, 0, 1, 1)).W; w >= 0 {
		t.Errorf("w behind camera = %v, want < 0", w)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.3))
	if got := Identity().Mul(m); got != m {
		t.Errorf("I*m = %v, want %v", got, m)
	}
	if got := m.Mul(Identity()); got != m {
		t.Errorf("m*I = %v, want %v", got, m)
	}
}

func TestMulVec3Dir(t *testing.T) {
	m := Translate(V3(5, 5, 5))
	d := V3(0, 1, 0)
	if got := m.MulVec3Dir(d); got != d {
		t.Errorf("translation should not affect directions, got %v", got)
	}
	if got := m.MulVec3(V3(0, 0, 0)); got != V3(5, 5, 5) {
		t.Errorf("MulVec3 origin = %v, want (5, 5, 5)", got)
	}
}

func TestVec2Cross(t *testing.T) {
	if got := V2(1, 0).Cross(V2(0, 1)); got != 1 {
		t.Errorf("x cross y = %v, want 1", got)
	}
	if got := V2(0, 1).Cross(V2(1, 0)); got != -1 {
		t.Errorf("y cross x = %v, want -1", got)
	}
}

func TestVec4Abs(t *testing.T) {
	if got := V4(-1, 2, -3, -4).Abs(); got != V4(1, 2, 3, 4) {
		t.Errorf("Abs = %v", got)
	}
}
