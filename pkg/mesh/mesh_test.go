package mesh

import (
	"math"
	"testing"

	"github.com/wrenfield/rasterforge/pkg/math3d"
)

func quad() *Mesh {
	m := New("quad")
	m.AddVertex(Vertex{Pos: math3d.V4(-1, -1, 0, 1)})
	m.AddVertex(Vertex{Pos: math3d.V4(1, -1, 0, 1)})
	m.AddVertex(Vertex{Pos: math3d.V4(1, 1, 0, 1)})
	m.AddVertex(Vertex{Pos: math3d.V4(-1, 1, 0, 1)})
	m.AddTriangle(0, 1, 2)
	m.AddTriangle(0, 2, 3)
	return m
}

func TestSmoothNormalsPointOutward(t *testing.T) {
	m := quad()
	m.CalculateSmoothNormals()
	for i, v := range m.Vertices {
		if math.Abs(v.Normal.Z-(-1)) > 1e-9 && math.Abs(v.Normal.Z-1) > 1e-9 {
			t.Errorf("vertex %d normal = %v, want unit Z", i, v.Normal)
		}
		if math.Abs(v.Normal.Len()-1) > 1e-9 {
			t.Errorf("vertex %d normal not unit length: %v", i, v.Normal)
		}
	}
}

func TestTriangleCountStandardized(t *testing.T) {
	m := quad()
	if m.TriangleCount() != 2 {
		t.Errorf("TriangleCount() = %d, want 2", m.TriangleCount())
	}
}

func TestAddTriangleRejectsOutOfRange(t *testing.T) {
	m := New("m")
	m.AddVertex(Vertex{})
	m.AddTriangle(0, 1, 2)
	if len(m.Triangles) != 0 {
		t.Errorf("out-of-range triangle should be dropped, got %v", m.Triangles)
	}
}

func TestBoundsFromQuad(t *testing.T) {
	m := quad()
	m.CalculateBounds()
	if m.BoundsMin != math3d.V3(-1, -1, 0) || m.BoundsMax != math3d.V3(1, 1, 0) {
		t.Errorf("bounds = [%v,%v]", m.BoundsMin, m.BoundsMax)
	}
}

func TestTransformerComposesTRzRyRxS(t *testing.T) {
	tr := NewTransformer()
	tr.Position = math3d.V3(1, 2, 3)
	tr.Scale = math3d.V3(2, 2, 2)
	m := tr.Matrix()

	want := math3d.Translate(tr.Position).
		Mul(math3d.RotateZ(0)).
		Mul(math3d.RotateY(0)).
		Mul(math3d.RotateX(0)).
		Mul(math3d.Scale(tr.Scale))

	got := m.MulVec3(math3d.Zero3())
	wantPos := want.MulVec3(math3d.Zero3())
	if got != wantPos {
		t.Errorf("transform origin = %v, want %v", got, wantPos)
	}
}
