// Package mesh defines the vertex/triangle mesh data model and the model
// transformer used to place meshes in world space.
package mesh

import (
	"github.com/wrenfield/rasterforge/pkg/color"
	"github.com/wrenfield/rasterforge/pkg/math3d"
)

// Vertex bundles the per-vertex attributes the rasterizer carries through
// the pipeline: homogeneous position, color, normal, and UV.
type Vertex struct {
	Pos    math3d.Vec4
	Color  color.Color
	Normal math3d.Vec3
	UV     math3d.Vec2
}

// Mesh is a sequence of vertices and triangle index triples. Triangle
// indices must each be < len(Vertices); callers own the Mesh.
type Mesh struct {
	Name      string
	Vertices  []Vertex
	Triangles [][3]int

	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// New creates an empty, named mesh.
func New(name string) *Mesh {
	return &Mesh{Name: name}
}

// TriangleCount returns the number of triangles. This is the only size
// accessor the mesh exposes; there is deliberately no separate
// "index count" accessor (triangles*3) to avoid the inconsistency the
// original implementation had between the two.
func (m *Mesh) TriangleCount() int { return len(m.Triangles) }

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v Vertex) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddTriangle appends a triangle referencing three vertex indices. Indices
// out of range are silently dropped (invalid input, per the error model).
func (m *Mesh) AddTriangle(a, b, c int) {
	n := len(m.Vertices)
	if a < 0 || b < 0 || c < 0 || a >= n || b >= n || c >= n {
		return
	}
	m.Triangles = append(m.Triangles, [3]int{a, b, c})
}

// CalculateBounds computes the axis-aligned bounding box over positions.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}
	p0 := m.Vertices[0].Pos.Vec3()
	m.BoundsMin, m.BoundsMax = p0, p0
	for _, v := range m.Vertices[1:] {
		p := v.Pos.Vec3()
		m.BoundsMin = m.BoundsMin.Min(p)
		m.BoundsMax = m.BoundsMax.Max(p)
	}
}

// Center returns the midpoint of the bounding box.
func (m *Mesh) Center() math3d.Vec3 { return m.BoundsMin.Add(m.BoundsMax).Scale(0.5) }

// Size returns the bounding box dimensions.
func (m *Mesh) Size() math3d.Vec3 { return m.BoundsMax.Sub(m.BoundsMin) }

// CalculateSmoothNormals zeros every vertex normal, accumulates each
// triangle's face normal into its three corners, then renormalizes. This is
// the face-weighted averaging scheme; there is no separate hard-edge
// variant, since nothing downstream needs one.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	for _, tri := range m.Triangles {
		p0 := m.Vertices[tri[0]].Pos.Vec3()
		p1 := m.Vertices[tri[1]].Pos.Vec3()
		p2 := m.Vertices[tri[2]].Pos.Vec3()
		faceNormal := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()

		for _, idx := range tri {
			m.Vertices[idx].Normal = m.Vertices[idx].Normal.Add(faceNormal)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Name:      m.Name,
		Vertices:  append([]Vertex(nil), m.Vertices...),
		Triangles: append([][3]int(nil), m.Triangles...),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	return out
}
