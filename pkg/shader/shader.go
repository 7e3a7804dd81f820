// Package shader defines the vertex/fragment stage-pair contract the
// rasterizer drives, plus a handful of built-in shader variants.
package shader

import (
	"github.com/wrenfield/rasterforge/pkg/color"
	"github.com/wrenfield/rasterforge/pkg/math3d"
	"github.com/wrenfield/rasterforge/pkg/mesh"
)

// VertexShaderInput carries one source vertex plus the three matrices
// consistent for the whole draw call.
type VertexShaderInput struct {
	Vertex mesh.Vertex
	Model  math3d.Mat4
	View   math3d.Mat4
	Proj   math3d.Mat4
}

// Varyings holds the per-vertex/per-fragment attributes the rasterizer
// interpolates: clip-space position through clipping, then world-space
// position/normal/color/uv perspective-correctly across the triangle.
type Varyings struct {
	ClipPos  math3d.Vec4
	WorldPos math3d.Vec3
	Normal   math3d.Vec3
	Color    color.Color
	UV       math3d.Vec2
}

// Lerp linearly interpolates every field, renormalizing Normal afterward —
// used by near-plane clipping, which is linear in clip space rather than
// perspective-correct.
func (a Varyings) Lerp(b Varyings, t float64) Varyings {
	return Varyings{
		ClipPos:  a.ClipPos.Lerp(b.ClipPos, t),
		WorldPos: a.WorldPos.Lerp(b.WorldPos, t),
		Normal:   a.Normal.Lerp(b.Normal, t).Normalize(),
		Color:    a.Color.Lerp(b.Color, t),
		UV:       a.UV.Lerp(b.UV, t),
	}
}

// Shader is any value providing a vertex and a fragment stage. The core
// treats returned Varyings as opaque attributes to interpolate; it never
// inspects their meaning.
type Shader interface {
	// Vertex must populate ClipPos; WorldPos/Normal/Color/UV are optional.
	Vertex(in VertexShaderInput) Varyings
	// Fragment is pure with respect to its inputs: the interpolated
	// varying bundle plus the screen-space UV derivatives.
	Fragment(v Varyings, dudx, dudy float64) color.Color
}
