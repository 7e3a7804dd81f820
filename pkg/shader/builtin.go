package shader

import (
	"github.com/wrenfield/rasterforge/pkg/color"
	"github.com/wrenfield/rasterforge/pkg/math3d"
	"github.com/wrenfield/rasterforge/pkg/texture"
)

// normalMatrix computes (M^-1)^T for transforming normals into world space.
func normalMatrix(model math3d.Mat4) math3d.Mat4 {
	return model.Inverse().Transpose()
}

func vertexToClip(in VertexShaderInput) (clip math3d.Vec4, worldPos, normal math3d.Vec3) {
	worldPos4 := in.Model.MulVec4(in.Vertex.Pos)
	worldPos = worldPos4.Vec3()
	normal = normalMatrix(in.Model).MulVec4(math3d.V4FromV3(in.Vertex.Normal, 0)).Vec3()
	clip = in.Proj.Mul(in.View).MulVec4(worldPos4)
	return
}

// Unlit renders the vertex color directly with no lighting.
type Unlit struct{}

func (Unlit) Vertex(in VertexShaderInput) Varyings {
	clip, worldPos, normal := vertexToClip(in)
	return Varyings{ClipPos: clip, WorldPos: worldPos, Normal: normal, Color: in.Vertex.Color, UV: in.Vertex.UV}
}

func (Unlit) Fragment(v Varyings, _, _ float64) color.Color {
	return v.Color.Clamp01()
}

// Gouraud shades per-vertex with Phong lighting and lets the rasterizer
// interpolate the resulting color across the triangle.
type Gouraud struct {
	Light     PointLight
	ViewPos   math3d.Vec3
	Shininess float64
}

func (g Gouraud) Vertex(in VertexShaderInput) Varyings {
	clip, worldPos, normal := vertexToClip(in)
	n := normal.Normalize()
	ambient, diffuse, specular := phong(g.Light, worldPos, n, g.ViewPos, g.Shininess)
	base := in.Vertex.Color
	shaded := base.Mul(ambient).Add(base.Mul(diffuse).Add(specular).Scale(g.Light.Intensity))
	return Varyings{ClipPos: clip, WorldPos: worldPos, Normal: n, Color: shaded, UV: in.Vertex.UV}
}

func (Gouraud) Fragment(v Varyings, _, _ float64) color.Color {
	return v.Color.Clamp01()
}

// BlinnPhong shades per-pixel using the interpolated world-space normal and
// position, with a Blinn-Phong specular term.
type BlinnPhong struct {
	Light     PointLight
	ViewPos   math3d.Vec3
	Shininess float64
}

func (BlinnPhong) Vertex(in VertexShaderInput) Varyings {
	clip, worldPos, normal := vertexToClip(in)
	return Varyings{ClipPos: clip, WorldPos: worldPos, Normal: normal.Normalize(), Color: in.Vertex.Color, UV: in.Vertex.UV}
}

func (b BlinnPhong) Fragment(v Varyings, _, _ float64) color.Color {
	ambient, diffuse, specular := blinnPhong(b.Light, v.WorldPos, v.Normal.Normalize(), b.ViewPos, b.Shininess)
	base := v.Color
	shaded := base.Mul(ambient).Add(base.Mul(diffuse).Add(specular).Scale(b.Light.Intensity))
	return shaded.Clamp01()
}

// Textured samples a texture in the fragment stage and modulates it by the
// interpolated vertex color, with no lighting.
type Textured struct {
	Texture *texture.Texture
}

func (Textured) Vertex(in VertexShaderInput) Varyings {
	clip, worldPos, normal := vertexToClip(in)
	return Varyings{ClipPos: clip, WorldPos: worldPos, Normal: normal, Color: in.Vertex.Color, UV: in.Vertex.UV}
}

func (t Textured) Fragment(v Varyings, dudx, dudy float64) color.Color {
	if t.Texture == nil {
		return v.Color.Clamp01()
	}
	sample := t.Texture.SampleLOD(v.UV.X, v.UV.Y, dudx, dudy)
	return v.Color.Mul(sample).Clamp01()
}

// TexturedBlinnPhong samples UV with derivatives, multiplies the diffuse
// term by the sampled albedo, and leaves alpha passed through from the
// surface color.
type TexturedBlinnPhong struct {
	Texture   *texture.Texture
	Light     PointLight
	ViewPos   math3d.Vec3
	Shininess float64
}

func (TexturedBlinnPhong) Vertex(in VertexShaderInput) Varyings {
	clip, worldPos, normal := vertexToClip(in)
	return Varyings{ClipPos: clip, WorldPos: worldPos, Normal: normal.Normalize(), Color: in.Vertex.Color, UV: in.Vertex.UV}
}

func (t TexturedBlinnPhong) Fragment(v Varyings, dudx, dudy float64) color.Color {
	albedo := color.White
	if t.Texture != nil {
		albedo = t.Texture.SampleLOD(v.UV.X, v.UV.Y, dudx, dudy)
	}
	n := v.Normal.Normalize()
	ambient, diffuse, specular := blinnPhong(t.Light, v.WorldPos, n, t.ViewPos, t.Shininess)
	base := v.Color.Mul(albedo)
	rgb := base.Mul(ambient).Add(base.Mul(diffuse).Add(specular).Scale(t.Light.Intensity))
	return color.Color{R: clamp01(rgb.R), G: clamp01(rgb.G), B: clamp01(rgb.B), A: v.Color.A}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
