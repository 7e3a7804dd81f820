package shader

import (
	"math"

	"github.com/wrenfield/rasterforge/pkg/color"
	"github.com/wrenfield/rasterforge/pkg/math3d"
)

// PointLight is the single light source the built-in lit shaders consume.
type PointLight struct {
	Position  math3d.Vec3
	Ambient   color.Color
	Diffuse   color.Color
	Specular  color.Color
	Intensity float64
}

// NewPointLight returns a light with conventional ambient/diffuse/specular
// weights.
func NewPointLight(pos math3d.Vec3) PointLight {
	return PointLight{
		Position:  pos,
		Ambient:   color.RGB(0.1, 0.1, 0.1),
		Diffuse:   color.RGB(0.8, 0.8, 0.8),
		Specular:  color.RGB(1, 1, 1),
		Intensity: 1,
	}
}

// phong computes the ambient, diffuse, and specular terms at a surface
// point given its normal, the view position, and a shininess exponent. The
// terms are returned unmixed with the surface color and unscaled by
// Intensity: the caller tints ambient and diffuse by the surface color (or
// sampled albedo), then scales diffuse+specular by Intensity, keeping the
// specular highlight in the light's own color rather than the surface's.
func phong(l PointLight, worldPos, normal, viewPos math3d.Vec3, shininess float64) (ambient, diffuse, specular color.Color) {
	lightDir := l.Position.Sub(worldPos).Normalize()
	viewDir := viewPos.Sub(worldPos).Normalize()

	diffFactor := max(0, normal.Dot(lightDir))
	reflectDir := lightDir.Negate().Reflect(normal)
	specFactor := 0.0
	if diffFactor > 0 {
		specFactor = math.Pow(max(0, viewDir.Dot(reflectDir)), shininess)
	}

	return l.Ambient, l.Diffuse.Scale(diffFactor), l.Specular.Scale(specFactor)
}

// blinnPhong is phong's higher-quality sibling, using the half-vector
// between the light and view directions instead of the reflected light
// vector for the specular term. Same unmixed, unscaled return convention.
func blinnPhong(l PointLight, worldPos, normal, viewPos math3d.Vec3, shininess float64) (ambient, diffuse, specular color.Color) {
	lightDir := l.Position.Sub(worldPos).Normalize()
	viewDir := viewPos.Sub(worldPos).Normalize()
	halfDir := lightDir.Add(viewDir).Normalize()

	diffFactor := max(0, normal.Dot(lightDir))
	specFactor := 0.0
	if diffFactor > 0 {
		specFactor = math.Pow(max(0, normal.Dot(halfDir)), shininess)
	}

	return l.Ambient, l.Diffuse.Scale(diffFactor), l.Specular.Scale(specFactor)
}
