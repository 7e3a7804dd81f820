package shader

import (
	"testing"

	"github.com/wrenfield/rasterforge/pkg/color"
	"github.com/wrenfield/rasterforge/pkg/math3d"
	"github.com/wrenfield/rasterforge/pkg/mesh"
	"github.com/wrenfield/rasterforge/pkg/texture"
)

func identityInput(v mesh.Vertex) VertexShaderInput {
	return VertexShaderInput{
		Vertex: v,
		Model:  math3d.Identity(),
		View:   math3d.Identity(),
		Proj:   math3d.Identity(),
	}
}

func TestUnlitPassesVertexColorClamped(t *testing.T) {
	v := mesh.Vertex{Pos: math3d.V4(0, 0, 0, 1), Color: color.RGBA(2, -1, 0.5, 1)}
	var s Unlit
	vary := s.Vertex(identityInput(v))
	out := s.Fragment(vary, 0, 0)
	if out.R != 1 || out.G != 0 || out.B != 0.5 {
		t.Errorf("Fragment() = %v, want clamped (1,0,0.5)", out)
	}
}

func TestGouraudLightingNonNegative(t *testing.T) {
	v := mesh.Vertex{
		Pos:    math3d.V4(0, 0, 0, 1),
		Color:  color.White,
		Normal: math3d.V3(0, 0, 1),
	}
	g := Gouraud{
		Light:     NewPointLight(math3d.V3(0, 0, 5)),
		ViewPos:   math3d.V3(0, 0, 5),
		Shininess: 32,
	}
	vary := g.Vertex(identityInput(v))
	out := g.Fragment(vary, 0, 0)
	if out.R < 0 || out.R > 1 || out.G < 0 || out.G > 1 || out.B < 0 || out.B > 1 {
		t.Errorf("Fragment() = %v, want channels in [0,1]", out)
	}
	if out.R == 0 {
		t.Errorf("lit surface facing the light should not be black, got %v", out)
	}
}

func TestBlinnPhongFacingAwayIsAmbientOnly(t *testing.T) {
	v := mesh.Vertex{
		Pos:    math3d.V4(0, 0, 0, 1),
		Color:  color.White,
		Normal: math3d.V3(0, 0, -1),
	}
	light := NewPointLight(math3d.V3(0, 0, 5))
	b := BlinnPhong{Light: light, ViewPos: math3d.V3(0, 0, 5), Shininess: 32}
	vary := b.Vertex(identityInput(v))
	out := b.Fragment(vary, 0, 0)

	wantAmbient := light.Ambient.Scale(light.Intensity)
	const eps = 1e-9
	if absf(out.R-wantAmbient.R) > eps || absf(out.G-wantAmbient.G) > eps || absf(out.B-wantAmbient.B) > eps {
		t.Errorf("Fragment() = %v, want ambient-only %v", out, wantAmbient)
	}
}

func TestTexturedFragmentModulatesSample(t *testing.T) {
	tex, _ := texture.New(2, 2)
	tex.SetPixel(0, 0, color.RGB(1, 1, 1))
	tex.SetPixel(1, 0, color.RGB(1, 1, 1))
	tex.SetPixel(0, 1, color.RGB(1, 1, 1))
	tex.SetPixel(1, 1, color.RGB(1, 1, 1))
	tex.Filter = texture.FilterNearest

	v := mesh.Vertex{Pos: math3d.V4(0, 0, 0, 1), Color: color.RGB(0.5, 0.5, 0.5), UV: math3d.V2(0.25, 0.25)}
	s := Textured{Texture: tex}
	vary := s.Vertex(identityInput(v))
	out := s.Fragment(vary, 0, 0)
	if out.R != 0.5 || out.G != 0.5 || out.B != 0.5 {
		t.Errorf("Fragment() = %v, want (0.5,0.5,0.5) from white*gray", out)
	}
}

func TestTexturedBlinnPhongAlphaPassesThroughUnclamped(t *testing.T) {
	s := TexturedBlinnPhong{
		Light:     NewPointLight(math3d.V3(0, 0, 5)),
		ViewPos:   math3d.V3(0, 0, 5),
		Shininess: 16,
	}
	v := mesh.Vertex{
		Pos:    math3d.V4(0, 0, 0, 1),
		Color:  color.RGBA(1, 1, 1, 2),
		Normal: math3d.V3(0, 0, 1),
	}
	vary := s.Vertex(identityInput(v))
	out := s.Fragment(vary, 0, 0)
	if out.A != 2 {
		t.Errorf("Fragment().A = %v, want alpha passed through unclamped at 2", out.A)
	}
	if out.R < 0 || out.R > 1 {
		t.Errorf("Fragment().R = %v, want clamped to [0,1]", out.R)
	}
}

func TestVaryingsLerpRenormalizesNormal(t *testing.T) {
	a := Varyings{Normal: math3d.V3(1, 0, 0)}
	b := Varyings{Normal: math3d.V3(0, 1, 0)}
	mid := a.Lerp(b, 0.5)
	if absf(mid.Normal.Len()-1) > 1e-9 {
		t.Errorf("interpolated normal length = %v, want 1", mid.Normal.Len())
	}
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
