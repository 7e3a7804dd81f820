package scene

import (
	"github.com/wrenfield/rasterforge/pkg/color"
	"github.com/wrenfield/rasterforge/pkg/framebuffer"
	"github.com/wrenfield/rasterforge/pkg/mesh"
	"github.com/wrenfield/rasterforge/pkg/raster"
	"github.com/wrenfield/rasterforge/pkg/shader"
)

// Object binds a mesh, its model transform, and a shader for one draw call.
// Bounds is the mesh's local-space bounding box; a zero Bounds (Min==Max)
// opts the object out of frustum culling.
type Object struct {
	Mesh        *mesh.Mesh
	Transformer mesh.Transformer
	Shader      shader.Shader
	Bounds      AABB

	Wireframe bool
	WireColor color.Color
}

// CullStats tracks how many objects were tested/culled/drawn in the most
// recently rendered frame.
type CullStats struct {
	Tested, Culled, Drawn int
}

// Scene is the top-level frame driver: a camera plus the objects submitted
// each frame, bound to the double-buffered framebuffer manager.
type Scene struct {
	Camera    *Camera
	Objects   []Object
	Manager   *framebuffer.Manager
	CullMode  raster.CullMode
	FrontFace raster.FrontFace
	NearZ     float64

	FrustumCull bool

	stats CullStats
}

// NewScene returns a scene bound to cam and mgr, with back-face culling,
// CCW front faces, nearZ = 0.1, and frustum culling enabled.
func NewScene(cam *Camera, mgr *framebuffer.Manager) *Scene {
	return &Scene{
		Camera:      cam,
		Manager:     mgr,
		CullMode:    raster.CullBack,
		FrontFace:   raster.CCW,
		NearZ:       0.1,
		FrustumCull: true,
	}
}

// Stats returns the frustum-culling counters from the most recently
// rendered frame.
func (s *Scene) Stats() CullStats { return s.stats }

// RenderFrame runs one acquireBack -> clear -> draw -> swap -> present cycle.
func (s *Scene) RenderFrame(dev framebuffer.Blitter) error {
	fb := s.Manager.AcquireBack()
	s.draw(fb)
	if err := s.Manager.Swap(); err != nil {
		return err
	}
	return s.Manager.Present(dev)
}

func (s *Scene) draw(fb *framebuffer.Framebuffer) {
	s.stats = CullStats{}
	view := s.Camera.ViewMatrix()
	proj := s.Camera.ProjectionMatrix()
	frustum := ExtractFrustum(s.Camera.ViewProjectionMatrix())

	for _, obj := range s.Objects {
		if obj.Mesh == nil {
			continue
		}
		model := obj.Transformer.Matrix()

		if s.FrustumCull && obj.Bounds.Max != obj.Bounds.Min {
			s.stats.Tested++
			if !frustum.IntersectsAABB(obj.Bounds.Transform(model)) {
				s.stats.Culled++
				continue
			}
		}
		s.stats.Drawn++

		st := raster.State{
			Model:     model,
			View:      view,
			Proj:      proj,
			ViewPos:   s.Camera.Position,
			CullMode:  s.CullMode,
			FrontFace: s.FrontFace,
			NearZ:     s.NearZ,
			Width:     fb.Width,
			Height:    fb.Height,
		}

		if obj.Wireframe {
			DrawWireframe(obj.Mesh, st, fb, obj.WireColor)
			continue
		}

		for _, tri := range obj.Mesh.Triangles {
			raster.DrawTriangle(
				obj.Mesh.Vertices[tri[0]],
				obj.Mesh.Vertices[tri[1]],
				obj.Mesh.Vertices[tri[2]],
				obj.Shader,
				st,
				fb,
			)
		}
	}
}
