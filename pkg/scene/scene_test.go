package scene

import (
	"testing"

	"github.com/wrenfield/rasterforge/pkg/color"
	"github.com/wrenfield/rasterforge/pkg/framebuffer"
	"github.com/wrenfield/rasterforge/pkg/math3d"
	"github.com/wrenfield/rasterforge/pkg/mesh"
	"github.com/wrenfield/rasterforge/pkg/shader"
)

type fakeBlitter struct {
	w, h int
	rgba []byte
}

func (f *fakeBlitter) Blit(w, h int, rgba []byte) error {
	f.w, f.h = w, h
	f.rgba = rgba
	return nil
}

func triangleMesh() *mesh.Mesh {
	m := mesh.New("tri")
	m.AddVertex(mesh.Vertex{Pos: math3d.V4(-1, -1, 0, 1), Color: color.Red, Normal: math3d.V3(0, 0, 1)})
	m.AddVertex(mesh.Vertex{Pos: math3d.V4(1, -1, 0, 1), Color: color.Red, Normal: math3d.V3(0, 0, 1)})
	m.AddVertex(mesh.Vertex{Pos: math3d.V4(0, 1, 0, 1), Color: color.Red, Normal: math3d.V3(0, 0, 1)})
	m.AddTriangle(0, 1, 2)
	m.CalculateBounds()
	return m
}

func TestRenderFrameDrawsObjectAndPresents(t *testing.T) {
	mgr := framebuffer.NewManager(color.Black)
	mgr.Init(200, 200)

	cam := NewCamera()
	cam.SetPosition(math3d.V3(0, 0, 5))
	cam.LookAt(math3d.Zero3())
	cam.SetAspectRatio(1)

	s := NewScene(cam, mgr)
	s.FrustumCull = false
	s.Objects = append(s.Objects, Object{
		Mesh:        triangleMesh(),
		Transformer: mesh.NewTransformer(),
		Shader:      shader.Unlit{},
	})

	dev := &fakeBlitter{}
	if err := s.RenderFrame(dev); err != nil {
		t.Fatalf("RenderFrame() error = %v", err)
	}
	if dev.w != 200 || dev.h != 200 {
		t.Errorf("Blit() dims = (%d,%d), want (200,200)", dev.w, dev.h)
	}

	allBlack := true
	for i := 0; i < len(dev.rgba); i += 4 {
		if dev.rgba[i] != 0 || dev.rgba[i+1] != 0 || dev.rgba[i+2] != 0 {
			allBlack = false
			break
		}
	}
	if allBlack {
		t.Errorf("presented buffer is entirely black, want the triangle to have drawn")
	}
}

func TestFrustumCullSkipsObjectOutsideView(t *testing.T) {
	mgr := framebuffer.NewManager(color.Black)
	mgr.Init(100, 100)

	cam := NewCamera()
	cam.SetPosition(math3d.V3(0, 0, 5))
	cam.LookAt(math3d.Zero3())
	cam.SetAspectRatio(1)
	cam.SetClipPlanes(0.1, 50)

	s := NewScene(cam, mgr)

	far := triangleMesh()
	tr := mesh.NewTransformer()
	tr.Position = math3d.V3(0, 0, -1000)

	s.Objects = append(s.Objects, Object{Mesh: far, Transformer: tr, Shader: shader.Unlit{}, Bounds: AABB{Min: far.BoundsMin, Max: far.BoundsMax}})

	dev := &fakeBlitter{}
	if err := s.RenderFrame(dev); err != nil {
		t.Fatalf("RenderFrame() error = %v", err)
	}
	stats := s.Stats()
	if stats.Culled != 1 || stats.Drawn != 0 {
		t.Errorf("Stats() = %+v, want one culled object and zero drawn", stats)
	}
}
