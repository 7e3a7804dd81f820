package scene

import (
	"github.com/wrenfield/rasterforge/pkg/color"
	"github.com/wrenfield/rasterforge/pkg/framebuffer"
	"github.com/wrenfield/rasterforge/pkg/math3d"
	"github.com/wrenfield/rasterforge/pkg/mesh"
	"github.com/wrenfield/rasterforge/pkg/raster"
)

// DrawWireframe strokes every triangle edge of m instead of filling it,
// reusing the rasterizer's own clip-space transform and viewport mapping
// (st.Model/View/Proj/Width/Height) rather than a bespoke projection.
func DrawWireframe(m *mesh.Mesh, st raster.State, fb *framebuffer.Framebuffer, c color.Color) {
	viewProj := st.Proj.Mul(st.View).Mul(st.Model)

	project := func(p math3d.Vec4) (x, y int, visible bool) {
		clip := viewProj.MulVec4(p)
		if clip.W < st.NearZ {
			return 0, 0, false
		}
		ndcX := clip.X / clip.W
		ndcY := clip.Y / clip.W
		return int((ndcX + 1) * float64(st.Width) / 2), int((1 - ndcY) * float64(st.Height) / 2), true
	}

	drawEdge := func(a, b math3d.Vec4) {
		x0, y0, v0 := project(a)
		x1, y1, v1 := project(b)
		if !v0 || !v1 {
			return
		}
		fb.DrawLine(x0, y0, x1, y1, c)
	}

	for _, tri := range m.Triangles {
		p0 := m.Vertices[tri[0]].Pos
		p1 := m.Vertices[tri[1]].Pos
		p2 := m.Vertices[tri[2]].Pos
		drawEdge(p0, p1)
		drawEdge(p1, p2)
		drawEdge(p2, p0)
	}
}
