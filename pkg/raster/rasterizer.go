package raster

import (
	"math"

	"github.com/wrenfield/rasterforge/pkg/framebuffer"
	"github.com/wrenfield/rasterforge/pkg/math3d"
	"github.com/wrenfield/rasterforge/pkg/mesh"
	"github.com/wrenfield/rasterforge/pkg/shader"
)

const epsilon = 1e-6

// tileSize is the edge length of the square pixel blocks coverage testing
// iterates in, chosen for cache locality without sacrificing per-pixel
// accuracy (every pixel in a tile still runs its own edge-function test).
const tileSize = 8

// screenVertex is a vertex after the perspective divide and viewport
// transform, carrying the pre-divide w needed to restore perspective
// correctness during interpolation.
type screenVertex struct {
	X, Y, Z float64
	W       float64
	Vary    shader.Varyings
}

// DrawTriangle runs one triangle through the full pipeline: vertex shading,
// back-face culling, near-plane clipping, perspective divide and viewport
// transform, tiled edge-function coverage testing, perspective-correct
// attribute interpolation, and depth-tested fragment shading.
func DrawTriangle(v0, v1, v2 mesh.Vertex, sh shader.Shader, st State, fb *framebuffer.Framebuffer) {
	in := [3]mesh.Vertex{v0, v1, v2}
	var vary [3]shader.Varyings
	for i, vert := range in {
		vary[i] = sh.Vertex(shader.VertexShaderInput{Vertex: vert, Model: st.Model, View: st.View, Proj: st.Proj})
	}

	if st.CullMode != CullNone && isBackFace(vary, st) {
		return
	}

	for _, tri := range clipNear(vary, st.NearZ) {
		drawClipped(tri, sh, st, fb)
	}
}

func isBackFace(vary [3]shader.Varyings, st State) bool {
	n := vary[1].WorldPos.Sub(vary[0].WorldPos).Cross(vary[2].WorldPos.Sub(vary[0].WorldPos)).Normalize()
	centroid := vary[0].WorldPos.Add(vary[1].WorldPos).Add(vary[2].WorldPos).Scale(1.0 / 3.0)
	d := st.ViewPos.Sub(centroid)
	dot := n.Dot(d)

	var isFront bool
	if st.FrontFace == CCW {
		isFront = dot > epsilon
	} else {
		isFront = dot < -epsilon
	}
	return (st.CullMode == CullBack && !isFront) || (st.CullMode == CullFront && isFront)
}

func drawClipped(vary [3]shader.Varyings, sh shader.Shader, st State, fb *framebuffer.Framebuffer) {
	var sv [3]screenVertex
	for i, vr := range vary {
		w := vr.ClipPos.W
		if math.Abs(w) < 0.001 {
			if w < 0 {
				w = -0.001
			} else {
				w = 0.001
			}
		}
		x := vr.ClipPos.X / w
		y := vr.ClipPos.Y / w
		z := vr.ClipPos.Z / w

		sv[i] = screenVertex{
			X:    (x + 1) * float64(st.Width) / 2,
			Y:    (1 - y) * float64(st.Height) / 2,
			Z:    z*0.5 + 0.5,
			W:    w,
			Vary: vr,
		}
	}

	minX := clampInt(int(math.Floor(min3(sv[0].X, sv[1].X, sv[2].X))), 0, st.Width)
	maxX := clampInt(int(math.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))), 0, st.Width)
	minY := clampInt(int(math.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))), 0, st.Height)
	maxY := clampInt(int(math.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))), 0, st.Height)
	if minX >= maxX || minY >= maxY {
		return
	}

	area := edgeFn(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y, sv[2].X, sv[2].Y)
	if math.Abs(area) < epsilon {
		return
	}

	dudx, dudy := uvDerivatives(sv)

	for ty := minY; ty < maxY; ty += tileSize {
		tyEnd := min2i(ty+tileSize, maxY)
		for tx := minX; tx < maxX; tx += tileSize {
			txEnd := min2i(tx+tileSize, maxX)
			for y := ty; y < tyEnd; y++ {
				for x := tx; x < txEnd; x++ {
					shadePixel(x, y, sv, area, dudx, dudy, sh, fb)
				}
			}
		}
	}
}

func shadePixel(x, y int, sv [3]screenVertex, area, dudx, dudy float64, sh shader.Shader, fb *framebuffer.Framebuffer) {
	px, py := float64(x)+0.5, float64(y)+0.5

	w0 := edgeFn(sv[1].X, sv[1].Y, sv[2].X, sv[2].Y, px, py)
	w1 := edgeFn(sv[2].X, sv[2].Y, sv[0].X, sv[0].Y, px, py)
	w2 := edgeFn(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y, px, py)

	alpha := w0 / area
	beta := w1 / area
	gamma := w2 / area
	if alpha < 0 || beta < 0 || gamma < 0 {
		return
	}

	z := alpha*sv[0].Z + beta*sv[1].Z + gamma*sv[2].Z
	if z > fb.DepthAt(x, y) {
		return
	}

	a0 := alpha / sv[0].W
	a1 := beta / sv[1].W
	a2 := gamma / sv[2].W
	denom := a0 + a1 + a2
	if denom == 0 {
		return
	}

	vary := perspectiveLerp(sv[0].Vary, sv[1].Vary, sv[2].Vary, a0/denom, a1/denom, a2/denom)
	c := sh.Fragment(vary, dudx, dudy)
	fb.SetPixel(x, y, c, z)
}

// edgeFn is E(a,b,c) = (c.x-a.x)(b.y-a.y) - (c.y-a.y)(b.x-a.x).
func edgeFn(ax, ay, bx, by, cx, cy float64) float64 {
	return (cx-ax)*(by-ay) - (cy-ay)*(bx-ax)
}

// uvDerivatives solves the 2x2 linear system relating screen-space edges to
// UV-space edges, returning the two scalar derivative magnitudes the
// fragment stage needs for mipmap LOD selection.
func uvDerivatives(sv [3]screenVertex) (dudx, dudy float64) {
	e12 := math3d.V2(sv[1].X-sv[0].X, sv[1].Y-sv[0].Y)
	e13 := math3d.V2(sv[2].X-sv[0].X, sv[2].Y-sv[0].Y)
	uv12 := sv[1].Vary.UV.Sub(sv[0].Vary.UV)
	uv13 := sv[2].Vary.UV.Sub(sv[0].Vary.UV)

	det := e12.X*e13.Y - e12.Y*e13.X
	invDet := 1.0
	if math.Abs(det) >= epsilon {
		invDet = 1 / det
	}

	duDx := (uv12.X*e13.Y - uv13.X*e12.Y) * invDet
	duDy := (uv13.X*e12.X - uv12.X*e13.X) * invDet
	dvDx := (uv12.Y*e13.Y - uv13.Y*e12.Y) * invDet
	dvDy := (uv13.Y*e12.X - uv12.Y*e13.X) * invDet

	dudx = math.Sqrt(duDx*duDx + dvDx*dvDx)
	dudy = math.Sqrt(duDy*duDy + dvDy*dvDy)
	return
}

// perspectiveLerp blends three varying bundles with already-normalized
// perspective-correct weights (they sum to 1), renormalizing the
// interpolated normal.
func perspectiveLerp(v0, v1, v2 shader.Varyings, w0, w1, w2 float64) shader.Varyings {
	return shader.Varyings{
		ClipPos:  v0.ClipPos.Scale(w0).Add(v1.ClipPos.Scale(w1)).Add(v2.ClipPos.Scale(w2)),
		WorldPos: v0.WorldPos.Scale(w0).Add(v1.WorldPos.Scale(w1)).Add(v2.WorldPos.Scale(w2)),
		Normal:   v0.Normal.Scale(w0).Add(v1.Normal.Scale(w1)).Add(v2.Normal.Scale(w2)).Normalize(),
		Color:    v0.Color.Scale(w0).Add(v1.Color.Scale(w1)).Add(v2.Color.Scale(w2)),
		UV:       v0.UV.Scale(w0).Add(v1.UV.Scale(w1)).Add(v2.UV.Scale(w2)),
	}
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }

func min2i(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
