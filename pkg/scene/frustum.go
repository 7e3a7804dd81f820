// Package scene composes meshes, shaders, and a camera into a per-frame
// draw loop: frustum culling, the acquire/clear/draw/swap/present cycle,
// and an optional wireframe debug overlay.
package scene

import "github.com/wrenfield/rasterforge/pkg/math3d"

// Plane is Ax + By + Cz + D = 0 with (A,B,C) the normal.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

func (p *Plane) normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point;
// positive is on the side the normal points toward.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

const (
	frustumLeft = iota
	frustumRight
	frustumBottom
	frustumTop
	frustumNear
	frustumFar
)

// Frustum holds the 6 planes of a view volume, normals pointing inward.
type Frustum struct {
	Planes [6]Plane
}

// ExtractFrustum derives the 6 frustum planes from a combined view-projection
// matrix using the Gribb/Hartmann method. m is row-major: row i occupies
// m[i*4 : i*4+4].
func ExtractFrustum(m math3d.Mat4) Frustum {
	row := func(i int) (float64, float64, float64, float64) {
		return m.Get(i, 0), m.Get(i, 1), m.Get(i, 2), m.Get(i, 3)
	}
	r0x, r0y, r0z, r0w := row(0)
	r1x, r1y, r1z, r1w := row(1)
	r2x, r2y, r2z, r2w := row(2)
	r3x, r3y, r3z, r3w := row(3)

	var f Frustum
	f.Planes[frustumLeft] = Plane{math3d.V3(r3x+r0x, r3y+r0y, r3z+r0z), r3w + r0w}
	f.Planes[frustumRight] = Plane{math3d.V3(r3x-r0x, r3y-r0y, r3z-r0z), r3w - r0w}
	f.Planes[frustumBottom] = Plane{math3d.V3(r3x+r1x, r3y+r1y, r3z+r1z), r3w + r1w}
	f.Planes[frustumTop] = Plane{math3d.V3(r3x-r1x, r3y-r1y, r3z-r1z), r3w - r1w}
	f.Planes[frustumNear] = Plane{math3d.V3(r3x+r2x, r3y+r2y, r3z+r2z), r3w + r2w}
	f.Planes[frustumFar] = Plane{math3d.V3(r3x-r2x, r3y-r2y, r3z-r2z), r3w - r2w}

	for i := range f.Planes {
		f.Planes[i].normalize()
	}
	return f
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math3d.Vec3
}

// Transform returns an AABB bounding all 8 corners of box after m.
func (box AABB) Transform(m math3d.Mat4) AABB {
	corners := [8]math3d.Vec3{
		math3d.V3(box.Min.X, box.Min.Y, box.Min.Z),
		math3d.V3(box.Max.X, box.Min.Y, box.Min.Z),
		math3d.V3(box.Min.X, box.Max.Y, box.Min.Z),
		math3d.V3(box.Max.X, box.Max.Y, box.Min.Z),
		math3d.V3(box.Min.X, box.Min.Y, box.Max.Z),
		math3d.V3(box.Max.X, box.Min.Y, box.Max.Z),
		math3d.V3(box.Min.X, box.Max.Y, box.Max.Z),
		math3d.V3(box.Max.X, box.Max.Y, box.Max.Z),
	}

	out := AABB{Min: m.MulVec3(corners[0]), Max: m.MulVec3(corners[0])}
	for _, c := range corners[1:] {
		t := m.MulVec3(c)
		out.Min = out.Min.Min(t)
		out.Max = out.Max.Max(t)
	}
	return out
}

// IntersectsAABB reports whether any part of box lies inside the frustum,
// using the positive-vertex test: if the corner furthest along a plane's
// normal is still outside that plane, the whole box is outside.
func (f Frustum) IntersectsAABB(box AABB) bool {
	for _, plane := range f.Planes {
		p := math3d.V3(
			selectGE(plane.Normal.X, box.Max.X, box.Min.X),
			selectGE(plane.Normal.Y, box.Max.Y, box.Min.Y),
			selectGE(plane.Normal.Z, box.Max.Z, box.Min.Z),
		)
		if plane.DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

func selectGE(n, ifGE, ifLT float64) float64 {
	if n >= 0 {
		return ifGE
	}
	return ifLT
}
