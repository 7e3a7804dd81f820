package raster

import "github.com/wrenfield/rasterforge/pkg/shader"

// clipNear clips a triangle of Varyings against the near plane w = nearZ,
// returning zero, one, or two output triangles depending on how many
// vertices are inside (w >= nearZ).
func clipNear(v [3]shader.Varyings, nearZ float64) [][3]shader.Varyings {
	inside := [3]bool{
		v[0].ClipPos.W >= nearZ,
		v[1].ClipPos.W >= nearZ,
		v[2].ClipPos.W >= nearZ,
	}
	count := 0
	for _, in := range inside {
		if in {
			count++
		}
	}

	switch count {
	case 0:
		return nil
	case 3:
		return [][3]shader.Varyings{v}
	case 1:
		var a, b, c shader.Varyings
		switch {
		case inside[0]:
			a, b, c = v[0], v[1], v[2]
		case inside[1]:
			a, b, c = v[1], v[2], v[0]
		default:
			a, b, c = v[2], v[0], v[1]
		}
		ab := clipPoint(a, b, nearZ)
		ac := clipPoint(a, c, nearZ)
		return [][3]shader.Varyings{{a, ab, ac}}
	case 2:
		var a, b, c shader.Varyings
		switch {
		case !inside[0]:
			a, b, c = v[1], v[2], v[0]
		case !inside[1]:
			a, b, c = v[2], v[0], v[1]
		default:
			a, b, c = v[0], v[1], v[2]
		}
		ac := clipPoint(a, c, nearZ)
		bc := clipPoint(b, c, nearZ)
		return [][3]shader.Varyings{
			{a, b, ac},
			{b, bc, ac},
		}
	default:
		return nil
	}
}

// clipPoint finds the point on segment P->Q where w == nearZ and linearly
// interpolates every attribute in clip space (not perspective-correct:
// the intersection itself is linear in homogeneous coordinates).
func clipPoint(p, q shader.Varyings, nearZ float64) shader.Varyings {
	denom := q.ClipPos.W - p.ClipPos.W
	t := 0.0
	if denom != 0 {
		t = (nearZ - p.ClipPos.W) / denom
	}
	return p.Lerp(q, t)
}
