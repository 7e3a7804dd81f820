// Package math3d provides vector and matrix primitives for the rasterizer.
package math3d

import "math"

// Vec2 is a two-component float vector, used for texture coordinates.
type Vec2 struct {
	X, Y float64
}

// V2 constructs a Vec2.
func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Div divides both components by s. |s|<epsilon yields the zero vector.
func (v Vec2) Div(s float64) Vec2 {
	if math.Abs(s) < epsilon {
		return Vec2{}
	}
	return Vec2{v.X / s, v.Y / s}
}

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Len() float64       { return math.Sqrt(v.Dot(v)) }
func (v Vec2) LenSq() float64     { return v.Dot(v) }

// Normalize returns a unit vector. A near-zero input is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l < epsilon {
		return v
	}
	return v.Scale(1 / l)
}

// Lerp linearly interpolates between v and o by t.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
	}
}
