package mesh

import (
	"math"

	"github.com/wrenfield/rasterforge/pkg/math3d"
)

// Transformer holds position, Euler-angle rotation (in degrees), and scale,
// and composes them into a model matrix.
type Transformer struct {
	Position    math3d.Vec3
	RotationDeg math3d.Vec3 // degrees; a vertex is rotated about X, then Y, then Z
	Scale       math3d.Vec3
}

// NewTransformer returns a transformer at the origin with unit scale.
func NewTransformer() Transformer {
	return Transformer{Scale: math3d.V3(1, 1, 1)}
}

// Matrix returns the model matrix T * Rz * Ry * Rx * S.
func (t Transformer) Matrix() math3d.Mat4 {
	rx := math3d.RotateX(deg2rad(t.RotationDeg.X))
	ry := math3d.RotateY(deg2rad(t.RotationDeg.Y))
	rz := math3d.RotateZ(deg2rad(t.RotationDeg.Z))
	s := math3d.Scale(t.Scale)
	tr := math3d.Translate(t.Position)

	return tr.Mul(rz).Mul(ry).Mul(rx).Mul(s)
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
