// Package raster implements the core triangle pipeline: vertex shading,
// back-face culling, near-plane clipping, perspective-correct tiled
// rasterization, depth testing, and fragment shading.
package raster

import "github.com/wrenfield/rasterforge/pkg/math3d"

// CullMode selects which winding is discarded by back-face culling.
type CullMode int

const (
	CullBack CullMode = iota
	CullFront
	CullNone
)

// FrontFace selects which winding order is considered front-facing.
type FrontFace int

const (
	CCW FrontFace = iota
	CW
)

// State is the ambient rasterizer configuration shared across every
// drawTriangle call in a frame: the three transform matrices, the eye
// position for culling/lighting, culling/winding mode, and the target
// surface dimensions.
type State struct {
	Model, View, Proj math3d.Mat4
	ViewPos           math3d.Vec3

	CullMode  CullMode
	FrontFace FrontFace
	NearZ     float64
	Width     int
	Height    int
}

// DefaultState returns a state with identity transforms, back-face culling,
// counter-clockwise front faces, and nearZ = 0.1.
func DefaultState(width, height int) State {
	return State{
		Model:     math3d.Identity(),
		View:      math3d.Identity(),
		Proj:      math3d.Identity(),
		CullMode:  CullBack,
		FrontFace: CCW,
		NearZ:     0.1,
		Width:     width,
		Height:    height,
	}
}
