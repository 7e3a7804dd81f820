package scene

import (
	"math"

	"github.com/wrenfield/rasterforge/pkg/math3d"
)

// Camera holds position/orientation and projection parameters, caching the
// view and projection matrices until invalidated by a setter.
type Camera struct {
	Position math3d.Vec3
	Pitch    float64 // rotation around X, radians
	Yaw      float64 // rotation around Y, radians
	Roll     float64 // rotation around Z, radians

	FOV         float64
	AspectRatio float64
	Near        float64
	Far         float64

	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	viewDirty      bool
	projDirty      bool
}

// NewCamera returns a camera at the origin with a 60-degree vertical FOV,
// 16:9 aspect, and near/far planes of 0.1/1000.
func NewCamera() *Camera {
	return &Camera{
		FOV:         math.Pi / 3,
		AspectRatio: 16.0 / 9.0,
		Near:        0.1,
		Far:         1000,
		viewDirty:   true,
		projDirty:   true,
	}
}

func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
}

func (c *Camera) SetRotation(pitch, yaw, roll float64) {
	c.Pitch, c.Yaw, c.Roll = pitch, yaw, roll
	c.viewDirty = true
}

func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near, c.Far = near, far
	c.projDirty = true
}

// Forward returns the camera's look direction (-Z in camera space, rotated
// by yaw and pitch).
func (c *Camera) Forward() math3d.Vec3 {
	return math3d.V3(
		-math.Sin(c.Yaw)*math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		-math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
}

func (c *Camera) Right() math3d.Vec3 {
	return math3d.V3(math.Cos(c.Yaw), 0, -math.Sin(c.Yaw))
}

func (c *Camera) Up() math3d.Vec3 {
	return c.Right().Cross(c.Forward())
}

func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		rot := math3d.RotateZ(-c.Roll).Mul(math3d.RotateX(-c.Pitch)).Mul(math3d.RotateY(-c.Yaw))
		trans := math3d.Translate(c.Position.Negate())
		c.viewMatrix = rot.Mul(trans)
		c.viewDirty = false
	}
	return c.viewMatrix
}

func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	c.viewProjMatrix = c.ProjectionMatrix().Mul(c.ViewMatrix())
	return c.viewProjMatrix
}

// MoveForward/MoveRight/MoveUp translate the camera along its own basis
// vectors (MoveUp uses world up, not the tilted camera up).
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.Forward().Scale(distance))
	c.viewDirty = true
}

func (c *Camera) MoveRight(distance float64) {
	c.Position = c.Position.Add(c.Right().Scale(distance))
	c.viewDirty = true
}

func (c *Camera) MoveUp(distance float64) {
	c.Position = c.Position.Add(math3d.Up().Scale(distance))
	c.viewDirty = true
}

// Rotate applies relative pitch/yaw/roll deltas, clamping pitch short of
// the poles to avoid a degenerate view basis.
func (c *Camera) Rotate(deltaPitch, deltaYaw, deltaRoll float64) {
	c.Pitch += deltaPitch
	c.Yaw += deltaYaw
	c.Roll += deltaRoll

	const maxPitch = math.Pi/2 - 0.01
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
	c.viewDirty = true
}

// LookAt orients the camera toward target, zeroing roll.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	c.Pitch = math.Asin(dir.Y)
	c.Yaw = math.Atan2(-dir.X, -dir.Z)
	c.Roll = 0
	c.viewDirty = true
}
