// Package color provides the linear float RGBA color type shared by the
// texture, shader, and framebuffer packages.
package color

import "math"

// Color is a four-channel linear color. Components are not clamped in
// storage; shaders clamp on write, and the framebuffer quantizes to 8-bit
// per channel on store.
type Color struct {
	R, G, B, A float64
}

// Named colors, matching the conventional RGBA primaries.
var (
	Black = Color{0, 0, 0, 1}
	White = Color{1, 1, 1, 1}
	Red   = Color{1, 0, 0, 1}
	Green = Color{0, 1, 0, 1}
	Blue  = Color{0, 0, 1, 1}
)

// RGB constructs an opaque color.
func RGB(r, g, b float64) Color { return Color{r, g, b, 1} }

// RGBA constructs a color with explicit alpha.
func RGBA(r, g, b, a float64) Color { return Color{r, g, b, a} }

func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

func (c Color) Sub(o Color) Color {
	return Color{c.R - o.R, c.G - o.G, c.B - o.B, c.A - o.A}
}

// Mul returns the component-wise (modulate) product.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// Scale multiplies every channel, including alpha, by s.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Lerp returns a + (b-a)*t per channel.
func (a Color) Lerp(b Color, t float64) Color {
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

// Clamp01 clamps every channel to [0,1].
func (c Color) Clamp01() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// Quantize clamps to [0,1] and converts to 8-bit-per-channel RGBA bytes,
// matching the bit-exact color buffer layout (R,G,B,A order).
func (c Color) Quantize() [4]byte {
	cl := c.Clamp01()
	return [4]byte{
		byte(cl.R*255 + 0.5),
		byte(cl.G*255 + 0.5),
		byte(cl.B*255 + 0.5),
		byte(cl.A*255 + 0.5),
	}
}

// FromBytes reconstructs a Color from quantized 8-bit-per-channel bytes.
func FromBytes(r, g, b, a byte) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, float64(a) / 255}
}
