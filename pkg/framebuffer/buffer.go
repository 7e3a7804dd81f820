// Package framebuffer provides the double-buffered color/depth image the
// rasterizer draws into and the device layer presents to the screen.
package framebuffer

import (
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/wrenfield/rasterforge/pkg/color"
)

// Framebuffer pairs a color buffer (RGBA8, top-to-bottom) and a depth buffer
// (one float per pixel, default 1.0) for a single (Width, Height) surface.
type Framebuffer struct {
	Width, Height int
	Color         []byte    // 4 bytes per pixel, RGBA order
	Depth         []float64 // farthest (1.0) by default
}

// New allocates a framebuffer cleared to black with depth 1.0.
func New(width, height int) *Framebuffer {
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Color:  make([]byte, width*height*4),
		Depth:  make([]float64, width*height),
	}
	fb.Clear(color.Black, 1.0)
	return fb
}

// Clear writes every pixel to c (quantized) and every depth sample to d.
func (fb *Framebuffer) Clear(c color.Color, d float64) {
	q := c.Quantize()
	for i := 0; i < len(fb.Color); i += 4 {
		fb.Color[i+0] = q[0]
		fb.Color[i+1] = q[1]
		fb.Color[i+2] = q[2]
		fb.Color[i+3] = q[3]
	}
	for i := range fb.Depth {
		fb.Depth[i] = d
	}
}

// SetPixel writes a color and depth sample; out-of-range writes are no-ops.
func (fb *Framebuffer) SetPixel(x, y int, c color.Color, depth float64) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	i := y*fb.Width + x
	q := c.Quantize()
	fb.Color[i*4+0] = q[0]
	fb.Color[i*4+1] = q[1]
	fb.Color[i*4+2] = q[2]
	fb.Color[i*4+3] = q[3]
	fb.Depth[i] = depth
}

// GetPixel returns the color and depth at (x, y). Out-of-range reads return
// transparent black and depth 1.0.
func (fb *Framebuffer) GetPixel(x, y int) (color.Color, float64) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.Color{}, 1.0
	}
	i := y*fb.Width + x
	return color.FromBytes(fb.Color[i*4+0], fb.Color[i*4+1], fb.Color[i*4+2], fb.Color[i*4+3]), fb.Depth[i]
}

// DepthAt returns only the depth sample, used by the rasterizer's per-pixel
// depth test without paying for a color decode.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 1.0
	}
	return fb.Depth[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm, writing color only (depth left untouched); used by the
// wireframe debug overlay.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.setColorOnly(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (fb *Framebuffer) setColorOnly(x, y int, c color.Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	i := y*fb.Width + x
	q := c.Quantize()
	fb.Color[i*4+0] = q[0]
	fb.Color[i*4+1] = q[1]
	fb.Color[i*4+2] = q[2]
	fb.Color[i*4+3] = q[3]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the color buffer to a standard image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}

// SavePNG encodes the color buffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.ToImage())
}

// SaveJPEG encodes the color buffer as a JPEG file at the given quality
// (1-100).
func (fb *Framebuffer) SaveJPEG(path string, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, fb.ToImage(), &jpeg.Options{Quality: quality})
}
