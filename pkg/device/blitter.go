// Package device hosts the host-facing surfaces that sit outside the
// rasterizer core: the terminal blitter, frame pacing, and the HUD overlay.
package device

// Blitter is the narrow surface a presentation target must satisfy to
// receive a finished frame. rgba is a top-to-bottom, 4-bytes-per-pixel
// RGBA8 buffer of width*height*4 bytes; implementations must not retain it
// past the call, since the caller reuses its backing framebuffer.
//
// This mirrors framebuffer.Blitter exactly: pkg/raster and pkg/framebuffer
// never import this package, so any presentation target (this terminal
// renderer, a PNG-sequence writer, a future GUI backend) can satisfy
// framebuffer.Manager.Present without the rasterizer core depending on it.
type Blitter interface {
	Blit(width, height int, rgba []byte) error
}
