package framebuffer

import (
	"errors"

	"github.com/wrenfield/rasterforge/pkg/color"
)

// ErrFramebufferNotAcquired is returned when Swap is called before a back
// buffer has been acquired for the current frame. Present does not check.
var ErrFramebufferNotAcquired = errors.New("framebuffer: back buffer not acquired")

// Blitter copies a top-down RGBA8 buffer to a platform surface.
type Blitter interface {
	Blit(width, height int, rgba []byte) error
}

// Manager owns the front/back framebuffer pair across a process lifetime,
// with explicit Init/Teardown bracketing so resources aren't tied to a
// package-level singleton.
type Manager struct {
	front, back *Framebuffer
	width       int
	height      int

	Background color.Color

	acquired bool
}

// NewManager constructs a Manager; call Init before the first frame.
func NewManager(background color.Color) *Manager {
	return &Manager{Background: background}
}

// Init allocates both framebuffers at (width, height).
func (m *Manager) Init(width, height int) {
	m.width, m.height = width, height
	m.front = New(width, height)
	m.back = New(width, height)
	m.acquired = false
}

// Teardown releases both framebuffers. Calling Init again reallocates them.
func (m *Manager) Teardown() {
	m.front = nil
	m.back = nil
	m.acquired = false
}

// AcquireBack zeros the back buffer to (Background, depth=1.0) and returns
// it for the rasterizer to draw into this frame.
func (m *Manager) AcquireBack() *Framebuffer {
	m.back.Clear(m.Background, 1.0)
	m.acquired = true
	return m.back
}

// Swap exchanges the front and back buffer identities. Both (color, depth)
// pairs and the (width, height) pair move together, keeping each
// framebuffer internally consistent.
func (m *Manager) Swap() error {
	if !m.acquired {
		return ErrFramebufferNotAcquired
	}
	m.front, m.back = m.back, m.front
	m.acquired = false
	return nil
}

// Present blits the front color buffer to the given device.
func (m *Manager) Present(dev Blitter) error {
	return dev.Blit(m.front.Width, m.front.Height, m.front.Color)
}

// Front returns the current front framebuffer, for callers (tests, PNG
// export) that need read access outside the draw/swap/present cycle.
func (m *Manager) Front() *Framebuffer { return m.front }
