package device

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
)

// HUD tracks and renders a frame-rate/status overlay for the terminal
// device, styled with lipgloss instead of hand-rolled ANSI escapes.
type HUD struct {
	Filename  string
	Triangles int

	fps       float64
	fpsFrames int
	fpsWindow time.Time

	lastFrameStart   time.Time
	overBudgetLogged time.Time
}

var (
	hudBadgeStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#1a1a1a")).
		Background(lipgloss.Color("#7ee787")).
		Padding(0, 1)

	hudTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#e6edf3")).
		Background(lipgloss.Color("#1a1a1a")).
		Padding(0, 1)

	hudWarnStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#1a1a1a")).
		Background(lipgloss.Color("#f0883e")).
		Padding(0, 1)
)

// NewHUD returns a HUD labeled with filename and its triangle count.
func NewHUD(filename string, triangles int) *HUD {
	return &HUD{Filename: filename, Triangles: triangles, fpsWindow: time.Now()}
}

// Tick records the start of a new frame; call it once per frame before
// rendering. It returns the frame's dt in seconds, clamped to 0.1s to avoid
// a single stall distorting the rotation/physics integration that consumes
// it.
func (h *HUD) Tick() float64 {
	now := time.Now()
	var dt float64
	if !h.lastFrameStart.IsZero() {
		dt = now.Sub(h.lastFrameStart).Seconds()
		if dt > 0.1 {
			dt = 0.1
		}
	}
	h.lastFrameStart = now

	h.fpsFrames++
	elapsed := now.Sub(h.fpsWindow)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsWindow = now
	}
	return dt
}

// FPS returns the most recently computed 1-second rolling average.
func (h *HUD) FPS() float64 { return h.fps }

// WarnIfOverBudget logs a throttled warning when a frame overran its
// pacing budget by more than 2x, matching the device layer's frame-pacing
// anomaly policy.
func (h *HUD) WarnIfOverBudget(elapsed, budget time.Duration, warn func(elapsed, budget time.Duration)) {
	if budget <= 0 || elapsed <= budget*2 {
		return
	}
	if time.Since(h.overBudgetLogged) < time.Second {
		return
	}
	h.overBudgetLogged = time.Now()
	warn(elapsed, budget)
}

// Render returns the HUD line to print above the rasterized frame.
func (h *HUD) Render() string {
	fps := hudBadgeStyle.Render(fmt.Sprintf("%.0f FPS", h.fps))
	title := hudTitleStyle.Render(h.Filename)
	polys := hudBadgeStyle.Render(fmt.Sprintf("%d tris", h.Triangles))
	return lipgloss.JoinHorizontal(lipgloss.Top, fps, " ", title, " ", polys)
}

// RenderWarning returns a styled frame-pacing warning line.
func RenderWarning(elapsed, budget time.Duration) string {
	return hudWarnStyle.Render(fmt.Sprintf("frame overran budget: %s > 2x %s", elapsed, budget))
}
