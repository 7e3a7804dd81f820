package device

import (
	"context"
	"fmt"
	stdcolor "image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Terminal blits a framebuffer to the real terminal using the half-block
// trick: each terminal cell's foreground/background color carries two
// vertically-stacked pixels, so the addressable framebuffer is twice as
// tall as the terminal in rows.
type Terminal struct {
	term *uv.Terminal
	cols int
	rows int
}

// NewTerminal starts raw-mode, alt-screen terminal I/O and returns a
// Terminal sized to the current window.
func NewTerminal() (*Terminal, error) {
	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return nil, fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return nil, fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	return &Terminal{term: term, cols: cols, rows: rows}, nil
}

// Close restores the terminal to its original state.
func (t *Terminal) Close(ctx context.Context) error {
	t.term.ExitAltScreen()
	t.term.ShowCursor()
	return t.term.Shutdown(ctx)
}

// Resize updates the terminal's addressable size after a resize event.
func (t *Terminal) Resize(cols, rows int) {
	t.cols, t.rows = cols, rows
	t.term.Erase()
	t.term.Resize(cols, rows)
}

// FramebufferSize returns the pixel dimensions a Scene should render at to
// exactly fill this terminal: one column per pixel, two rows per cell.
func (t *Terminal) FramebufferSize() (width, height int) {
	return t.cols, t.rows * 2
}

// Events exposes the terminal's input event stream (key presses, mouse
// motion, window resizes) for a caller's event loop.
func (t *Terminal) Events() <-chan uv.Event {
	return t.term.Events()
}

// Blit implements framebuffer.Blitter (and device.Blitter). rgba must be a
// top-to-bottom RGBA8 buffer of width*height*4 bytes; height should be
// 2*t.rows, matching FramebufferSize.
func (t *Terminal) Blit(width, height int, rgba []byte) error {
	rows := height / 2
	for row := 0; row < rows && row < t.rows; row++ {
		topY := row * 2
		botY := topY + 1
		for col := 0; col < width && col < t.cols; col++ {
			top := pixelAt(rgba, width, col, topY)
			bot := pixelAt(rgba, width, col, botY)
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: colorOrNil(top),
					Bg: colorOrNil(bot),
				},
			}
			t.term.SetCell(col, row, cell)
		}
	}
	return t.term.Flush()
}

func pixelAt(rgba []byte, width, x, y int) stdcolor.RGBA {
	i := (y*width + x) * 4
	return stdcolor.RGBA{R: rgba[i], G: rgba[i+1], B: rgba[i+2], A: rgba[i+3]}
}

// colorOrNil treats fully transparent pixels as "no color" so the terminal's
// own background shows through, matching the grounding repository's
// rgbaToColor.
func colorOrNil(c stdcolor.RGBA) stdcolor.Color {
	if c.A == 0 {
		return nil
	}
	return c
}
