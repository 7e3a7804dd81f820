package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/wrenfield/rasterforge/pkg/asset"
	"github.com/wrenfield/rasterforge/pkg/color"
	"github.com/wrenfield/rasterforge/pkg/device"
	"github.com/wrenfield/rasterforge/pkg/framebuffer"
	"github.com/wrenfield/rasterforge/pkg/math3d"
	"github.com/wrenfield/rasterforge/pkg/mesh"
	"github.com/wrenfield/rasterforge/pkg/scene"
	"github.com/wrenfield/rasterforge/pkg/shader"
	"github.com/wrenfield/rasterforge/pkg/texture"
)

func newRenderCommand() *cobra.Command {
	var (
		texturePath string
		targetFPS   int
		bg          string
		wireframe   bool
	)

	cmd := &cobra.Command{
		Use:   "render <model.obj|model.gltf|model.glb>",
		Short: "Render a mesh live in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bgColor, err := parseBackground(bg)
			if err != nil {
				return err
			}
			return runRender(args[0], renderOptions{
				texturePath: texturePath,
				targetFPS:   targetFPS,
				background:  bgColor,
				wireframe:   wireframe,
			})
		},
	}
	cmd.Flags().StringVar(&texturePath, "texture", "", "path to a texture image (PNG/JPEG); defaults to a checkerboard")
	cmd.Flags().IntVar(&targetFPS, "fps", 60, "target frame rate")
	cmd.Flags().StringVar(&bg, "bg", "30,30,40", "background color as R,G,B (0-255)")
	cmd.Flags().BoolVar(&wireframe, "wireframe", false, "draw the mesh as a wireframe instead of filled")
	return cmd
}

func parseBackground(s string) (color.Color, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil {
		return color.Color{}, fmt.Errorf("parse --bg %q (want R,G,B): %w", s, err)
	}
	return color.FromBytes(r, g, b, 255), nil
}

type renderOptions struct {
	texturePath string
	targetFPS   int
	background  color.Color
	wireframe   bool
}

// axisSpring holds a rotation axis's position/velocity, decaying the
// velocity toward zero with a critically-damped spring rather than a flat
// multiplier, matching the grounding repository's RotationState.
type axisSpring struct {
	position, velocity float64
	spring             harmonica.Spring
	accel              float64
}

func newAxisSpring(fps int) axisSpring {
	return axisSpring{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

func (a *axisSpring) update() {
	a.position += a.velocity
	a.velocity, a.accel = a.spring.Update(a.velocity, a.accel, 0)
}

type orbitState struct {
	pitch, yaw, roll axisSpring
}

func newOrbitState(fps int) orbitState {
	return orbitState{pitch: newAxisSpring(fps), yaw: newAxisSpring(fps), roll: newAxisSpring(fps)}
}

func (o *orbitState) update() {
	o.pitch.update()
	o.yaw.update()
	o.roll.update()
}

func (o *orbitState) impulse(pitch, yaw, roll float64) {
	o.pitch.velocity += pitch
	o.yaw.velocity += yaw
	o.roll.velocity += roll
}

func runRender(modelPath string, opts renderOptions) error {
	term, err := device.NewTerminal()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	fbWidth, fbHeight := term.FramebufferSize()

	mgr := framebuffer.NewManager(opts.background)
	mgr.Init(fbWidth, fbHeight)

	cam := scene.NewCamera()
	cam.SetAspectRatio(float64(fbWidth) / float64(fbHeight))
	cam.SetFOV(math.Pi / 3)
	cam.SetClipPlanes(0.1, 100)
	cam.SetPosition(math3d.V3(0, 0, 5))
	cam.LookAt(math3d.Zero3())

	m, err := asset.LoadMesh(modelPath)
	if err != nil {
		term.Close(context.Background())
		return fmt.Errorf("load model: %w", err)
	}

	var tex *texture.Texture
	if opts.texturePath != "" {
		tex, err = texture.Load(opts.texturePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not load texture: %v\n", err)
		}
	}
	if tex == nil {
		tex = texture.NewChecker(64, 64, 8, color.RGB(0.78, 0.78, 0.78), color.RGB(0.39, 0.39, 0.39))
	}

	light := shader.NewPointLight(math3d.V3(2, 3, 4))
	litShader := shader.TexturedBlinnPhong{Texture: tex, Light: light, ViewPos: cam.Position, Shininess: 32}

	transformer := centeringTransformer(m)

	sc := scene.NewScene(cam, mgr)
	sc.Objects = append(sc.Objects, scene.Object{
		Mesh:        m,
		Transformer: transformer,
		Shader:      litShader,
		Bounds:      scene.AABB{Min: m.BoundsMin, Max: m.BoundsMax},
		Wireframe:   opts.wireframe,
		WireColor:   color.RGB(0, 1, 0.5),
	})

	hud := device.NewHUD(filepath.Base(modelPath), m.TriangleCount())
	tb := device.NewTimebase(opts.targetFPS)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	orbit := newOrbitState(opts.targetFPS)
	var inputPitch, inputYaw, inputRoll float64
	const torque = 3.0
	var mouseDown bool
	var lastMouseX, lastMouseY int

	go handleEvents(term, sc, &orbit, &inputPitch, &inputYaw, &inputRoll, &mouseDown, &lastMouseX, &lastMouseY, torque, cancel)

	defer term.Close(context.Background())

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frameStart := time.Now()
		dt := hud.Tick()

		orbit.impulse(inputPitch*dt, inputYaw*dt, inputRoll*dt)
		inputPitch *= 0.9
		inputYaw *= 0.9
		inputRoll *= 0.9
		orbit.update()

		sc.Objects[0].Transformer.RotationDeg = math3d.V3(
			orbit.pitch.position*180/math.Pi,
			orbit.yaw.position*180/math.Pi,
			orbit.roll.position*180/math.Pi,
		)

		if err := sc.RenderFrame(term); err != nil {
			return fmt.Errorf("render frame: %w", err)
		}

		elapsed := tb.EndFrame(frameStart)
		hud.WarnIfOverBudget(elapsed, tb.Budget(), func(elapsed, budget time.Duration) {
			logger.Warn("frame overran pacing budget", "elapsed", elapsed, "budget", budget)
		})
	}
}

// centeringTransformer returns a Transformer that centers m on the origin
// and scales its largest dimension to 2 world units, the same normalization
// the grounding repository applies before orbiting a loaded model.
func centeringTransformer(m *mesh.Mesh) mesh.Transformer {
	t := mesh.NewTransformer()
	size := m.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	scale := 1.0
	if maxDim > 0 {
		scale = 2.0 / maxDim
	}
	t.Scale = math3d.V3(scale, scale, scale)
	t.Position = m.Center().Scale(-scale)
	return t
}

// snapshotFrame writes the most recently presented frame to a PNG file in
// the working directory, named by a monotonically increasing counter rather
// than a wall-clock timestamp so repeated snapshots in one run never collide.
var snapshotCount int

func snapshotFrame(sc *scene.Scene) {
	front := sc.Manager.Front()
	if front == nil {
		return
	}
	snapshotCount++
	name := fmt.Sprintf("rasterforge-snapshot-%03d.png", snapshotCount)
	if err := front.SavePNG(name); err != nil {
		logger.Warn("snapshot failed", "file", name, "error", err)
		return
	}
	logger.Info("wrote snapshot", "file", name)
}

func handleEvents(term *device.Terminal, sc *scene.Scene, orbit *orbitState, inputPitch, inputYaw, inputRoll *float64, mouseDown *bool, lastMouseX, lastMouseY *int, torque float64, cancel context.CancelFunc) {
	for ev := range term.Events() {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			term.Resize(ev.Width, ev.Height)
			w, h := term.FramebufferSize()
			sc.Manager.Teardown()
			sc.Manager.Init(w, h)
			sc.Camera.SetAspectRatio(float64(w) / float64(h))

		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
				cancel()
				return
			case ev.MatchString("q"):
				*inputRoll = -torque
			case ev.MatchString("e"):
				*inputRoll = torque
			case ev.MatchString("w"), ev.MatchString("up"):
				*inputPitch = -torque
			case ev.MatchString("s"), ev.MatchString("down"):
				*inputPitch = torque
			case ev.MatchString("a"), ev.MatchString("left"):
				*inputYaw = -torque
			case ev.MatchString("d"), ev.MatchString("right"):
				*inputYaw = torque
			case ev.MatchString("space"):
				orbit.impulse((rand.Float64()-0.5)*1.5, (rand.Float64()-0.5)*1.5, (rand.Float64()-0.5)*1.5)
			case ev.MatchString("x"):
				sc.Objects[0].Wireframe = !sc.Objects[0].Wireframe
			case ev.MatchString("p"):
				snapshotFrame(sc)
			}

		case uv.KeyReleaseEvent:
			switch {
			case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
				*inputPitch = 0
			case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
				*inputYaw = 0
			case ev.MatchString("q"), ev.MatchString("e"):
				*inputRoll = 0
			}

		case uv.MouseClickEvent:
			*mouseDown = true
			*lastMouseX, *lastMouseY = ev.X, ev.Y

		case uv.MouseReleaseEvent:
			*mouseDown = false

		case uv.MouseMotionEvent:
			if *mouseDown {
				dx := ev.X - *lastMouseX
				dy := ev.Y - *lastMouseY
				orbit.impulse(float64(dy)*0.03, float64(dx)*0.03, 0)
				*lastMouseX, *lastMouseY = ev.X, ev.Y
			}

		case uv.MouseWheelEvent:
			delta := math3d.V3(0, 0, 0)
			switch ev.Button {
			case uv.MouseWheelUp:
				delta = math3d.V3(0, 0, -0.5)
			case uv.MouseWheelDown:
				delta = math3d.V3(0, 0, 0.5)
			}
			sc.Camera.SetPosition(sc.Camera.Position.Add(delta))
		}
	}
}
