package main

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/wrenfield/rasterforge/pkg/asset"
	"github.com/wrenfield/rasterforge/pkg/color"
	"github.com/wrenfield/rasterforge/pkg/framebuffer"
	"github.com/wrenfield/rasterforge/pkg/math3d"
	"github.com/wrenfield/rasterforge/pkg/scene"
	"github.com/wrenfield/rasterforge/pkg/shader"
)

// nullBlitter discards frames; bench measures rasterization throughput
// without terminal I/O in the loop.
type nullBlitter struct{}

func (nullBlitter) Blit(width, height int, rgba []byte) error { return nil }

func newBenchCommand() *cobra.Command {
	var (
		width, height int
		frames        int
		snapshot      string
	)

	cmd := &cobra.Command{
		Use:   "bench <model.obj|model.gltf|model.glb>",
		Short: "Render a fixed number of frames with no display and report throughput",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(args[0], width, height, frames, snapshot)
		},
	}
	cmd.Flags().IntVar(&width, "width", 640, "framebuffer width in pixels")
	cmd.Flags().IntVar(&height, "height", 480, "framebuffer height in pixels")
	cmd.Flags().IntVar(&frames, "frames", 300, "number of frames to render")
	cmd.Flags().StringVar(&snapshot, "snapshot", "", "write the final rendered frame to this PNG path")
	return cmd
}

func runBench(modelPath string, width, height, frames int, snapshot string) error {
	m, err := asset.LoadMesh(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	mgr := framebuffer.NewManager(color.RGB(0.1, 0.1, 0.15))
	mgr.Init(width, height)

	cam := scene.NewCamera()
	cam.SetAspectRatio(float64(width) / float64(height))
	cam.SetFOV(math.Pi / 3)
	cam.SetClipPlanes(0.1, 100)
	cam.SetPosition(math3d.V3(0, 0, 5))
	cam.LookAt(math3d.Zero3())

	transformer := centeringTransformer(m)

	sc := scene.NewScene(cam, mgr)
	sc.Objects = append(sc.Objects, scene.Object{
		Mesh:        m,
		Transformer: transformer,
		Shader:      shader.Gouraud{Light: shader.NewPointLight(math3d.V3(2, 3, 4)), ViewPos: cam.Position, Shininess: 32},
		Bounds:      scene.AABB{Min: m.BoundsMin, Max: m.BoundsMax},
	})

	dev := nullBlitter{}

	start := time.Now()
	for i := 0; i < frames; i++ {
		sc.Objects[0].Transformer.RotationDeg.Y = float64(i) * 2
		if err := sc.RenderFrame(dev); err != nil {
			return fmt.Errorf("render frame %d: %w", i, err)
		}
	}
	elapsed := time.Since(start)

	if snapshot != "" {
		if err := sc.Manager.Front().SavePNG(snapshot); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}

	fmt.Printf("%s: %d triangles, %dx%d, %d frames in %s (%.1f fps, %.3f ms/frame)\n",
		modelPath, m.TriangleCount(), width, height, frames, elapsed,
		float64(frames)/elapsed.Seconds(),
		elapsed.Seconds()*1000/float64(frames),
	)
	return nil
}
