package asset

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/wrenfield/rasterforge/pkg/mesh"
	"github.com/wrenfield/rasterforge/pkg/texture"
)

// ErrUnsupportedFormat is returned when a mesh path's extension is neither
// .obj nor .gltf/.glb.
var ErrUnsupportedFormat = unsupportedFormatErr{}

type unsupportedFormatErr struct{}

func (unsupportedFormatErr) Error() string { return "asset: unsupported mesh format" }

// LoadMesh dispatches to LoadOBJ or LoadGLTF based on meshPath's extension.
func LoadMesh(meshPath string) (*mesh.Mesh, error) {
	switch strings.ToLower(filepath.Ext(meshPath)) {
	case ".obj":
		return LoadOBJ(meshPath)
	case ".gltf", ".glb":
		return LoadGLTF(meshPath)
	default:
		return nil, fmt.Errorf("load mesh %q: %w", meshPath, ErrUnsupportedFormat)
	}
}

// Bundle is the result of loading a mesh and its associated textures
// together.
type Bundle struct {
	Mesh     *mesh.Mesh
	Textures map[string]*texture.Texture
}

// LoadBundle loads meshPath and every path in texturePaths concurrently,
// fanning the I/O out with an errgroup and returning the first error
// encountered. Textures are keyed by the path they were loaded from.
func LoadBundle(ctx context.Context, meshPath string, texturePaths ...string) (*Bundle, error) {
	bundle := &Bundle{Textures: make(map[string]*texture.Texture, len(texturePaths))}

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		m, err := LoadMesh(meshPath)
		if err != nil {
			return err
		}
		bundle.Mesh = m
		return nil
	})

	results := make([]*texture.Texture, len(texturePaths))
	for i, p := range texturePaths {
		i, p := i, p
		g.Go(func() error {
			tex, err := texture.Load(p)
			if err != nil {
				return fmt.Errorf("load texture %q: %w", p, err)
			}
			results[i] = tex
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, p := range texturePaths {
		bundle.Textures[p] = results[i]
	}
	return bundle, nil
}

func logAssetLoaded(path, format string, m *mesh.Mesh) {
	slog.Info("asset loaded", "path", path, "format", format, "vertices", m.VertexCount(), "triangles", m.TriangleCount())
}
