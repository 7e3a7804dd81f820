package asset

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
}

func TestLoadMeshDispatchesByExtension(t *testing.T) {
	objPath := writeObj(t, triangleObj)
	m, err := LoadMesh(objPath)
	if err != nil {
		t.Fatalf("LoadMesh(%q) error = %v", objPath, err)
	}
	if m.TriangleCount() != 1 {
		t.Errorf("TriangleCount() = %d, want 1", m.TriangleCount())
	}
}

func TestLoadMeshUnsupportedExtension(t *testing.T) {
	_, err := LoadMesh(filepath.Join(t.TempDir(), "model.stl"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("LoadMesh() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadBundleLoadsMeshAndTexturesConcurrently(t *testing.T) {
	dir := t.TempDir()
	objPath := filepath.Join(dir, "mesh.obj")
	if err := os.WriteFile(objPath, []byte(triangleObj), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	texPath := filepath.Join(dir, "albedo.png")
	writePNG(t, texPath, 4, 4)

	bundle, err := LoadBundle(context.Background(), objPath, texPath)
	if err != nil {
		t.Fatalf("LoadBundle() error = %v", err)
	}
	if bundle.Mesh == nil || bundle.Mesh.TriangleCount() != 1 {
		t.Errorf("Bundle.Mesh = %v, want a 1-triangle mesh", bundle.Mesh)
	}
	tex, ok := bundle.Textures[texPath]
	if !ok || tex == nil {
		t.Fatalf("Bundle.Textures[%q] missing", texPath)
	}
	if tex.Width != 4 || tex.Height != 4 {
		t.Errorf("texture dims = (%d,%d), want (4,4)", tex.Width, tex.Height)
	}
}

func TestLoadBundlePropagatesTextureError(t *testing.T) {
	objPath := writeObj(t, triangleObj)
	_, err := LoadBundle(context.Background(), objPath, filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Fatal("LoadBundle() error = nil, want non-nil for missing texture")
	}
}
