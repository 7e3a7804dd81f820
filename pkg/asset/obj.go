// Package asset loads meshes and textures from disk (OBJ, GLTF/GLB, and
// PNG/JPEG image files) into the types pkg/mesh and pkg/texture operate on.
package asset

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wrenfield/rasterforge/pkg/color"
	"github.com/wrenfield/rasterforge/pkg/math3d"
	"github.com/wrenfield/rasterforge/pkg/mesh"
)

// ErrEmptyMesh is returned when an OBJ file contains no usable triangle data.
var ErrEmptyMesh = errors.New("asset: file contains no usable vertex data")

// ObjOptions controls how LoadOBJWithOptions interprets a file's winding and
// normals.
type ObjOptions struct {
	FlipNormals bool
	FlipFaces   bool
}

// LoadOBJ loads path with default options (no flipping).
func LoadOBJ(path string) (*mesh.Mesh, error) {
	return LoadOBJWithOptions(path, ObjOptions{})
}

type objFaceVertex struct {
	posIdx, uvIdx, normalIdx int
	hasUV, hasNormal         bool
}

// LoadOBJWithOptions parses a Wavefront OBJ file at path into a Mesh. It
// understands v/vt/vn/f lines; g, usemtl, mtllib, o, and s lines are
// ignored. Quads are triangulated from their corners as (0,1,2),(0,2,3),
// and every triangle corner is stored as its own vertex, so triangles share
// no vertex indices. Faces missing a UV synthesize one from the vertex's XY
// position mapped to [0,1]. If any face vertex lacks a normal, every
// triangle's vertices get that triangle's face normal, computed after the
// mesh is built; explicit normals from the file are then replaced as well.
func LoadOBJWithOptions(path string, opts ObjOptions) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	var positions []math3d.Vec3
	var uvs []math3d.Vec2
	var normals []math3d.Vec3
	var faces [][]objFaceVertex

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("parse obj %q: %w", path, err)
			}
			positions = append(positions, p)
		case "vt":
			u, v, err := parseVec2(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("parse obj %q: %w", path, err)
			}
			uvs = append(uvs, math3d.V2(u, 1.0-v))
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("parse obj %q: %w", path, err)
			}
			normals = append(normals, n)
		case "f":
			face, err := parseFace(fields[1:], len(positions), len(uvs), len(normals))
			if err != nil {
				return nil, fmt.Errorf("parse obj %q: %w", path, err)
			}
			faces = append(faces, face)
		default:
			// g, usemtl, mtllib, o, s, and any unrecognized directive are ignored.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj %q: %w", path, err)
	}

	if len(positions) == 0 || len(faces) == 0 {
		return nil, fmt.Errorf("load obj %q: %w", path, ErrEmptyMesh)
	}

	m := buildObjMesh(positions, uvs, normals, faces, opts)
	if len(m.Vertices) == 0 {
		return nil, fmt.Errorf("load obj %q: %w", path, ErrEmptyMesh)
	}
	m.CalculateBounds()

	logAssetLoaded(path, "obj", m)
	return m, nil
}

func buildObjMesh(positions []math3d.Vec3, uvs []math3d.Vec2, normals []math3d.Vec3, faces [][]objFaceVertex, opts ObjOptions) *mesh.Mesh {
	m := mesh.New("")

	addTriangle := func(a, b, c objFaceVertex) {
		order := [3]objFaceVertex{a, b, c}
		if opts.FlipFaces {
			order = [3]objFaceVertex{a, c, b}
		}

		base := len(m.Vertices)
		for _, fv := range order {
			pos := positions[fv.posIdx]

			uv := math3d.V2((pos.X+1)*0.5, (pos.Y+1)*0.5)
			if fv.hasUV {
				uv = uvs[fv.uvIdx]
			}

			normal := math3d.V3(0, 1, 0)
			if fv.hasNormal {
				normal = normals[fv.normalIdx]
			}
			if opts.FlipNormals {
				normal = normal.Scale(-1)
			}

			m.AddVertex(mesh.Vertex{
				Pos:    math3d.V4FromV3(pos, 1),
				Color:  color.White,
				Normal: normal,
				UV:     uv,
			})
		}
		m.AddTriangle(base, base+1, base+2)
	}

	for _, face := range faces {
		switch len(face) {
		case 3:
			addTriangle(face[0], face[1], face[2])
		case 4:
			addTriangle(face[0], face[1], face[2])
			addTriangle(face[0], face[2], face[3])
		default:
			for i := 1; i+1 < len(face); i++ {
				addTriangle(face[0], face[i], face[i+1])
			}
		}
	}

	if needsComputedNormals(faces) {
		computeFaceNormals(m, opts.FlipNormals)
	}

	return m
}

func needsComputedNormals(faces [][]objFaceVertex) bool {
	for _, face := range faces {
		for _, fv := range face {
			if !fv.hasNormal {
				return true
			}
		}
	}
	return false
}

func computeFaceNormals(m *mesh.Mesh, flip bool) {
	for _, tri := range m.Triangles {
		p0 := m.Vertices[tri[0]].Pos.Vec3()
		p1 := m.Vertices[tri[1]].Pos.Vec3()
		p2 := m.Vertices[tri[2]].Pos.Vec3()
		n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
		if flip {
			n = n.Scale(-1)
		}
		m.Vertices[tri[0]].Normal = n
		m.Vertices[tri[1]].Normal = n
		m.Vertices[tri[2]].Normal = n
	}
}

func parseVec3(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return math3d.Vec3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return math3d.Vec3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return math3d.Vec3{}, err
	}
	return math3d.V3(x, y, z), nil
}

func parseVec2(fields []string) (u, v float64, err error) {
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("expected 2 components, got %d", len(fields))
	}
	u, err = strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, err
	}
	v, err = strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, err
	}
	return u, v, nil
}

func parseFace(fields []string, numPos, numUV, numNormal int) ([]objFaceVertex, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("face has fewer than 3 vertices")
	}
	face := make([]objFaceVertex, 0, len(fields))
	for _, tok := range fields {
		parts := strings.Split(tok, "/")
		fv := objFaceVertex{}

		pi, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid face vertex %q: %w", tok, err)
		}
		fv.posIdx = resolveIndex(pi, numPos)
		if fv.posIdx < 0 || fv.posIdx >= numPos {
			return nil, fmt.Errorf("face vertex index %d out of range", pi)
		}

		if len(parts) > 1 && parts[1] != "" {
			ti, err := strconv.Atoi(parts[1])
			if err != nil {
				return nil, fmt.Errorf("invalid face uv index %q: %w", tok, err)
			}
			idx := resolveIndex(ti, numUV)
			if idx >= 0 && idx < numUV {
				fv.uvIdx = idx
				fv.hasUV = true
			}
		}

		if len(parts) > 2 && parts[2] != "" {
			ni, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("invalid face normal index %q: %w", tok, err)
			}
			idx := resolveIndex(ni, numNormal)
			if idx >= 0 && idx < numNormal {
				fv.normalIdx = idx
				fv.hasNormal = true
			}
		}

		face = append(face, fv)
	}
	return face, nil
}

// resolveIndex converts a 1-based OBJ index (or a negative, relative-to-end
// index) into a 0-based slice index.
func resolveIndex(i, count int) int {
	if i < 0 {
		return count + i
	}
	return i - 1
}
