package asset

import (
	"fmt"
	"path/filepath"
	"unsafe"

	"github.com/qmuntal/gltf"

	"github.com/wrenfield/rasterforge/pkg/color"
	"github.com/wrenfield/rasterforge/pkg/math3d"
	"github.com/wrenfield/rasterforge/pkg/mesh"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	SmoothNormals bool
}

// NewGLTFLoader creates a loader that fills in missing normals by smoothing.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{SmoothNormals: true}
}

// LoadGLTF loads a GLTF or GLB file and returns a Mesh.
func LoadGLTF(path string) (*mesh.Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*mesh.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf %q: %w", path, err)
	}

	m := mesh.New(filepath.Base(path))

	for _, gm := range doc.Meshes {
		if err := l.processMesh(doc, gm, m); err != nil {
			return nil, fmt.Errorf("process mesh %q in %q: %w", gm.Name, path, err)
		}
	}
	if m.VertexCount() == 0 || m.TriangleCount() == 0 {
		return nil, fmt.Errorf("load gltf %q: %w", path, ErrEmptyMesh)
	}

	hasNormals := false
	for _, v := range m.Vertices {
		if v.Normal.Len() > 0.001 {
			hasNormals = true
			break
		}
	}
	if !hasNormals {
		m.CalculateSmoothNormals()
	}

	m.CalculateBounds()
	logAssetLoaded(path, "gltf", m)
	return m, nil
}

func (l *GLTFLoader) processMesh(doc *gltf.Document, gm *gltf.Mesh, m *mesh.Mesh) error {
	for _, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals []math3d.Vec3
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = readVec3Accessor(doc, normIdx)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var uvs []math3d.Vec2
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = readVec2Accessor(doc, uvIdx)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		baseVertex := len(m.Vertices)
		for i, pos := range positions {
			v := mesh.Vertex{
				Pos:   math3d.V4FromV3(pos, 1),
				Color: color.White,
			}
			if i < len(normals) {
				v.Normal = normals[i]
			}
			if i < len(uvs) {
				v.UV = math3d.V2(uvs[i].X, 1.0-uvs[i].Y)
			}
			m.AddVertex(v)
		}

		if prim.Indices != nil {
			indices, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				// GLTF winds front faces CCW; this rasterizer's default
				// convention treats CCW as front too, so no swap is needed.
				m.AddTriangle(baseVertex+indices[i], baseVertex+indices[i+1], baseVertex+indices[i+2])
			}
		} else {
			for i := 0; i+2 < len(positions); i += 3 {
				m.AddTriangle(baseVertex+i, baseVertex+i+1, baseVertex+i+2)
			}
		}
	}
	return nil
}

func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	floats, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC3")
	}
	result := make([]math3d.Vec3, len(floats))
	for i, f := range floats {
		result[i] = math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
	}
	return result, nil
}

func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 {
		return nil, fmt.Errorf("expected VEC2, got %v", accessor.Type)
	}
	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	floats, ok := data.([][2]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC2")
	}
	result := make([]math3d.Vec2, len(floats))
	for i, f := range floats {
		result[i] = math3d.V2(float64(f[0]), float64(f[1]))
	}
	return result, nil
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	switch v := data.(type) {
	case []uint8:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	case []uint16:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	case []uint32:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unexpected index type: %T", data)
	}
}

func readAccessorData(doc *gltf.Document, accessor *gltf.Accessor) (any, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	var bufData []byte
	if buffer.URI == "" {
		bufData = buffer.Data
	} else {
		return nil, fmt.Errorf("external buffers not supported")
	}
	if bufData == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	count := accessor.Count

	switch accessor.Type {
	case gltf.AccessorVec3:
		if stride == 0 {
			stride = 12
		}
		result := make([][3]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 3 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case gltf.AccessorVec2:
		if stride == 0 {
			stride = 8
		}
		result := make([][2]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 2 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case gltf.AccessorScalar:
		if stride == 0 {
			switch accessor.ComponentType {
			case gltf.ComponentUbyte:
				stride = 1
			case gltf.ComponentUshort:
				stride = 2
			case gltf.ComponentUint:
				stride = 4
			}
		}
		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			result := make([]uint8, count)
			for i := range count {
				result[i] = bufData[start+i*stride]
			}
			return result, nil
		case gltf.ComponentUshort:
			result := make([]uint16, count)
			for i := range count {
				offset := start + i*stride
				result[i] = uint16(bufData[offset]) | uint16(bufData[offset+1])<<8
			}
			return result, nil
		case gltf.ComponentUint:
			result := make([]uint32, count)
			for i := range count {
				offset := start + i*stride
				result[i] = uint32(bufData[offset]) |
					uint32(bufData[offset+1])<<8 |
					uint32(bufData[offset+2])<<16 |
					uint32(bufData[offset+3])<<24
			}
			return result, nil
		}
	}

	return nil, fmt.Errorf("unsupported accessor type: %v / %v", accessor.Type, accessor.ComponentType)
}

func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return float32frombits(bits)
}

func float32frombits(b uint32) float32 {
	return *(*float32)(unsafe.Pointer(&b))
}
