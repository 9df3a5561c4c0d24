package models

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/swr/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	CalculateNormals bool // generate normals when the file has none
	SmoothNormals    bool // average generated normals per vertex
	LoadTextures     bool // decode base color images into Material.BaseMap
}

// NewGLTFLoader creates a loader that generates smooth normals when needed
// and leaves textures undecoded.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		SmoothNormals:    true,
	}
}

// LoadGLB loads a binary GLTF (.glb) file.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load reads a GLTF or GLB file into a single Mesh. Every triangle
// primitive of every mesh in the document is appended; node transforms are
// ignored.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.fromDocument(doc, path)
}

func (l *GLTFLoader) fromDocument(doc *gltf.Document, path string) (*Mesh, error) {
	mesh := NewMesh(filepath.Base(path))
	mesh.Materials = l.readMaterials(doc, filepath.Dir(path))

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if l.CalculateNormals && !mesh.HasNormals() {
		if l.SmoothNormals {
			mesh.CalculateSmoothNormals()
		} else {
			mesh.CalculateNormals()
		}
	}

	mesh.CalculateBounds()
	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mesh: %w", err)
	}
	return mesh, nil
}

// processMesh appends the triangle primitives of m to mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Lines and points have nothing to fill.
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals [][3]float32
		if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
			if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var uvs [][2]float32
		if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		material := -1
		if prim.Material != nil {
			material = *prim.Material
		}

		base := len(mesh.Vertices)
		for i, p := range positions {
			v := MeshVertex{Position: vec3(p)}
			if i < len(normals) {
				v.Normal = vec3(normals[i])
			}
			if i < len(uvs) {
				// glTF puts v = 0 at the top of the image; textures here
				// sample v = 0 at the bottom.
				v.UV = math3d.V2(float64(uvs[i][0]), 1-float64(uvs[i][1]))
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		var indices []uint32
		if prim.Indices != nil {
			if indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		// glTF front faces wind counter-clockwise, the same as the
		// rasterizer expects, so indices are taken in order.
		for i := 0; i+2 < len(indices); i += 3 {
			mesh.Faces = append(mesh.Faces, Face{
				V: [3]int{
					base + int(indices[i]),
					base + int(indices[i+1]),
					base + int(indices[i+2]),
				},
				Material: material,
			})
		}
	}
	return nil
}

func vec3(v [3]float32) math3d.Vec3 {
	return math3d.V3(float64(v[0]), float64(v[1]), float64(v[2]))
}

// readMaterials converts the document's PBR materials. Base color images
// are decoded only when LoadTextures is set; an image that fails to decode
// leaves the material untextured.
func (l *GLTFLoader) readMaterials(doc *gltf.Document, dir string) []Material {
	out := make([]Material, len(doc.Materials))
	for i, m := range doc.Materials {
		mat := DefaultMaterial
		mat.Name = m.Name

		pbr := m.PBRMetallicRoughness
		if pbr == nil {
			out[i] = mat
			continue
		}
		mat.BaseColor = pbr.BaseColorFactorOrDefault()
		mat.Metallic = pbr.MetallicFactorOrDefault()
		mat.Roughness = pbr.RoughnessFactorOrDefault()

		if l.LoadTextures && pbr.BaseColorTexture != nil {
			if img := textureImage(doc, dir, pbr.BaseColorTexture.Index); img != nil {
				mat.BaseMap = img
				mat.HasTexture = true
			}
		}
		out[i] = mat
	}
	return out
}

// textureImage decodes the image behind texture index ti, or returns nil.
func textureImage(doc *gltf.Document, dir string, ti int) image.Image {
	if ti < 0 || ti >= len(doc.Textures) || doc.Textures[ti].Source == nil {
		return nil
	}
	src := *doc.Textures[ti].Source
	if src < 0 || src >= len(doc.Images) {
		return nil
	}
	data := imageData(doc, dir, doc.Images[src])
	if len(data) == 0 {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return img
}

// imageData returns the encoded bytes of img, whether embedded in a buffer
// view or stored next to the document.
func imageData(doc *gltf.Document, dir string, img *gltf.Image) []byte {
	if img.BufferView != nil {
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer]
		end := bv.ByteOffset + bv.ByteLength
		if end > len(buf.Data) {
			return nil
		}
		return buf.Data[bv.ByteOffset:end]
	}
	if img.URI == "" || img.IsEmbeddedResource() {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(dir, img.URI))
	if err != nil {
		return nil
	}
	return data
}

// LoadGLTFWithTextures loads a GLTF file and the encoded bytes of every
// image it references, keyed by image index.
func LoadGLTFWithTextures(path string) (*Mesh, map[int][]byte, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := NewGLTFLoader().fromDocument(doc, path)
	if err != nil {
		return nil, nil, err
	}

	dir := filepath.Dir(path)
	textures := make(map[int][]byte)
	for i, img := range doc.Images {
		if data := imageData(doc, dir, img); len(data) > 0 {
			textures[i] = data
		}
	}
	return mesh, textures, nil
}

// LoadGLBWithTexture loads a GLB file and decodes its first usable
// texture. The image is nil when the file embeds none.
func LoadGLBWithTexture(path string) (*Mesh, image.Image, error) {
	l := NewGLTFLoader()
	l.LoadTextures = true
	mesh, err := l.Load(path)
	if err != nil {
		return nil, nil, err
	}

	for _, mat := range mesh.Materials {
		if mat.HasTexture {
			return mesh, mat.BaseMap, nil
		}
	}
	return mesh, nil, nil
}
