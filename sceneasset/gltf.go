package sceneasset

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"pathforge/geom"
	"pathforge/rmath"
)

// MeshLoader turns a mesh asset path into the flat Triangle list a
// YAML scene entry references, letting LoadYAML stay agnostic of the
// mesh file format.
type MeshLoader interface {
	LoadTriangles(path string, materialID int, objectUID uint32) ([]geom.Triangle, error)
}

// GLTFLoader implements MeshLoader against .gltf/.glb files, trimmed
// from the teacher's scene/gltf_loader.go down to geometry-only
// import: node hierarchy, PBR materials, and texture upload are all
// dropped since the scene's materials come from the YAML file and its
// albedo textures from the texture package's own atlas/procedural
// registries, not from glTF image payloads.
type GLTFLoader struct{}

func (GLTFLoader) LoadTriangles(path string, materialID int, objectUID uint32) ([]geom.Triangle, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	var triangles []geom.Triangle
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			tris, err := loadPrimitiveTriangles(doc, *prim, materialID, objectUID)
			if err != nil {
				return nil, fmt.Errorf("gltf %q mesh %d prim %d: %w", path, mi, pi, err)
			}
			triangles = append(triangles, tris...)
		}
	}
	return triangles, nil
}

func loadPrimitiveTriangles(doc *gltf.Document, prim gltf.Primitive, materialID int, objectUID uint32) ([]geom.Triangle, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}

	verts := make([]rmath.Vec3, len(positions))
	vertNormals := make([]rmath.Vec3, len(positions))
	for i, p := range positions {
		verts[i] = rmath.Vec3{X: p[0], Y: p[1], Z: p[2]}
		if i < len(normals) {
			n := normals[i]
			vertNormals[i] = rmath.Vec3{X: n[0], Y: n[1], Z: n[2]}
		} else {
			vertNormals[i] = rmath.Vec3Up
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(verts))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	triangles := make([]geom.Triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if int(a) >= len(verts) || int(b) >= len(verts) || int(c) >= len(verts) {
			continue
		}
		triangles = append(triangles, geom.Triangle{
			A: verts[a], B: verts[b], C: verts[c],
			NA: vertNormals[a], NB: vertNormals[b], NC: vertNormals[c],
			MaterialID: materialID,
			ObjectUID:  objectUID,
		})
	}
	return triangles, nil
}
