// Package sceneasset loads the host-side scene description that
// feeds the core's read-only geometry/material/BVH/atlas group: a
// YAML scene file naming parallelograms, SDF instances, and materials,
// plus optional glTF meshes for triangle geometry.
//
// Grounded on other_examples' gazed-vu/load/shd.go: yaml.Unmarshal
// into a flat config struct, then a validating translation pass from
// string-keyed fields into the engine's internal enums/types, with
// %w-wrapped errors naming the offending field.
package sceneasset

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"pathforge/bvh"
	"pathforge/geom"
	"pathforge/material"
	"pathforge/rmath"
)

type sceneFile struct {
	Background [3]float32      `yaml:"background"`
	Materials  []materialEntry `yaml:"materials"`
	Quads      []quadEntry     `yaml:"quads"`
	SDFs       []sdfEntry      `yaml:"sdfs"`
	Meshes     []meshEntry     `yaml:"meshes"`
}

type materialEntry struct {
	Albedo           [3]float32 `yaml:"albedo"`
	Specular         [3]float32 `yaml:"specular"`
	Emission         [3]float32 `yaml:"emission"`
	SpecularStrength float32    `yaml:"specular_strength"`
	Roughness        float32    `yaml:"roughness"`
	RefractiveIndex  float32    `yaml:"refractive_index"`
	AlbedoTextureUID int32      `yaml:"albedo_texture_uid"`
	Class            string     `yaml:"class"`
}

type quadEntry struct {
	Q         [3]float32 `yaml:"q"`
	U         [3]float32 `yaml:"u"`
	V         [3]float32 `yaml:"v"`
	Material  int        `yaml:"material"`
	ObjectUID uint32     `yaml:"object_uid"`
	IsLight   bool       `yaml:"is_light"`
}

type sdfEntry struct {
	Location      [3]float32 `yaml:"location"`
	RotationAxis  [3]float32 `yaml:"rotation_axis"`
	RotationAngle float32    `yaml:"rotation_angle_degrees"`
	Scale         float32    `yaml:"scale"`
	StepScale     float32    `yaml:"step_scale"`
	ClassIndex    int        `yaml:"class_index"`
	Material      int        `yaml:"material"`
	ObjectUID     uint32     `yaml:"object_uid"`
	Time          float32    `yaml:"time"`
}

type meshEntry struct {
	Path      string `yaml:"path"`
	Material  int    `yaml:"material"`
	ObjectUID uint32 `yaml:"object_uid"`
}

var materialClassByName = map[string]material.Class{
	"lambertian": material.Lambertian,
	"mirror":     material.Mirror,
	"glass":      material.Glass,
	"isotropic":  material.Isotropic,
}

// Scene is the decoded, engine-ready result of loading a scene file:
// a flat material table, the list of light-emitting quads, and the
// built BVH over everything else.
type Scene struct {
	Background rmath.Vec3
	Materials  material.Table
	Lights     []geom.Parallelogram
	Tree       *bvh.Tree
}

// LoadYAML parses and translates a scene description, building the
// BVH over its triangle/SDF geometry (the quads are not BVH members —
// spec.md's BVH only carries Triangle and SDF leaf types, so
// parallelograms are tested directly by the caller per spec.md §4.3's
// separate parallelogram path).
func LoadYAML(data []byte, meshLoader MeshLoader) (Scene, []geom.Parallelogram, error) {
	var sf sceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return Scene{}, nil, fmt.Errorf("sceneasset: yaml: %w", err)
	}

	materials := make(material.Table, 0, len(sf.Materials))
	for i, m := range sf.Materials {
		class, ok := materialClassByName[m.Class]
		if !ok {
			return Scene{}, nil, fmt.Errorf("sceneasset: material %d: unsupported class %q", i, m.Class)
		}
		materials = append(materials, material.Material{
			Albedo:           vec(m.Albedo),
			Specular:         vec(m.Specular),
			Emission:         vec(m.Emission),
			SpecularStrength: m.SpecularStrength,
			Roughness:        m.Roughness,
			RefractiveIndex:  m.RefractiveIndex,
			AlbedoTextureUID: m.AlbedoTextureUID,
			MaterialClass:    class,
		})
	}

	quads := make([]geom.Parallelogram, 0, len(sf.Quads))
	var lights []geom.Parallelogram
	for i, q := range sf.Quads {
		if q.Material < 0 || q.Material >= len(materials) {
			return Scene{}, nil, fmt.Errorf("sceneasset: quad %d: material index %d out of range", i, q.Material)
		}
		pg := geom.NewParallelogram(vec(q.Q), vec(q.U), vec(q.V), q.Material, q.ObjectUID)
		quads = append(quads, pg)
		if q.IsLight {
			lights = append(lights, pg)
		}
	}

	var triangles []geom.Triangle
	for i, me := range sf.Meshes {
		if meshLoader == nil {
			return Scene{}, nil, fmt.Errorf("sceneasset: mesh %d: no MeshLoader configured for %q", i, me.Path)
		}
		tris, err := meshLoader.LoadTriangles(me.Path, me.Material, me.ObjectUID)
		if err != nil {
			return Scene{}, nil, fmt.Errorf("sceneasset: mesh %d (%s): %w", i, me.Path, err)
		}
		triangles = append(triangles, tris...)
	}

	sdfs := make([]geom.SDFInstance, 0, len(sf.SDFs))
	for i, s := range sf.SDFs {
		if s.Material < 0 || s.Material >= len(materials) {
			return Scene{}, nil, fmt.Errorf("sceneasset: sdf %d: material index %d out of range", i, s.Material)
		}
		scale := s.Scale
		if scale == 0 {
			scale = 1
		}
		location := rmath.Mat4Translation(vec(s.Location)).
			Mul(sdfRotation(s.RotationAxis, s.RotationAngle).ToMat4()).
			Mul(rmath.Mat4Scale(rmath.Vec3{X: scale, Y: scale, Z: scale}))
		sdfs = append(sdfs, geom.SDFInstance{
			Location:        location,
			InverseLocation: location.Inverse(),
			StepScale:       stepScaleOrDefault(s.StepScale),
			ClassIndex:      s.ClassIndex,
			MaterialID:      s.Material,
			ObjectUID:       s.ObjectUID,
			Time:            s.Time,
		})
	}

	tree := bvh.Build(triangles, sdfs)
	return Scene{
		Background: vec(sf.Background),
		Materials:  materials,
		Lights:     lights,
		Tree:       tree,
	}, quads, nil
}

// sdfRotation builds the orientation quaternion for an sdfEntry's
// axis-angle fields, defaulting to the Y axis when an entry gives an
// angle but leaves the axis at its zero value.
func sdfRotation(axis [3]float32, angleDegrees float32) rmath.Quaternion {
	if angleDegrees == 0 {
		return rmath.QuaternionIdentity()
	}
	a := vec(axis)
	if a == (rmath.Vec3{}) {
		a = rmath.Vec3{Y: 1}
	}
	return rmath.QuaternionFromAxisAngle(a, angleDegrees*float32(math.Pi)/180)
}

func stepScaleOrDefault(s float32) float32 {
	if s == 0 {
		return 1
	}
	return s
}

func vec(a [3]float32) rmath.Vec3 {
	return rmath.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
