// Package material implements the four-class tagged-variant material
// model of spec.md §3/§4.5: Lambertian, Mirror, Glass, and Henyey–
// Greenstein Isotropic scattering, dispatched by an explicit class tag
// rather than an interface, plus the textured-albedo resolution and
// quad-light PDF evaluation the path-tracing loops call.
//
// Grounded on the teacher's materials/material.go (Material struct
// holding color/roughness/specular parameters, a ToUniform-style GPU
// layout) and scene/material.go's UsePBR tag-selects-behavior pattern,
// generalized from a 2-way tag to the 4-way material_class the core
// needs.
package material

import "pathforge/rmath"

// Class tags which scatter/shade behavior a Material uses.
type Class int

const (
	Lambertian Class = iota
	Mirror
	Glass
	Isotropic
)

// Material is the spec.md §3 Material record: immutable at render
// time, looked up by id out of a flat table.
type Material struct {
	Albedo           rmath.Vec3
	Specular         rmath.Vec3
	Emission         rmath.Vec3
	SpecularStrength float32 // also doubles as Henyey-Greenstein g for Isotropic
	Roughness        float32
	RefractiveIndex  float32
	AlbedoTextureUID int32 // negative: procedural -uid; positive: 1-based atlas region; zero: none
	MaterialClass    Class
}

// HasProceduralTexture reports whether AlbedoTextureUID selects a
// procedural texture, and returns its registry id (the un-negated
// value).
func (m Material) HasProceduralTexture() (id int, ok bool) {
	if m.AlbedoTextureUID < 0 {
		return int(-m.AlbedoTextureUID), true
	}
	return 0, false
}

// HasAtlasRegion reports whether AlbedoTextureUID selects a 1-based
// atlas region, returning the 0-based region index.
func (m Material) HasAtlasRegion() (region int, ok bool) {
	if m.AlbedoTextureUID > 0 {
		return int(m.AlbedoTextureUID) - 1, true
	}
	return 0, false
}

// Table is the flat, read-only material list addressed by
// HitRecord.MaterialID, the "lookup by id" spec.md §3 describes.
type Table []Material

func (t Table) Lookup(id int) Material {
	if id < 0 || id >= len(t) {
		return Material{}
	}
	return t[id]
}
