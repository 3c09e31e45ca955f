package pathtrace

import (
	"pathforge/geom"
	"pathforge/rmath"
)

// SurfaceAttributes is the spec.md §4.9 first-hit pass output for one
// pixel: object id (0 on miss), first-hit albedo, and world normal.
type SurfaceAttributes struct {
	ObjectUID uint32
	Albedo    rmath.Vec3
	Normal    rmath.Vec3
}

// FirstHitAttributes casts a single ray at the pixel center (0.5,0.5)
// and reads off object id, albedo, and normal, idempotent per frame
// per spec.md §4.9.
func (s *Scene) FirstHitAttributes(ray geom.Ray, diff geom.Differential, uniforms Uniforms) SurfaceAttributes {
	var rec geom.HitRecord
	if !s.Hit(ray, rayTMin, rayTMax, &rec) {
		return SurfaceAttributes{}
	}

	mat := s.Materials.Lookup(rec.MaterialID)
	albedo := mat.Albedo
	if s.Textures != nil {
		dpdx, dpdy := geom.SurfaceDerivatives(ray, diff, rec)
		albedo = s.Textures.ResolveAlbedo(mat.AlbedoTextureUID, mat.Albedo, rec.Local.Position, rec.Local.Normal, uniforms.GlobalTimeSeconds, dpdx, dpdy)
	}

	return SurfaceAttributes{
		ObjectUID: rec.ObjectUID,
		Albedo:    albedo,
		Normal:    rec.Global.Normal,
	}
}
