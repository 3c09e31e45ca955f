package texture

import "pathforge/rmath"

// ResolveAlbedo implements the uid dispatch spec.md §4.6 describes:
// zero selects the material's flat albedo, negative dispatches to the
// procedural registry, positive indexes an atlas region.
func (r *Registry) ResolveAlbedo(uid int32, flatAlbedo rmath.Vec3, localPosition, localNormal rmath.Vec3, timeSeconds float32, dpdx, dpdy rmath.Vec3) rmath.Vec3 {
	switch {
	case uid == 0:
		return flatAlbedo
	case uid < 0:
		if r.Procedural == nil {
			return flatAlbedo
		}
		return r.proceduralColor(int(-uid), localPosition, localNormal, timeSeconds, dpdx, dpdy)
	default:
		region := int(uid) - 1
		if region < 0 || region >= len(r.Atlases) {
			return flatAlbedo
		}
		return r.Atlases[region].Sample(localPosition, dpdx, dpdy, flatAlbedo)
	}
}
