// Package texture implements spec.md §4.6's textured-albedo
// resolution: procedural-registry dispatch for negative uids, and
// derivative-aware atlas region sampling with wrap-mode handling for
// positive uids.
//
// Grounded on the teacher's textures/texture.go (TextureManager's
// load/cache/GetOrDefault shape, generalized from a GPU-upload cache
// to a CPU-side procedural memoization cache backed by
// hashicorp/golang-lru instead of a plain map, since the teacher's
// sync.RWMutex+map pattern has no eviction policy and spec.md's
// procedural call is on the per-pixel hot path).
package texture

import (
	"image"
	"math"

	lru "github.com/hashicorp/golang-lru"

	"pathforge/rmath"
)

// WrapMode selects how an atlas coordinate outside [0,1] is handled,
// per spec.md §4.6.
type WrapMode int

const (
	Repeat WrapMode = iota
	Clamp
	Discard
)

// AtlasMapping is one entry of texture_atlases_mapping[]: the 2x4
// matrix that maps a homogeneous local position to an unclamped
// texture-space coordinate, plus the region's texel size and wrap
// policy.
type AtlasMapping struct {
	Matrix     [2][4]float32
	RegionSize [2]int // texels, base mip
	Levels     int
	Wrap       [2]WrapMode // per-axis: U, V
	Image      *image.NRGBA
	MipChain   []*image.NRGBA // index 0 = base, built by BuildMipChain
}

// mapCoord applies the 2x4 matrix to a homogeneous local-space vector
// (x,y,z,1), producing an unclamped 2-D texture coordinate.
func (a AtlasMapping) mapCoord(p rmath.Vec3) rmath.Vec2 {
	h := [4]float32{p.X, p.Y, p.Z, 1}
	return rmath.Vec2{
		X: a.Matrix[0][0]*h[0] + a.Matrix[0][1]*h[1] + a.Matrix[0][2]*h[2] + a.Matrix[0][3]*h[3],
		Y: a.Matrix[1][0]*h[0] + a.Matrix[1][1]*h[1] + a.Matrix[1][2]*h[2] + a.Matrix[1][3]*h[3],
	}
}

// mapVector applies only the linear part of the matrix (no
// translation), used to carry dp/dx, dp/dy into texture-space ddx,
// ddy per spec.md §4.6.
func (a AtlasMapping) mapVector(p rmath.Vec3) rmath.Vec2 {
	return rmath.Vec2{
		X: a.Matrix[0][0]*p.X + a.Matrix[0][1]*p.Y + a.Matrix[0][2]*p.Z,
		Y: a.Matrix[1][0]*p.X + a.Matrix[1][1]*p.Y + a.Matrix[1][2]*p.Z,
	}
}

// MipLevel implements spec.md §4.6's "mip level for inset calculation"
// formula: clamp(floor(0.5*log2(max(|ddx*T|, |ddy*T|))), 0, levels-1).
func (a AtlasMapping) MipLevel(ddx, ddy rmath.Vec2) int {
	tx, ty := float32(a.RegionSize[0]), float32(a.RegionSize[1])
	lenDdx := rmath.Vec2{X: ddx.X * tx, Y: ddx.Y * ty}.Length()
	lenDdy := rmath.Vec2{X: ddy.X * tx, Y: ddy.Y * ty}.Length()
	m := rmath.Max32(lenDdx, lenDdy)
	if m <= 0 {
		return 0
	}
	level := int(math.Floor(0.5 * math.Log2(float64(m))))
	return int(rmath.Clamp(level, 0, a.Levels-1))
}

// Registry is the read-only collection of atlas regions plus the
// procedural-texture cache, addressed by Material.AlbedoTextureUID.
type Registry struct {
	Atlases    []AtlasMapping
	Procedural ProceduralRegistry
	cache      *lru.Cache
}

// proceduralCacheSize bounds the memoization cache's entry count; the
// teacher's TextureManager cache has no bound at all, which spec.md's
// per-pixel procedural call would grow unboundedly under a long
// progressive render.
const proceduralCacheSize = 4096

func NewRegistry(atlases []AtlasMapping, procedural ProceduralRegistry) *Registry {
	cache, _ := lru.New(proceduralCacheSize)
	return &Registry{Atlases: atlases, Procedural: procedural, cache: cache}
}
