package bvh

import (
	"sort"

	"pathforge/geom"
	"pathforge/rmath"
)

// leafDesc is one primitive awaiting placement in the hierarchy.
type leafDesc struct {
	kind  PrimitiveType
	index int
	box   geom.AABB
}

// inflateMargin widens every primitive's AABB when building the
// companion inflated tree; must match whatever the host-side scene
// pipeline that authored the original GPU buffers used, per spec.md
// §4.4's "this parameter ... must match the CPU-side inflation factor".
const inflateMargin = 0.25

// Build constructs both the ordinary and inflated BVH over a flat list
// of triangles and SDF instances, emitting the hit/miss skip-link array
// spec.md §3 describes. BVH construction is explicitly out of spec.md's
// CORE scope (an "external collaborator" responsibility) but is
// supplied here as the reference implementation needed to produce the
// bvh[]/bvh_inflated[] inputs the core consumes for any runnable demo
// or test; grounded on other_examples' df07-go-progressive-raytracer
// BVH (median-split over primitive centroids), adapted to the
// skip-link array encoding instead of a pointer tree.
func Build(triangles []geom.Triangle, sdfs []geom.SDFInstance) *Tree {
	leaves := make([]leafDesc, 0, len(triangles)+len(sdfs))
	for i, tri := range triangles {
		leaves = append(leaves, leafDesc{kind: PrimitiveTriangle, index: i, box: triangleBounds(tri)})
	}
	for i, s := range sdfs {
		leaves = append(leaves, leafDesc{kind: PrimitiveSDF, index: i, box: sdfBounds(s)})
	}

	t := &Tree{Triangles: triangles, SDFs: sdfs}
	if len(leaves) == 0 {
		return t
	}
	build(t, leaves, -1)
	return t
}

// build recursively partitions leaves by the longest-axis median split,
// appending nodes to t.Nodes in pre-order so the implicit "hit ->
// index+1" rule lands on the first child. skipIfMiss is the SkipLink
// every node produced by this call (and its subtree) should use when
// this subtree's own AABB test fails.
func build(t *Tree, leaves []leafDesc, skipIfMiss int) int {
	bounds := leaves[0].box
	for _, l := range leaves[1:] {
		bounds = bounds.Union(l.box)
	}

	if len(leaves) == 1 {
		l := leaves[0]
		nodeIndex := len(t.Nodes)
		t.Nodes = append(t.Nodes, Node{
			AABB:           bounds,
			InflatedAABB:   bounds.Inflate(inflateMargin),
			PrimitiveIndex: l.index,
			PrimitiveType:  l.kind,
			SkipLink:       skipIfMiss,
		})
		return nodeIndex
	}

	axis := longestAxis(bounds)
	sort.Slice(leaves, func(i, j int) bool {
		return axisOf(leaves[i].box.Centroid(), axis) < axisOf(leaves[j].box.Centroid(), axis)
	})
	mid := len(leaves) / 2

	nodeIndex := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{
		AABB:         bounds,
		InflatedAABB: bounds.Inflate(inflateMargin),
		SkipLink:     skipIfMiss,
	})

	// The left child starts at index+1 (the implicit hit successor);
	// its own miss jumps to the right child's node index, which isn't
	// known until the right subtree is built, so reserve and backfill.
	build(t, leaves[:mid], placeholder)
	rightStart := len(t.Nodes)
	fixupSkipLinks(t, nodeIndex+1, rightStart, rightStart)
	build(t, leaves[mid:], skipIfMiss)
	return nodeIndex
}

const placeholder = -2

// fixupSkipLinks rewrites every placeholder SkipLink within
// [lo, hi) to target. The placeholder is carried by the left subtree's
// root and by every node on that subtree's rightmost path (each passes
// its own skipIfMiss down to its right child); all other nodes already
// point at a concrete sibling.
func fixupSkipLinks(t *Tree, lo, hi, target int) {
	for i := lo; i < hi; i++ {
		if t.Nodes[i].SkipLink == placeholder {
			t.Nodes[i].SkipLink = target
		}
	}
}

// triangleBoundsPad gives axis-aligned (flat) triangles a non-zero box
// thickness, since IntersectSlab rejects a zero-width slab.
const triangleBoundsPad = 1e-4

func triangleBounds(tri geom.Triangle) geom.AABB {
	box := geom.AABB{Min: tri.A, Max: tri.A}
	box = expand(box, tri.B)
	box = expand(box, tri.C)
	return box.Inflate(triangleBoundsPad)
}

func sdfBounds(s geom.SDFInstance) geom.AABB {
	// Conservative unit-cube bound in local space, transformed to world.
	corners := [8]rmath.Vec3{
		{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1},
	}
	first := s.Location.MulVec3(corners[0])
	box := geom.AABB{Min: first, Max: first}
	for _, c := range corners[1:] {
		box = expand(box, s.Location.MulVec3(c))
	}
	return box
}

func expand(box geom.AABB, p rmath.Vec3) geom.AABB {
	return box.Union(geom.AABB{Min: p, Max: p})
}

// longestAxis returns 0/1/2 for X/Y/Z, the axis the median split
// partitions on.
func longestAxis(b geom.AABB) int {
	extent := b.Max.Sub(b.Min)
	axis := 0
	longest := extent.X
	if extent.Y > longest {
		axis, longest = 1, extent.Y
	}
	if extent.Z > longest {
		axis = 2
	}
	return axis
}

func axisOf(v rmath.Vec3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
