// Package bvh implements the stackless hit/miss skip-link BVH traversal
// of spec.md §4.4: one array walk for ray-hit queries against the
// ordinary tree, and one point-containment walk against an inflated
// companion tree for shadow/AO signed-distance field sampling.
//
// Grounded on spec.md §4.4 directly for the traversal algorithm (no
// teacher equivalent — the teacher's acceleration structures are
// unported Vulkan BLAS/TLAS calls); the Hit/primitive-array call shape
// is grounded on other_examples' df07-go-progressive-raytracer
// (pkg/renderer/raytracer.go's rt.hitWorld / core.BVH.Hit convention),
// adapted from a recursive pointer tree to the flat skip-link encoding.
package bvh

import (
	"pathforge/geom"
)

// PrimitiveType tags which array a leaf node indexes into.
type PrimitiveType int

const (
	PrimitiveNone     PrimitiveType = 0
	PrimitiveSDF      PrimitiveType = 1
	PrimitiveTriangle PrimitiveType = 2
)

// Node is one entry of the flattened hierarchy. The hit successor is
// always implicit (index+1); SkipLink is the only explicit pointer,
// taken on an AABB/containment miss. -1 terminates traversal.
type Node struct {
	AABB           geom.AABB
	InflatedAABB   geom.AABB
	PrimitiveIndex int
	PrimitiveType  PrimitiveType
	SkipLink       int
}

func (n Node) IsLeaf() bool {
	return n.PrimitiveType == PrimitiveTriangle || n.PrimitiveType == PrimitiveSDF
}

// Tree is the arena+index BVH: nodes reference primitive arrays by
// unsigned index plus a type tag rather than modeling child pointers,
// per design notes §9.
type Tree struct {
	Nodes     []Node
	Triangles []geom.Triangle
	SDFs      []geom.SDFInstance
}

// linkInRange reports whether a skip-link target is a valid node index
// or the -1 terminator, the malformed-link guard spec.md §7 requires.
func (t *Tree) linkInRange(link int) bool {
	return link == -1 || (link >= 0 && link < len(t.Nodes))
}
