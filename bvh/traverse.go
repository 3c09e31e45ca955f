package bvh

import "pathforge/geom"

// Hit walks the ordinary tree: on an AABB hit the traversal always
// descends to index+1 (testing the primitive first if the node is a
// leaf); on a miss it jumps to SkipLink. closestSoFar starts at tMax
// and only shrinks, so later AABB tests are against an ever-tightening
// window — the same "closest_so_far" spec.md §4.4 names.
func (t *Tree) Hit(ray geom.Ray, tMin, tMax float32, reg geom.SDFRegistry, rec *geom.HitRecord) bool {
	closestSoFar := tMax
	anyHit := false

	index := 0
	steps := 0
	maxSteps := len(t.Nodes) + 1
	for index != -1 && steps <= maxSteps {
		steps++
		if index < 0 || index >= len(t.Nodes) {
			break
		}
		node := t.Nodes[index]

		boxHit, _ := geom.IntersectSlab(node.AABB, ray, tMin, closestSoFar)
		if !boxHit {
			if !t.linkInRange(node.SkipLink) {
				break
			}
			index = node.SkipLink
			continue
		}

		if node.IsLeaf() {
			if t.testPrimitive(node, ray, tMin, tMax, closestSoFar, reg, rec) {
				anyHit = true
				closestSoFar = rec.T
			}
		}
		index++
	}
	return anyHit
}

func (t *Tree) testPrimitive(node Node, ray geom.Ray, tMin, tMax, closestSoFar float32, reg geom.SDFRegistry, rec *geom.HitRecord) bool {
	switch node.PrimitiveType {
	case PrimitiveTriangle:
		if node.PrimitiveIndex < 0 || node.PrimitiveIndex >= len(t.Triangles) {
			return false
		}
		return t.Triangles[node.PrimitiveIndex].Hit(ray, tMin, tMax, closestSoFar, rec)
	case PrimitiveSDF:
		if node.PrimitiveIndex < 0 || node.PrimitiveIndex >= len(t.SDFs) {
			return false
		}
		return t.SDFs[node.PrimitiveIndex].Hit(ray, tMin, tMax, closestSoFar, reg, rec)
	default:
		return false
	}
}
