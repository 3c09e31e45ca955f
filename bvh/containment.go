package bvh

import (
	"pathforge/geom"
	"pathforge/rmath"
)

// ContainmentQuery walks the inflated tree looking for SDF leaves whose
// inflated AABB contains p, evaluating the directional signed-distance
// estimate (spec.md §4.7) at each and returning the minimum. Triangle
// leaves are inert in this traversal per spec.md §9's open question:
// containment queries only ever contribute AO/shadow from SDF geometry.
// ok is false when no containing SDF leaf was found.
func (t *Tree) ContainmentQuery(p, dir rmath.Vec3, time float32, reg geom.SDFRegistry) (d float32, ok bool) {
	best := float32(0)
	found := false

	index := 0
	steps := 0
	maxSteps := len(t.Nodes) + 1
	for index != -1 && steps <= maxSteps {
		steps++
		if index < 0 || index >= len(t.Nodes) {
			break
		}
		node := t.Nodes[index]

		if !node.InflatedAABB.Contains(p) {
			if !t.linkInRange(node.SkipLink) {
				break
			}
			index = node.SkipLink
			continue
		}

		if node.PrimitiveType == PrimitiveSDF && node.PrimitiveIndex >= 0 && node.PrimitiveIndex < len(t.SDFs) {
			sample := t.SDFs[node.PrimitiveIndex].DirectionalQuery(reg, p, dir, time)
			if !found || sample < best {
				best = sample
				found = true
			}
		}
		index++
	}
	return best, found
}
