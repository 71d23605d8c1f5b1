package scene

import (
	"fmt"
	"sort"

	"github.com/kylittle/Crucible/types"
)

// Leaves hold at most this many primitives.
const maxPrimsPerLeaf = 2

// A BVH node packed for cache-friendly traversal. Inner nodes store the
// arena indices of their children; leaf nodes encode the first primitive
// index as -(index + 1) in LData and the primitive count in RData.
type BvhNode struct {
	Min   types.Vec3
	LData int32
	Max   types.Vec3
	RData int32
}

// Mark node as a leaf covering count primitives starting at firstPrim.
func (n *BvhNode) SetPrimitives(firstPrim, count int) {
	n.LData = -int32(firstPrim + 1)
	n.RData = int32(count)
}

// Mark node as an inner node with the given child indices.
func (n *BvhNode) SetChildren(left, right int) {
	n.LData = int32(left)
	n.RData = int32(right)
}

// Returns true if this is a leaf node.
func (n *BvhNode) IsLeaf() bool {
	return n.LData < 0
}

// The primitive range covered by a leaf node.
func (n *BvhNode) Primitives() (firstPrim, count int) {
	return int(-n.LData - 1), int(n.RData)
}

// Bvh is a bounding volume hierarchy over a primitive list, stored as a
// flat node arena. Primitives are reordered during the build so each leaf
// covers a contiguous range. The tree is immutable once built and safe for
// concurrent traversal.
type Bvh struct {
	nodes []BvhNode
	prims []Hittable
}

// Build a BVH over the primitive list. Boxes are taken over the [t0, t1]
// shutter interval so moving primitives stay enclosed for any ray time. The
// input slice is not modified.
func BuildBvh(prims []Hittable, t0, t1 float32) (*Bvh, error) {
	if len(prims) == 0 {
		return nil, fmt.Errorf("%w: cannot build BVH out of an empty primitive list", ErrInvalidScene)
	}

	bvh := &Bvh{
		nodes: make([]BvhNode, 0, 2*len(prims)),
		prims: append([]Hittable(nil), prims...),
	}

	boxes := make([]Aabb, len(prims))
	for i, prim := range bvh.prims {
		boxes[i] = prim.BBox(t0, t1).Pad()
	}
	bvh.partition(boxes, 0, len(prims))
	return bvh, nil
}

// Recursively split the [first, first+count) primitive range, appending the
// generated nodes to the arena. Returns the new node's arena index.
func (bvh *Bvh) partition(boxes []Aabb, first, count int) int {
	bounds := EmptyAabb()
	for i := first; i < first+count; i++ {
		bounds = bounds.Union(boxes[i])
	}

	nodeIndex := len(bvh.nodes)
	bvh.nodes = append(bvh.nodes, BvhNode{Min: bounds.Min, Max: bounds.Max})

	if count <= maxPrimsPerLeaf {
		bvh.nodes[nodeIndex].SetPrimitives(first, count)
		return nodeIndex
	}

	// Split at the median along the axis where centroids spread the most.
	centroidBounds := EmptyAabb()
	for i := first; i < first+count; i++ {
		c := boxes[i].Centroid()
		centroidBounds = centroidBounds.Union(Aabb{Min: c, Max: c})
	}
	axis := centroidBounds.LongestAxis()

	sort.Sort(&bvhSpan{
		boxes: boxes[first : first+count],
		prims: bvh.prims[first : first+count],
		axis:  axis,
	})
	mid := count / 2

	left := bvh.partition(boxes, first, mid)
	right := bvh.partition(boxes, first+mid, count-mid)
	bvh.nodes[nodeIndex].SetChildren(left, right)
	return nodeIndex
}

// Sorts a primitive range and its boxes in lockstep by box centroid.
type bvhSpan struct {
	boxes []Aabb
	prims []Hittable
	axis  int
}

func (s *bvhSpan) Len() int { return len(s.boxes) }
func (s *bvhSpan) Less(i, j int) bool {
	return s.boxes[i].Centroid()[s.axis] < s.boxes[j].Centroid()[s.axis]
}
func (s *bvhSpan) Swap(i, j int) {
	s.boxes[i], s.boxes[j] = s.boxes[j], s.boxes[i]
	s.prims[i], s.prims[j] = s.prims[j], s.prims[i]
}

func (bvh *Bvh) Hit(r types.Ray, tMin, tMax float32, rec *HitRecord) bool {
	// Stack of pending node indices; depth is bounded by the arena size but
	// 64 covers any median-split tree we can build in practice.
	var stack [64]int32
	stackTop := 0
	stack[stackTop] = 0

	hitAnything := false
	closest := tMax

	for stackTop >= 0 {
		node := &bvh.nodes[stack[stackTop]]
		stackTop--

		box := Aabb{Min: node.Min, Max: node.Max}
		if ok, _ := box.Hit(r, tMin, closest); !ok {
			continue
		}

		if node.IsLeaf() {
			firstPrim, count := node.Primitives()
			for i := firstPrim; i < firstPrim+count; i++ {
				if bvh.prims[i].Hit(r, tMin, closest, rec) {
					hitAnything = true
					closest = rec.T
				}
			}
			continue
		}

		// Visit the nearer child first so the far side can be culled by the
		// tightened closest distance.
		left, right := &bvh.nodes[node.LData], &bvh.nodes[node.RData]
		lHit, lDist := Aabb{Min: left.Min, Max: left.Max}.Hit(r, tMin, closest)
		rHit, rDist := Aabb{Min: right.Min, Max: right.Max}.Hit(r, tMin, closest)

		near, far := node.LData, node.RData
		nearHit, farHit := lHit, rHit
		if rHit && (!lHit || rDist < lDist) {
			near, far = far, near
			nearHit, farHit = rHit, lHit
		}
		if farHit {
			stackTop++
			stack[stackTop] = far
		}
		if nearHit {
			stackTop++
			stack[stackTop] = near
		}
	}
	return hitAnything
}

func (bvh *Bvh) BBox(t0, t1 float32) Aabb {
	root := bvh.nodes[0]
	return Aabb{Min: root.Min, Max: root.Max}
}
