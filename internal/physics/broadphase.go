package physics

// Pair is a candidate body pair produced by a broadphase. A has the lower
// index in the world's body list.
type Pair struct {
	A, B *RigidBody
}

// Broadphase narrows all body pairs down to ones that might touch.
// Static-static pairs are never returned.
type Broadphase interface {
	Pairs(bodies []*RigidBody, out []Pair) []Pair
}

// NaiveBroadphase returns every pair with at least one dynamic body.
type NaiveBroadphase struct{}

func (NaiveBroadphase) Pairs(bodies []*RigidBody, out []Pair) []Pair {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if bodies[i].IsStatic() && bodies[j].IsStatic() {
				continue
			}
			out = append(out, Pair{bodies[i], bodies[j]})
		}
	}
	return out
}

const (
	QuadCapacity = 8
	QuadMaxDepth = 6
)

// RectF is an axis-aligned rectangle on the XZ plane.
type RectF struct {
	X0, Y0 float64
	X1, Y1 float64
}

func (r RectF) Intersects(o RectF) bool {
	return r.X0 <= o.X1 && r.X1 >= o.X0 && r.Y0 <= o.Y1 && r.Y1 >= o.Y0
}

func (r RectF) Contains(o RectF) bool {
	return o.X0 >= r.X0 && o.X1 <= r.X1 && o.Y0 >= r.Y0 && o.Y1 <= r.Y1
}

func (r RectF) union(o RectF) RectF {
	return RectF{
		X0: min(r.X0, o.X0), Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1), Y1: max(r.Y1, o.Y1),
	}
}

type quadItem struct {
	index  int
	bounds RectF
}

// QuadNode is a region quadtree over body footprints.
type QuadNode struct {
	bounds RectF
	depth  int
	items  []quadItem
	child  [4]*QuadNode
}

func NewQuadNode(bounds RectF, depth int) *QuadNode {
	return &QuadNode{
		bounds: bounds,
		depth:  depth,
		items:  make([]quadItem, 0, QuadCapacity),
	}
}

func (n *QuadNode) Insert(index int, bounds RectF) {
	if n.child[0] != nil {
		if c := n.childThatContains(bounds); c != nil {
			c.Insert(index, bounds)
			return
		}
	}

	n.items = append(n.items, quadItem{index: index, bounds: bounds})

	if len(n.items) > QuadCapacity && n.depth < QuadMaxDepth {
		n.subdivide()
		kept := n.items[:0]
		for _, it := range n.items {
			if c := n.childThatContains(it.bounds); c != nil {
				c.Insert(it.index, it.bounds)
			} else {
				kept = append(kept, it)
			}
		}
		n.items = kept
	}
}

// Query appends the index of every item whose bounds touch r.
func (n *QuadNode) Query(r RectF, out *[]int) {
	if !n.bounds.Intersects(r) {
		return
	}
	for _, it := range n.items {
		if it.bounds.Intersects(r) {
			*out = append(*out, it.index)
		}
	}
	if n.child[0] == nil {
		return
	}
	for i := 0; i < 4; i++ {
		n.child[i].Query(r, out)
	}
}

func (n *QuadNode) subdivide() {
	if n.child[0] != nil {
		return
	}
	mx := (n.bounds.X0 + n.bounds.X1) * 0.5
	my := (n.bounds.Y0 + n.bounds.Y1) * 0.5
	n.child[0] = NewQuadNode(RectF{X0: n.bounds.X0, Y0: n.bounds.Y0, X1: mx, Y1: my}, n.depth+1)
	n.child[1] = NewQuadNode(RectF{X0: mx, Y0: n.bounds.Y0, X1: n.bounds.X1, Y1: my}, n.depth+1)
	n.child[2] = NewQuadNode(RectF{X0: n.bounds.X0, Y0: my, X1: mx, Y1: n.bounds.Y1}, n.depth+1)
	n.child[3] = NewQuadNode(RectF{X0: mx, Y0: my, X1: n.bounds.X1, Y1: n.bounds.Y1}, n.depth+1)
}

func (n *QuadNode) childThatContains(b RectF) *QuadNode {
	for i := 0; i < 4; i++ {
		c := n.child[i]
		if c != nil && c.bounds.Contains(b) {
			return c
		}
	}
	return nil
}

// QuadBroadphase buckets bounded bodies by their XZ footprint. Unbounded
// shapes (planes) are paired with every dynamic body.
type QuadBroadphase struct {
	hits []int
}

func footprint(b *RigidBody) (RectF, bool) {
	lo, hi, ok := b.Shape.Bounds(b.Position)
	if !ok {
		return RectF{}, false
	}
	return RectF{X0: lo.X(), Y0: lo.Z(), X1: hi.X(), Y1: hi.Z()}, true
}

func (q *QuadBroadphase) Pairs(bodies []*RigidBody, out []Pair) []Pair {
	rects := make([]RectF, len(bodies))
	bounded := make([]bool, len(bodies))
	var world RectF
	first := true
	for i, b := range bodies {
		r, ok := footprint(b)
		rects[i], bounded[i] = r, ok
		if !ok {
			continue
		}
		if first {
			world, first = r, false
		} else {
			world = world.union(r)
		}
	}

	root := NewQuadNode(world, 0)
	for i := range bodies {
		if bounded[i] {
			root.Insert(i, rects[i])
		}
	}

	for i, b := range bodies {
		if !bounded[i] {
			for j := range bodies {
				if j != i && !bodies[j].IsStatic() {
					out = append(out, orderedPair(bodies, i, j))
				}
			}
			continue
		}
		if b.IsStatic() {
			continue
		}
		q.hits = q.hits[:0]
		root.Query(rects[i], &q.hits)
		for _, j := range q.hits {
			if j == i || !bounded[j] {
				continue
			}
			// Dynamic-dynamic pairs are found from both sides; keep one.
			if !bodies[j].IsStatic() && j < i {
				continue
			}
			out = append(out, orderedPair(bodies, i, j))
		}
	}
	return out
}

func orderedPair(bodies []*RigidBody, i, j int) Pair {
	if i > j {
		i, j = j, i
	}
	return Pair{bodies[i], bodies[j]}
}
