package detection

// unionFind is a disjoint-set forest over segment indices.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(i int) int {
	for uf.parent[i] != i {
		uf.parent[i] = uf.parent[uf.parent[i]]
		i = uf.parent[i]
	}
	return i
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	switch {
	case uf.rank[ra] < uf.rank[rb]:
		uf.parent[ra] = rb
	case uf.rank[ra] > uf.rank[rb]:
		uf.parent[rb] = ra
	default:
		uf.parent[rb] = ra
		uf.rank[ra]++
	}
}

// Connect groups segments into walls by endpoint proximity.
//
// Two segments are linked when any pairing of their endpoints lies within
// ConnectDistancePx (Euclidean). Walls are the connected components of that
// relation, so an L-shaped corner or a T-junction becomes a single wall mixing
// horizontal and vertical segments. Every segment belongs to exactly one wall.
//
// Walls are ordered by the position of their first segment in the input, and
// segments keep their input order within a wall.
func Connect(segments []WallSegment, cfg Config) []ConnectedWall {
	if len(segments) == 0 {
		return []ConnectedWall{}
	}

	uf := newUnionFind(len(segments))
	for i := 0; i < len(segments); i++ {
		for j := i + 1; j < len(segments); j++ {
			if endpointsNear(segments[i], segments[j], cfg.ConnectDistancePx) {
				uf.union(i, j)
			}
		}
	}

	index := make(map[int]int)
	walls := make([]ConnectedWall, 0)
	for i, s := range segments {
		root := uf.find(i)
		w, ok := index[root]
		if !ok {
			w = len(walls)
			index[root] = w
			walls = append(walls, ConnectedWall{})
		}
		walls[w].Segments = append(walls[w].Segments, s)
	}
	return walls
}

// endpointsNear reports whether any endpoint of a is within dist of any
// endpoint of b.
func endpointsNear(a, b WallSegment, dist float64) bool {
	limit := dist * dist
	for _, p := range a.Endpoints() {
		for _, q := range b.Endpoints() {
			dx := float64(p.X - q.X)
			dy := float64(p.Y - q.Y)
			if dx*dx+dy*dy <= limit {
				return true
			}
		}
	}
	return false
}
