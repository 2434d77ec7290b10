package segment

import "math"

// edge is one directed residual edge. rev indexes the paired reverse edge in
// the adjacency list of to.
type edge struct {
	to  int
	rev int
	cap int64
}

// Graph is a capacitated directed graph solved with Dinic's algorithm.
//
// Every AddEdge call stores a forward edge and a zero-capacity reverse edge so
// the residual network is always available in place. A Graph is not safe for
// concurrent use.
type Graph struct {
	adj   [][]edge
	level []int
	iter  []int
	queue []int
	path  []int
}

// NewGraph creates a graph with n nodes numbered 0..n-1 and no edges.
func NewGraph(n int) *Graph {
	return &Graph{
		adj:   make([][]edge, n),
		level: make([]int, n),
		iter:  make([]int, n),
		queue: make([]int, 0, n),
	}
}

// Nodes returns the number of nodes in the graph.
func (g *Graph) Nodes() int {
	return len(g.adj)
}

// AddEdge adds a directed edge from -> to with the given non-negative
// capacity, paired with a reverse edge of capacity 0. Self-loops carry no
// flow and are dropped.
func (g *Graph) AddEdge(from, to int, capacity int64) {
	if from == to {
		return
	}
	if capacity < 0 {
		capacity = 0
	}
	g.adj[from] = append(g.adj[from], edge{to: to, rev: len(g.adj[to]), cap: capacity})
	g.adj[to] = append(g.adj[to], edge{to: from, rev: len(g.adj[from]) - 1, cap: 0})
}

// MaxFlow pushes the maximum flow from s to t and returns its value.
//
// Each phase assigns BFS levels from s over edges with residual capacity and
// then drains a blocking flow along paths whose level strictly increases at
// every hop. The algorithm stops when t is no longer reachable.
//
// The residual capacities are left in the graph, so SourceSide can read the
// minimum cut afterwards. Calling MaxFlow again returns 0.
func (g *Graph) MaxFlow(s, t int) int64 {
	var flow int64
	for {
		g.assignLevels(s)
		if g.level[t] < 0 {
			return flow
		}
		for i := range g.iter {
			g.iter[i] = 0
		}
		for {
			f := g.augment(s, t)
			if f == 0 {
				break
			}
			flow += f
		}
	}
}

// SourceSide reports, for every node, whether it is reachable from s in the
// current residual graph. After MaxFlow these nodes form the source side of
// a minimum cut.
func (g *Graph) SourceSide(s int) []bool {
	g.assignLevels(s)
	side := make([]bool, len(g.adj))
	for v, l := range g.level {
		side[v] = l >= 0
	}
	return side
}

// assignLevels runs a full breadth-first search from s over edges with
// residual capacity. Unreached nodes get level -1.
func (g *Graph) assignLevels(s int) {
	for i := range g.level {
		g.level[i] = -1
	}
	queue := g.queue[:0]
	g.level[s] = 0
	queue = append(queue, s)

	for head := 0; head < len(queue); head++ {
		v := queue[head]
		for _, e := range g.adj[v] {
			if e.cap > 0 && g.level[e.to] < 0 {
				g.level[e.to] = g.level[v] + 1
				queue = append(queue, e.to)
			}
		}
	}
	g.queue = queue
}

// augment finds one s -> t path in the level graph and pushes its bottleneck
// capacity, returning the amount pushed or 0 when the phase is blocked.
//
// The search keeps an explicit node stack instead of recursing, since paths in
// a pixel grid can be as long as the image has pixels. iter[v] is the current
// arc of v: edges before it are known to be useless for the rest of the phase.
func (g *Graph) augment(s, t int) int64 {
	path := append(g.path[:0], s)
	defer func() { g.path = path[:0] }()

	for len(path) > 0 {
		v := path[len(path)-1]
		if v == t {
			bottleneck := int64(math.MaxInt64)
			for _, u := range path[:len(path)-1] {
				if c := g.adj[u][g.iter[u]].cap; c < bottleneck {
					bottleneck = c
				}
			}
			for _, u := range path[:len(path)-1] {
				e := &g.adj[u][g.iter[u]]
				e.cap -= bottleneck
				g.adj[e.to][e.rev].cap += bottleneck
			}
			return bottleneck
		}

		advanced := false
		for g.iter[v] < len(g.adj[v]) {
			e := g.adj[v][g.iter[v]]
			if e.cap > 0 && g.level[v] < g.level[e.to] {
				path = append(path, e.to)
				advanced = true
				break
			}
			g.iter[v]++
		}
		if advanced {
			continue
		}

		// Dead end: retreat and skip the arc that led here.
		path = path[:len(path)-1]
		if len(path) > 0 {
			g.iter[path[len(path)-1]]++
		}
	}
	return 0
}
