package mixgraph

// Reach is a reusable breadth-first reachability scanner over a Graph.
// It allocates once and can be reused for many queries; it is not safe for
// concurrent use.
type Reach struct {
	g     *Graph
	mark  []uint32 // mark[v]==epoch ⇔ v reached in the current query
	epoch uint32
	queue []int
}

// NewReach prepares a scanner for g.
func NewReach(g *Graph) *Reach {
	return &Reach{
		g:     g,
		mark:  make([]uint32, g.n),
		queue: make([]int, 0, g.n),
	}
}

// From returns every vertex reachable from src through vertices for which
// skip reports false. src itself is not included. The returned slice is
// owned by the scanner and valid until the next call.
func (r *Reach) From(src int, skip func(v int) bool) []int {
	r.epoch++
	if r.epoch == 0 {
		clear(r.mark)
		r.epoch = 1
	}
	r.queue = r.queue[:0]
	r.mark[src] = r.epoch

	head := 0
	u := src
	for {
		for _, e := range r.g.out[u] {
			v := e.To
			if r.mark[v] == r.epoch || (skip != nil && skip(v)) {
				continue
			}
			r.mark[v] = r.epoch
			r.queue = append(r.queue, v)
		}
		if head == len(r.queue) {
			break
		}
		u = r.queue[head]
		head++
	}

	return r.queue
}

// Reached reports whether v was reached by the latest From call.
func (r *Reach) Reached(v int) bool {
	return r.mark[v] == r.epoch
}

// ReachableFrom is a one-shot convenience around Reach.From.
func (g *Graph) ReachableFrom(src int) []int {
	out := NewReach(g).From(src, nil)

	return append([]int(nil), out...)
}
