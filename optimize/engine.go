// Branch-and-bound search over anchor tours.
//
// The engine grows a path anchor → t₁ → … → tₖ and may close it back to the
// anchor whenever the closing constraints hold (end track, exact length).
// Per-step constraints (harmonic budget, duration budget, simple path) are
// enforced while extending, so every closable path is a feasible tour.
//
// Pruning uses an admissible upper bound on the score any extension can add:
//
//	UB = score + min( top-k weights over candidates,
//	                  fractional knapsack over candidates under the remaining duration )
//
// where candidates are unvisited tracks reachable from the current end of the
// path through unvisited tracks, k is the number of remaining slots. Nodes with
// UB ≤ incumbent are cut; ties keep the first tour found.
//
// Deadline and ctx checks run every checkEvery node expansions.

package optimize

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/katalvlaran/mixpath/mixgraph"
)

// checkEvery is the node interval between deadline checks (power of two).
const checkEvery = 256

// greedyRoots caps how many roots the greedy seeding pass tries.
const greedyRoots = 32

// engine holds the immutable instance data and the mutable search state of
// one optimization. It is never shared between calls.
type engine struct {
	// Instance
	n         int
	g         *mixgraph.Graph
	order     [][]mixgraph.Edge // per-vertex branching order
	roots     []int             // anchor successors in branching order
	weight    []int64
	dur       []int64 // scaled durations
	maxDur    int64   // < 0: unlimited
	violLimit int
	target    int // ≤ 0: unconstrained
	start     int // < 0: free
	end       int // < 0: free

	// Bound precomputes
	byWeight  []int // vertices by weight desc
	byDensity []int // vertices by weight/duration desc, zero durations first

	// Time budget
	ctx      context.Context
	deadline time.Time
	steps    int64
	aborted  bool

	// Search state
	visited []bool
	path    []int
	reach   *mixgraph.Reach
	skip    func(v int) bool

	// Incumbent
	bestPath  []int
	bestScore int64
	foundAny  bool
}

// instance is the input of newEngine.
type instance struct {
	g         *mixgraph.Graph
	weight    []int64
	dur       []int64
	maxDur    int64
	violLimit int
	target    int
	start     int
	end       int
}

func newEngine(ctx context.Context, in instance, deadline time.Time) *engine {
	n := in.g.Order()
	e := &engine{
		n:         n,
		g:         in.g,
		weight:    in.weight,
		dur:       in.dur,
		maxDur:    in.maxDur,
		violLimit: in.violLimit,
		target:    in.target,
		start:     in.start,
		end:       in.end,
		ctx:       ctx,
		deadline:  deadline,
		visited:   make([]bool, n),
		path:      make([]int, 0, n),
		reach:     mixgraph.NewReach(in.g),
	}
	e.skip = func(v int) bool { return e.visited[v] }
	e.buildOrders()

	return e
}

// buildOrders fixes the branching order: harmonic edges first, then heavier
// targets, then lower index. Deterministic order keeps runs reproducible.
func (e *engine) buildOrders() {
	byWeight := func(a, b int) int {
		if c := cmp.Compare(e.weight[b], e.weight[a]); c != 0 {
			return c
		}

		return cmp.Compare(a, b)
	}

	e.order = make([][]mixgraph.Edge, e.n)
	for u := 0; u < e.n; u++ {
		row := slices.Clone(e.g.Out(u))
		slices.SortStableFunc(row, func(x, y mixgraph.Edge) int {
			if x.Harmonic != y.Harmonic {
				if x.Harmonic {
					return -1
				}

				return 1
			}

			return byWeight(x.To, y.To)
		})
		e.order[u] = row
	}

	e.byWeight = make([]int, e.n)
	for v := range e.byWeight {
		e.byWeight[v] = v
	}
	slices.SortFunc(e.byWeight, byWeight)

	if e.start >= 0 {
		e.roots = []int{e.start}
	} else {
		e.roots = slices.Clone(e.byWeight)
	}

	e.byDensity = slices.Clone(e.byWeight)
	slices.SortStableFunc(e.byDensity, func(a, b int) int {
		da, db := e.dur[a], e.dur[b]
		switch {
		case da == 0 && db == 0:
			return 0
		case da == 0:
			return -1
		case db == 0:
			return 1
		}
		// w[a]/d[a] > w[b]/d[b] ⇔ w[a]·d[b] > w[b]·d[a]
		return cmp.Compare(e.weight[b]*da, e.weight[a]*db)
	})
}

// tick counts a node expansion and reports whether the budget is exhausted.
func (e *engine) tick() bool {
	e.steps++
	if e.steps&(checkEvery-1) != 0 {
		return false
	}
	if e.ctx.Err() != nil || time.Now().After(e.deadline) {
		e.aborted = true
	}

	return e.aborted
}

// closable reports whether the current path may return to the anchor.
func (e *engine) closable(last, size int) bool {
	if size == 0 {
		return false
	}
	if e.end >= 0 && last != e.end {
		return false
	}

	return e.target <= 0 || size == e.target
}

// commit records the current path as the new incumbent.
func (e *engine) commit(score int64) {
	e.bestPath = append(e.bestPath[:0], e.path...)
	e.bestScore = score
	e.foundAny = true
}

// admissible reports whether v may extend a path of the given size.
func (e *engine) admissible(v int, harmonic bool, size, viol int, dur int64) (int, int64, bool) {
	if e.visited[v] {
		return 0, 0, false
	}
	if !harmonic {
		viol++
		if viol > e.violLimit {
			return 0, 0, false
		}
	}
	dur += e.dur[v]
	if e.maxDur >= 0 && dur > e.maxDur {
		return 0, 0, false
	}
	if v == e.end && e.target > 0 && size+1 != e.target {
		return 0, 0, false
	}

	return viol, dur, true
}

// upperBound returns an admissible bound on the best score reachable by
// extending the current path, or -1 when no extension can ever close.
func (e *engine) upperBound(last, size int, score int64, dur int64) int64 {
	slots := e.n - size
	if e.target > 0 {
		slots = e.target - size
	}
	if slots <= 0 {
		return score
	}

	atAnchor := size == 0
	if !atAnchor && e.endStranded(last) {
		return -1
	}
	if atAnchor && e.start >= 0 {
		e.reach.From(e.start, e.skip)
	} else if !atAnchor {
		e.reach.From(last, e.skip)
	}
	isCand := func(v int) bool {
		if e.visited[v] {
			return false
		}
		if atAnchor && e.start < 0 {
			return true
		}

		return e.reach.Reached(v)
	}

	remDur := e.maxDur - dur
	fits := func(v int) bool { return e.maxDur < 0 || e.dur[v] <= remDur }

	if e.end >= 0 && !e.visited[e.end] && !(isCand(e.end) && fits(e.end)) {
		return -1
	}

	var (
		byCount int64
		taken   int
	)
	for _, v := range e.byWeight {
		if taken == slots {
			break
		}
		if isCand(v) && fits(v) {
			byCount += e.weight[v]
			taken++
		}
	}
	if e.target > 0 && taken < slots {
		return -1
	}
	if e.maxDur < 0 {
		return score + byCount
	}

	var (
		byDur  int64
		budget = remDur
	)
	for _, v := range e.byDensity {
		if !isCand(v) || !fits(v) {
			continue
		}
		if e.dur[v] <= budget {
			byDur += e.weight[v]
			budget -= e.dur[v]
			continue
		}
		byDur += e.weight[v] * budget / e.dur[v]
		break
	}

	return score + min(byCount, byDur)
}

// endStranded reports whether the forced end is still open but every edge
// into it starts at a track already placed before last.
func (e *engine) endStranded(last int) bool {
	if e.end < 0 || e.visited[e.end] {
		return false
	}
	for _, p := range e.g.In(e.end) {
		if p == last || !e.visited[p] {
			return false
		}
	}

	return true
}

// dfs explores all extensions of the current path ending at last.
func (e *engine) dfs(last int, score int64, viol int, dur int64) {
	if e.aborted || e.tick() {
		return
	}

	size := len(e.path)
	if e.closable(last, size) && score > e.bestScore {
		e.commit(score)
	}
	if size > 0 && (last == e.end || (e.target > 0 && size == e.target)) {
		return
	}
	if e.upperBound(last, size, score, dur) <= e.bestScore {
		return
	}

	if size == 0 {
		for _, v := range e.roots {
			e.step(v, true, size, score, viol, dur)
			if e.aborted {
				return
			}
		}

		return
	}
	for _, ed := range e.order[last] {
		e.step(ed.To, ed.Harmonic, size, score, viol, dur)
		if e.aborted {
			return
		}
	}
}

// step pushes v, recurses, and pops it.
func (e *engine) step(v int, harmonic bool, size int, score int64, viol int, dur int64) {
	nv, nd, ok := e.admissible(v, harmonic, size, viol, dur)
	if !ok {
		return
	}
	e.visited[v] = true
	e.path = append(e.path, v)
	e.dfs(v, score+e.weight[v], nv, nd)
	e.path = e.path[:size]
	e.visited[v] = false
}

// seed runs a greedy pass from the heaviest roots to obtain an early incumbent.
func (e *engine) seed() {
	for i, r := range e.roots {
		if i == greedyRoots {
			break
		}
		e.greedyFrom(r)
		clear(e.visited)
		e.path = e.path[:0]
	}
}

// greedyFrom extends a path from root by always taking the first admissible
// edge in branching order, committing every closable prefix that improves.
func (e *engine) greedyFrom(root int) {
	viol, dur, ok := e.admissible(root, true, 0, 0, 0)
	if !ok {
		return
	}
	e.visited[root] = true
	e.path = append(e.path, root)
	score := e.weight[root]
	last := root

	for {
		size := len(e.path)
		if e.closable(last, size) && score > e.bestScore {
			e.commit(score)
		}
		if last == e.end || (e.target > 0 && size == e.target) {
			return
		}

		next := -1
		var nv int
		var nd int64
		for _, ed := range e.order[last] {
			// Hold the end track back until it can close the path.
			if ed.To == e.end && e.target <= 0 && e.hasOtherMove(last, ed.To, size, viol, dur) {
				continue
			}
			if v, d, ok := e.admissible(ed.To, ed.Harmonic, size, viol, dur); ok {
				next, nv, nd = ed.To, v, d

				break
			}
		}
		if next < 0 {
			return
		}
		e.visited[next] = true
		e.path = append(e.path, next)
		score += e.weight[next]
		viol, dur, last = nv, nd, next
	}
}

// hasOtherMove reports whether last has an admissible successor besides except.
func (e *engine) hasOtherMove(last, except, size, viol int, dur int64) bool {
	for _, ed := range e.order[last] {
		if ed.To == except {
			continue
		}
		if _, _, ok := e.admissible(ed.To, ed.Harmonic, size, viol, dur); ok {
			return true
		}
	}

	return false
}

// run seeds, searches, and reports whether the search was exhausted.
func (e *engine) run() (exhausted bool) {
	e.seed()
	e.dfs(-1, 0, 0, 0)

	return !e.aborted
}

// tour returns the incumbent as a successor array over n+1 vertices, where
// vertex n is the anchor and excluded tracks point to themselves.
func (e *engine) tour() []int {
	anchor := e.n
	succ := make([]int, e.n+1)
	for v := range succ {
		succ[v] = v
	}
	if !e.foundAny || len(e.bestPath) == 0 {
		return succ
	}
	prev := anchor
	for _, v := range e.bestPath {
		succ[prev] = v
		prev = v
	}
	succ[prev] = anchor

	return succ
}
