package path

import (
	"container/heap"
	"math"

	"github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/graph"
)

// Outcome tells whether a path query found a route.
type Outcome int

const (
	// NoPath means the members exist but are not connected in the directed
	// sense.
	NoPath Outcome = iota
	// Found means Result holds a route.
	Found
)

func (o Outcome) String() string {
	if o == Found {
		return "found"
	}
	return "no_path"
}

// Step is one traversed relationship.
type Step struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
	Kind   string  `json:"kind"`
}

// Result is the answer to a shortest-path query.
type Result struct {
	Outcome     Outcome  `json:"-"`
	Nodes       []string `json:"nodes,omitempty"`
	TotalWeight float64  `json:"total_weight"`
	Steps       []Step   `json:"steps,omitempty"`
}

// Found reports whether a path was found.
func (r Result) Found() bool { return r.Outcome == Found }

// Hops returns the number of relationships on the path.
func (r Result) Hops() int { return len(r.Steps) }

// Contains reports whether member id lies on the path.
func (r Result) Contains(id string) bool {
	for _, n := range r.Nodes {
		if n == id {
			return true
		}
	}
	return false
}

// HasStep reports whether the path traverses from → to.
func (r Result) HasStep(from, to string) bool {
	for _, s := range r.Steps {
		if s.From == from && s.To == to {
			return true
		}
	}
	return false
}

// ShortestPath returns the minimum-total-weight directed path from source to
// target.
//
// Returns an error coded INVALID_QUERY if g is nil, either member is unknown,
// or source == target. A disconnected pair is not an error: the result has
// Outcome NoPath. g is never modified.
func ShortestPath(g *graph.Graph, source, target string) (Result, error) {
	if err := validateQuery(g, source, target); err != nil {
		return Result{}, err
	}

	s := newSearch(g, source)
	s.run(target)

	if _, reached := s.settled[target]; !reached {
		return Result{Outcome: NoPath}, nil
	}
	return s.result(target), nil
}

// DistancesFrom returns the shortest distance from source to every member
// reachable from it, including source itself at distance 0.
func DistancesFrom(g *graph.Graph, source string) (map[string]float64, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidQuery, "graph is nil")
	}
	if !g.HasNode(source) {
		return nil, errors.New(errors.ErrCodeInvalidQuery, "unknown member %q", source)
	}
	s := newSearch(g, source)
	s.run("")

	out := make(map[string]float64, len(s.settled))
	for id := range s.settled {
		out[id] = s.dist[id]
	}
	return out, nil
}

func validateQuery(g *graph.Graph, source, target string) error {
	if g == nil {
		return errors.New(errors.ErrCodeInvalidQuery, "graph is nil")
	}
	if source == target {
		return errors.New(errors.ErrCodeInvalidQuery, "source and target are the same member %q", source)
	}
	if !g.HasNode(source) {
		return errors.New(errors.ErrCodeInvalidQuery, "unknown source member %q", source)
	}
	if !g.HasNode(target) {
		return errors.New(errors.ErrCodeInvalidQuery, "unknown target member %q", target)
	}
	return nil
}

// search holds the mutable state of one Dijkstra run. It never writes to the
// graph, so concurrent searches over the same graph are independent.
type search struct {
	g       *graph.Graph
	dist    map[string]float64
	prev    map[string]graph.Edge // edge used to reach each member
	settled map[string]struct{}
	pq      frontier
	seq     uint64
}

func newSearch(g *graph.Graph, source string) *search {
	s := &search{
		g:       g,
		dist:    map[string]float64{source: 0},
		prev:    make(map[string]graph.Edge),
		settled: make(map[string]struct{}),
	}
	s.push(source, 0)
	return s
}

func (s *search) push(id string, d float64) {
	heap.Push(&s.pq, &entry{id: id, dist: d, seq: s.seq})
	s.seq++
}

// run settles members in order of distance until the heap is empty or, if
// target is non-empty, target has been settled.
func (s *search) run(target string) {
	for s.pq.Len() > 0 {
		item := heap.Pop(&s.pq).(*entry)
		u := item.id
		if _, done := s.settled[u]; done {
			continue
		}
		s.settled[u] = struct{}{}
		if u == target {
			return
		}
		s.relax(u)
	}
}

func (s *search) relax(u string) {
	du := s.dist[u]
	for e := range s.g.Out(u) {
		if e.IsSelfLoop() {
			continue
		}
		if _, done := s.settled[e.To]; done {
			continue
		}
		nd := du + e.Weight
		if cur, seen := s.dist[e.To]; seen && nd >= cur {
			continue
		}
		s.dist[e.To] = nd
		s.prev[e.To] = e
		s.push(e.To, nd)
	}
}

// result walks predecessors back from target.
func (s *search) result(target string) Result {
	var steps []Step
	for at := target; ; {
		e, ok := s.prev[at]
		if !ok {
			break
		}
		steps = append(steps, Step{From: e.From, To: e.To, Weight: e.Weight, Kind: e.Kind})
		at = e.From
	}
	// steps were collected target-first
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}

	nodes := make([]string, 0, len(steps)+1)
	total := 0.0
	if len(steps) > 0 {
		nodes = append(nodes, steps[0].From)
	}
	for _, st := range steps {
		nodes = append(nodes, st.To)
		total += st.Weight
	}
	return Result{Outcome: Found, Nodes: nodes, TotalWeight: total, Steps: steps}
}

// entry is a frontier item. Stale entries (superseded by a shorter
// distance) stay in the heap and are skipped when popped.
type entry struct {
	id   string
	dist float64
	seq  uint64
}

// frontier is a min-heap ordered by distance, then discovery sequence.
type frontier []*entry

func (pq frontier) Len() int { return len(pq) }

func (pq frontier) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].seq < pq[j].seq
}

func (pq frontier) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *frontier) Push(x any) { *pq = append(*pq, x.(*entry)) }

func (pq *frontier) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

// Distance returns dist[id] from a DistancesFrom table, or +Inf when id is
// unreachable.
func Distance(table map[string]float64, id string) float64 {
	if d, ok := table[id]; ok {
		return d
	}
	return math.Inf(1)
}
