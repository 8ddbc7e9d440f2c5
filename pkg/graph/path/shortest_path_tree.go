package path

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"math"

	"github.com/charmbracelet/log"

	"github.com/natevvv/road-spt/pkg/graph"
	"github.com/natevvv/road-spt/pkg/queue"
	"github.com/natevvv/road-spt/pkg/slice"
)

var (
	ErrNilGraph          = errors.New("path: graph is nil")
	ErrVertexOutOfRange  = errors.New("path: vertex out of range")
	ErrMissingTarget     = errors.New("path: A* needs a target")
	ErrMissingPositions  = errors.New("path: A* needs a position for every vertex")
	ErrInvalidMaxSettled = errors.New("path: max settled vertices must not be negative")
)

type State int

const (
	Running          State = iota
	DoneFound              // the target was extracted
	DoneExhausted          // the queue ran empty
	DoneLimitReached       // the maximum number of settled vertices was reached
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case DoneFound:
		return "found"
	case DoneExhausted:
		return "exhausted"
	case DoneLimitReached:
		return "limit reached"
	}
	return "INVALID"
}

// SearchEvent describes the extraction of one vertex from the queue
type SearchEvent struct {
	Vertex   graph.Vertex
	Distance float64 // length of the shortest path from the source
	Priority float64 // queue key, Distance plus the heuristic
	Step     int     // position in the visitation order
}

type SearchKPIs struct {
	PqPops             int // pops performed on the priority queue
	PqUpdates          int // inserts and decrease-keys on the priority queue
	RelaxationAttempts int // examined edges
	RelaxedEdges       int // edges which improved a distance
}

// edgeTo entry, ok is false as long as no path to the vertex is known
type predecessor struct {
	edge graph.DirectedEdge
	ok   bool
}

// ShortestPathTree runs a single Dijkstra or A* search from a source vertex.
// The search advances one extraction per Step, so callers can replay it while it runs.
//
// The tree stores the true distance from the source in distTo.
// The queue is keyed by distTo plus the heuristic, which is zero for Dijkstra.
type ShortestPathTree struct {
	g         graph.Graph
	source    graph.Vertex
	target    graph.Vertex // noTarget if the search covers everything reachable
	algorithm Algorithm
	heuristic Heuristic

	distTo          []float64
	edgeTo          []predecessor
	pq              *queue.IndexMinPQ
	settled         slice.FixedSizeSlice
	visitationOrder []graph.Vertex

	state      State
	maxSettled int
	kpis       SearchKPIs
	logger     *log.Logger
}

// Create a new search from source over g. No vertex is extracted until Step or Run is called.
func NewShortestPathTree(g graph.Graph, source graph.Vertex, opts ...Option) (*ShortestPathTree, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o := searchOptions{target: noTarget, algorithm: Dijkstra}
	for _, opt := range opts {
		opt(&o)
	}

	n := g.VertexCount()
	if source < 0 || source >= n {
		return nil, fmt.Errorf("%w: source %d not in [0, %d)", ErrVertexOutOfRange, source, n)
	}
	if o.target != noTarget && (o.target < 0 || o.target >= n) {
		return nil, fmt.Errorf("%w: target %d not in [0, %d)", ErrVertexOutOfRange, o.target, n)
	}
	if o.maxSettled < 0 {
		return nil, ErrInvalidMaxSettled
	}

	heuristic := ZeroHeuristic
	if o.algorithm == AStar {
		if o.target == noTarget {
			return nil, ErrMissingTarget
		}
		switch {
		case o.heuristic != nil:
			heuristic = o.heuristic
		case len(o.positions) < n:
			return nil, fmt.Errorf("%w: got %d positions for %d vertices", ErrMissingPositions, len(o.positions), n)
		default:
			heuristic = EuclideanHeuristic(o.positions)
		}
	}

	if !o.validated {
		if err := graph.Validate(g); err != nil {
			return nil, err
		}
	}

	logger := o.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	spt := &ShortestPathTree{
		g:          g,
		source:     source,
		target:     o.target,
		algorithm:  o.algorithm,
		heuristic:  heuristic,
		distTo:     make([]float64, n),
		edgeTo:     make([]predecessor, n),
		pq:         queue.NewIndexMinPQ(n),
		settled:    slice.MakeFixedSizeSlice(n),
		state:      Running,
		maxSettled: o.maxSettled,
		logger:     logger,
	}
	for v := range spt.distTo {
		spt.distTo[v] = math.Inf(1)
	}
	spt.distTo[source] = 0
	spt.pq.Insert(source, spt.priority(source))
	spt.kpis.PqUpdates++

	logger.Debug("new search", "algorithm", o.algorithm, "source", source, "target", o.target)
	return spt, nil
}

func (spt *ShortestPathTree) priority(v graph.Vertex) float64 {
	if spt.target == noTarget {
		return spt.distTo[v]
	}
	return spt.distTo[v] + spt.heuristic(v, spt.target)
}

// Extract the next vertex and relax its outgoing edges.
// It returns false once the search is done.
func (spt *ShortestPathTree) Step() (SearchEvent, bool) {
	if spt.state != Running {
		return SearchEvent{}, false
	}
	if spt.pq.IsEmpty() {
		spt.finish(DoneExhausted)
		return SearchEvent{}, false
	}

	key := spt.pq.MinKey()
	v := spt.pq.DelMin()
	spt.kpis.PqPops++
	spt.settled.Add(v)
	event := SearchEvent{Vertex: v, Distance: spt.distTo[v], Priority: key, Step: len(spt.visitationOrder)}
	spt.visitationOrder = append(spt.visitationOrder, v)

	if v == spt.target {
		spt.finish(DoneFound)
		return event, true
	}

	for _, e := range spt.g.Adjacent(v) {
		spt.relax(e)
	}

	switch {
	case spt.maxSettled > 0 && spt.settled.Len() >= spt.maxSettled:
		spt.finish(DoneLimitReached)
	case spt.pq.IsEmpty():
		spt.finish(DoneExhausted)
	}
	return event, true
}

// The heuristic term of w is the same for the candidate and the stored priority,
// so comparing true distances is the same as comparing priorities in exact arithmetic.
func (spt *ShortestPathTree) relax(e graph.DirectedEdge) {
	spt.kpis.RelaxationAttempts++
	v, w := e.From, e.To
	candidate := spt.distTo[v] + e.Weight
	if candidate >= spt.distTo[w] {
		return
	}
	spt.distTo[w] = candidate
	spt.edgeTo[w] = predecessor{edge: e, ok: true}
	spt.kpis.RelaxedEdges++

	// a large heuristic can round the smaller distance to the stored key
	key := spt.priority(w)
	switch {
	case !spt.pq.Contains(w):
		spt.pq.Insert(w, key)
	case key < spt.pq.KeyOf(w):
		spt.pq.DecreaseKey(w, key)
	default:
		return
	}
	spt.kpis.PqUpdates++
}

func (spt *ShortestPathTree) finish(state State) {
	spt.state = state
	switch state {
	case DoneFound:
		spt.logger.Debug("found path", "source", spt.source, "target", spt.target, "distance", spt.distTo[spt.target], "settled", spt.settled.Len())
	default:
		spt.logger.Debug("finished search", "state", state, "source", spt.source, "settled", spt.settled.Len())
	}
}

// Steps yields the extraction events lazily. Stopping the iteration pauses the search,
// a later call to Steps or Step continues where it stopped.
func (spt *ShortestPathTree) Steps() iter.Seq[SearchEvent] {
	return func(yield func(SearchEvent) bool) {
		for event, ok := spt.Step(); ok; event, ok = spt.Step() {
			if !yield(event) {
				return
			}
		}
	}
}

// Run the search until it is done
func (spt *ShortestPathTree) Run() State {
	for _, ok := spt.Step(); ok; _, ok = spt.Step() {
	}
	return spt.state
}

func (spt *ShortestPathTree) State() State { return spt.state }

func (spt *ShortestPathTree) Source() graph.Vertex { return spt.source }

// Target of the search, false if the search covers everything reachable
func (spt *ShortestPathTree) Target() (graph.Vertex, bool) {
	return spt.target, spt.target != noTarget
}

func (spt *ShortestPathTree) Algorithm() Algorithm { return spt.algorithm }

func (spt *ShortestPathTree) Graph() graph.Graph { return spt.g }

func (spt *ShortestPathTree) KPIs() SearchKPIs { return spt.kpis }

// Share of the vertices which were settled
func (spt *ShortestPathTree) SettledRatio() float64 { return spt.settled.Ratio() }

// Best known distance from the source to v, +Inf if v was not reached.
// It is final once v was settled or the search is done.
func (spt *ShortestPathTree) DistTo(v graph.Vertex) float64 {
	spt.checkVertex(v)
	return spt.distTo[v]
}

// Check whether a path from the source to v is known. The source always has an empty path.
func (spt *ShortestPathTree) HasPathTo(v graph.Vertex) bool {
	spt.checkVertex(v)
	return v == spt.source || spt.edgeTo[v].ok
}

// Edges of the best known path from the source to v.
// It is nil if no path is known and empty for the source itself.
func (spt *ShortestPathTree) PathTo(v graph.Vertex) []graph.DirectedEdge {
	if !spt.HasPathTo(v) {
		return nil
	}
	path := make([]graph.DirectedEdge, 0)
	for x := v; x != spt.source; x = spt.edgeTo[x].edge.From {
		path = append(path, spt.edgeTo[x].edge)
	}
	slice.ReverseInPlace(path)
	return path
}

// Vertices of the best known path from the source to v, including both ends. It is nil if no path is known.
func (spt *ShortestPathTree) PathVertices(v graph.Vertex) []graph.Vertex {
	edges := spt.PathTo(v)
	if edges == nil {
		return nil
	}
	vertices := make([]graph.Vertex, 0, len(edges)+1)
	vertices = append(vertices, spt.source)
	for _, e := range edges {
		vertices = append(vertices, e.To)
	}
	return vertices
}

// Vertices in the order they were extracted from the queue
func (spt *ShortestPathTree) VisitationOrder() []graph.Vertex {
	order := make([]graph.Vertex, len(spt.visitationOrder))
	copy(order, spt.visitationOrder)
	return order
}

func (spt *ShortestPathTree) NumberOfVisitedVertices() int { return len(spt.visitationOrder) }

// Digraph of the current tree: one edge per vertex with a known predecessor
func (spt *ShortestPathTree) Digraph() *graph.Digraph {
	// the vertex count of g is positive, so this can't fail
	tree, _ := graph.NewDigraph(spt.g.VertexCount())
	for _, p := range spt.edgeTo {
		if p.ok {
			tree.AddEdge(p.edge)
		}
	}
	return tree
}

func (spt *ShortestPathTree) checkVertex(v graph.Vertex) {
	if v < 0 || v >= len(spt.distTo) {
		panic(fmt.Errorf("%w: %d not in [0, %d)", ErrVertexOutOfRange, v, len(spt.distTo)))
	}
}
