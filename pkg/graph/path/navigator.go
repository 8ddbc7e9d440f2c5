package path

import (
	"github.com/charmbracelet/log"

	"github.com/natevvv/road-spt/pkg/geometry"
	"github.com/natevvv/road-spt/pkg/graph"
)

type Navigator interface {
	ComputeShortestPath(origin, destination graph.Vertex) float64 // Compute the shortest path from the origin to the destination. Returns -1 if the destination is unreachable
	GetPath(origin, destination graph.Vertex) []graph.Vertex       // Get the vertices on the path of the previous computation, empty if there is none
	GetSearchSpace() []graph.Vertex                                // Get the settled vertices of the previous computation, in visitation order
	GetPqPops() int                                                // Get the number of priority queue pops of the previous computation
	GetPqUpdates() int                                             // Get the number of priority queue inserts and updates
	GetEdgeRelaxations() int                                       // Get the number of relaxed edges
	GetRelaxationAttempts() int                                    // Get the number of examined edges (some of them did not improve a distance)
	GetGraph() graph.Graph                                         // Get the used graph
}

// SearchNavigator answers one query at a time with a fresh ShortestPathTree.
// It is not safe for concurrent use, create one navigator per goroutine instead.
type SearchNavigator struct {
	g         graph.Graph
	algorithm Algorithm
	positions []geometry.Point
	logger    *log.Logger

	validated bool              // g passed graph.Validate
	tree      *ShortestPathTree // tree of the previous computation
	err       error             // error of the previous computation
}

func NewNavigator(g graph.Graph, algorithm Algorithm, positions []geometry.Point) *SearchNavigator {
	return &SearchNavigator{g: g, algorithm: algorithm, positions: positions}
}

func (n *SearchNavigator) SetLogger(logger *log.Logger) { n.logger = logger }

func (n *SearchNavigator) Algorithm() Algorithm { return n.algorithm }

// The graph is checked by the first computation only, it must not change afterwards.
func (n *SearchNavigator) ComputeShortestPath(origin, destination graph.Vertex) float64 {
	n.tree, n.err = nil, nil
	if !n.validated {
		if n.err = graph.Validate(n.g); n.err == nil {
			n.validated = true
		}
	}
	if n.err == nil {
		n.tree, n.err = NewShortestPathTree(n.g, origin,
			WithTarget(destination),
			WithAlgorithm(n.algorithm),
			WithPositions(n.positions),
			WithLogger(n.logger),
			WithValidatedGraph(),
		)
	}
	if n.err != nil {
		if n.logger != nil {
			n.logger.Error("search failed", "origin", origin, "destination", destination, "err", n.err)
		}
		return -1
	}
	if n.tree.Run() != DoneFound {
		return -1
	}
	return n.tree.DistTo(destination)
}

// Err returns the error of the previous computation, if it could not be started
func (n *SearchNavigator) Err() error { return n.err }

// Tree returns the search tree of the previous computation, nil if there is none
func (n *SearchNavigator) Tree() *ShortestPathTree { return n.tree }

func (n *SearchNavigator) GetPath(origin, destination graph.Vertex) []graph.Vertex {
	if n.tree == nil || n.tree.Source() != origin {
		return make([]graph.Vertex, 0)
	}
	if destination < 0 || destination >= n.g.VertexCount() {
		return make([]graph.Vertex, 0)
	}
	path := n.tree.PathVertices(destination)
	if path == nil {
		return make([]graph.Vertex, 0)
	}
	return path
}

func (n *SearchNavigator) GetSearchSpace() []graph.Vertex {
	if n.tree == nil {
		return make([]graph.Vertex, 0)
	}
	return n.tree.VisitationOrder()
}

func (n *SearchNavigator) GetPqPops() int { return n.kpis().PqPops }

func (n *SearchNavigator) GetPqUpdates() int { return n.kpis().PqUpdates }

func (n *SearchNavigator) GetEdgeRelaxations() int { return n.kpis().RelaxedEdges }

func (n *SearchNavigator) GetRelaxationAttempts() int { return n.kpis().RelaxationAttempts }

func (n *SearchNavigator) GetGraph() graph.Graph { return n.g }

func (n *SearchNavigator) kpis() SearchKPIs {
	if n.tree == nil {
		return SearchKPIs{}
	}
	return n.tree.KPIs()
}
