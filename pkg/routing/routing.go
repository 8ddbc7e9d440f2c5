package routing

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/dhconnelly/rtreego"

	"github.com/natevvv/road-spt/pkg/geometry"
	"github.com/natevvv/road-spt/pkg/graph"
	"github.com/natevvv/road-spt/pkg/graph/path"
)

var ErrUnknownNavigator = errors.New("routing: unknown navigator")

// half side length of the rectangle which represents a vertex in the spatial index
const vertexTolerance = 1e-9

type Route struct {
	Source    graph.Vertex
	Target    graph.Vertex
	Algorithm path.Algorithm
	Exists    bool                 // false if the target is unreachable
	Length    float64              // sum of the edge weights
	Edges     []graph.DirectedEdge // edges from source to target
	Waypoints []geometry.Point     // positions of the vertices on the path, source and target included
	Vertices  []graph.Vertex       // vertices from source to target
	Visited   int                  // number of settled vertices
}

// vertex entry of the spatial index
type vertexEntry struct {
	vertex graph.Vertex
	rect   rtreego.Rect
}

func (e *vertexEntry) Bounds() rtreego.Rect { return e.rect }

// Router computes routes on a road network.
// It is safe for concurrent use, the network is never modified.
type Router struct {
	network *graph.Network
	static  *graph.AdjacencyArrayGraph // searched graph, validated once
	index   *rtreego.Rtree
	logger  *log.Logger

	mu          sync.Mutex
	algorithm   path.Algorithm
	searchSpace []graph.Vertex // visitation order of the previous route
}

// Create a new router. navigator selects the algorithm, nil uses Dijkstra.
// The network must not change afterwards.
func NewRouter(n *graph.Network, navigator *string, logger *log.Logger) (*Router, error) {
	static := n.Static()
	if err := graph.Validate(static); err != nil {
		return nil, err
	}

	entries := make([]rtreego.Spatial, len(n.Positions))
	for v, p := range n.Positions {
		entries[v] = &vertexEntry{vertex: v, rect: rtreego.Point{p.X(), p.Y()}.ToRect(vertexTolerance)}
	}

	r := &Router{
		network: n,
		static:  static,
		index:   rtreego.NewTree(2, 25, 50, entries...),
		logger:  logger,
	}

	if navigator != nil && !r.SetNavigator(*navigator) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNavigator, *navigator)
	}
	return r, nil
}

// Select the algorithm for the following routes. It returns false for an unknown algorithm.
func (r *Router) SetNavigator(navigator string) bool {
	algorithm, err := path.ParseAlgorithm(navigator)
	if err != nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.algorithm = algorithm
	return true
}

func (r *Router) Algorithm() path.Algorithm {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.algorithm
}

func (r *Router) Network() *graph.Network { return r.network }

// Compute the shortest route from source to target with the selected algorithm.
// An unreachable target is no error, the route just doesn't exist.
func (r *Router) ComputeRoute(source, target graph.Vertex) (Route, error) {
	return r.ComputeRouteWithAlgorithm(r.Algorithm(), source, target)
}

// NewSearch prepares the search for the route from source to target without running it
func (r *Router) NewSearch(algorithm path.Algorithm, source, target graph.Vertex) (*path.ShortestPathTree, error) {
	return path.NewShortestPathTree(r.static, source,
		path.WithTarget(target),
		path.WithAlgorithm(algorithm),
		path.WithPositions(r.network.Positions),
		path.WithLogger(r.logger),
		path.WithValidatedGraph(),
	)
}

// Compute the shortest route with the given algorithm, regardless of the selected one
func (r *Router) ComputeRouteWithAlgorithm(algorithm path.Algorithm, source, target graph.Vertex) (Route, error) {
	spt, err := r.NewSearch(algorithm, source, target)
	if err != nil {
		return Route{}, err
	}
	spt.Run()

	r.mu.Lock()
	r.searchSpace = spt.VisitationOrder()
	r.mu.Unlock()

	route := Route{
		Source:    source,
		Target:    target,
		Algorithm: algorithm,
		Visited:   spt.NumberOfVisitedVertices(),
	}
	if !spt.HasPathTo(target) {
		return route, nil
	}

	vertices := spt.PathVertices(target)
	route.Exists = true
	route.Vertices = vertices
	route.Length = spt.DistTo(target)
	route.Edges = spt.PathTo(target)
	route.Waypoints = r.buildWaypoints(vertices)
	return route, nil
}

// Compute the route between the vertices closest to origin and destination
func (r *Router) ComputeRouteFromPoints(origin, destination geometry.Point) (Route, error) {
	return r.ComputeRoute(r.NearestVertex(origin), r.NearestVertex(destination))
}

// Vertex closest to the point p
func (r *Router) NearestVertex(p geometry.Point) graph.Vertex {
	nearest := r.index.NearestNeighbor(rtreego.Point{p.X(), p.Y()})
	return nearest.(*vertexEntry).vertex
}

// Positions of all vertices
func (r *Router) GetNodes() []geometry.Point {
	return r.network.Positions
}

// Positions of the vertices settled by the previous route, in visitation order
func (r *Router) GetSearchSpace() []geometry.Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buildWaypoints(r.searchSpace)
}

func (r *Router) buildWaypoints(vertices []graph.Vertex) []geometry.Point {
	waypoints := make([]geometry.Point, 0, len(vertices))
	for _, v := range vertices {
		waypoints = append(waypoints, r.network.Positions[v])
	}
	return waypoints
}
