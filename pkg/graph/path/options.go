package path

import (
	"github.com/charmbracelet/log"

	"github.com/natevvv/road-spt/pkg/geometry"
	"github.com/natevvv/road-spt/pkg/graph"
)

const noTarget graph.Vertex = -1

type searchOptions struct {
	target     graph.Vertex
	algorithm  Algorithm
	positions  []geometry.Point
	heuristic  Heuristic
	maxSettled int // 0 means no limit
	validated  bool
	logger     *log.Logger
}

// Option configures a ShortestPathTree
type Option func(*searchOptions)

// Stop the search as soon as t is extracted from the queue
func WithTarget(t graph.Vertex) Option {
	return func(o *searchOptions) { o.target = t }
}

func WithAlgorithm(a Algorithm) Option {
	return func(o *searchOptions) { o.algorithm = a }
}

// Vertex positions, used for the Euclidean heuristic of A*
func WithPositions(pos []geometry.Point) Option {
	return func(o *searchOptions) { o.positions = pos }
}

// Use a custom heuristic for A* instead of the Euclidean distance
func WithHeuristic(h Heuristic) Option {
	return func(o *searchOptions) { o.heuristic = h }
}

// Stop the search after n vertices were settled
func WithMaxSettled(n int) Option {
	return func(o *searchOptions) { o.maxSettled = n }
}

func WithLogger(logger *log.Logger) Option {
	return func(o *searchOptions) { o.logger = logger }
}

// Skip the check of every edge, g was already accepted by graph.Validate.
// The graph must not change afterwards.
func WithValidatedGraph() Option {
	return func(o *searchOptions) { o.validated = true }
}
