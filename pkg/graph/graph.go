package graph

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// A vertex is identified by its position in [0, V)
type Vertex = int

var (
	ErrInvalidVertexCount = errors.New("graph: vertex count must be positive")
	ErrVertexOutOfRange   = errors.New("graph: vertex out of range")
	ErrNegativeWeight     = errors.New("graph: edge weight must be a non-negative number")
	ErrMalformedNetwork   = errors.New("graph: malformed network")
)

// Graph is the read-only view of a directed, weighted graph which is needed for path finding.
type Graph interface {
	VertexCount() int
	EdgeCount() int
	Adjacent(v Vertex) []DirectedEdge // outgoing edges of v. Must not be modified by the caller
	AsString() string
}

// Validate checks that every edge of g stays in range and has a non-negative weight
func Validate(g Graph) error {
	n := g.VertexCount()
	for v := 0; v < n; v++ {
		for _, e := range g.Adjacent(v) {
			if e.From != v || e.To < 0 || e.To >= n {
				return fmt.Errorf("%w: edge %v stored at vertex %d", ErrVertexOutOfRange, e, v)
			}
			if e.Weight < 0 || math.IsNaN(e.Weight) {
				return fmt.Errorf("%w: edge %v", ErrNegativeWeight, e)
			}
		}
	}
	return nil
}

func checkVertex(v Vertex, n int) error {
	if v < 0 || v >= n {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrVertexOutOfRange, v, n)
	}
	return nil
}

// Returns a human readable string of the graph: the vertex count, the edge count and one line per edge
func GraphAsString(g Graph) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%v\n", g.VertexCount()))
	sb.WriteString(fmt.Sprintf("%v\n", g.EdgeCount()))

	// list all edges structured as "from to weight"
	for v := 0; v < g.VertexCount(); v++ {
		for _, e := range g.Adjacent(v) {
			sb.WriteString(fmt.Sprintf("%v %v %v\n", e.From, e.To, formatFloat(e.Weight)))
		}
	}
	return sb.String()
}
