package graph

import (
	"fmt"
	"strconv"
)

// DirectedEdge is a weighted edge from -> to. It is immutable after creation.
type DirectedEdge struct {
	From   Vertex
	To     Vertex
	Weight float64
}

func MakeDirectedEdge(from, to Vertex, weight float64) DirectedEdge {
	return DirectedEdge{From: from, To: to, Weight: weight}
}

// The same edge, pointing in the other direction
func (e DirectedEdge) Invert() DirectedEdge {
	return DirectedEdge{From: e.To, To: e.From, Weight: e.Weight}
}

func (e DirectedEdge) String() string {
	return fmt.Sprintf("%d->%d %.2f", e.From, e.To, e.Weight)
}

// UndirectedEdge is a weighted edge v-w. It is symmetric in its endpoints.
type UndirectedEdge struct {
	V      Vertex
	W      Vertex
	Weight float64
}

func MakeUndirectedEdge(v, w Vertex, weight float64) UndirectedEdge {
	return UndirectedEdge{V: v, W: w, Weight: weight}
}

// Either endpoint of the edge
func (e UndirectedEdge) Either() Vertex { return e.V }

// Other returns the endpoint which is not v.
// It panics if v is no endpoint of the edge.
func (e UndirectedEdge) Other(v Vertex) Vertex {
	switch v {
	case e.V:
		return e.W
	case e.W:
		return e.V
	}
	panic(fmt.Sprintf("vertex %d is no endpoint of edge %v", v, e))
}

func (e UndirectedEdge) String() string {
	return fmt.Sprintf("%d-%d %.2f", e.V, e.W, e.Weight)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
