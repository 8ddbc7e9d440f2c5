package graph

import (
	"fmt"
)

// AdjacencyArrayGraph is an immutable, compact copy of a directed graph.
// All edges are kept in one array, the edges of vertex v are edges[offsets[v]:offsets[v+1]].
type AdjacencyArrayGraph struct {
	edges   []DirectedEdge
	offsets []int
}

// Create an AdjacencyArrayGraph from the given graph
func NewAdjacencyArrayFromGraph(g Graph) *AdjacencyArrayGraph {
	edges := make([]DirectedEdge, 0, g.EdgeCount())
	offsets := make([]int, g.VertexCount()+1)

	for v := 0; v < g.VertexCount(); v++ {
		// add all edges of the vertex
		edges = append(edges, g.Adjacent(v)...)

		// set stop-offset
		offsets[v+1] = len(edges)
	}

	return &AdjacencyArrayGraph{edges: edges, offsets: offsets}
}

// Get the edges for the given vertex
func (aag *AdjacencyArrayGraph) Adjacent(v Vertex) []DirectedEdge {
	if v < 0 || v >= aag.VertexCount() {
		panic(fmt.Sprintf("Vertex %d is not contained in the graph.", v))
	}
	// cap the slice, appending to it must not overwrite the next vertex
	return aag.edges[aag.offsets[v]:aag.offsets[v+1]:aag.offsets[v+1]]
}

// Returns the number of vertices in the graph
func (aag *AdjacencyArrayGraph) VertexCount() int {
	return len(aag.offsets) - 1
}

// Returns the total number of edges in the graph
func (aag *AdjacencyArrayGraph) EdgeCount() int {
	return len(aag.edges)
}

// Returns a human readable string of the graph
func (aag *AdjacencyArrayGraph) AsString() string {
	return GraphAsString(aag)
}
