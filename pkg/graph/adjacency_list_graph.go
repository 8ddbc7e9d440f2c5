package graph

import (
	"slices"
)

// Digraph is a directed, weighted multigraph.
// Parallel edges are separate entries in the adjacency list of their source and are relaxed independently.
type Digraph struct {
	adj       [][]DirectedEdge // outgoing edges per vertex
	edgeCount int
}

// Create a digraph with vertexCount vertices and no edges
func NewDigraph(vertexCount int) (*Digraph, error) {
	if vertexCount <= 0 {
		return nil, ErrInvalidVertexCount
	}
	return &Digraph{adj: make([][]DirectedEdge, vertexCount)}, nil
}

// Add the edge to the adjacency list of its source.
// The endpoints are not checked, see AddEdgeChecked.
func (d *Digraph) AddEdge(e DirectedEdge) {
	d.adj[e.From] = append(d.adj[e.From], e)
	d.edgeCount++
}

// Add the edge after verifying that both endpoints are vertices of the graph
func (d *Digraph) AddEdgeChecked(e DirectedEdge) error {
	if err := checkVertex(e.From, d.VertexCount()); err != nil {
		return err
	}
	if err := checkVertex(e.To, d.VertexCount()); err != nil {
		return err
	}
	d.AddEdge(e)
	return nil
}

// Remove one stored copy of e. Returns false if e is not in the graph.
func (d *Digraph) RemoveEdge(e DirectedEdge) bool {
	edges := d.adj[e.From]
	i := slices.Index(edges, e)
	if i < 0 {
		return false
	}
	d.adj[e.From] = slices.Delete(edges, i, i+1)
	d.edgeCount--
	return true
}

// Get the outgoing edges of v
func (d *Digraph) Adjacent(v Vertex) []DirectedEdge {
	return d.adj[v]
}

// All edges of the graph, grouped by source vertex
func (d *Digraph) Edges() []DirectedEdge {
	edges := make([]DirectedEdge, 0, d.edgeCount)
	for _, adj := range d.adj {
		edges = append(edges, adj...)
	}
	return edges
}

// Return the number of vertices
func (d *Digraph) VertexCount() int {
	return len(d.adj)
}

// Return the number of stored edges (parallel edges are counted individually)
func (d *Digraph) EdgeCount() int {
	return d.edgeCount
}

// Return a human readable string of the graph
func (d *Digraph) AsString() string {
	return GraphAsString(d)
}
