package graph

import "fmt"

// UndirectedGraph is an undirected, weighted multigraph.
// Every edge is stored at both of its endpoints, a self-loop twice at the same vertex.
type UndirectedGraph struct {
	adj       [][]UndirectedEdge
	edgeCount int
}

func NewUndirectedGraph(vertexCount int) (*UndirectedGraph, error) {
	if vertexCount <= 0 {
		return nil, ErrInvalidVertexCount
	}
	return &UndirectedGraph{adj: make([][]UndirectedEdge, vertexCount)}, nil
}

// Add the edge v-w. It is counted once, though stored at both endpoints.
func (g *UndirectedGraph) AddEdge(e UndirectedEdge) {
	g.adj[e.V] = append(g.adj[e.V], e)
	g.adj[e.W] = append(g.adj[e.W], e)
	g.edgeCount++
}

// Get all edges incident on v
func (g *UndirectedGraph) Adjacent(v Vertex) []UndirectedEdge {
	return g.adj[v]
}

// Edges returns every edge once.
// The copy stored at the lower endpoint is used; a self-loop is emitted once per two stored copies.
func (g *UndirectedGraph) Edges() []UndirectedEdge {
	edges := make([]UndirectedEdge, 0, g.edgeCount)
	for v, adj := range g.adj {
		selfLoops := 0
		for _, e := range adj {
			switch other := e.Other(v); {
			case other > v:
				edges = append(edges, e)
			case other == v:
				if selfLoops%2 == 0 {
					edges = append(edges, e)
				}
				selfLoops++
			}
		}
	}
	return edges
}

func (g *UndirectedGraph) VertexCount() int {
	return len(g.adj)
}

func (g *UndirectedGraph) EdgeCount() int {
	return g.edgeCount
}

// Degree of v (a self-loop counts twice)
func (g *UndirectedGraph) Degree(v Vertex) int {
	return len(g.adj[v])
}

func (g *UndirectedGraph) String() string {
	return fmt.Sprintf("V=%d, E=%d, edges=%v", g.VertexCount(), g.EdgeCount(), g.Edges())
}
