package path

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/road-spt/pkg/graph"
)

func TestNavigator(t *testing.T) {
	g, pos := squareWithShortcut(t)

	for _, algorithm := range []Algorithm{Dijkstra, AStar} {
		t.Run(algorithm.String(), func(t *testing.T) {
			var nav Navigator = NewNavigator(g, algorithm, pos)
			assert.Empty(t, nav.GetPath(0, 3))
			assert.Empty(t, nav.GetSearchSpace())

			assert.Equal(t, 24.5, nav.ComputeShortestPath(0, 3))
			assert.Equal(t, []graph.Vertex{0, 2, 3}, nav.GetPath(0, 3))
			assert.Empty(t, nav.GetPath(1, 3), "path of a different origin")
			assert.Equal(t, nav.GetPqPops(), len(nav.GetSearchSpace()))
			assert.Positive(t, nav.GetPqUpdates())
			assert.GreaterOrEqual(t, nav.GetRelaxationAttempts(), nav.GetEdgeRelaxations())
			assert.Same(t, g, nav.GetGraph())
		})
	}
}

func TestNavigatorUnreachable(t *testing.T) {
	g, err := graph.NewDigraph(3)
	require.NoError(t, err)
	g.AddEdge(graph.MakeDirectedEdge(0, 1, 1))

	nav := NewNavigator(g, Dijkstra, nil)
	assert.Equal(t, -1.0, nav.ComputeShortestPath(0, 2))
	assert.NoError(t, nav.Err())
	assert.Empty(t, nav.GetPath(0, 2))
	assert.Equal(t, []graph.Vertex{0, 1}, nav.GetSearchSpace())
}

func TestNavigatorInvalidQuery(t *testing.T) {
	g, _ := squareWithShortcut(t)
	nav := NewNavigator(g, AStar, nil)
	assert.Equal(t, -1.0, nav.ComputeShortestPath(0, 2))
	assert.ErrorIs(t, nav.Err(), ErrMissingPositions)
	assert.Nil(t, nav.Tree())
	assert.Zero(t, nav.GetPqPops())
}

func TestNavigatorInvalidGraph(t *testing.T) {
	g, err := graph.NewDigraph(2)
	require.NoError(t, err)
	g.AddEdge(graph.MakeDirectedEdge(0, 1, -1))

	nav := NewNavigator(g, Dijkstra, nil)
	assert.Equal(t, -1.0, nav.ComputeShortestPath(0, 1))
	assert.ErrorIs(t, nav.Err(), graph.ErrNegativeWeight)
	assert.Nil(t, nav.Tree())

	// still rejected by the next computation
	assert.Equal(t, -1.0, nav.ComputeShortestPath(0, 1))
	assert.ErrorIs(t, nav.Err(), graph.ErrNegativeWeight)
}

func TestNavigatorOnStaticGraph(t *testing.T) {
	g, pos := squareWithShortcut(t)
	static := graph.NewAdjacencyArrayFromGraph(g)

	nav := NewNavigator(static, AStar, pos)
	assert.Equal(t, 24.5, nav.ComputeShortestPath(0, 3))
	assert.Equal(t, []graph.Vertex{0, 2, 3}, nav.GetPath(0, 3))
	assert.Equal(t, 10.0, nav.ComputeShortestPath(0, 1))
	assert.NoError(t, nav.Err())
	assert.Same(t, static, nav.GetGraph())
}

func ExampleShortestPathTree_Steps() {
	g, _ := graph.NewDigraph(4)
	g.AddEdge(graph.MakeDirectedEdge(0, 1, 1))
	g.AddEdge(graph.MakeDirectedEdge(1, 2, 1))
	g.AddEdge(graph.MakeDirectedEdge(0, 2, 3))
	g.AddEdge(graph.MakeDirectedEdge(2, 3, 1))

	spt, _ := NewShortestPathTree(g, 0, WithTarget(3))
	for event := range spt.Steps() {
		fmt.Printf("step %d: vertex %d at distance %g\n", event.Step, event.Vertex, event.Distance)
	}

	var path []string
	for _, e := range spt.PathTo(3) {
		path = append(path, e.String())
	}
	fmt.Println(spt.State(), strings.Join(path, ", "))
	// Output:
	// step 0: vertex 0 at distance 0
	// step 1: vertex 1 at distance 1
	// step 2: vertex 2 at distance 2
	// step 3: vertex 3 at distance 3
	// found 0->1 1.00, 1->2 1.00, 2->3 1.00
}
