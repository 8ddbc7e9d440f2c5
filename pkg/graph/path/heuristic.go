package path

import (
	"errors"
	"fmt"
	"strings"

	"github.com/natevvv/road-spt/pkg/geometry"
	"github.com/natevvv/road-spt/pkg/graph"
)

var ErrUnknownAlgorithm = errors.New("path: unknown algorithm")

// Heuristic estimates the remaining distance from v to the target t.
// A* finds optimal paths as long as the estimate never exceeds the true distance.
type Heuristic func(v, t graph.Vertex) float64

// ZeroHeuristic turns A* into plain Dijkstra
func ZeroHeuristic(v, t graph.Vertex) float64 { return 0 }

// EuclideanHeuristic uses the straight-line distance between the positions of v and t.
// It is consistent whenever the edge weights are the Euclidean lengths of the edges.
func EuclideanHeuristic(pos []geometry.Point) Heuristic {
	return func(v, t graph.Vertex) float64 {
		return geometry.Distance(pos, v, t)
	}
}

type Algorithm int

const (
	Dijkstra Algorithm = iota
	AStar
)

func (a Algorithm) String() string {
	switch a {
	case Dijkstra:
		return "dijkstra"
	case AStar:
		return "astar"
	}
	return "INVALID"
}

// Parse the algorithm name as used on the command line and in requests
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dijkstra", "dijk":
		return Dijkstra, nil
	case "astar", "a*":
		return AStar, nil
	}
	return Dijkstra, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Set implements pflag.Value
func (a *Algorithm) Set(name string) error {
	parsed, err := ParseAlgorithm(name)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a *Algorithm) Type() string { return "algorithm" }
