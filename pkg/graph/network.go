package graph

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/natevvv/road-spt/pkg/geometry"
)

// network parse states
const (
	parseVertexCount = iota
	parseEdgeCount
	parseVertices
	parseEdges
)

// Network is a road network: the digraph used for searching, the undirected graph used for drawing and the vertex positions.
type Network struct {
	Digraph   *Digraph
	Graph     *UndirectedGraph
	Positions []geometry.Point
}

// Create an empty network with vertexCount vertices, all positioned at the origin
func NewNetwork(vertexCount int) (*Network, error) {
	d, err := NewDigraph(vertexCount)
	if err != nil {
		return nil, err
	}
	g, err := NewUndirectedGraph(vertexCount)
	if err != nil {
		return nil, err
	}
	return &Network{Digraph: d, Graph: g, Positions: make([]geometry.Point, vertexCount)}, nil
}

// Add the road v-w. The weight is the distance between the positions of v and w.
// The road is added to the digraph in both directions.
func (n *Network) AddRoad(v, w Vertex) error {
	if err := checkVertex(v, n.VertexCount()); err != nil {
		return err
	}
	if err := checkVertex(w, n.VertexCount()); err != nil {
		return err
	}
	weight := geometry.Distance(n.Positions, v, w)
	e := MakeDirectedEdge(v, w, weight)
	n.Digraph.AddEdge(e)
	n.Digraph.AddEdge(e.Invert())
	n.Graph.AddEdge(MakeUndirectedEdge(v, w, weight))
	return nil
}

func (n *Network) VertexCount() int {
	return n.Digraph.VertexCount()
}

// Static returns a compact, immutable copy of the search digraph
func (n *Network) Static() *AdjacencyArrayGraph {
	return NewAdjacencyArrayFromGraph(n.Digraph)
}

// ReadNetwork parses a network:
//
//	V
//	E
//	<vertex> <x> <y>   (V lines)
//	<v> <w>            (remaining lines)
//
// Empty lines and lines starting with '#' are skipped.
// The edge count E is informational, the edge lines are authoritative.
func ReadNetwork(r io.Reader) (*Network, error) {
	scanner := bufio.NewScanner(r)

	var n *Network
	numVertices := 0
	numParsedVertices := 0
	var seen []bool
	lineNumber := 0

	malformed := func(format string, args ...any) error {
		return fmt.Errorf("%w: line %d: %s", ErrMalformedNetwork, lineNumber, fmt.Sprintf(format, args...))
	}

	parseState := parseVertexCount
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 1 || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		switch parseState {
		case parseVertexCount:
			val, err := strconv.Atoi(line)
			if err != nil {
				return nil, malformed("vertex count %q", line)
			}
			if n, err = NewNetwork(val); err != nil {
				return nil, err
			}
			numVertices = val
			seen = make([]bool, val)
			parseState = parseEdgeCount
		case parseEdgeCount:
			if _, err := strconv.Atoi(line); err != nil {
				return nil, malformed("edge count %q", line)
			}
			parseState = parseVertices
		case parseVertices:
			if len(fields) != 3 {
				return nil, malformed("expected \"<vertex> <x> <y>\", got %q", line)
			}
			v, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, malformed("vertex %q", fields[0])
			}
			if err := checkVertex(v, numVertices); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			if seen[v] {
				return nil, malformed("duplicate vertex %d", v)
			}
			seen[v] = true
			x, errX := strconv.ParseFloat(fields[1], 64)
			y, errY := strconv.ParseFloat(fields[2], 64)
			if errX != nil || errY != nil {
				return nil, malformed("coordinates of vertex %d", v)
			}
			if !isFinite(x) || !isFinite(y) {
				return nil, malformed("coordinates of vertex %d are not finite", v)
			}
			n.Positions[v] = geometry.MakePoint(x, y)
			numParsedVertices++
			if numParsedVertices == numVertices {
				parseState = parseEdges
			}
		case parseEdges:
			if len(fields) != 2 {
				return nil, malformed("expected \"<v> <w>\", got %q", line)
			}
			v, errV := strconv.Atoi(fields[0])
			w, errW := strconv.Atoi(fields[1])
			if errV != nil || errW != nil {
				return nil, malformed("edge %q", line)
			}
			if err := n.AddRoad(v, w); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("%w: missing vertex count", ErrMalformedNetwork)
	}
	if numParsedVertices != numVertices {
		return nil, fmt.Errorf("%w: expected %d vertices, got %d", ErrMalformedNetwork, numVertices, numParsedVertices)
	}

	return n, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Read a network from the given file
func ReadNetworkFile(filename string) (*Network, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	n, err := ReadNetwork(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return n, nil
}

// WriteNetwork writes the network in the format understood by ReadNetwork
func WriteNetwork(w io.Writer, n *Network) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d\n%d\n", n.VertexCount(), n.Graph.EdgeCount())
	for v, p := range n.Positions {
		fmt.Fprintf(bw, "%d %s %s\n", v, formatFloat(p.X()), formatFloat(p.Y()))
	}
	for _, e := range n.Graph.Edges() {
		fmt.Fprintf(bw, "%d %d\n", e.V, e.W)
	}

	return bw.Flush()
}

// Write the network to the given file
func WriteNetworkFile(n *Network, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := WriteNetwork(file, n); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
