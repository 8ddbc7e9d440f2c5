package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squareNetwork = `4
5
# vertices
0 0 0
1 10 0
2 10 10
3 0 10
# roads
0 1
1 2
2 3
3 0
0 2
`

func TestReadNetwork(t *testing.T) {
	n, err := ReadNetwork(strings.NewReader(squareNetwork))
	require.NoError(t, err)

	assert.Equal(t, 4, n.VertexCount())
	assert.Equal(t, 10, n.Digraph.EdgeCount())
	assert.Equal(t, 5, n.Graph.EdgeCount())
	assert.Equal(t, 10.0, n.Positions[2].X())
	assert.Equal(t, 10.0, n.Positions[2].Y())

	// every road is stored in both directions, weighted by its length
	assert.Contains(t, n.Digraph.Adjacent(0), MakeDirectedEdge(0, 1, 10))
	assert.Contains(t, n.Digraph.Adjacent(1), MakeDirectedEdge(1, 0, 10))
	for _, e := range n.Digraph.Adjacent(2) {
		if e.To == 0 {
			assert.InDelta(t, 14.142135, e.Weight, 1e-6)
		}
	}
}

func TestNetworkRoundTrip(t *testing.T) {
	n, err := ReadNetwork(strings.NewReader(squareNetwork))
	require.NoError(t, err)

	var first bytes.Buffer
	require.NoError(t, WriteNetwork(&first, n))

	n2, err := ReadNetwork(bytes.NewReader(first.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, n.Digraph.AsString(), n2.Digraph.AsString())

	var second bytes.Buffer
	require.NoError(t, WriteNetwork(&second, n2))
	assert.Equal(t, first.String(), second.String())
}

func TestReadNetworkErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", ErrMalformedNetwork},
		{"bad vertex count", "x\n0\n", ErrMalformedNetwork},
		{"zero vertices", "0\n0\n", ErrInvalidVertexCount},
		{"bad edge count", "1\nx\n", ErrMalformedNetwork},
		{"missing vertices", "2\n0\n0 1 1\n", ErrMalformedNetwork},
		{"bad coordinates", "1\n0\n0 a 1\n", ErrMalformedNetwork},
		{"vertex out of range", "1\n0\n3 1 1\n", ErrVertexOutOfRange},
		{"edge out of range", "1\n1\n0 1 1\n0 1\n", ErrVertexOutOfRange},
		{"bad edge", "1\n1\n0 1 1\n0\n", ErrMalformedNetwork},
		{"duplicate vertex", "2\n0\n0 1 1\n0 2 2\n", ErrMalformedNetwork},
		{"NaN coordinate", "1\n0\n0 NaN 1\n", ErrMalformedNetwork},
		{"infinite coordinate", "1\n0\n0 1 -Inf\n", ErrMalformedNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadNetwork(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDigraphAsString(t *testing.T) {
	d, _ := NewDigraph(2)
	d.AddEdge(MakeDirectedEdge(0, 1, 1.5))
	d.AddEdge(MakeDirectedEdge(1, 0, 2))
	assert.Equal(t, "2\n2\n0 1 1.5\n1 0 2\n", d.AsString())
}
