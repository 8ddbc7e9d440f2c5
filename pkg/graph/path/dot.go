package path

import (
	"strconv"

	"github.com/awalterschulze/gographviz"

	"github.com/natevvv/road-spt/pkg/graph"
)

const dotGraphName = "spt"

// Render the current shortest-path tree in the DOT language.
// Only reached vertices are drawn, the path to the target is highlighted once it was found.
func (spt *ShortestPathTree) DOT() (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(dotGraphName); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	onPath := make(map[graph.Vertex]bool)
	if spt.state == DoneFound {
		for _, v := range spt.PathVertices(spt.target) {
			onPath[v] = true
		}
	}

	for v := range spt.distTo {
		if !spt.HasPathTo(v) {
			continue
		}
		attrs := map[string]string{
			"label": strconv.Quote(strconv.Itoa(v) + " (" + strconv.FormatFloat(spt.distTo[v], 'f', 2, 64) + ")"),
		}
		if spt.settled.Has(v) {
			attrs["style"] = "filled"
		}
		if onPath[v] {
			attrs["color"] = "red"
		}
		if err := g.AddNode(dotGraphName, strconv.Itoa(v), attrs); err != nil {
			return "", err
		}
	}

	for v, p := range spt.edgeTo {
		if !p.ok {
			continue
		}
		attrs := map[string]string{
			"label": strconv.Quote(strconv.FormatFloat(p.edge.Weight, 'f', 2, 64)),
		}
		if onPath[p.edge.From] && onPath[v] {
			attrs["color"] = "red"
		}
		if err := g.AddEdge(strconv.Itoa(p.edge.From), strconv.Itoa(v), true, attrs); err != nil {
			return "", err
		}
	}

	return g.String(), nil
}
