package road

import (
	"errors"

	"github.com/natevvv/road-spt/pkg/geometry"
	"github.com/natevvv/road-spt/pkg/graph"
)

var ErrNoRoads = errors.New("road: no segment with at least two nodes")

// BuildNetwork turns segments into a road network. Every OSM node becomes one vertex,
// nodes shared by several segments connect them. Positions are web mercator metres.
//
// The network format has no direction, so one-way segments become roads in both directions.
func BuildNetwork(segments []*Segment) (*graph.Network, error) {
	ids := make(map[int64]graph.Vertex)
	var nodes []Node
	for _, seg := range segments {
		if len(seg.Nodes) < 2 {
			continue
		}
		for _, node := range seg.Nodes {
			if _, ok := ids[node.ID]; !ok {
				ids[node.ID] = len(nodes)
				nodes = append(nodes, node)
			}
		}
	}
	if len(nodes) == 0 {
		return nil, ErrNoRoads
	}

	n, err := graph.NewNetwork(len(nodes))
	if err != nil {
		return nil, err
	}
	for v, node := range nodes {
		n.Positions[v] = geometry.FromLatLon(node.Lat, node.Lon)
	}

	for _, seg := range segments {
		if len(seg.Nodes) < 2 {
			continue
		}
		for i := 0; i < len(seg.Nodes)-1; i++ {
			v, w := ids[seg.Nodes[i].ID], ids[seg.Nodes[i+1].ID]
			if v == w {
				continue
			}
			if err := n.AddRoad(v, w); err != nil {
				return nil, err
			}
		}
	}
	return n, nil
}
