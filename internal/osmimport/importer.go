// Package osmimport reads the drivable roads of an OSM extract.
package osmimport

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/natevvv/road-spt/pkg/road"
)

var ErrUnknownFormat = errors.New("osmimport: unknown file format")

type Importer interface {
	Import(ctx context.Context) error
	Roads() []*road.Segment
}

// Pick the importer by file extension: .osm.pbf/.pbf or .osm/.xml
func NewImporter(filename string, logger *log.Logger) (Importer, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".pbf"):
		return NewPbfImporter(filename, logger), nil
	case strings.HasSuffix(name, ".osm"), strings.HasSuffix(name, ".xml"):
		return NewXmlImporter(filename, logger), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Ext(filename))
}

// way of a road whose node coordinates are not resolved yet
type pendingWay struct {
	segment *road.Segment
	nodeIDs []int64
}

// roadCollector gathers road ways and node coordinates, which may arrive in any order
type roadCollector struct {
	ways   []pendingWay
	needed map[int64]bool
	coords map[int64]road.Node
}

func newRoadCollector() *roadCollector {
	return &roadCollector{
		needed: make(map[int64]bool),
		coords: make(map[int64]road.Node),
	}
}

func (c *roadCollector) addWay(id int64, nodeIDs []int64, tags map[string]string) bool {
	segment := road.NewSegment(id, tags)
	if segment == nil {
		return false
	}
	c.ways = append(c.ways, pendingWay{segment: segment, nodeIDs: nodeIDs})
	for _, nodeID := range nodeIDs {
		c.needed[nodeID] = true
	}
	return true
}

func (c *roadCollector) addNode(id int64, lat, lon float64) {
	c.coords[id] = road.Node{ID: id, Lat: lat, Lon: lon}
}

// Resolve the node coordinates of all ways. Nodes missing in the extract are skipped,
// ways with less than two known nodes are dropped.
func (c *roadCollector) segments() (segments []*road.Segment, missingNodes int) {
	segments = make([]*road.Segment, 0, len(c.ways))
	for _, way := range c.ways {
		way.segment.Nodes = make([]road.Node, 0, len(way.nodeIDs))
		for _, nodeID := range way.nodeIDs {
			node, ok := c.coords[nodeID]
			if !ok {
				missingNodes++
				continue
			}
			way.segment.Nodes = append(way.segment.Nodes, node)
		}
		if len(way.segment.Nodes) >= 2 {
			segments = append(segments, way.segment)
		}
	}
	return segments, missingNodes
}
