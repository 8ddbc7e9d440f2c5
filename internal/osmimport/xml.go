package osmimport

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"

	"github.com/natevvv/road-spt/pkg/road"
)

// XmlImporter reads an .osm XML file in a single pass
type XmlImporter struct {
	filename string
	roads    []*road.Segment
	logger   *log.Logger
}

func NewXmlImporter(filename string, logger *log.Logger) *XmlImporter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &XmlImporter{filename: filename, roads: make([]*road.Segment, 0), logger: logger}
}

func (xi *XmlImporter) Import(ctx context.Context) error {
	file, err := os.Open(xi.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	segments, err := readXml(ctx, file, xi.logger)
	if err != nil {
		return err
	}
	xi.roads = segments
	return nil
}

func (xi *XmlImporter) Roads() []*road.Segment {
	return xi.roads
}

func readXml(ctx context.Context, r io.Reader, logger *log.Logger) ([]*road.Segment, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	collector := newRoadCollector()

	scanner := osmxml.New(ctx, r)
	defer scanner.Close()

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			collector.addNode(int64(o.ID), o.Lat, o.Lon)
		case *osm.Way:
			nodeIDs := make([]int64, len(o.Nodes))
			for i, wn := range o.Nodes {
				nodeIDs[i] = int64(wn.ID)
			}
			collector.addWay(int64(o.ID), nodeIDs, o.Tags.Map())
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	segments, missing := collector.segments()
	if missing > 0 {
		logger.Warn("nodes missing in extract", "count", missing)
	}
	logger.Info("collected ways", "roads", len(segments))
	return segments, nil
}
