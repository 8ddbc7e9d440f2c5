package osmimport

import (
	"context"
	"errors"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/qedus/osmpbf"

	"github.com/natevvv/road-spt/pkg/road"
)

// PbfImporter reads an .osm.pbf file in two passes: road ways first, then the coordinates of their nodes
type PbfImporter struct {
	filename string
	roads    []*road.Segment
	logger   *log.Logger
}

func NewPbfImporter(filename string, logger *log.Logger) *PbfImporter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &PbfImporter{
		filename: filename,
		roads:    make([]*road.Segment, 0),
		logger:   logger,
	}
}

func (pi *PbfImporter) Import(ctx context.Context) error {
	collector := newRoadCollector()

	if err := pi.decode(ctx, func(v any) {
		if way, ok := v.(*osmpbf.Way); ok {
			collector.addWay(way.ID, way.NodeIDs, way.Tags)
		}
	}); err != nil {
		return err
	}
	pi.logger.Info("collected ways", "roads", len(collector.ways), "nodes", len(collector.needed))

	if err := pi.decode(ctx, func(v any) {
		if node, ok := v.(*osmpbf.Node); ok && collector.needed[node.ID] {
			collector.addNode(node.ID, node.Lat, node.Lon)
		}
	}); err != nil {
		return err
	}

	segments, missing := collector.segments()
	if missing > 0 {
		pi.logger.Warn("nodes missing in extract", "count", missing)
	}
	pi.roads = segments
	return nil
}

// Decode the whole file and pass every entity to handle
func (pi *PbfImporter) decode(ctx context.Context, handle func(v any)) error {
	file, err := os.Open(pi.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		v, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		handle(v)
	}
}

func (pi *PbfImporter) Roads() []*road.Segment {
	return pi.roads
}
