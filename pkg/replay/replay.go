// Package replay turns a running search into frames for animations and map overlays.
package replay

import (
	"bufio"
	"encoding/json"
	"io"
	"iter"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/natevvv/road-spt/pkg/geometry"
	"github.com/natevvv/road-spt/pkg/graph"
	"github.com/natevvv/road-spt/pkg/graph/path"
)

// Frame shows the search right after a vertex was settled
type Frame struct {
	Step     int
	Vertex   graph.Vertex
	Distance float64
	Path     []graph.Vertex // best path from the source to Vertex
	Line     orb.LineString // positions along Path
	Settled  []graph.Vertex // all vertices settled so far, in visitation order. Shared between frames, do not modify
	Final    bool           // the search is done after this frame
}

// Frames drives the search and yields one frame per extracted vertex.
// The search advances only as far as the frames are consumed.
func Frames(spt *path.ShortestPathTree, pos []geometry.Point) iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		// frames hold capped prefixes of settled
		var settled []graph.Vertex
		for event := range spt.Steps() {
			settled = append(settled, event.Vertex)
			vertices := spt.PathVertices(event.Vertex)
			frame := Frame{
				Step:     event.Step,
				Vertex:   event.Vertex,
				Distance: event.Distance,
				Path:     vertices,
				Line:     geometry.LineString(pos, vertices),
				Settled:  settled[:len(settled):len(settled)],
				Final:    spt.State() != path.Running,
			}
			if !yield(frame) {
				return
			}
		}
	}
}

// FeatureCollection encodes every frame as a feature: the path of the frame as line string
// (a point for the source) with the step, vertex and distance as properties.
func FeatureCollection(frames []Frame) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, frame := range frames {
		fc.Append(feature(frame))
	}
	return fc
}

func feature(frame Frame) *geojson.Feature {
	var g orb.Geometry = frame.Line
	if len(frame.Line) == 1 {
		g = frame.Line[0]
	}
	f := geojson.NewFeature(g)
	f.Properties["step"] = frame.Step
	f.Properties["vertex"] = frame.Vertex
	f.Properties["distance"] = frame.Distance
	f.Properties["final"] = frame.Final
	return f
}

// FeatureStream writes the same document as FeatureCollection, one feature at a time,
// so that the frames never have to be held in memory together.
type FeatureStream struct {
	frames iter.Seq[Frame]
}

func NewFeatureStream(frames iter.Seq[Frame]) *FeatureStream {
	return &FeatureStream{frames: frames}
}

// WriteTo consumes the frames. A stream can be written once.
func (s *FeatureStream) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	bw.WriteString(`{"type":"FeatureCollection","features":[`)
	first := true
	for frame := range s.frames {
		data, err := json.Marshal(feature(frame))
		if err != nil {
			return cw.n, err
		}
		if !first {
			bw.WriteByte(',')
		}
		first = false
		if _, err := bw.Write(data); err != nil {
			return cw.n, err
		}
	}
	bw.WriteString("]}\n")

	err := bw.Flush()
	return cw.n, err
}

// WriteFeatureCollection streams the frames as GeoJSON feature collection to w
func WriteFeatureCollection(w io.Writer, frames iter.Seq[Frame]) error {
	_, err := NewFeatureStream(frames).WriteTo(w)
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// SearchSpace is the multi point of all settled vertices, in visitation order
func SearchSpace(spt *path.ShortestPathTree, pos []geometry.Point) orb.MultiPoint {
	order := spt.VisitationOrder()
	mp := make(orb.MultiPoint, 0, len(order))
	for _, v := range order {
		mp = append(mp, pos[v].Point)
	}
	return mp
}
