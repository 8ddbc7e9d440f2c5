package osmimport

import (
	"encoding/json"
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/natevvv/road-spt/pkg/road"
)

// Segments as GeoJSON line strings in WGS84 coordinates
func SegmentsFeatureCollection(segments []*road.Segment) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, seg := range segments {
		ls := make(orb.LineString, len(seg.Nodes))
		for i, node := range seg.Nodes {
			ls[i] = orb.Point{node.Lon, node.Lat}
		}
		f := geojson.NewFeature(ls)
		f.ID = seg.ID
		f.Properties["type"] = seg.Type.String()
		f.Properties["oneway"] = seg.OneWay
		f.Properties["maxspeed"] = seg.MaxSpeed
		fc.Append(f)
	}
	return fc
}

func ExportSegments(w io.Writer, segments []*road.Segment) error {
	return json.NewEncoder(w).Encode(SegmentsFeatureCollection(segments))
}

func ExportSegmentsFile(segments []*road.Segment, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return ExportSegments(file, segments)
}
