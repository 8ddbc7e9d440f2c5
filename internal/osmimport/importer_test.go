package osmimport

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/road-spt/pkg/road"
)

const extract = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="48.0" lon="11.0"/>
  <node id="2" lat="48.001" lon="11.0"/>
  <node id="3" lat="48.001" lon="11.001"/>
  <node id="4" lat="48.002" lon="11.001"/>
  <way id="100">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <tag k="highway" v="residential"/>
    <tag k="maxspeed" v="30"/>
  </way>
  <way id="101">
    <nd ref="3"/>
    <nd ref="4"/>
    <nd ref="99"/>
    <tag k="highway" v="primary"/>
    <tag k="oneway" v="yes"/>
  </way>
  <way id="102">
    <nd ref="1"/>
    <nd ref="4"/>
    <tag k="highway" v="footway"/>
  </way>
  <way id="103">
    <nd ref="4"/>
    <nd ref="98"/>
    <tag k="highway" v="primary"/>
  </way>
</osm>`

func TestReadXml(t *testing.T) {
	segments, err := readXml(context.Background(), strings.NewReader(extract), nil)
	require.NoError(t, err)
	require.Len(t, segments, 2)

	assert.Equal(t, int64(100), segments[0].ID)
	assert.Equal(t, road.Residential, segments[0].Type)
	assert.Equal(t, 30, segments[0].MaxSpeed)
	assert.Equal(t, road.Node{ID: 2, Lat: 48.001, Lon: 11.0}, segments[0].Nodes[1])

	// node 99 is not in the extract
	assert.Equal(t, road.Primary, segments[1].Type)
	assert.True(t, segments[1].OneWay)
	assert.Len(t, segments[1].Nodes, 2)

	n, err := road.BuildNetwork(segments)
	require.NoError(t, err)
	assert.Equal(t, 4, n.VertexCount())
	assert.Equal(t, 3, n.Graph.EdgeCount())
}

func TestXmlImporter(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "extract.osm")
	require.NoError(t, os.WriteFile(filename, []byte(extract), 0o644))

	importer, err := NewImporter(filename, nil)
	require.NoError(t, err)
	require.IsType(t, &XmlImporter{}, importer)
	require.NoError(t, importer.Import(context.Background()))
	assert.Len(t, importer.Roads(), 2)
}

func TestNewImporter(t *testing.T) {
	importer, err := NewImporter("bavaria.osm.pbf", nil)
	require.NoError(t, err)
	assert.IsType(t, &PbfImporter{}, importer)

	_, err = NewImporter("bavaria.shp", nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestPbfImporterMissingFile(t *testing.T) {
	importer := NewPbfImporter(filepath.Join(t.TempDir(), "missing.osm.pbf"), nil)
	assert.ErrorIs(t, importer.Import(context.Background()), os.ErrNotExist)
}

func TestExportSegments(t *testing.T) {
	segments, err := readXml(context.Background(), strings.NewReader(extract), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportSegments(&buf, segments))
	out := buf.String()
	assert.Contains(t, out, `"type":"FeatureCollection"`)
	assert.Contains(t, out, `[11,48]`)
	assert.Contains(t, out, `"type":"Residential"`)
	assert.Contains(t, out, `"oneway":true`)
}
