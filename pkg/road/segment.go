package road

import (
	"strconv"
	"strings"
)

type RoadType int

const (
	Unknown RoadType = iota
	Motorway
	Trunk
	Primary
	Secondary
	Tertiary
	Unclassified
	Residential
)

func (r RoadType) String() string {
	names := []string{"Unknown", "Motorway", "Trunk", "Primary", "Secondary", "Tertiary", "Unclassified", "Residential"}
	if r < 0 || int(r) >= len(names) {
		return "Unknown"
	}
	return names[r]
}

// Map the value of an OSM highway tag to a road type. Links count as the road they belong to.
func ParseRoadType(highway string) RoadType {
	switch strings.TrimSuffix(highway, "_link") {
	case "motorway":
		return Motorway
	case "trunk":
		return Trunk
	case "primary":
		return Primary
	case "secondary":
		return Secondary
	case "tertiary":
		return Tertiary
	case "unclassified":
		return Unclassified
	case "residential", "living_street":
		return Residential
	default:
		return Unknown
	}
}

// Node is an OSM node with its WGS84 coordinate
type Node struct {
	ID  int64
	Lat float64
	Lon float64
}

// Segment is a drivable OSM way
type Segment struct {
	ID       int64
	Type     RoadType
	Nodes    []Node
	Tags     map[string]string
	OneWay   bool
	MaxSpeed int // km/h, 0 if unknown
}

func (s *Segment) Start() int64 { return s.Nodes[0].ID }
func (s *Segment) End() int64   { return s.Nodes[len(s.Nodes)-1].ID }

// Create a segment from the tags of an OSM way. It returns nil for ways which are no roads.
func NewSegment(id int64, tags map[string]string) *Segment {
	roadType := ParseRoadType(tags["highway"])
	if roadType == Unknown {
		return nil
	}
	return &Segment{
		ID:       id,
		Type:     roadType,
		Tags:     tags,
		OneWay:   tags["oneway"] == "yes" || tags["oneway"] == "1" || tags["oneway"] == "-1",
		MaxSpeed: ParseMaxSpeed(tags["maxspeed"]),
	}
}

// Parse an OSM maxspeed value like "50", "50 km/h" or "30 mph" to km/h. Unknown values yield 0.
func ParseMaxSpeed(value string) int {
	value = strings.TrimSpace(value)
	factor := 1.0
	switch {
	case strings.HasSuffix(value, "mph"):
		factor = 1.609344
		value = strings.TrimSpace(strings.TrimSuffix(value, "mph"))
	case strings.HasSuffix(value, "km/h"):
		value = strings.TrimSpace(strings.TrimSuffix(value, "km/h"))
	}
	speed, err := strconv.ParseFloat(value, 64)
	if err != nil || speed < 0 {
		return 0
	}
	return int(speed*factor + 0.5)
}
