package geometry

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
)

// A Point is a planar (x, y) position of a vertex.
type Point struct {
	orb.Point
}

// Create a new point
func NewPoint(x, y float64) *Point {
	p := MakePoint(x, y)
	return &p
}

// Make a new point (by value)
func MakePoint(x, y float64) Point {
	return Point{orb.Point{x, y}}
}

// Project a WGS84 coordinate onto web mercator, so that straight-line distances are in (projected) metres
func FromLatLon(lat, lon float64) Point {
	return Point{project.WGS84.ToMercator(orb.Point{lon, lat})}
}

// Euclidean distance to the other point
func (p Point) DistanceTo(other Point) float64 {
	return planar.Distance(p.Point, other.Point)
}

func (p Point) String() string {
	return fmt.Sprintf("(%v, %v)", p.X(), p.Y())
}

// Distance returns the straight-line distance between the positions of v and w.
// It is used both to derive edge weights and as the A* heuristic.
func Distance(pos []Point, v, w int) float64 {
	return pos[v].DistanceTo(pos[w])
}

// Bound of all given positions
func Bound(pos []Point) orb.Bound {
	if len(pos) == 0 {
		return orb.Bound{}
	}
	mp := make(orb.MultiPoint, len(pos))
	for i, p := range pos {
		mp[i] = p.Point
	}
	return mp.Bound()
}

// Convert a sequence of vertices to a line string through their positions
func LineString(pos []Point, vertices []int) orb.LineString {
	ls := make(orb.LineString, 0, len(vertices))
	for _, v := range vertices {
		ls = append(ls, pos[v].Point)
	}
	return ls
}
