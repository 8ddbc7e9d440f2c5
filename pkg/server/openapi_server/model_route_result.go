// SPDX-License-Identifier: MIT

package openapi_server

type Path struct {
	Length    float64 `json:"length"`
	Vertices  []int   `json:"vertices"`
	Waypoints []Point `json:"waypoints"`
}

type RouteResult struct {
	Id        string `json:"id"`
	Source    int    `json:"source"`
	Target    int    `json:"target"`
	Algorithm string `json:"algorithm"`
	Reachable bool   `json:"reachable"`
	Path      *Path  `json:"path,omitempty"`
	Visited   int    `json:"visited"`
}

type Health struct {
	Status   string `json:"status"`
	Vertices int    `json:"vertices,omitempty"`
	Error    string `json:"error,omitempty"`
}
