// SPDX-License-Identifier: MIT

package openapi_server

// RouteRequest selects the ends of a route either by vertex or by position.
// Positions are snapped to the closest vertex.
type RouteRequest struct {
	Source      *int   `json:"source,omitempty"`
	Target      *int   `json:"target,omitempty"`
	Origin      *Point `json:"origin,omitempty"`
	Destination *Point `json:"destination,omitempty"`
	Algorithm   string `json:"algorithm,omitempty"`
}

// AssertRouteRequestRequired checks that both ends of the route are given
func AssertRouteRequestRequired(obj RouteRequest) error {
	if obj.Source != nil || obj.Target != nil {
		if obj.Source == nil {
			return &RequiredError{Field: "source"}
		}
		if obj.Target == nil {
			return &RequiredError{Field: "target"}
		}
		return nil
	}
	if obj.Origin == nil {
		return &RequiredError{Field: "origin"}
	}
	if obj.Destination == nil {
		return &RequiredError{Field: "destination"}
	}
	return nil
}
