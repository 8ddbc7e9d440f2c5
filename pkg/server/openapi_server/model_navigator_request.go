// SPDX-License-Identifier: MIT

package openapi_server

import "strings"

// NavigatorRequest selects the algorithm of all following routes
type NavigatorRequest struct {
	// dijkstra or astar
	Navigator string `json:"navigator"`
}

// AssertNavigatorRequestRequired checks if the required fields are not zero-ed
func AssertNavigatorRequestRequired(obj NavigatorRequest) error {
	if strings.TrimSpace(obj.Navigator) == "" {
		return &RequiredError{Field: "navigator"}
	}
	return nil
}
