// SPDX-License-Identifier: MIT

package openapi_server

// Point is a vertex position in the coordinates of the network
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
