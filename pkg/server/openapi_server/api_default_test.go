package openapi_server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/road-spt/pkg/graph"
	"github.com/natevvv/road-spt/pkg/graph/path"
)

const network = `5
5
0 0 0
1 10 0
2 10 10
3 0 10
4 50 50
0 1
1 2
2 3
3 0
0 2
`

func loadNetwork() (*graph.Network, error) {
	return graph.ReadNetwork(strings.NewReader(network))
}

func newServer(t *testing.T, load NetworkLoader, maxRoutes int) *httptest.Server {
	t.Helper()
	service := NewDefaultApiService(load, nil, maxRoutes, nil)
	<-service.Loaded()
	server := httptest.NewServer(NewRouter(nil, NewDefaultApiController(service)))
	t.Cleanup(server.Close)
	return server
}

func post(t *testing.T, server *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(server.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, server *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestComputeRouteByVertex(t *testing.T) {
	server := newServer(t, loadNetwork, 0)

	resp := post(t, server, "/routes", `{"source": 1, "target": 3, "algorithm": "astar"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	result := decode[RouteResult](t, resp)
	assert.NotEmpty(t, result.Id)
	assert.Equal(t, "astar", result.Algorithm)
	assert.True(t, result.Reachable)
	require.NotNil(t, result.Path)
	assert.InDelta(t, 20, result.Path.Length, 1e-9)
	assert.Len(t, result.Path.Vertices, 3)
	assert.Equal(t, Point{X: 10, Y: 0}, result.Path.Waypoints[0])
	assert.Positive(t, result.Visited)

	space := decode[Nodes](t, get(t, server, "/searchSpace"))
	assert.Len(t, space.Waypoints, result.Visited)
}

func TestComputeRouteByPoint(t *testing.T) {
	server := newServer(t, loadNetwork, 0)

	resp := post(t, server, "/routes", `{"origin": {"x": 1, "y": -1}, "destination": {"x": 9, "y": 11}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode[RouteResult](t, resp)
	assert.Equal(t, 0, result.Source)
	assert.Equal(t, 2, result.Target)
	assert.Equal(t, "dijkstra", result.Algorithm)
	assert.Equal(t, []int{0, 2}, result.Path.Vertices)
}

func TestComputeRouteUnreachable(t *testing.T) {
	server := newServer(t, loadNetwork, 0)

	resp := post(t, server, "/routes", `{"source": 0, "target": 4}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode[RouteResult](t, resp)
	assert.False(t, result.Reachable)
	assert.Nil(t, result.Path)
	assert.Equal(t, 4, result.Visited)
}

func TestComputeRouteErrors(t *testing.T) {
	server := newServer(t, loadNetwork, 0)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"source": `, http.StatusBadRequest},
		{"unknown field", `{"from": 1}`, http.StatusBadRequest},
		{"missing target", `{"source": 1}`, http.StatusUnprocessableEntity},
		{"missing destination", `{"origin": {"x": 0, "y": 0}}`, http.StatusUnprocessableEntity},
		{"unknown algorithm", `{"source": 0, "target": 1, "algorithm": "bfs"}`, http.StatusBadRequest},
		{"vertex out of range", `{"source": 0, "target": 5}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, server, "/routes", tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.NotEmpty(t, decode[map[string]string](t, resp)["error"])
		})
	}
}

func TestReplayAndTree(t *testing.T) {
	server := newServer(t, loadNetwork, 0)
	result := decode[RouteResult](t, post(t, server, "/routes", `{"source": 0, "target": 2}`))

	resp := get(t, server, "/routes/"+result.Id+"/replay")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	replay := decode[struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}](t, resp)
	assert.Equal(t, "FeatureCollection", replay.Type)
	assert.Len(t, replay.Features, result.Visited)

	resp = get(t, server, "/routes/"+result.Id+"/tree.dot")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/vnd.graphviz")
	dot, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(dot), "digraph spt")
}

func TestStoredRouteIsRebuilt(t *testing.T) {
	service := NewDefaultApiService(loadNetwork, nil, 0, nil)
	<-service.Loaded()

	source, target := 0, 3
	resp, err := service.ComputeRoute(context.Background(), RouteRequest{Source: &source, Target: &target, Algorithm: "astar"})
	require.NoError(t, err)
	result := resp.Body.(RouteResult)
	assert.Equal(t, storedRoute{Source: 0, Target: 3, Algorithm: path.AStar}, service.routes[result.Id])

	resp, err = service.GetTreeDot(context.Background(), result.Id)
	require.NoError(t, err)
	dot := resp.Body.(string)
	assert.Contains(t, dot, "0->3")
	assert.Contains(t, dot, "color=red")

	resp, err = service.GetReplay(context.Background(), result.Id)
	require.NoError(t, err)
	assert.Implements(t, (*io.WriterTo)(nil), resp.Body)
}

func TestUnknownRoute(t *testing.T) {
	server := newServer(t, loadNetwork, 0)
	assert.Equal(t, http.StatusNotFound, get(t, server, "/routes/not-a-uuid/replay").StatusCode)
	assert.Equal(t, http.StatusNotFound, get(t, server, "/routes/6ba7b810-9dad-11d1-80b4-00c04fd430c8/tree.dot").StatusCode)
}

func TestRouteStoreIsBounded(t *testing.T) {
	server := newServer(t, loadNetwork, 2)
	var ids []string
	for i := 0; i < 3; i++ {
		ids = append(ids, decode[RouteResult](t, post(t, server, "/routes", `{"source": 0, "target": 1}`)).Id)
	}
	assert.Equal(t, http.StatusNotFound, get(t, server, "/routes/"+ids[0]+"/tree.dot").StatusCode)
	assert.Equal(t, http.StatusOK, get(t, server, "/routes/"+ids[2]+"/tree.dot").StatusCode)
}

func TestSetNavigator(t *testing.T) {
	server := newServer(t, loadNetwork, 0)

	resp := post(t, server, "/navigator", `{"navigator": "astar"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "astar", decode[string](t, resp))

	result := decode[RouteResult](t, post(t, server, "/routes", `{"source": 0, "target": 1}`))
	assert.Equal(t, "astar", result.Algorithm)

	assert.Equal(t, http.StatusBadRequest, post(t, server, "/navigator", `{"navigator": "contraction-hierarchies"}`).StatusCode)
	assert.Equal(t, http.StatusUnprocessableEntity, post(t, server, "/navigator", `{"navigator": ""}`).StatusCode)
}

func TestGetNodes(t *testing.T) {
	server := newServer(t, loadNetwork, 0)
	nodes := decode[Nodes](t, get(t, server, "/nodes"))
	require.Len(t, nodes.Waypoints, 5)
	assert.Equal(t, Point{X: 50, Y: 50}, nodes.Waypoints[4])
}

func TestHealth(t *testing.T) {
	server := newServer(t, loadNetwork, 0)
	resp := get(t, server, "/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, Health{Status: "ok", Vertices: 5}, decode[Health](t, resp))
}

func TestNotReady(t *testing.T) {
	release := make(chan struct{})
	service := NewDefaultApiService(func() (*graph.Network, error) {
		<-release
		return loadNetwork()
	}, nil, 0, nil)
	server := httptest.NewServer(NewRouter(nil, NewDefaultApiController(service)))
	defer server.Close()

	assert.Equal(t, http.StatusServiceUnavailable, get(t, server, "/nodes").StatusCode)
	health := decode[Health](t, get(t, server, "/healthz"))
	assert.Equal(t, "loading", health.Status)

	close(release)
	<-service.Loaded()
	assert.Equal(t, http.StatusOK, get(t, server, "/nodes").StatusCode)
}

func TestLoadFailure(t *testing.T) {
	server := newServer(t, func() (*graph.Network, error) { return nil, errors.New("disk on fire") }, 0)

	resp := get(t, server, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, Health{Status: "failed", Error: "disk on fire"}, decode[Health](t, resp))
	assert.Equal(t, http.StatusServiceUnavailable, post(t, server, "/routes", `{"source": 0, "target": 1}`).StatusCode)
}

func TestPreflight(t *testing.T) {
	server := newServer(t, loadNetwork, 0)
	req, err := http.NewRequest(http.MethodOptions, server.URL+"/routes", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
