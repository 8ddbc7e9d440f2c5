package openapi_server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tevino/abool"

	"github.com/natevvv/road-spt/pkg/geometry"
	"github.com/natevvv/road-spt/pkg/graph"
	"github.com/natevvv/road-spt/pkg/graph/path"
	"github.com/natevvv/road-spt/pkg/replay"
	"github.com/natevvv/road-spt/pkg/routing"
)

// DefaultMaxRoutes is the number of computed routes kept for replays
const DefaultMaxRoutes = 1000

// storedRoute is what a replay needs to run the search of a route again
type storedRoute struct {
	Source    graph.Vertex
	Target    graph.Vertex
	Algorithm path.Algorithm
}

// NetworkLoader provides the network, it runs in the background
type NetworkLoader func() (*graph.Network, error)

// DefaultApiService is a service that implements the logic for the DefaultApiServicer
// This service should implement the business logic for every endpoint for the DefaultApi API.
// Include any external packages or services that will be required by this service.
type DefaultApiService struct {
	ready   *abool.AtomicBool
	loaded  chan struct{} // closed once loading finished, successful or not
	router  *routing.Router
	loadErr error
	logger  *log.Logger

	mu        sync.Mutex
	routes    map[string]storedRoute
	order     []string // route ids, oldest first
	maxRoutes int
}

// NewDefaultApiService creates a default api service and starts loading the network.
// Until the network is loaded, every endpoint but the health check answers with 503.
func NewDefaultApiService(load NetworkLoader, navigator *string, maxRoutes int, logger *log.Logger) *DefaultApiService {
	if maxRoutes <= 0 {
		maxRoutes = DefaultMaxRoutes
	}
	s := &DefaultApiService{
		ready:     abool.New(),
		loaded:    make(chan struct{}),
		logger:    logger,
		routes:    make(map[string]storedRoute),
		maxRoutes: maxRoutes,
	}

	go func() {
		defer close(s.loaded)
		n, err := load()
		if err == nil {
			s.router, err = routing.NewRouter(n, navigator, logger)
		}
		if err != nil {
			s.loadErr = err
			if logger != nil {
				logger.Error("could not load network", "err", err)
			}
			return
		}
		if logger != nil {
			logger.Info("network loaded", "vertices", n.VertexCount(), "edges", n.Digraph.EdgeCount())
		}
		s.ready.Set()
	}()

	return s
}

// Loaded is closed once loading the network finished
func (s *DefaultApiService) Loaded() <-chan struct{} { return s.loaded }

// ComputeRoute - Compute a new route
func (s *DefaultApiService) ComputeRoute(ctx context.Context, routeRequest RouteRequest) (ImplResponse, error) {
	if !s.ready.IsSet() {
		return Response(http.StatusServiceUnavailable, nil), ErrNotReady
	}

	algorithm := s.router.Algorithm()
	if routeRequest.Algorithm != "" {
		var err error
		if algorithm, err = path.ParseAlgorithm(routeRequest.Algorithm); err != nil {
			return Response(http.StatusBadRequest, nil), err
		}
	}

	var source, target graph.Vertex
	if routeRequest.Source != nil {
		source, target = *routeRequest.Source, *routeRequest.Target
	} else {
		source = s.router.NearestVertex(geometry.MakePoint(routeRequest.Origin.X, routeRequest.Origin.Y))
		target = s.router.NearestVertex(geometry.MakePoint(routeRequest.Destination.X, routeRequest.Destination.Y))
	}

	route, err := s.router.ComputeRouteWithAlgorithm(algorithm, source, target)
	if errors.Is(err, path.ErrVertexOutOfRange) {
		return Response(http.StatusBadRequest, nil), err
	}
	if err != nil {
		return Response(http.StatusInternalServerError, nil), err
	}

	id := s.storeRoute(route)
	routeResult := RouteResult{
		Id:        id,
		Source:    route.Source,
		Target:    route.Target,
		Algorithm: route.Algorithm.String(),
		Reachable: route.Exists,
		Visited:   route.Visited,
	}
	if route.Exists {
		routeResult.Path = &Path{
			Length:    route.Length,
			Vertices:  route.Vertices,
			Waypoints: toPoints(route.Waypoints),
		}
	}

	return Response(http.StatusOK, routeResult), nil
}

// Keep the route for replays. The oldest route is dropped when the store is full.
func (s *DefaultApiService) storeRoute(route routing.Route) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) >= s.maxRoutes {
		delete(s.routes, s.order[0])
		s.order = s.order[1:]
	}
	s.routes[id] = storedRoute{Source: route.Source, Target: route.Target, Algorithm: route.Algorithm}
	s.order = append(s.order, id)
	return id
}

func (s *DefaultApiService) lookupRoute(id string) (storedRoute, error) {
	if _, err := uuid.Parse(id); err != nil {
		return storedRoute{}, fmt.Errorf("%w: %q", ErrRouteNotFound, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	route, ok := s.routes[id]
	if !ok {
		return storedRoute{}, fmt.Errorf("%w: %q", ErrRouteNotFound, id)
	}
	return route, nil
}

// search of the stored route, not run yet
func (s *DefaultApiService) routeSearch(id string) (*path.ShortestPathTree, int, error) {
	route, err := s.lookupRoute(id)
	if err != nil {
		return nil, http.StatusNotFound, err
	}
	spt, err := s.router.NewSearch(route.Algorithm, route.Source, route.Target)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return spt, http.StatusOK, nil
}

// GetReplay runs the search of the route again and returns one feature per settled vertex.
// The search advances while the body is written.
func (s *DefaultApiService) GetReplay(ctx context.Context, id string) (ImplResponse, error) {
	if !s.ready.IsSet() {
		return Response(http.StatusServiceUnavailable, nil), ErrNotReady
	}
	spt, code, err := s.routeSearch(id)
	if err != nil {
		return Response(code, nil), err
	}
	frames := replay.Frames(spt, s.router.Network().Positions)
	return Response(http.StatusOK, replay.NewFeatureStream(frames)), nil
}

func (s *DefaultApiService) GetTreeDot(ctx context.Context, id string) (ImplResponse, error) {
	if !s.ready.IsSet() {
		return Response(http.StatusServiceUnavailable, nil), ErrNotReady
	}
	spt, code, err := s.routeSearch(id)
	if err != nil {
		return Response(code, nil), err
	}
	spt.Run()
	dot, err := spt.DOT()
	if err != nil {
		return Response(http.StatusInternalServerError, nil), err
	}
	return Response(http.StatusOK, dot), nil
}

func (s *DefaultApiService) GetNodes(ctx context.Context) (ImplResponse, error) {
	if !s.ready.IsSet() {
		return Response(http.StatusServiceUnavailable, nil), ErrNotReady
	}
	nodes := Nodes{Waypoints: toPoints(s.router.GetNodes())}
	return Response(http.StatusOK, nodes), nil
}

func (s *DefaultApiService) GetSearchSpace(ctx context.Context) (ImplResponse, error) {
	if !s.ready.IsSet() {
		return Response(http.StatusServiceUnavailable, nil), ErrNotReady
	}
	nodes := Nodes{Waypoints: toPoints(s.router.GetSearchSpace())}
	return Response(http.StatusOK, nodes), nil
}

func (s *DefaultApiService) SetNavigator(ctx context.Context, navigatorRequest NavigatorRequest) (ImplResponse, error) {
	if !s.ready.IsSet() {
		return Response(http.StatusServiceUnavailable, nil), ErrNotReady
	}
	success := s.router.SetNavigator(navigatorRequest.Navigator)

	if !success {
		return Response(http.StatusBadRequest, nil), fmt.Errorf("%w: %q", routing.ErrUnknownNavigator, navigatorRequest.Navigator)
	}
	return Response(http.StatusOK, s.router.Algorithm().String()), nil
}

func (s *DefaultApiService) GetHealth(ctx context.Context) (ImplResponse, error) {
	if s.ready.IsSet() {
		return Response(http.StatusOK, Health{Status: "ok", Vertices: s.router.Network().VertexCount()}), nil
	}
	select {
	case <-s.loaded:
		return Response(http.StatusServiceUnavailable, Health{Status: "failed", Error: s.loadErr.Error()}), nil
	default:
		return Response(http.StatusServiceUnavailable, Health{Status: "loading"}), nil
	}
}

func toPoints(points []geometry.Point) []Point {
	result := make([]Point, 0, len(points))
	for _, p := range points {
		result = append(result, Point{X: p.X(), Y: p.Y()})
	}
	return result
}
