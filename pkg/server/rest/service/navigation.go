package service

import (
	"context"

	"lintang/begraphes/pkg/datastructure"
	"lintang/begraphes/pkg/engine/routingalgorithm"
	"lintang/begraphes/pkg/guidance"
	"lintang/begraphes/pkg/server"
)

type RoutingAlgorithm interface {
	Graph() routingalgorithm.Graph
	ShortestPathDijkstra(ctx context.Context, data routingalgorithm.ShortestPathData) (routingalgorithm.Solution, error)
	ShortestPathAStar(ctx context.Context, data routingalgorithm.ShortestPathData) (routingalgorithm.Solution, error)
	ShortestPathBellmanFord(ctx context.Context, data routingalgorithm.ShortestPathData) (routingalgorithm.Solution, error)
}

type RoadSnapper interface {
	SnapToNode(lat, lon float64) (int32, datastructure.Coordinate, error)
}

type NavigationService struct {
	routing RoutingAlgorithm
	snapper RoadSnapper
}

func NewNavigationService(routing RoutingAlgorithm, snapper RoadSnapper) *NavigationService {
	return &NavigationService{routing: routing, snapper: snapper}
}

// QueryOptions string form of the query knobs, as they arrive over http.
type QueryOptions struct {
	Mode      string
	Filter    string
	Algorithm string
}

type RouteResult struct {
	Algorithm    string
	Found        bool
	Path         string // google polyline
	Route        []datastructure.Coordinate
	Nodes        []int32
	Cost         float64
	Dist         float64 // meter
	ETA          float64 // second
	SettledNodes int
	Instructions []guidance.DrivingInstruction
}

func parseQueryOptions(opts QueryOptions) (datastructure.Mode, routingalgorithm.ArcFilter, error) {
	mode, err := datastructure.ParseMode(opts.Mode)
	if err != nil {
		return mode, nil, server.WrapErrorf(err, server.ErrBadParamInput, "%v", err)
	}
	filter, err := routingalgorithm.ParseArcFilter(opts.Filter)
	if err != nil {
		return mode, nil, server.WrapErrorf(err, server.ErrBadParamInput, "%v", err)
	}
	return mode, filter, nil
}

func (uc *NavigationService) SnapLocToStreetNode(lat, lon float64) (int32, error) {
	nodeID, _, err := uc.snapper.SnapToNode(lat, lon)
	if err != nil {
		return -1, server.WrapErrorf(err, server.ErrNotFound, "sorry!! the location you entered is not covered on my map :(, please use diferrent opensteetmap pbf file")
	}
	return nodeID, nil
}

// ShortestPath snaps both coordinates to the road network then runs the query.
func (uc *NavigationService) ShortestPath(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64,
	opts QueryOptions) (RouteResult, error) {
	from, err := uc.SnapLocToStreetNode(srcLat, srcLon)
	if err != nil {
		return RouteResult{}, err
	}
	to, err := uc.SnapLocToStreetNode(dstLat, dstLon)
	if err != nil {
		return RouteResult{}, err
	}
	return uc.ShortestPathNodes(ctx, from, to, opts)
}

func (uc *NavigationService) ShortestPathNodes(ctx context.Context, origin, destination int32, opts QueryOptions) (RouteResult, error) {
	mode, filter, err := parseQueryOptions(opts)
	if err != nil {
		return RouteResult{}, err
	}
	data := routingalgorithm.ShortestPathData{Origin: origin, Destination: destination, Mode: mode, Filter: filter}

	var sol routingalgorithm.Solution
	switch opts.Algorithm {
	case "", "dijkstra":
		sol, err = uc.routing.ShortestPathDijkstra(ctx, data)
	case "astar":
		sol, err = uc.routing.ShortestPathAStar(ctx, data)
	case "bellman-ford":
		sol, err = uc.routing.ShortestPathBellmanFord(ctx, data)
	default:
		return RouteResult{}, server.WrapErrorf(routingalgorithm.ErrInvalidInput, server.ErrBadParamInput, "unknown algorithm %q", opts.Algorithm)
	}
	if err != nil {
		return RouteResult{}, err
	}
	return uc.toRouteResult(sol)
}

func (uc *NavigationService) toRouteResult(sol routingalgorithm.Solution) (RouteResult, error) {
	res := RouteResult{
		Algorithm:    sol.Algorithm,
		Found:        sol.IsFeasible(),
		Route:        []datastructure.Coordinate{},
		Nodes:        sol.Path,
		SettledNodes: sol.SettledNodes,
	}
	if !res.Found {
		return res, nil
	}

	g := uc.routing.Graph()
	pathNodes := make([]datastructure.Node, 0, len(sol.Path))
	for _, id := range sol.Path {
		n := g.GetNode(id)
		pathNodes = append(pathNodes, n)
		res.Route = append(res.Route, datastructure.NewCoordinate(n.Lat, n.Lon))
	}
	res.Path = datastructure.RenderPath(pathNodes)
	if len(sol.Arcs) > 0 {
		instructions, err := guidance.NewInstructionsFromArcs(g).GetDrivingInstructions(sol.Arcs)
		if err != nil {
			return RouteResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "guidance: %v", err)
		}
		res.Instructions = instructions
	}
	res.Cost = sol.Cost
	res.Dist = sol.Length
	res.ETA = sol.TravelTime
	return res, nil
}
