package routingalgorithm

import (
	"context"

	"lintang/begraphes/pkg/datastructure"
	"lintang/begraphes/pkg/geo"
)

// ShortestPathAStar same result as ShortestPathDijkstra but guided by the great-circle
// distance to the destination. In time mode the distance is divided by the fastest
// arc speed of the graph so the estimate never overshoots.
func (rt *RouteAlgorithm) ShortestPathAStar(ctx context.Context, data ShortestPathData) (Solution, error) {
	if err := rt.validate(data); err != nil {
		return Solution{}, err
	}
	dest := rt.g.GetNode(data.Destination)
	maxSpeedMS := rt.maxSpeed / 3.6

	heuristic := func(node int32) float64 {
		n := rt.g.GetNode(node)
		dist := geo.DistanceMeters(n.Lat, n.Lon, dest.Lat, dest.Lon)
		if data.Mode == datastructure.ModeTime {
			if maxSpeedMS <= 0 {
				return 0
			}
			return dist / maxSpeedMS
		}
		return dist
	}
	return rt.labelSearch(ctx, data, "astar", heuristic)
}
