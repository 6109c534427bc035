package routingalgorithm

import (
	"context"
	"fmt"
	"math"
	"time"
)

// ShortestPathBellmanFord relaxes every allowed arc up to |V|-1 times. It is
// O(|V||A|) and only meant as a reference to check the label searches against.
func (rt *RouteAlgorithm) ShortestPathBellmanFord(ctx context.Context, data ShortestPathData) (Solution, error) {
	if err := rt.validate(data); err != nil {
		return Solution{}, err
	}
	start := time.Now()
	obs := observers(data.Observers)
	filter := data.Filter
	if filter == nil {
		filter = FilterAllArcs
	}
	sol := newSolution("bellman-ford", data)

	n := rt.g.NumNodes()
	cost := make([]float64, n)
	pred := make([]int32, n)
	for i := range cost {
		cost[i] = math.Inf(1)
		pred[i] = -1
	}
	cost[data.Origin] = 0
	obs.originProcessed(data.Origin)

	for iter := 0; iter < n-1; iter++ {
		if err := ctx.Err(); err != nil {
			return Solution{}, fmt.Errorf("routing: search cancelled after %d rounds: %w", iter, err)
		}
		changed := false
		for u := 0; u < n; u++ {
			if math.IsInf(cost[u], 1) {
				continue
			}
			for _, arcID := range rt.g.GetOutArcs(int32(u)) {
				arc := rt.g.GetArc(arcID)
				if !filter(arc) || arc.To == data.Origin {
					continue
				}
				newCost := cost[u] + data.Mode.Cost(arc)
				if newCost < cost[arc.To] {
					cost[arc.To] = newCost
					pred[arc.To] = arcID
					changed = true
					obs.nodeReached(arc.To)
				}
			}
		}
		if !changed {
			break
		}
	}

	if math.IsInf(cost[data.Destination], 1) {
		sol.Status = StatusInfeasible
		sol.SolvingTime = time.Since(start)
		return sol, nil
	}
	obs.destinationReached(data.Destination)
	rt.fillPath(&sol, cost[data.Destination], func(node int32) int32 { return pred[node] })
	sol.SolvingTime = time.Since(start)
	return sol, nil
}
