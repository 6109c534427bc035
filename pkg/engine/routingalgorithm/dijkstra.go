package routingalgorithm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lintang/begraphes/pkg/datastructure"
	"lintang/begraphes/pkg/server"
	"lintang/begraphes/pkg/util"
)

var (
	ErrInvalidInput = errors.New("routing: invalid input")
	ErrNilGraph     = errors.New("routing: graph is nil")
)

// Graph is the read-only view of the road network the searches need.
type Graph interface {
	NumNodes() int
	HasNode(id int32) bool
	GetNode(id int32) datastructure.Node
	GetOutArcs(id int32) []int32
	GetArc(arcID int32) datastructure.Arc
}

type RouteAlgorithm struct {
	g Graph
	// maxSpeed fastest arc in km/h, used to keep the A* time estimate admissible.
	maxSpeed float64
	log      *slog.Logger
}

type Option func(*RouteAlgorithm)

func WithLogger(log *slog.Logger) Option {
	return func(rt *RouteAlgorithm) {
		rt.log = log
	}
}

// NewRouteAlgorithm checks every arc of g once so that the searches can assume
// non-negative finite costs. The graph must not be modified afterwards.
func NewRouteAlgorithm(g Graph, opts ...Option) (*RouteAlgorithm, error) {
	if g == nil {
		return nil, server.WrapErrorf(ErrNilGraph, server.ErrBadParamInput, "graph is nil")
	}
	rt := &RouteAlgorithm{g: g, log: slog.Default()}
	for _, opt := range opts {
		opt(rt)
	}

	for u := 0; u < g.NumNodes(); u++ {
		for _, arcID := range g.GetOutArcs(int32(u)) {
			arc := g.GetArc(arcID)
			if err := datastructure.ValidateArc(arc); err != nil {
				return nil, server.WrapErrorf(err, server.ErrBadParamInput, "invalid graph: %v", err)
			}
			if !g.HasNode(arc.To) {
				return nil, server.WrapErrorf(datastructure.ErrNodeNotFound, server.ErrBadParamInput,
					"invalid graph: arc %d points to unknown node %d", arcID, arc.To)
			}
			if arc.MaxSpeed > rt.maxSpeed {
				rt.maxSpeed = arc.MaxSpeed
			}
		}
	}
	return rt, nil
}

func (rt *RouteAlgorithm) Graph() Graph {
	return rt.g
}

func (rt *RouteAlgorithm) validate(data ShortestPathData) error {
	if !rt.g.HasNode(data.Origin) {
		return server.WrapErrorf(fmt.Errorf("%w: origin %d", ErrInvalidInput, data.Origin),
			server.ErrBadParamInput, "origin node %d is not in the graph", data.Origin)
	}
	if !rt.g.HasNode(data.Destination) {
		return server.WrapErrorf(fmt.Errorf("%w: destination %d", ErrInvalidInput, data.Destination),
			server.ErrBadParamInput, "destination node %d is not in the graph", data.Destination)
	}
	if data.Mode != datastructure.ModeLength && data.Mode != datastructure.ModeTime {
		return server.WrapErrorf(fmt.Errorf("%w: mode %s", ErrInvalidInput, data.Mode),
			server.ErrBadParamInput, "unknown cost mode %s", data.Mode)
	}
	return nil
}

// ShortestPathDijkstra label-setting search from data.Origin to data.Destination.
// An unreachable destination is not an error: the solution status is StatusInfeasible.
func (rt *RouteAlgorithm) ShortestPathDijkstra(ctx context.Context, data ShortestPathData) (Solution, error) {
	if err := rt.validate(data); err != nil {
		return Solution{}, err
	}
	return rt.labelSearch(ctx, data, "dijkstra", func(node int32) float64 { return 0 })
}

// labelSearch runs Dijkstra ordered by Cost + estimate(node). With a zero estimate it
// is plain Dijkstra, with an admissible and consistent estimate it is A*.
func (rt *RouteAlgorithm) labelSearch(ctx context.Context, data ShortestPathData, algorithm string,
	estimate func(node int32) float64) (Solution, error) {
	start := time.Now()
	obs := observers(data.Observers)
	filter := data.Filter
	if filter == nil {
		filter = FilterAllArcs
	}
	sol := newSolution(algorithm, data)

	if data.Origin == data.Destination {
		obs.originProcessed(data.Origin)
		obs.destinationReached(data.Destination)
		sol.Status = StatusOptimal
		sol.Path = []int32{data.Origin}
		sol.SolvingTime = time.Since(start)
		return sol, nil
	}

	labels := newLabels(rt.g.NumNodes())
	pq := datastructure.NewMinHeap[int32]()

	origin := &labels[data.Origin]
	origin.Cost = 0
	origin.Estimate = estimate(data.Origin)
	if err := pq.Insert(datastructure.PriorityQueueNode[int32]{Rank: origin.TotalCost(), Item: origin.Node}); err != nil {
		return Solution{}, queueError(err)
	}
	obs.originProcessed(data.Origin)

	dest := &labels[data.Destination]
	settled := 0
	for !dest.Settled && !pq.IsEmpty() {
		if err := ctx.Err(); err != nil {
			return Solution{}, fmt.Errorf("routing: search cancelled after %d settled nodes: %w", settled, err)
		}

		item, err := pq.ExtractMin()
		if err != nil {
			return Solution{}, queueError(err)
		}
		u := &labels[item.Item]
		u.Settled = true
		settled++
		obs.nodeMarked(u.Node)
		if u == dest {
			break
		}

		for _, arcID := range rt.g.GetOutArcs(u.Node) {
			arc := rt.g.GetArc(arcID)
			if !filter(arc) {
				continue
			}
			v := &labels[arc.To]
			if v.Settled {
				continue
			}
			newCost := u.Cost + data.Mode.Cost(arc)
			if !(newCost < v.Cost) {
				// not an improvement, v keeps its current queue position
				continue
			}

			if v.Reached() {
				// a reached, unsettled label is always in the queue
				if _, err := pq.Remove(v.Node); err != nil {
					return Solution{}, queueError(err)
				}
			} else {
				v.Estimate = estimate(v.Node)
			}
			v.Cost = newCost
			v.PredecessorArc = arcID
			obs.nodeReached(v.Node)

			if err := pq.Insert(datastructure.PriorityQueueNode[int32]{Rank: v.TotalCost(), Item: v.Node}); err != nil {
				return Solution{}, queueError(err)
			}
		}
	}

	sol.SettledNodes = settled
	if !dest.Settled {
		sol.Status = StatusInfeasible
		sol.SolvingTime = time.Since(start)
		rt.logSolution(sol)
		return sol, nil
	}

	obs.destinationReached(data.Destination)
	rt.fillPath(&sol, dest.Cost, func(node int32) int32 { return labels[node].PredecessorArc })
	sol.SolvingTime = time.Since(start)
	rt.logSolution(sol)
	return sol, nil
}

// fillPath walks the predecessor arcs back from the destination.
func (rt *RouteAlgorithm) fillPath(sol *Solution, cost float64, predecessor func(node int32) int32) {
	arcs := make([]datastructure.Arc, 0)
	for v := sol.Destination; predecessor(v) != -1; {
		arc := rt.g.GetArc(predecessor(v))
		arcs = append(arcs, arc)
		v = arc.From
	}
	util.ReverseG(arcs)

	path := make([]int32, 0, len(arcs)+1)
	path = append(path, sol.Origin)
	for _, arc := range arcs {
		path = append(path, arc.To)
		sol.Length += arc.Length
		sol.TravelTime += arc.TravelTime()
	}

	sol.Status = StatusOptimal
	sol.Cost = cost
	sol.Path = path
	sol.Arcs = arcs
}

func (rt *RouteAlgorithm) logSolution(sol Solution) {
	rt.log.Debug("shortest path search finished",
		slog.String("algorithm", sol.Algorithm),
		slog.Int("origin", int(sol.Origin)),
		slog.Int("destination", int(sol.Destination)),
		slog.String("status", sol.Status.String()),
		slog.Int("settled", sol.SettledNodes),
		slog.Duration("elapsed", sol.SolvingTime),
	)
}

func queueError(err error) error {
	return server.WrapErrorf(err, server.ErrInternalServerError, "routing: priority queue invariant broken: %v", err)
}
