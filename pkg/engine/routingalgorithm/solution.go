package routingalgorithm

import (
	"fmt"
	"lintang/begraphes/pkg/datastructure"
	"time"
)

type Status int

const (
	StatusUnknown Status = iota
	StatusInfeasible
	StatusOptimal
)

func (s Status) String() string {
	switch s {
	case StatusInfeasible:
		return "infeasible"
	case StatusOptimal:
		return "optimal"
	default:
		return "unknown"
	}
}

// ShortestPathData is the input of one origin -> destination query.
type ShortestPathData struct {
	Origin      int32
	Destination int32
	Mode        datastructure.Mode
	// Filter forbids arcs when it returns false. nil allows every arc.
	Filter ArcFilter
	// Observers are notified synchronously from the search loop.
	Observers []Observer
}

// Solution result of a query. Path and Arcs are empty unless Status is StatusOptimal.
type Solution struct {
	Status      Status
	Algorithm   string
	Origin      int32
	Destination int32
	Mode        datastructure.Mode
	// Path node ids from origin to destination.
	Path []int32
	// Arcs traversed, len(Arcs) == len(Path)-1.
	Arcs []datastructure.Arc
	// Cost under Mode.
	Cost float64
	// Length total meters along Arcs, TravelTime total seconds, independent of Mode.
	Length     float64
	TravelTime float64

	SettledNodes int
	SolvingTime  time.Duration
}

func (s Solution) IsFeasible() bool {
	return s.Status == StatusOptimal
}

func (s Solution) String() string {
	if !s.IsFeasible() {
		return fmt.Sprintf("%s: %d -> %d %s", s.Algorithm, s.Origin, s.Destination, s.Status)
	}
	return fmt.Sprintf("%s: %d -> %d %s, %d nodes, cost=%.2f (%s), length=%.1fm, time=%.1fs",
		s.Algorithm, s.Origin, s.Destination, s.Status, len(s.Path), s.Cost, s.Mode, s.Length, s.TravelTime)
}

func newSolution(algorithm string, data ShortestPathData) Solution {
	return Solution{
		Status:      StatusUnknown,
		Algorithm:   algorithm,
		Origin:      data.Origin,
		Destination: data.Destination,
		Mode:        data.Mode,
		Path:        []int32{},
		Arcs:        []datastructure.Arc{},
	}
}
