package routingalgorithm

import "math"

// Label is the state of one node during a single search. Labels live in a per-run
// arena indexed by node id and are only mutated by the search that owns them.
type Label struct {
	Node int32
	// Cost tentative best cost from the origin. +Inf until the node is reached.
	Cost float64
	// Estimate lower bound of the remaining cost to the destination (A*). 0 for Dijkstra.
	Estimate float64
	// PredecessorArc arc that last improved Cost, -1 if none.
	PredecessorArc int32
	// Settled once true, Cost is final.
	Settled bool
}

// TotalCost is the priority queue rank.
func (l *Label) TotalCost() float64 {
	return l.Cost + l.Estimate
}

func (l *Label) Reached() bool {
	return !math.IsInf(l.Cost, 1)
}

func newLabels(numNodes int) []Label {
	labels := make([]Label, numNodes)
	for i := range labels {
		labels[i] = Label{
			Node:           int32(i),
			Cost:           math.Inf(1),
			PredecessorArc: -1,
		}
	}
	return labels
}
