package routingalgorithm

import (
	"fmt"
	"lintang/begraphes/pkg/datastructure"
)

// ArcFilter reports whether an arc may be used by the search.
type ArcFilter func(arc datastructure.Arc) bool

func FilterAllArcs(arc datastructure.Arc) bool {
	return true
}

// FilterCarsOnly only arcs a car may drive along, in the arc's direction.
func FilterCarsOnly(arc datastructure.Arc) bool {
	return arc.Access.Has(datastructure.AccessCar)
}

// FilterPedestrian only arcs open to pedestrians.
func FilterPedestrian(arc datastructure.Arc) bool {
	return arc.Access.Has(datastructure.AccessFoot)
}

func ParseArcFilter(name string) (ArcFilter, error) {
	switch name {
	case "", "all":
		return FilterAllArcs, nil
	case "car":
		return FilterCarsOnly, nil
	case "pedestrian", "foot":
		return FilterPedestrian, nil
	default:
		return nil, fmt.Errorf("unknown arc filter %q", name)
	}
}
