package datastructure

import (
	"errors"
	"fmt"
	"math"

	"github.com/twpayne/go-polyline"
)

var (
	ErrNegativeCost = errors.New("graph: arc cost must be finite and non-negative")
	ErrNodeNotFound = errors.New("graph: node not found")
)

type Node struct {
	ID    int32
	OsmID int64
	Lat   float64
	Lon   float64
}

// Access bit set of the travel modes allowed to traverse an arc in its direction.
type Access uint8

const (
	AccessCar Access = 1 << iota
	AccessFoot

	AccessAll = AccessCar | AccessFoot
)

func (a Access) Has(mode Access) bool {
	return a&mode == mode
}

// Arc directed edge From -> To. Length dalam meter, MaxSpeed dalam km/h.
type Arc struct {
	ID         int32
	From       int32
	To         int32
	Length     float64
	MaxSpeed   float64
	RoadClass  string
	StreetName string
	Roundabout bool
	Access     Access
}

// TravelTime in seconds.
func (a Arc) TravelTime() float64 {
	return a.Length / (a.MaxSpeed / 3.6)
}

// Graph is an adjacency-array directed graph. Node ids are dense: node i lives at Nodes[i].
// After loading it is only read, so one Graph can serve many concurrent queries.
type Graph struct {
	Nodes   []Node
	Arcs    []Arc
	OutArcs [][]int32
}

func NewGraph() *Graph {
	return &Graph{
		Nodes:   make([]Node, 0),
		Arcs:    make([]Arc, 0),
		OutArcs: make([][]int32, 0),
	}
}

// AddNode appends a node and returns its id.
func (g *Graph) AddNode(lat, lon float64, osmID int64) int32 {
	id := int32(len(g.Nodes))
	g.Nodes = append(g.Nodes, Node{ID: id, OsmID: osmID, Lat: lat, Lon: lon})
	g.OutArcs = append(g.OutArcs, []int32{})
	return id
}

// AddArc appends arc from -> to. The arc ID field is assigned here.
func (g *Graph) AddArc(arc Arc) (int32, error) {
	if !g.HasNode(arc.From) || !g.HasNode(arc.To) {
		return -1, fmt.Errorf("%w: arc %d -> %d", ErrNodeNotFound, arc.From, arc.To)
	}
	if err := ValidateArc(arc); err != nil {
		return -1, err
	}
	arc.ID = int32(len(g.Arcs))
	g.Arcs = append(g.Arcs, arc)
	g.OutArcs[arc.From] = append(g.OutArcs[arc.From], arc.ID)
	return arc.ID, nil
}

// ValidateArc rejects arcs whose length or travel time is negative, NaN or infinite.
func ValidateArc(arc Arc) error {
	if math.IsNaN(arc.Length) || math.IsInf(arc.Length, 0) || arc.Length < 0 {
		return fmt.Errorf("%w: arc %d -> %d length=%v", ErrNegativeCost, arc.From, arc.To, arc.Length)
	}
	if math.IsNaN(arc.MaxSpeed) || math.IsInf(arc.MaxSpeed, 0) || arc.MaxSpeed <= 0 {
		return fmt.Errorf("%w: arc %d -> %d maxspeed=%v", ErrNegativeCost, arc.From, arc.To, arc.MaxSpeed)
	}
	return nil
}

func (g *Graph) NumNodes() int {
	return len(g.Nodes)
}

func (g *Graph) NumArcs() int {
	return len(g.Arcs)
}

func (g *Graph) HasNode(id int32) bool {
	return id >= 0 && int(id) < len(g.Nodes)
}

func (g *Graph) GetNode(id int32) Node {
	return g.Nodes[id]
}

func (g *Graph) GetOutArcs(id int32) []int32 {
	return g.OutArcs[id]
}

func (g *Graph) GetArc(arcID int32) Arc {
	return g.Arcs[arcID]
}

func RoadTypeMaxSpeed(roadType string) float64 {
	switch roadType {
	case "motorway":
		return 95
	case "trunk":
		return 85
	case "primary":
		return 75
	case "secondary":
		return 65
	case "tertiary":
		return 50
	case "unclassified":
		return 50
	case "residential":
		return 30
	case "service":
		return 20
	case "motorway_link":
		return 90
	case "trunk_link":
		return 80
	case "primary_link":
		return 70
	case "secondary_link":
		return 60
	case "tertiary_link":
		return 50
	case "living_street":
		return 20
	case "footway", "path", "pedestrian", "steps", "track":
		return 5
	case "cycleway":
		return 15
	default:
		return 40
	}
}

// RenderPath encodes the node sequence as a google polyline string.
func RenderPath(path []Node) string {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}
