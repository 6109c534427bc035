package osmparser

import (
	"fmt"

	"lintang/begraphes/pkg/datastructure"
	"lintang/begraphes/pkg/geo"

	"github.com/k0kubun/go-ansi"
	"github.com/paulmach/osm"
	"github.com/schollz/progressbar/v3"
)

// BuildGraph turns ways whose nodes already carry coordinates into a directed graph.
// Every way node becomes a graph node (shared between ways by osm id) and every pair
// of consecutive way nodes becomes one arc per allowed direction. The arc carries the
// travel modes allowed in that direction, so the reverse of a car oneway is foot only.
func (p *OSMParser) BuildGraph(ways []*osm.Way) (*datastructure.Graph, error) {
	g := datastructure.NewGraph()
	nodeIdxMap := make(map[osm.NodeID]int32)

	bar := progressbar.NewOptions(len(ways),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionSetVisibility(p.showProgress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan][2/3][reset] building road network graph..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	nodeID := func(wn osm.WayNode) int32 {
		if id, ok := nodeIdxMap[wn.ID]; ok {
			return id
		}
		id := g.AddNode(wn.Lat, wn.Lon, int64(wn.ID))
		nodeIdxMap[wn.ID] = id
		return id
	}

	for _, way := range ways {
		bar.Add(1)
		if len(way.Nodes) < 2 {
			continue
		}
		attr := getWayAttributes(way)
		if !attr.carAccess && !attr.footAccess {
			continue
		}

		from := nodeID(way.Nodes[0])
		for i := 1; i < len(way.Nodes); i++ {
			to := nodeID(way.Nodes[i])
			if from == to {
				continue
			}
			fromNode, toNode := g.GetNode(from), g.GetNode(to)
			arc := datastructure.Arc{
				Length:     geo.DistanceMeters(fromNode.Lat, fromNode.Lon, toNode.Lat, toNode.Lon),
				MaxSpeed:   attr.maxSpeed,
				RoadClass:  attr.roadClass,
				StreetName: attr.streetName,
				Roundabout: attr.roundabout,
			}

			if access := attr.access(false); access != 0 {
				arc.From, arc.To, arc.Access = from, to, access
				if _, err := g.AddArc(arc); err != nil {
					return nil, fmt.Errorf("osmparser: way %d: %w", way.ID, err)
				}
			}
			if access := attr.access(true); access != 0 {
				arc.From, arc.To, arc.Access = to, from, access
				if _, err := g.AddArc(arc); err != nil {
					return nil, fmt.Errorf("osmparser: way %d: %w", way.ID, err)
				}
			}
			from = to
		}
	}
	if p.showProgress {
		fmt.Println("")
	}
	return g, nil
}
