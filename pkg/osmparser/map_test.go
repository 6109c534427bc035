package osmparser

import (
	"context"
	"testing"

	"lintang/begraphes/pkg/datastructure"
	"lintang/begraphes/pkg/engine/routingalgorithm"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func way(id osm.WayID, nodeIDs []osm.NodeID, tags ...string) *osm.Way {
	w := &osm.Way{ID: id}
	for _, nid := range nodeIDs {
		w.Nodes = append(w.Nodes, osm.WayNode{ID: nid, Lat: -7.55 + float64(nid)*1e-3, Lon: 110.8})
	}
	for i := 0; i+1 < len(tags); i += 2 {
		w.Tags = append(w.Tags, osm.Tag{Key: tags[i], Value: tags[i+1]})
	}
	return w
}

func TestBuildGraph(t *testing.T) {
	p := NewOSMParser()

	t.Run("two way road gives arcs in both directions", func(t *testing.T) {
		g, err := p.BuildGraph([]*osm.Way{way(1, []osm.NodeID{1, 2, 3}, "highway", "residential", "name", "Jalan Slamet Riyadi")})
		require.NoError(t, err)
		assert.Equal(t, 3, g.NumNodes())
		assert.Equal(t, 4, g.NumArcs())
		arc := g.GetArc(0)
		assert.Equal(t, "Jalan Slamet Riyadi", arc.StreetName)
		assert.Equal(t, "residential", arc.RoadClass)
		assert.Equal(t, 30.0, arc.MaxSpeed)
		// 1e-3 degree of latitude is about 111 m
		assert.InDelta(t, 111.19, arc.Length, 0.1)
	})

	t.Run("oneway and reversed oneway", func(t *testing.T) {
		g, err := p.BuildGraph([]*osm.Way{
			way(1, []osm.NodeID{1, 2}, "highway", "primary", "oneway", "yes"),
			way(2, []osm.NodeID{3, 4}, "highway", "primary", "oneway", "-1"),
		})
		require.NoError(t, err)
		require.Equal(t, 4, g.NumArcs())
		n1, n2, n3, n4 := int32(0), int32(1), int32(2), int32(3)

		assertArc := func(id int32, from, to int32, access datastructure.Access) {
			t.Helper()
			arc := g.GetArc(id)
			assert.Equal(t, from, arc.From)
			assert.Equal(t, to, arc.To)
			assert.Equal(t, access, arc.Access)
		}
		assertArc(0, n1, n2, datastructure.AccessAll)
		assertArc(1, n2, n1, datastructure.AccessFoot)
		assertArc(2, n3, n4, datastructure.AccessFoot)
		assertArc(3, n4, n3, datastructure.AccessAll)
	})

	t.Run("oneway motorway has no reverse arc", func(t *testing.T) {
		g, err := p.BuildGraph([]*osm.Way{way(1, []osm.NodeID{1, 2}, "highway", "motorway", "oneway", "yes")})
		require.NoError(t, err)
		require.Equal(t, 1, g.NumArcs())
		assert.Equal(t, datastructure.AccessCar, g.GetArc(0).Access)
	})

	t.Run("roundabout is implicitly oneway for cars", func(t *testing.T) {
		g, err := p.BuildGraph([]*osm.Way{way(1, []osm.NodeID{1, 2, 3}, "highway", "tertiary", "junction", "roundabout")})
		require.NoError(t, err)
		require.Equal(t, 4, g.NumArcs())
		assert.True(t, g.GetArc(0).Roundabout)
		carArcs := 0
		for _, arc := range g.Arcs {
			if arc.Access.Has(datastructure.AccessCar) {
				carArcs++
				assert.Less(t, arc.From, arc.To)
			}
		}
		assert.Equal(t, 2, carArcs)
	})

	t.Run("footway ignores oneway", func(t *testing.T) {
		g, err := p.BuildGraph([]*osm.Way{way(1, []osm.NodeID{1, 2}, "highway", "footway", "oneway", "yes")})
		require.NoError(t, err)
		assert.Equal(t, 2, g.NumArcs())
		assert.Equal(t, 5.0, g.GetArc(0).MaxSpeed)
		assert.Equal(t, datastructure.AccessFoot, g.GetArc(0).Access)
		assert.Equal(t, datastructure.AccessFoot, g.GetArc(1).Access)
	})

	t.Run("way closed to both cars and pedestrians is skipped", func(t *testing.T) {
		g, err := p.BuildGraph([]*osm.Way{way(1, []osm.NodeID{1, 2}, "highway", "residential", "access", "private")})
		require.NoError(t, err)
		assert.Equal(t, 0, g.NumNodes())
		assert.Equal(t, 0, g.NumArcs())
	})

	t.Run("shared nodes connect ways", func(t *testing.T) {
		g, err := p.BuildGraph([]*osm.Way{
			way(1, []osm.NodeID{1, 2}, "highway", "residential"),
			way(2, []osm.NodeID{2, 3}, "highway", "residential", "maxspeed", "40"),
		})
		require.NoError(t, err)
		assert.Equal(t, 3, g.NumNodes())
		assert.Len(t, g.GetOutArcs(1), 2)
		assert.Equal(t, 40.0, g.GetArc(2).MaxSpeed)
	})
}

func TestBuildGraphAccessFilters(t *testing.T) {
	p := NewOSMParser()
	ctx := context.Background()

	t.Run("road closed to cars is walkable but not drivable", func(t *testing.T) {
		g, err := p.BuildGraph([]*osm.Way{
			way(1, []osm.NodeID{1, 2}, "highway", "residential", "motorcar", "no", "oneway", "yes"),
		})
		require.NoError(t, err)
		require.Equal(t, 2, g.NumArcs())
		for _, arc := range g.Arcs {
			assert.False(t, routingalgorithm.FilterCarsOnly(arc), "arc %d -> %d", arc.From, arc.To)
			assert.True(t, routingalgorithm.FilterPedestrian(arc), "arc %d -> %d", arc.From, arc.To)
		}

		rt, err := routingalgorithm.NewRouteAlgorithm(g)
		require.NoError(t, err)
		sol, err := rt.ShortestPathDijkstra(ctx, routingalgorithm.ShortestPathData{
			Origin: 0, Destination: 1, Filter: routingalgorithm.FilterCarsOnly,
		})
		require.NoError(t, err)
		assert.Equal(t, routingalgorithm.StatusInfeasible, sol.Status)

		sol, err = rt.ShortestPathDijkstra(ctx, routingalgorithm.ShortestPathData{
			Origin: 1, Destination: 0, Filter: routingalgorithm.FilterPedestrian,
		})
		require.NoError(t, err)
		assert.Equal(t, routingalgorithm.StatusOptimal, sol.Status)
	})

	t.Run("pedestrian walks against a oneway primary, car does not", func(t *testing.T) {
		g, err := p.BuildGraph([]*osm.Way{
			way(1, []osm.NodeID{1, 2, 3}, "highway", "primary", "oneway", "yes"),
		})
		require.NoError(t, err)
		rt, err := routingalgorithm.NewRouteAlgorithm(g)
		require.NoError(t, err)

		sol, err := rt.ShortestPathDijkstra(ctx, routingalgorithm.ShortestPathData{
			Origin: 2, Destination: 0, Filter: routingalgorithm.FilterPedestrian,
		})
		require.NoError(t, err)
		assert.Equal(t, routingalgorithm.StatusOptimal, sol.Status)
		assert.Equal(t, []int32{2, 1, 0}, sol.Path)

		sol, err = rt.ShortestPathDijkstra(ctx, routingalgorithm.ShortestPathData{
			Origin: 2, Destination: 0, Filter: routingalgorithm.FilterCarsOnly,
		})
		require.NoError(t, err)
		assert.Equal(t, routingalgorithm.StatusInfeasible, sol.Status)

		sol, err = rt.ShortestPathDijkstra(ctx, routingalgorithm.ShortestPathData{
			Origin: 0, Destination: 2, Filter: routingalgorithm.FilterCarsOnly,
		})
		require.NoError(t, err)
		assert.Equal(t, routingalgorithm.StatusOptimal, sol.Status)
	})
}

func TestParseMaxSpeed(t *testing.T) {
	assert.Equal(t, 50.0, parseMaxSpeed("50"))
	assert.Equal(t, 60.0, parseMaxSpeed("60 km/h"))
	assert.InDelta(t, 48.28, parseMaxSpeed("30 mph"), 0.01)
	assert.Equal(t, 0.0, parseMaxSpeed("none"))
	assert.Equal(t, 0.0, parseMaxSpeed(""))
}

func TestWayProfiles(t *testing.T) {
	assert.True(t, isOsmWayUsedByCars(map[string]string{"highway": "primary"}))
	assert.False(t, isOsmWayUsedByCars(map[string]string{"highway": "footway"}))
	assert.False(t, isOsmWayUsedByCars(map[string]string{"highway": "residential", "access": "private"}))
	assert.False(t, isOsmWayUsedByCars(map[string]string{"building": "yes"}))

	assert.True(t, isOsmWayUsedByPedestrians(map[string]string{"highway": "footway"}))
	assert.True(t, isOsmWayUsedByPedestrians(map[string]string{"highway": "residential"}))
	assert.False(t, isOsmWayUsedByPedestrians(map[string]string{"highway": "motorway"}))
	assert.False(t, isOsmWayUsedByPedestrians(map[string]string{"highway": "residential", "foot": "no"}))
}
