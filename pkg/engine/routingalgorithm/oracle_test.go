package routingalgorithm_test

import (
	"context"
	"testing"

	"lintang/begraphes/pkg/datastructure"
	"lintang/begraphes/pkg/engine/routingalgorithm"
	"lintang/begraphes/pkg/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// randomGraph nodes scattered in a small box, arc length at least the great-circle
// distance between the endpoints so the A* estimate stays admissible.
func randomGraph(t *testing.T, rnd *rand.Rand, numNodes, numArcs int) *datastructure.Graph {
	t.Helper()
	g := datastructure.NewGraph()
	for i := 0; i < numNodes; i++ {
		g.AddNode(-7.5+rnd.Float64()*0.1, 110.8+rnd.Float64()*0.1, int64(i))
	}
	speeds := []float64{20, 30, 50, 80}
	for i := 0; i < numArcs; i++ {
		from := int32(rnd.Intn(numNodes))
		to := int32(rnd.Intn(numNodes))
		if from == to {
			continue
		}
		a, b := g.GetNode(from), g.GetNode(to)
		length := geo.DistanceMeters(a.Lat, a.Lon, b.Lat, b.Lon) * (1 + rnd.Float64())
		_, err := g.AddArc(datastructure.Arc{From: from, To: to, Length: length, MaxSpeed: speeds[rnd.Intn(len(speeds))]})
		require.NoError(t, err)
	}
	return g
}

func TestDijkstraAgainstBellmanFord(t *testing.T) {
	ctx := context.Background()
	rnd := rand.New(rand.NewSource(7))

	for round := 0; round < 20; round++ {
		g := randomGraph(t, rnd, 40, 120)
		rt := newRouter(t, g)
		for q := 0; q < 10; q++ {
			for _, mode := range []datastructure.Mode{datastructure.ModeLength, datastructure.ModeTime} {
				data := routingalgorithm.ShortestPathData{
					Origin:      int32(rnd.Intn(g.NumNodes())),
					Destination: int32(rnd.Intn(g.NumNodes())),
					Mode:        mode,
				}
				want, err := rt.ShortestPathBellmanFord(ctx, data)
				require.NoError(t, err)
				got, err := rt.ShortestPathDijkstra(ctx, data)
				require.NoError(t, err)
				astar, err := rt.ShortestPathAStar(ctx, data)
				require.NoError(t, err)

				require.Equal(t, want.Status, got.Status, "dijkstra status %d -> %d", data.Origin, data.Destination)
				require.Equal(t, want.Status, astar.Status, "astar status %d -> %d", data.Origin, data.Destination)
				if !want.IsFeasible() {
					continue
				}
				assert.InDelta(t, want.Cost, got.Cost, 1e-6)
				assert.InDelta(t, want.Cost, astar.Cost, 1e-6)

				// the path cost must equal the sum of its arc costs
				sum := 0.0
				for _, arc := range got.Arcs {
					sum += mode.Cost(arc)
				}
				assert.InDelta(t, got.Cost, sum, 1e-6)
				assert.Equal(t, data.Origin, got.Path[0])
				assert.Equal(t, data.Destination, got.Path[len(got.Path)-1])
			}
		}
	}
}
