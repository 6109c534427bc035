package snap

import (
	"errors"
	"math"

	"lintang/begraphes/pkg/datastructure"
	"lintang/begraphes/pkg/geo"
	"lintang/begraphes/pkg/server"

	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/s2"
)

var ErrNoRoadNearby = errors.New("snap: no road near the location")

// roadSegment one undirected piece of road between two graph nodes, indexed by
// its (lon, lat) bounding box.
type roadSegment struct {
	from, to int32
	bounds   rtreego.Rect
}

func (s *roadSegment) Bounds() rtreego.Rect {
	return s.bounds
}

// RoadSnapper maps an arbitrary coordinate to the nearest node of the road network.
type RoadSnapper struct {
	g          *datastructure.Graph
	rt         *rtreego.Rtree
	candidates int
}

// NewRoadSnapper indexes every arc of g. Arcs u->v and v->u share one segment.
func NewRoadSnapper(g *datastructure.Graph, candidates int) *RoadSnapper {
	if candidates < 1 {
		candidates = 1
	}
	rt := rtreego.NewTree(2, 25, 50)
	seen := make(map[[2]int32]struct{})
	for _, arc := range g.Arcs {
		key := [2]int32{min(arc.From, arc.To), max(arc.From, arc.To)}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		a, b := g.GetNode(arc.From), g.GetNode(arc.To)
		minLon, minLat := math.Min(a.Lon, b.Lon), math.Min(a.Lat, b.Lat)
		// rtreego rejects zero length sides
		lengths := []float64{math.Abs(a.Lon-b.Lon) + 1e-9, math.Abs(a.Lat-b.Lat) + 1e-9}
		rect, err := rtreego.NewRect(rtreego.Point{minLon, minLat}, lengths)
		if err != nil {
			continue
		}
		rt.Insert(&roadSegment{from: arc.From, to: arc.To, bounds: rect})
	}
	return &RoadSnapper{g: g, rt: rt, candidates: candidates}
}

// SnapToNode projects (lat, lon) onto the closest of the nearest candidate road
// segments and returns the segment endpoint closest to that projection, together
// with the projected coordinate.
func (s *RoadSnapper) SnapToNode(lat, lon float64) (int32, datastructure.Coordinate, error) {
	if s.rt.Size() == 0 {
		return -1, datastructure.Coordinate{}, server.WrapErrorf(ErrNoRoadNearby, server.ErrNotFound,
			"no road near %.6f,%.6f", lat, lon)
	}

	query := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
	best := math.Inf(1)
	bestNode := int32(-1)
	var bestProjection datastructure.Coordinate

	for _, sp := range s.rt.NearestNeighbors(s.candidates, rtreego.Point{lon, lat}) {
		seg, ok := sp.(*roadSegment)
		if !ok || seg == nil {
			continue
		}
		a, b := s.g.GetNode(seg.from), s.g.GetNode(seg.to)
		aS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(a.Lat, a.Lon))
		bS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(b.Lat, b.Lon))

		var projected s2.Point
		if aS2.ApproxEqual(bS2) {
			projected = aS2
		} else {
			projected = s2.Project(query, aS2, bS2)
		}
		projLatLng := s2.LatLngFromPoint(projected)
		dist := query.Distance(projected).Radians()
		if dist >= best {
			continue
		}
		best = dist

		pLat, pLon := projLatLng.Lat.Degrees(), projLatLng.Lng.Degrees()
		bestProjection = datastructure.NewCoordinate(pLat, pLon)
		if geo.DistanceMeters(pLat, pLon, a.Lat, a.Lon) <= geo.DistanceMeters(pLat, pLon, b.Lat, b.Lon) {
			bestNode = seg.from
		} else {
			bestNode = seg.to
		}
	}

	if bestNode == -1 {
		return -1, datastructure.Coordinate{}, server.WrapErrorf(ErrNoRoadNearby, server.ErrNotFound,
			"no road near %.6f,%.6f", lat, lon)
	}
	return bestNode, bestProjection, nil
}
