package guidance

import (
	"math"

	"lintang/begraphes/pkg/datastructure"
)

// alternativeTurns arcs leaving baseNode other than the one taken and the way back.
func (ife *InstructionsFromArcs) alternativeTurns(baseNode, adjNode, prevNode int32) []datastructure.Arc {
	alternatives := []datastructure.Arc{}
	for _, arcID := range ife.g.GetOutArcs(baseNode) {
		arc := ife.g.GetArc(arcID)
		if arc.To != prevNode && arc.To != adjNode {
			alternatives = append(alternatives, arc)
		}
	}
	return alternatives
}

/*
otherArcContinueDirection. arc alternatif dari baseNode yang arahnya juga lurus:

	                 ---- currentArc -----
	--prevArc-- baseNode
	                 ---- alternativeArc --
*/
func (ife *InstructionsFromArcs) otherArcContinueDirection(baseNode datastructure.Node, alternatives []datastructure.Arc) (datastructure.Arc, bool) {
	for _, arc := range alternatives {
		node := ife.g.GetNode(arc.To)
		if abs(getTurnDirection(baseNode.Lat, baseNode.Lon, node.Lat, node.Lon, ife.prevOrientation)) <= 1 {
			return arc, true
		}
	}
	return datastructure.Arc{}, false
}

func isLeavingCurrentStreet(prevArc, currentArc datastructure.Arc) bool {
	if isSameName(currentArc.StreetName, prevArc.StreetName) {
		return false
	}
	return prevArc.RoadClass != currentArc.RoadClass
}

func isMajorRoad(roadClass string) bool {
	return roadClass == "motorway" || roadClass == "trunk" || roadClass == "primary" || roadClass == "secondary" || roadClass == "tertiary"
}

// isTurn slight, normal or sharp turn to either side.
func isTurn(sign Sign) bool {
	a := abs(sign)
	return a == TurnSlightRight || a == TurnRight || a == TurnSharpRight
}

func abs(s Sign) Sign {
	if s < 0 {
		return -s
	}
	return s
}

func isSameName(name1, name2 string) bool {
	if name1 == "" || name2 == "" {
		// seringkali di osm nama street kosong, dianggap beda
		return false
	}
	return name1 == name2
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func alignOrientation(baseOrientation, orientation float64) float64 {
	if baseOrientation >= 0 {
		if orientation < -math.Pi+baseOrientation {
			return orientation + 2*math.Pi
		}
		return orientation
	}
	if orientation > math.Pi+baseOrientation {
		return orientation - 2*math.Pi
	}
	return orientation
}

func calcOrientation(lat1, lon1, lat2, lon2 float64) float64 {
	return toRadians(BearingTo(lat1, lon1, lat2, lon2))
}

// calculateOrientationDelta radian, positive clockwise (turning right).
func calculateOrientationDelta(prevLatitude, prevLongitude, latitude, longitude, prevOrientation float64) float64 {
	orientation := calcOrientation(prevLatitude, prevLongitude, latitude, longitude)
	orientation = alignOrientation(prevOrientation, orientation)
	return orientation - prevOrientation
}

func getTurnDirection(prevLatitude, prevLongitude, latitude, longitude, prevOrientation float64) Sign {
	delta := calculateOrientationDelta(prevLatitude, prevLongitude, latitude, longitude, prevOrientation)
	deltaDegree := math.Abs(delta) * (180 / math.Pi)
	switch {
	case deltaDegree < 12:
		return ContinueOnStreet
	case deltaDegree < 40:
		if delta < 0 {
			return TurnSlightLeft
		}
		return TurnSlightRight
	case deltaDegree < 105:
		if delta < 0 {
			return TurnLeft
		}
		return TurnRight
	case delta < 0:
		return TurnSharpLeft
	default:
		return TurnSharpRight
	}
}
