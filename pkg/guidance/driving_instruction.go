package guidance

import (
	"errors"
	"math"

	"lintang/begraphes/pkg/datastructure"
	"lintang/begraphes/pkg/util"
)

var ErrEmptyPath = errors.New("guidance: path is empty")

// Graph is the read-only road network the instructions are computed on.
type Graph interface {
	GetNode(id int32) datastructure.Node
	GetOutArcs(id int32) []int32
	GetArc(arcID int32) datastructure.Arc
}

// InstructionsFromArcs turns the arcs of one computed path into turn-by-turn
// instructions. It keeps state between arcs, use a new one per path.
type InstructionsFromArcs struct {
	g                     Graph
	ways                  []*Instruction
	prevArc               datastructure.Arc
	prevNode              int32   // From dari prevArc, -1 sebelum arc pertama
	prevOrientation       float64 // orientasi prevArc (radian)
	doublePrevOrientation float64 // orientasi arc sebelum prevArc
	prevInstruction       *Instruction
	prevInRoundabout      bool
	doublePrevStreetName  string
}

func NewInstructionsFromArcs(g Graph) *InstructionsFromArcs {
	return &InstructionsFromArcs{
		g:        g,
		ways:     make([]*Instruction, 0),
		prevNode: -1,
	}
}

type DrivingInstruction struct {
	Instruction string                   `json:"instruction"`
	Point       datastructure.Coordinate `json:"point"`
	StreetName  string                   `json:"street_name"`
	ETA         float64                  `json:"eta"`
	Distance    float64                  `json:"distance"`
}

func NewDrivingInstruction(ins Instruction) DrivingInstruction {
	return DrivingInstruction{
		Instruction: ins.Description(),
		Point:       ins.Point,
		StreetName:  ins.Name,
		ETA:         util.RoundFloat(ins.Time, 2),
		Distance:    util.RoundFloat(ins.Distance, 2),
	}
}

// GetDrivingInstructions path is the arc sequence of a solution, origin first.
func (ife *InstructionsFromArcs) GetDrivingInstructions(path []datastructure.Arc) ([]DrivingInstruction, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	for _, arc := range path {
		ife.addInstructionFromArc(arc)
	}
	ife.finish()

	drivingInstructions := make([]DrivingInstruction, 0, len(ife.ways))
	for _, ins := range ife.ways {
		drivingInstructions = append(drivingInstructions, NewDrivingInstruction(*ins))
	}
	return drivingInstructions, nil
}

func (ife *InstructionsFromArcs) addInstructionFromArc(arc datastructure.Arc) {
	baseNode := ife.g.GetNode(arc.From)
	adjNode := ife.g.GetNode(arc.To)
	basePoint := datastructure.NewCoordinate(baseNode.Lat, baseNode.Lon)
	name := arc.StreetName

	switch {
	case ife.prevInstruction == nil && !arc.Roundabout:
		// titik awal shortest path & bukan bundaran
		ins := NewInstruction(Start, name, basePoint, false)
		ins.Heading = BearingTo(baseNode.Lat, baseNode.Lon, adjNode.Lat, adjNode.Lon)
		ife.push(&ins)

	case arc.Roundabout:
		if !ife.prevInRoundabout {
			ins := NewInstruction(UseRoundabout, name, basePoint, true)
			ife.doublePrevOrientation = ife.prevOrientation
			if ife.prevInstruction != nil {
				prevNode := ife.g.GetNode(ife.prevNode)
				ife.prevOrientation = calcOrientation(prevNode.Lat, prevNode.Lon, baseNode.Lat, baseNode.Lon)
			} else {
				ife.prevOrientation = calcOrientation(baseNode.Lat, baseNode.Lon, adjNode.Lat, adjNode.Lon)
			}
			ife.push(&ins)
		}
		// setiap node bundaran yang punya jalan keluar = satu exit point
		for _, arcID := range ife.g.GetOutArcs(arc.To) {
			if !ife.g.GetArc(arcID).Roundabout {
				ife.prevInstruction.Roundabout.ExitNumber++
				break
			}
		}

	case ife.prevInRoundabout:
		// keluar dari bundaran
		ife.prevInstruction.Name = name
		ife.prevInstruction.Roundabout.Exited = true
		ife.doublePrevStreetName = ife.prevArc.StreetName

	default:
		sign := ife.getTurnSign(arc, name)
		if sign == Ignore {
			break
		}
		if isUTurn, uTurnSign := ife.checkUTurn(sign, name, arc); isUTurn {
			ife.prevInstruction.Sign = uTurnSign
			ife.prevInstruction.Name = name
			break
		}
		ins := NewInstruction(sign, name, basePoint, false)
		ife.doublePrevOrientation = ife.prevOrientation
		ife.doublePrevStreetName = ife.prevArc.StreetName
		ife.push(&ins)
	}

	ife.prevInstruction.Distance += arc.Length
	ife.prevInstruction.Time += arc.TravelTime()

	ife.prevInRoundabout = arc.Roundabout
	ife.prevNode = arc.From
	ife.prevArc = arc
}

func (ife *InstructionsFromArcs) push(ins *Instruction) {
	ife.prevInstruction = ins
	ife.ways = append(ife.ways, ins)
}

/*
checkUTurn. cek apakah current arc adalah U-turn. Misalkan:

	A --doublePrevArc--> B
	                     |
	                  prevArc
	                     |
	D <--currentArc----- C

jika A->B belok kanan, B->C belok kanan, dan selisih bearing A->B dan C->D mendekati 180 derajat, maka U-turn.
*/
func (ife *InstructionsFromArcs) checkUTurn(sign Sign, name string, arc datastructure.Arc) (bool, Sign) {
	prevSign := ife.prevInstruction.Sign
	if ife.doublePrevOrientation == 0 || (sign > 0) != (prevSign > 0) ||
		!isTurn(sign) || !isTurn(prevSign) || !isSameName(ife.doublePrevStreetName, name) {
		return false, UTurnUnknown
	}

	baseNode := ife.g.GetNode(arc.From)
	adjNode := ife.g.GetNode(arc.To)
	currentOrientation := calcOrientation(baseNode.Lat, baseNode.Lon, adjNode.Lat, adjNode.Lon)
	diffAngle := math.Abs(ife.doublePrevOrientation-currentOrientation) * (180 / math.Pi)
	if diffAngle > 155 && diffAngle < 205 {
		if sign < 0 {
			return true, UTurnLeft
		}
		return true, UTurnRight
	}
	return false, UTurnUnknown
}

// finish tambah instruction tujuan akhir.
func (ife *InstructionsFromArcs) finish() {
	node := ife.g.GetNode(ife.prevArc.To)
	ins := NewInstruction(Finish, ife.prevArc.StreetName, datastructure.NewCoordinate(node.Lat, node.Lon), false)
	ife.ways = append(ife.ways, &ins)
}

/*
getTurnSign. turn sign dari 2 arc bersebelahan pada shortest path berdasarkan selisih bearing:

	prevNode----prevArc----baseNode
	                          |
	                      currentArc
	                          |
	                       adjNode
*/
func (ife *InstructionsFromArcs) getTurnSign(arc datastructure.Arc, name string) Sign {
	baseNode := ife.g.GetNode(arc.From)
	adjNode := ife.g.GetNode(arc.To)
	prevNode := ife.g.GetNode(ife.prevNode)

	ife.prevOrientation = calcOrientation(prevNode.Lat, prevNode.Lon, baseNode.Lat, baseNode.Lon)
	sign := getTurnDirection(baseNode.Lat, baseNode.Lon, adjNode.Lat, adjNode.Lon, ife.prevOrientation)

	alternatives := ife.alternativeTurns(arc.From, arc.To, ife.prevNode)
	if len(alternatives) == 0 {
		// bukan persimpangan, hanya tikungan tajam yang diumumkan
		if abs(sign) > 1 {
			return sign
		}
		return Ignore
	}

	if abs(sign) > 1 {
		if isSameName(name, ife.prevArc.StreetName) {
			return Ignore
		}
		return sign
	}

	delta := calculateOrientationDelta(baseNode.Lat, baseNode.Lon, adjNode.Lat, adjNode.Lon, ife.prevOrientation)
	if other, ok := ife.otherArcContinueDirection(baseNode, alternatives); ok && !isSameName(name, ife.prevArc.StreetName) {
		// ada arc lain dari baseNode yang arahnya juga lurus
		roadClass, prevRoadClass := arc.RoadClass, ife.prevArc.RoadClass
		if isMajorRoad(roadClass) && roadClass == prevRoadClass && other.RoadClass != prevRoadClass {
			return Ignore
		}
		if roadClass == "residential" || prevRoadClass == "residential" ||
			(roadClass == "unclassified" && prevRoadClass == "unclassified") {
			return Ignore
		}

		otherNode := ife.g.GetNode(other.To)
		otherDelta := calculateOrientationDelta(baseNode.Lat, baseNode.Lon, otherNode.Lat, otherNode.Lon, ife.prevOrientation)
		if delta > otherDelta {
			return KeepRight
		}
		return KeepLeft
	}

	if math.Abs(delta)*(180/math.Pi) > 34 || isLeavingCurrentStreet(ife.prevArc, arc) {
		return sign
	}
	return Ignore
}
