package guidance

import (
	"fmt"
	"math"
	"strings"

	"lintang/begraphes/pkg/datastructure"
)

// Sign kind of manoeuvre. Negative values turn left, positive values turn right.
type Sign int

const (
	UTurnUnknown     Sign = -999
	UTurnLeft        Sign = -8
	KeepLeft         Sign = -7
	TurnSharpLeft    Sign = -3
	TurnLeft         Sign = -2
	TurnSlightLeft   Sign = -1
	ContinueOnStreet Sign = 0
	TurnSlightRight  Sign = 1
	TurnRight        Sign = 2
	TurnSharpRight   Sign = 3
	Finish           Sign = 4
	UseRoundabout    Sign = 6
	KeepRight        Sign = 7
	UTurnRight       Sign = 8
	Start            Sign = 101
	Ignore           Sign = 9999999
)

type RoundaboutInstruction struct {
	ExitNumber int
	Exited     bool
}

type Instruction struct {
	Point        datastructure.Coordinate
	Sign         Sign
	Name         string
	Distance     float64 // meter
	Time         float64 // second
	Heading      float64 // bearing in degrees, only set for Start
	IsRoundabout bool
	Roundabout   RoundaboutInstruction
}

func NewInstruction(sign Sign, name string, p datastructure.Coordinate, isRoundabout bool) Instruction {
	return Instruction{
		Sign:         sign,
		Name:         name,
		Point:        p,
		IsRoundabout: isRoundabout,
	}
}

// Description human readable text of the instruction.
func (ins *Instruction) Description() string {
	name := ins.Name
	switch ins.Sign {
	case ContinueOnStreet:
		if isEmpty(name) {
			return "Continue"
		}
		return fmt.Sprintf("Continue onto %s", name)
	case Start:
		compass := azimuthToCompass(ins.Heading)
		if isEmpty(name) {
			return fmt.Sprintf("Head %s", compass)
		}
		return fmt.Sprintf("Head %s toward %s", compass, name)
	case Finish:
		return "You have arrived at your destination"
	}

	dir := directionDescription(*ins)
	if dir == "" {
		return "Unknown instruction"
	}
	if isEmpty(name) || ins.Sign == UseRoundabout {
		return dir
	}
	if ins.Sign == KeepLeft || ins.Sign == KeepRight {
		return fmt.Sprintf("%s to continue on %s", dir, name)
	}
	return fmt.Sprintf("%s onto %s", dir, name)
}

func directionDescription(ins Instruction) string {
	switch ins.Sign {
	case UTurnUnknown:
		return "Make U-turn"
	case UTurnRight:
		return "Make U-turn right"
	case UTurnLeft:
		return "Make U-turn left"
	case KeepLeft:
		return "Keep left"
	case TurnSharpLeft:
		return "Turn sharp left"
	case TurnLeft:
		return "Turn left"
	case TurnSlightLeft:
		return "Turn slight left"
	case TurnSlightRight:
		return "Turn slight right"
	case TurnRight:
		return "Turn right"
	case TurnSharpRight:
		return "Turn sharp right"
	case KeepRight:
		return "Keep right"
	case UseRoundabout:
		if !ins.Roundabout.Exited {
			return "Enter the roundabout"
		}
		if isEmpty(ins.Name) {
			return fmt.Sprintf("At the roundabout, take exit %d", ins.Roundabout.ExitNumber)
		}
		return fmt.Sprintf("At the roundabout, take exit %d onto %s", ins.Roundabout.ExitNumber, ins.Name)
	default:
		return ""
	}
}

// azimuthToCompass azimuth in degrees, any range.
func azimuthToCompass(azimuth float64) string {
	azimuth = math.Mod(math.Mod(azimuth, 360)+360, 360)
	switch {
	case azimuth < 22.5:
		return "North"
	case azimuth < 67.5:
		return "North East"
	case azimuth < 112.5:
		return "East"
	case azimuth < 157.5:
		return "South East"
	case azimuth < 202.5:
		return "South"
	case azimuth < 247.5:
		return "South West"
	case azimuth < 292.5:
		return "West"
	case azimuth < 337.5:
		return "North West"
	default:
		return "North"
	}
}

func isEmpty(str string) bool {
	return strings.TrimSpace(str) == ""
}
