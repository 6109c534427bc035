package datastructure

import "fmt"

// Mode selects which arc attribute is minimized.
type Mode int

const (
	// ModeLength minimizes distance in meters.
	ModeLength Mode = iota
	// ModeTime minimizes travel time in seconds.
	ModeTime
)

func (m Mode) Cost(arc Arc) float64 {
	if m == ModeTime {
		return arc.TravelTime()
	}
	return arc.Length
}

func (m Mode) String() string {
	switch m {
	case ModeLength:
		return "length"
	case ModeTime:
		return "time"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "length", "distance":
		return ModeLength, nil
	case "time", "eta":
		return ModeTime, nil
	default:
		return ModeLength, fmt.Errorf("unknown cost mode %q", s)
	}
}
