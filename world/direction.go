package world

import "github.com/pkg/errors"

// Axis selects the horizontal (column) or vertical (row) axis.
type Axis int

const (
	AxisCol Axis = iota
	AxisRow
)

func (a Axis) String() string {
	if a == AxisRow {
		return "row"
	}
	return "col"
}

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	if a == AxisRow {
		return AxisCol
	}
	return AxisRow
}

// Direction is the direction of a boundary cross.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = [...]string{"up", "down", "left", "right"}

func (d Direction) String() string {
	if d < Up || d > Right {
		return "unknown"
	}
	return directionNames[d]
}

// Axis returns the axis the direction moves along.
func (d Direction) Axis() Axis {
	if d == Up || d == Down {
		return AxisRow
	}
	return AxisCol
}

// Sign returns -1 for Up and Left, +1 for Down and Right.
// Rows grow downward, matching screen coordinates.
func (d Direction) Sign() int {
	if d == Up || d == Left {
		return -1
	}
	return 1
}

// DirectionOf maps an axis and a sign to a direction.
func DirectionOf(a Axis, sign int) Direction {
	switch {
	case a == AxisRow && sign < 0:
		return Up
	case a == AxisRow:
		return Down
	case sign < 0:
		return Left
	default:
		return Right
	}
}

// MarshalText lets directions appear by name in traces.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a direction name.
func (d *Direction) UnmarshalText(b []byte) error {
	for i, name := range directionNames {
		if name == string(b) {
			*d = Direction(i)
			return nil
		}
	}
	return errors.Errorf("unknown direction %q", b)
}
