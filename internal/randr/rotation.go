package randr

// Rotation is the orientation applied to an output's rendered image,
// using xrandr's token names.
type Rotation string

const (
	RotationNormal   Rotation = "normal"
	RotationRight    Rotation = "right"
	RotationInverted Rotation = "inverted"
	RotationLeft     Rotation = "left"
)

// Clockwise degrees as xrandr counts them: rotating "right" turns the
// image 90 degrees clockwise.
var rotationDegrees = map[Rotation]int{
	RotationNormal:   0,
	RotationRight:    90,
	RotationInverted: 180,
	RotationLeft:     270,
}

var degreesRotation = map[int]Rotation{
	0:   RotationNormal,
	90:  RotationRight,
	180: RotationInverted,
	270: RotationLeft,
}

// Valid reports whether r is one of the four recognized rotations.
func (r Rotation) Valid() bool {
	_, ok := rotationDegrees[r]
	return ok
}

// Degrees returns the rotation as degrees (0, 90, 180 or 270).
// Returns 0 for an unrecognized rotation.
func (r Rotation) Degrees() int {
	return rotationDegrees[r]
}

// RotationFromDegrees converts a degree value to its named rotation.
func RotationFromDegrees(deg int) (Rotation, error) {
	r, ok := degreesRotation[deg]
	if !ok {
		return "", &ValidationError{Field: "rotation", Value: deg, Reason: "degrees must be one of 0, 90, 180, 270"}
	}
	return r, nil
}

func (r Rotation) String() string { return string(r) }
