package water

import (
	"errors"

	"water-ca/internal/core"
)

var (
	// ErrOutOfBoundsIndex indicates a cell index outside [0, width*height).
	ErrOutOfBoundsIndex = errors.New("water: cell index out of bounds")
	// ErrInvalidGridDimensions indicates a non-positive width or height.
	ErrInvalidGridDimensions = core.ErrInvalidGridDimensions
	// ErrInvalidWaterLevel indicates a level outside [0, MaxWaterLevel].
	ErrInvalidWaterLevel = errors.New("water: water level out of range")
	// ErrInvalidMode indicates an unknown stepping mode.
	ErrInvalidMode = errors.New("water: unknown stepping mode")
	// ErrInvalidConfig indicates an unusable parameter combination.
	ErrInvalidConfig = errors.New("water: invalid configuration")
	// ErrInvalidScenario indicates a malformed scenario file or grid drawing.
	ErrInvalidScenario = errors.New("water: invalid scenario")
)
