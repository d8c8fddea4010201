package sim

import "errors"

var (
	// ErrInvalidConfig indicates a run configuration the world cannot step.
	ErrInvalidConfig = errors.New("sim: invalid run configuration")

	// ErrInvalidState indicates a particle with a NaN or Inf coordinate.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")
)
