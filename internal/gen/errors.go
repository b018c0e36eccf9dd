package gen

import (
	"errors"
	"fmt"
)

// ErrConfig marks configuration defects detected before any sampling:
// inverted ranges, non-positive concentrations, probabilities outside [0,1],
// mismatched table lengths, non-positive counts.
var ErrConfig = errors.New("invalid configuration")

// ErrGeneration marks mid-pipeline failures: an upstream table required by a
// later stage is empty or carries no usable mass.
var ErrGeneration = errors.New("generation failed")

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}

func generationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrGeneration, fmt.Sprintf(format, args...))
}

// PipelineError wraps an error with the stage where it occurred.
type PipelineError struct {
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}
