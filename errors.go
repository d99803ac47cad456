package fractarium

import "errors"

var (
	// ErrInvalidFormat is returned when a complex literal or a hex color does not parse.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrBoundViolation is returned when a palette index or size is out of range.
	ErrBoundViolation = errors.New("bound violation")

	// ErrConfigurationInvalid is returned for geometry that cannot be rendered.
	ErrConfigurationInvalid = errors.New("invalid configuration")
)
