package shred

import "errors"

var (
	// ErrInvalidArgument is returned when a function of this package is called
	// with an invalid combination of arguments, for example a nil type or an
	// empty field name.
	//
	// Errors returned by the package may be tested against this sentinel with
	// errors.Is.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTypeMismatch is returned when a value of one physical type is used
	// with an array or column of another.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrLevelCountMismatch is returned when the number of definition or
	// repetition levels does not line up with the number of values they
	// describe.
	ErrLevelCountMismatch = errors.New("level count mismatch")

	// ErrCorrupted is returned when reading a page or file whose content does
	// not match its checksum or framing.
	ErrCorrupted = errors.New("corrupted")
)
