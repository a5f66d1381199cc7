package event

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the object model.
// Use errors.Is() to check for these errors as they may be wrapped with additional context.
var (
	// ErrInvalidArgument is returned when an argument is outside its documented
	// domain, such as a subclass on a type other than CUSTOM or CLONE.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a type name cannot be resolved.
	ErrNotFound = errors.New("not found")

	// ErrFormat is returned for malformed encoded data: a short "ARRAY::"
	// payload or undecodable wire bytes.
	ErrFormat = errors.New("format error")
)

// UnknownTypeError reports a type name that is not in the registry.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown event type %q", e.Name)
}

// Is makes errors.Is(err, ErrNotFound) hold for an UnknownTypeError.
func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrNotFound
}

// IsUnknownType checks if an error reports an unresolvable type name.
func IsUnknownType(err error) bool {
	var unknown *UnknownTypeError
	return errors.As(err, &unknown)
}

// SubclassError reports a subclass supplied for a type that does not accept one.
type SubclassError struct {
	Type     Type
	Subclass string
}

func (e *SubclassError) Error() string {
	return fmt.Sprintf("subclass %q not allowed on event type %s", e.Subclass, e.Type)
}

// Is makes errors.Is(err, ErrInvalidArgument) hold for a SubclassError.
func (e *SubclassError) Is(target error) bool {
	return target == ErrInvalidArgument
}
