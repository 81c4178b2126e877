package combine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCombinationMethod reports an unknown or unregistered method.
	ErrInvalidCombinationMethod = errors.New("combine: invalid combination method")

	// ErrArgumentRequired reports a missing mandatory method parameter.
	ErrArgumentRequired = errors.New("combine: argument required")

	// ErrInvalidValue reports a parameter whose value cannot be interpreted,
	// such as a non-numeric string where a window width is expected.
	ErrInvalidValue = errors.New("combine: invalid parameter value")

	// ErrUnknownParameter reports a parameter the selected method does not accept.
	ErrUnknownParameter = errors.New("combine: unknown parameter")

	// ErrCitationNotImplemented reports a method or package without citation data.
	ErrCitationNotImplemented = errors.New("combine: citation not implemented")

	// ErrInvalidCitationMode reports an unsupported citation mode.
	ErrInvalidCitationMode = errors.New("combine: invalid citation mode")
)

func invalidValue(method Method, param string, value any) error {
	return fmt.Errorf("%w: %s parameter %q = %v", ErrInvalidValue, method, param, value)
}
