package pythontype

import "github.com/pkg/errors"

// ErrInvalidOperation is returned when the type API is used in a way that
// is never valid, such as instantiating a non-parametric type. It indicates
// a bug in the caller rather than a defect in the analyzed program.
var ErrInvalidOperation = errors.New("invalid operation")

// ErrArgument is returned when a type API call receives the wrong number or
// kind of arguments
var ErrArgument = errors.New("invalid argument")

func notGeneric(t DataType) error {
	return errors.Wrapf(ErrInvalidOperation, "%s cannot be generic", t.Kind())
}

func wrongArity(t DataType, want, got int) error {
	return errors.Wrapf(ErrArgument, "%s takes %d type argument(s), got %d", t.Kind(), want, got)
}

// IsContractViolation checks whether err was caused by misuse of the type API
func IsContractViolation(err error) bool {
	switch errors.Cause(err) {
	case ErrInvalidOperation, ErrArgument:
		return true
	}
	return false
}
