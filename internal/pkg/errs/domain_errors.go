package errs

// Error categories shared by every layer. Concrete errors are marked with one of these
// so the transport layer can pick a status code without knowing the concrete error.
var (
	// malformed or missing input, rejected before touching persistence
	ErrValidation = New("validation error")
	// a lifecycle precondition does not hold (wrong state, duplicate refund, no covering policy)
	ErrDomainRule = New("domain rule violation")
	// a concurrent mutation won the race
	ErrConflict = New("conflict")
	// the referenced record does not exist
	ErrNotFound = New("record not found")
)

func Validation(msg string) error {
	return Mark(New(msg), ErrValidation)
}

func DomainRule(msg string) error {
	return Mark(New(msg), ErrDomainRule)
}

func Conflict(msg string) error {
	return Mark(New(msg), ErrConflict)
}

func NotFound(msg string) error {
	return Mark(New(msg), ErrNotFound)
}

// Category reports which of the error categories err belongs to, or nil for infrastructure failures.
func Category(err error) error {
	switch {
	case Is(err, ErrValidation):
		return ErrValidation
	case Is(err, ErrDomainRule):
		return ErrDomainRule
	case Is(err, ErrConflict):
		return ErrConflict
	case Is(err, ErrNotFound):
		return ErrNotFound
	default:
		return nil
	}
}
