package schedule

// ValidationError reports missing or malformed user input. It is surfaced
// verbatim to the caller and never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func newValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}
