package apperr

// ValidationError reports a missing or malformed client parameter.
// Query echoes the offending input back to the caller.
type ValidationError struct {
	Message string
	Query   any
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// WithQuery attaches the input that failed validation
func (e *ValidationError) WithQuery(q any) *ValidationError {
	e.Query = q
	return e
}
