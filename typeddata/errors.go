package typeddata

// EncodingError indicates a payload could not be canonically encoded, either
// because a required field is missing or malformed or because the underlying
// typed-data encoding rejected it.
type EncodingError struct {
	Reason string
	Cause  error
}

func (e *EncodingError) Error() string {
	if e.Cause != nil {
		return "encoding error: " + e.Reason + ": " + e.Cause.Error()
	}
	return "encoding error: " + e.Reason
}

func (e *EncodingError) Unwrap() error {
	return e.Cause
}
