package analysis

import "errors"

// ValidationError marks client input problems so handlers can map them to 400.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// ErrEmptyLogs is returned before any upstream call is made.
const ErrEmptyLogs = ValidationError("logs text is required")

// ErrMalformedOutput indicates the model did not return JSON matching the schema.
var ErrMalformedOutput = errors.New("model returned malformed output")
