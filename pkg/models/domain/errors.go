package domain

import "fmt"

// MalformedRecordError reports a single raw row that could not be parsed.
// These are collected per row and only abort an ingest in strict mode.
type MalformedRecordError struct {
	Row    int // zero-based position in the raw input
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at row %d: field %q: %s", e.Row, e.Field, e.Reason)
}

// ValidationError reports a structural integrity violation in the cleaned
// dataset. It aborts the run.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dataset validation failed: %s", e.Reason)
}

// InsufficientDataError reports an aggregate operation invoked on a dataset
// below its minimum period count.
type InsufficientDataError struct {
	Op     string
	Needed int
	Got    int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s requires at least %d records, got %d", e.Op, e.Needed, e.Got)
}
