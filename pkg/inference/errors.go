package inference

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an inference failure. The set is open: new kinds may
// be added, and callers should treat a kind they do not recognise as a
// generic failure.
type ErrorKind string

const (
	// ErrorKindParse is malformed input bytes.
	ErrorKindParse ErrorKind = "parse"
	// ErrorKindSelect is a jq selection that failed at runtime or produced
	// no samples.
	ErrorKindSelect ErrorKind = "select"
	// ErrorKindLimit is input exceeding the configured sample limit.
	ErrorKindLimit ErrorKind = "limit"
)

// Sentinels for errors.Is.
var (
	ErrParse  = errors.New("parse error")
	ErrSelect = errors.New("select error")
	ErrLimit  = errors.New("sample limit exceeded")
)

var errNoDocuments = errors.New("input contains no documents")

// Error is the failure of an inference call. No partial shape accompanies
// it. Sample is the zero-based index of the input (-1 when the failure is
// not tied to one input), Document the index of the document inside it, and
// Offset the byte offset of a parse failure (-1 when unknown).
type Error struct {
	Kind     ErrorKind
	Sample   int
	Document int
	Offset   int64
	Cause    error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == ErrorKindParse && e.Offset >= 0:
		return fmt.Sprintf("%s error in sample %d, document %d at offset %d: %v", e.Kind, e.Sample, e.Document, e.Offset, e.Cause)
	case e.Sample < 0:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s error in sample %d, document %d: %v", e.Kind, e.Sample, e.Document, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case ErrorKindParse:
		return target == ErrParse
	case ErrorKindSelect:
		return target == ErrSelect
	case ErrorKindLimit:
		return target == ErrLimit
	}
	return false
}
