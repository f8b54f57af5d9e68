package parser

import "fmt"

// Kind classifies a per-file parse failure. Each kind is fully
// contained at the parser boundary: one bad file never aborts a batch.
type Kind int

const (
	// KindFileNotFound means the path does not resolve to a readable file.
	KindFileNotFound Kind = iota + 1
	// KindEmptyInput means the file has no parseable rows or columns
	// (zero bytes, or a header row with no data rows).
	KindEmptyInput
	// KindMalformedInput means the content violates the delimited-text
	// grammar (unterminated quoting, inconsistent field counts).
	KindMalformedInput
	// KindUnexpected covers any other fault during decode.
	KindUnexpected
)

// String returns the diagnostic name of the failure kind.
func (k Kind) String() string {
	switch k {
	case KindFileNotFound:
		return "file_not_found"
	case KindEmptyInput:
		return "empty_input"
	case KindMalformedInput:
		return "malformed_input"
	case KindUnexpected:
		return "unexpected_failure"
	default:
		return "unknown"
	}
}

// Error is a typed per-file parse failure carrying enough context to
// diagnose without re-running the batch.
type Error struct {
	Path string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Kind)
}

// Unwrap exposes the underlying diagnostic for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(path string, kind Kind, err error) *Error {
	return &Error{Path: path, Kind: kind, Err: err}
}
