package errors

import (
	"errors"
	"fmt"
)

// Pipeline errors. Every fatal per-document failure wraps one of these.
var (
	// ErrFetch is returned when the remote document source is unreachable or
	// answers with a non-success status.
	ErrFetch = errors.New("fetch failed")
	// ErrStructuralParse is returned when a document has no frontmatter block
	// or cannot be parsed as a markdown tree.
	ErrStructuralParse = errors.New("structural parse error")
	// ErrFieldDecode is returned when a required frontmatter field is missing
	// or mistyped.
	ErrFieldDecode = errors.New("field decode error")
	// ErrDirectory is returned when the icon directory listing is unreachable
	// or malformed. It never fails an assembly on its own.
	ErrDirectory = errors.New("icon directory error")
)

// Read-side errors.
var (
	ErrNotFound = errors.New("not found")
)

// FieldDecodeError reports a frontmatter field that could not be decoded.
type FieldDecodeError struct {
	Field   string
	Line    int
	Message string
}

func (e *FieldDecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("frontmatter field %q (line %d): %s", e.Field, e.Line, e.Message)
	}
	return fmt.Sprintf("frontmatter field %q: %s", e.Field, e.Message)
}

func (e *FieldDecodeError) Unwrap() error {
	return ErrFieldDecode
}

// DocumentError attaches the document id to a fatal assembly failure.
type DocumentError struct {
	ID  string
	Err error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("cheatsheet %q: %v", e.ID, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
