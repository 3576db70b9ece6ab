package lgc

import "fmt"

// FileFormatError reports a report whose preamble is not the expected one.
type FileFormatError struct {
	// Line is 1-based.
	Line      int
	Want, Got string
}

func (e *FileFormatError) Error() string {
	return fmt.Sprintf("unexpected value on line %d: expected %q, found %q", e.Line, e.Want, e.Got)
}

// HeaderFormatError reports a table boundary that is out of sequence: a
// table name not preceded by a blank line, a table seen twice, or a data row
// outside of any table.
type HeaderFormatError struct {
	// Line is 1-based.
	Line int
	// Table is empty when the offending line is not a table name.
	Table  string
	Reason string
}

func (e *HeaderFormatError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("encountered table %s on line %d, but %s", e.Table, e.Line, e.Reason)
}

// UnknownTableError reports a table name line naming no known table.
type UnknownTableError struct {
	// Line is 1-based.
	Line int
	Name string
	// Suggestion is the closest known table name, if any is close.
	Suggestion string
}

func (e *UnknownTableError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("line %d: unknown table %q (did you mean %q?)", e.Line, e.Name, e.Suggestion)
	}
	return fmt.Sprintf("line %d: unknown table %q", e.Line, e.Name)
}

// MissingKeyError reports a key required from the Header table that is not
// there.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("Could not find '%s' in header table.", e.Key)
}
