package repositories

import "fmt"

// WriteError wraps a failed insert or commit. Writes are never retried here;
// retry policy belongs to the caller.
type WriteError struct {
  Op  string
  Err error
}

func (e *WriteError) Error() string {
  return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
  return e.Err
}

// ParseError marks a malformed record in a bulk-load file. Raising one aborts
// the batch with no partial effect.
type ParseError struct {
  Line   int
  Record string
  Err    error
}

func (e *ParseError) Error() string {
  return fmt.Sprintf("line %d: malformed record %q: %v", e.Line, e.Record, e.Err)
}

func (e *ParseError) Unwrap() error {
  return e.Err
}
