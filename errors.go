package contracts

import "fmt"

// MissingFieldError reports a required field absent from a registry record.
type MissingFieldError struct {
	Contract string // contract id, when known
	Field    string
}

func (e *MissingFieldError) Error() string {
	if e.Contract == "" {
		return fmt.Sprintf("missing required field %q", e.Field)
	}
	return fmt.Sprintf("contract %s: missing required field %q", e.Contract, e.Field)
}

// FormatError reports a non-empty monetary or date text that cannot be parsed.
type FormatError struct {
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid value %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
