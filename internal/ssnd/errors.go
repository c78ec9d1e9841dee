package ssnd

import "fmt"

// excerptLimit bounds how much of an offending token is echoed in errors.
const excerptLimit = 200

// LiteralError reports a token that is not a syntactically valid literal of
// the expected shape. Token is truncated to a readable excerpt.
type LiteralError struct {
	Token  string
	Reason string
}

func (e *LiteralError) Error() string {
	return fmt.Sprintf("malformed literal %q: %s", e.Token, e.Reason)
}

func newLiteralError(token, reason string) *LiteralError {
	if len(token) > excerptLimit {
		token = token[:excerptLimit] + "..."
	}
	return &LiteralError{Token: token, Reason: reason}
}

// RowError reports a table row that could not be decoded: wrong field count,
// or a non-numeric field where a number was expected. Section names the table
// and Line is the raw input line.
type RowError struct {
	Section string
	Line    string
	Reason  string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("section %s: bad row %q: %s", e.Section, e.Line, e.Reason)
}

func rowErrf(section, line, format string, args ...any) *RowError {
	return &RowError{Section: section, Line: line, Reason: fmt.Sprintf(format, args...)}
}

// MissingFieldError reports a required header key that is absent from an
// instance file.
type MissingFieldError struct {
	Key string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required header field %q is missing", e.Key)
}
