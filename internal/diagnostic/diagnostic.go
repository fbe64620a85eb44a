// Package diagnostic defines the structured errors and warnings reported
// during type resolution and document generation.
package diagnostic

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Category classifies diagnostics for filtering.
type Category string

const (
	// CategoryUnresolvedIdentifier reports a type name that is neither a
	// primitive, nor a known wrapper, nor an alias, nor a defined type.
	CategoryUnresolvedIdentifier Category = "unresolved-identifier"
	// CategoryGenericArity reports a wrapper or generic type applied with
	// the wrong number of type arguments.
	CategoryGenericArity Category = "generic-arity"
	// CategoryNameCollision reports two distinct generic instantiations
	// computing the same canonical component name.
	CategoryNameCollision Category = "name-collision"
	// CategoryDiscriminatorInvalid reports a discriminator configuration
	// incompatible with the enum's variant shapes.
	CategoryDiscriminatorInvalid Category = "discriminator-invalid"
	// CategoryTypeSyntax reports a malformed type expression.
	CategoryTypeSyntax Category = "type-syntax"
	// CategoryConfigInvalid reports an invalid tool configuration.
	CategoryConfigInvalid Category = "config-invalid"
	// CategoryCompliance reports an OpenAPI document compliance finding.
	CategoryCompliance Category = "openapi-compliance"
)

// Pos identifies a location in a manifest or source artifact.
// A zero Line means the location is unknown.
type Pos struct {
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
	Line   int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column int    `json:"column,omitempty" yaml:"column,omitempty"`
}

// String formats the position as file:line:col, omitting unknown parts.
func (p Pos) String() string {
	if p.File == "" && p.Line == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(p.File)
	if p.Line > 0 {
		fmt.Fprintf(&sb, ":%d", p.Line)
		if p.Column > 0 {
			fmt.Fprintf(&sb, ":%d", p.Column)
		}
	}
	return sb.String()
}

// IsZero reports whether the position carries no location information.
func (p Pos) IsZero() bool {
	return p == Pos{}
}

// Diagnostic represents a structured diagnostic message.
type Diagnostic struct {
	Severity Severity
	Category Category
	Pos      Pos
	Message  string
	Hint     string // optional suggestion for fixing the issue
}

// String formats the diagnostic for display.
func (d Diagnostic) String() string {
	var sb strings.Builder

	if loc := d.Pos.String(); loc != "" {
		sb.WriteString(loc)
		sb.WriteString(" - ")
	}

	sb.WriteString(d.Severity.String())
	sb.WriteString(": ")

	if d.Category != "" {
		sb.WriteString("[")
		sb.WriteString(string(d.Category))
		sb.WriteString("] ")
	}

	sb.WriteString(d.Message)

	if d.Hint != "" {
		sb.WriteString("\n  hint: ")
		sb.WriteString(d.Hint)
	}

	return sb.String()
}

// Error is a fatal, location-tagged resolution error. Any Error returned
// from a generation pass aborts that pass; there is no partial output.
type Error struct {
	Diagnostic
}

// Errorf creates a fatal diagnostic error with a formatted message.
func Errorf(category Category, pos Pos, format string, args ...any) *Error {
	return &Error{Diagnostic{
		Severity: SeverityError,
		Category: category,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	}}
}

// WithHint attaches a fix suggestion to the error and returns it.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

func (e *Error) Error() string {
	return e.Diagnostic.String()
}

// CategoryOf returns the category of err if it is a diagnostic error,
// or the empty category otherwise.
func CategoryOf(err error) Category {
	if de, ok := err.(*Error); ok {
		return de.Category
	}
	return ""
}
