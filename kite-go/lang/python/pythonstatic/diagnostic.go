package pythonstatic

import (
	"fmt"
	"go/token"
)

// Category is the severity of a diagnostic
type Category int

const (
	// Info is an informational note
	Info Category = iota
	// Warning is a problem the analysis worked around
	Warning
	// Error is a problem that makes the result unreliable
	Error
)

func (c Category) String() string {
	switch c {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Diagnostic is a problem found in a source file
type Diagnostic struct {
	File     string
	Category Category
	Begin    token.Pos
	End      token.Pos
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d-%d: %s: %s", d.File, d.Begin, d.End, d.Category, d.Message)
}
