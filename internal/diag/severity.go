package diag

import (
	"encoding/json"
	"fmt"
)

// Severity ranks how serious a diagnostic is.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

// String returns the lowercase name used in text output and config files.
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "info"
	}
}

// ParseSeverity converts a config string into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "error":
		return Error, nil
	case "warning":
		return Warning, nil
	case "info":
		return Info, nil
	}
	return Info, fmt.Errorf("unknown severity %q", s)
}

// MarshalJSON encodes the severity as its string name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a string severity name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Category groups rules by concern. It is the first path segment of a
// rule id.
type Category string

const (
	CategorySyntax      Category = "syntax"
	CategoryStyle       Category = "style"
	CategoryPractice    Category = "practice"
	CategorySecurity    Category = "security"
	CategoryPerformance Category = "performance"
)
