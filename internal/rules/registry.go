// Package rules manages registration of lint rules. The registry is
// populated once at init time and read-only afterwards.
package rules

import (
	"github.com/donaldgifford/makelint/internal/lint"
)

var registry []lint.Rule

// Register adds a rule to the registry. Call only from init; the
// registry is a process-wide constant once the program starts.
func Register(r lint.Rule) {
	registry = append(registry, r)
}

// All returns every registered rule in registration order.
func All() []lint.Rule {
	return registry
}
