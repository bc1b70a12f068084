package lint

import (
	"path"

	"github.com/donaldgifford/makelint/internal/diag"
)

// Config is the resolved configuration the engine consumes. The config
// file loader produces it; the engine only reads it.
type Config struct {
	// Enable restricts the run to rules matching these patterns when
	// non-empty. A pattern is a rule id, a category name, or a glob
	// over ids ("style/*").
	Enable []string

	// Disable removes matching rules after Enable is applied.
	Disable []string

	// RuleOptions holds per-rule option bags keyed by rule id.
	RuleOptions map[string]Options

	// Severity overrides the default severity per rule id.
	Severity map[string]diag.Severity

	// IgnorePaths suppresses all diagnostics for documents whose path
	// matches one of these globs.
	IgnorePaths []string

	// IgnoreRules suppresses diagnostics from matching rule ids.
	IgnoreRules []string

	// Jobs bounds rule-level parallelism; 0 means one worker per rule.
	Jobs int
}

// Default returns a configuration that runs every registered rule with
// default options.
func Default() *Config {
	return &Config{
		RuleOptions: make(map[string]Options),
		Severity:    make(map[string]diag.Severity),
	}
}

// OptionsFor returns the options bag for a rule id, never nil.
func (c *Config) OptionsFor(id string) Options {
	if opts, ok := c.RuleOptions[id]; ok {
		return opts
	}
	return Options{}
}

// RuleEnabled reports whether the rule survives the Enable/Disable
// pattern lists.
func (c *Config) RuleEnabled(r Rule) bool {
	if len(c.Enable) > 0 && !matchAny(c.Enable, r) {
		return false
	}
	return !matchAny(c.Disable, r)
}

// PathIgnored reports whether a document path matches an ignore glob.
func (c *Config) PathIgnored(p string) bool {
	for _, pattern := range c.IgnorePaths {
		if ok, err := path.Match(pattern, p); err == nil && ok {
			return true
		}
		if ok, err := path.Match(pattern, path.Base(p)); err == nil && ok {
			return true
		}
	}
	return false
}

// DiagnosticIgnored reports whether diagnostics with the given rule id
// are suppressed.
func (c *Config) DiagnosticIgnored(ruleID string) bool {
	for _, pattern := range c.IgnoreRules {
		if pattern == ruleID {
			return true
		}
		if ok, err := path.Match(pattern, ruleID); err == nil && ok {
			return true
		}
	}
	return false
}

// SeverityFor resolves the effective severity for a rule.
func (c *Config) SeverityFor(r Rule) diag.Severity {
	if sev, ok := c.Severity[r.ID()]; ok {
		return sev
	}
	return r.DefaultSeverity()
}

func matchAny(patterns []string, r Rule) bool {
	for _, pattern := range patterns {
		if pattern == r.ID() || pattern == string(r.Category()) {
			return true
		}
		if ok, err := path.Match(pattern, r.ID()); err == nil && ok {
			return true
		}
	}
	return false
}
