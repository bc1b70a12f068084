// Package config defines the makelint configuration file format and its
// translation into the resolved form the rule engine consumes.
package config

import (
	"fmt"

	"github.com/donaldgifford/makelint/internal/diag"
	"github.com/donaldgifford/makelint/internal/lint"
)

// Config mirrors the TOML configuration file.
//
//	[lint]
//	enable  = ["style/*", "practice"]
//	disable = ["style/line-length"]
//
//	[ignore]
//	paths = ["vendor/*"]
//	rules = ["style/target-naming"]
//
//	[rules."style/line-length"]
//	severity = "error"
//	max      = 100
type Config struct {
	Lint   LintSettings              `toml:"lint"`
	Ignore IgnoreSettings            `toml:"ignore"`
	Rules  map[string]map[string]any `toml:"rules"`
}

// LintSettings selects which rules run and how wide the engine fans out.
type LintSettings struct {
	// Enable restricts runs to matching rules when non-empty; patterns
	// are ids, categories, or globs over ids.
	Enable []string `toml:"enable"`

	// Disable removes matching rules.
	Disable []string `toml:"disable"`

	// Jobs bounds parallelism for both files and rules; 0 means one
	// worker per CPU.
	Jobs int `toml:"jobs"`
}

// IgnoreSettings suppresses diagnostics by file path or rule id.
type IgnoreSettings struct {
	Paths []string `toml:"paths"`
	Rules []string `toml:"rules"`
}

// Default returns the configuration used when no config file exists: all
// rules enabled with their default options.
func Default() *Config {
	return &Config{
		Rules: make(map[string]map[string]any),
	}
}

// Resolve translates the file form into the engine's resolved Config.
// Per-rule tables may carry the reserved keys "enabled" (bool) and
// "severity" (error|warning|info); every other key lands in the rule's
// options bag untouched.
func (c *Config) Resolve() (*lint.Config, error) {
	resolved := lint.Default()
	resolved.Enable = append(resolved.Enable, c.Lint.Enable...)
	resolved.Disable = append(resolved.Disable, c.Lint.Disable...)
	resolved.IgnorePaths = append(resolved.IgnorePaths, c.Ignore.Paths...)
	resolved.IgnoreRules = append(resolved.IgnoreRules, c.Ignore.Rules...)
	resolved.Jobs = c.Lint.Jobs

	for id, table := range c.Rules {
		opts := lint.Options{}
		for key, value := range table {
			switch key {
			case "enabled":
				enabled, ok := value.(bool)
				if !ok {
					return nil, fmt.Errorf("rule %s: enabled must be a boolean", id)
				}
				if !enabled {
					resolved.Disable = append(resolved.Disable, id)
				}
			case "severity":
				name, ok := value.(string)
				if !ok {
					return nil, fmt.Errorf("rule %s: severity must be a string", id)
				}
				sev, err := diag.ParseSeverity(name)
				if err != nil {
					return nil, fmt.Errorf("rule %s: %w", id, err)
				}
				resolved.Severity[id] = sev
			default:
				opts[key] = value
			}
		}
		if len(opts) > 0 {
			resolved.RuleOptions[id] = opts
		}
	}
	return resolved, nil
}
