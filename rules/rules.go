// Package rules loads rule sets that pair a token pattern with a message,
// and runs them against source files.
package rules

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Severity levels for findings.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Rule pairs a pattern expression with the message reported on each match.
// Lower Priority runs first; rules sharing a priority run in name order.
type Rule struct {
	Name     string `yaml:"name"`
	Pattern  string `yaml:"pattern"`
	Message  string `yaml:"message"`
	Severity string `yaml:"severity"`
	Priority int    `yaml:"priority"`
}

// Config is the on-disk shape of a rule file.
type Config struct {
	Rules []Rule `yaml:"rules"`
}

// Load reads a YAML rule file and returns its rules in execution order.
func Load(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse rule file %s: %w", path, err)
	}
	for i, r := range cfg.Rules {
		if r.Name == "" {
			return nil, fmt.Errorf("rule %d in %s has no name", i, path)
		}
		if r.Pattern == "" {
			return nil, fmt.Errorf("rule %q in %s has no pattern", r.Name, path)
		}
		if cfg.Rules[i].Severity == "" {
			cfg.Rules[i].Severity = SeverityWarning
		}
	}
	rules := cfg.Rules
	sortRules(rules)
	return rules, nil
}

func sortRules(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority < rules[j].Priority
		}
		return rules[i].Name < rules[j].Name
	})
}

// Default returns the built-in rule table.
func Default() []Rule {
	rules := []Rule{
		{
			Name:     "no-debugger",
			Pattern:  `\k"debugger"`,
			Message:  "remove debugger statement before shipping",
			Severity: SeverityError,
			Priority: 0,
		},
		{
			Name:     "no-var",
			Pattern:  `\k"var" (\i)`,
			Message:  "unexpected var, use let or const instead",
			Severity: SeverityWarning,
			Priority: 1,
		},
		{
			Name:     "no-console",
			Pattern:  `\i"console" \p"." \i \Bp`,
			Message:  "unexpected console call",
			Severity: SeverityWarning,
			Priority: 1,
		},
		{
			Name:     "no-explicit-any",
			Pattern:  `\co \tn"any"`,
			Message:  "avoid the any type, prefer unknown or a concrete type",
			Severity: SeverityInfo,
			Priority: 2,
		},
	}
	sortRules(rules)
	return rules
}
