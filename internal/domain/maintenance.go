package domain

import (
	"fmt"
	"regexp"
)

// Maintenance rule fields. "any" matches against both the MOTD and the
// version string, for servers whose maintenance plugins rewrite either.
const (
	MaintenanceFieldMOTD    = "motd"
	MaintenanceFieldVersion = "version"
	MaintenanceFieldAny     = "any"
)

// MaintenanceRule decides whether a reachable snapshot represents a
// server in maintenance mode. The zero value never matches.
type MaintenanceRule struct {
	pattern *regexp.Regexp
	field   string
}

// NewMaintenanceRule compiles a rule from a regular expression and the
// snapshot field it applies to. An empty pattern yields a rule that
// never matches.
func NewMaintenanceRule(pattern, field string) (MaintenanceRule, error) {
	if pattern == "" {
		return MaintenanceRule{}, nil
	}
	switch field {
	case "":
		field = MaintenanceFieldMOTD
	case MaintenanceFieldMOTD, MaintenanceFieldVersion, MaintenanceFieldAny:
	default:
		return MaintenanceRule{}, fmt.Errorf("unknown maintenance field %q", field)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return MaintenanceRule{}, fmt.Errorf("compiling maintenance pattern: %w", err)
	}
	return MaintenanceRule{pattern: re, field: field}, nil
}

// Matches reports whether the snapshot should be considered in
// maintenance. Unreachable servers are never in maintenance; they are
// just offline.
func (r MaintenanceRule) Matches(s Snapshot) bool {
	if r.pattern == nil || !s.Reachable {
		return false
	}
	switch r.field {
	case MaintenanceFieldMOTD:
		return r.pattern.MatchString(s.MOTD)
	case MaintenanceFieldVersion:
		return r.pattern.MatchString(s.Version)
	case MaintenanceFieldAny:
		return r.pattern.MatchString(s.MOTD) || r.pattern.MatchString(s.Version)
	}
	return false
}
