package inventory

import (
	"fmt"
	"slices"
	"strings"
)

const DefaultStatus = "open"

var (
	Statuses   = []string{"open", "resolved", "ignored"}
	Severities = []string{"low", "medium", "high", "critical"}
)

// Filter narrows which issues are returned. Empty Status means open; empty
// Severity means any.
type Filter struct {
	Status   string
	Severity string
}

// ParseFilter validates raw status and severity values.
func ParseFilter(status, severity string) (Filter, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	severity = strings.ToLower(strings.TrimSpace(severity))
	if status == "" {
		status = DefaultStatus
	}
	if !slices.Contains(Statuses, status) {
		return Filter{}, fmt.Errorf("invalid status %q: must be one of %s", status, strings.Join(Statuses, ", "))
	}
	if severity != "" && !slices.Contains(Severities, severity) {
		return Filter{}, fmt.Errorf("invalid severity %q: must be one of %s", severity, strings.Join(Severities, ", "))
	}
	return Filter{Status: status, Severity: severity}, nil
}

func (f Filter) status() string {
	if f.Status == "" {
		return DefaultStatus
	}
	return f.Status
}
