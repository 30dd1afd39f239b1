package inventory

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoProjectCatalog is returned when a name query needs project lookups but
// the service was built without a projects API.
var ErrNoProjectCatalog = errors.New("project catalog is required to filter by repository name")

// ConfigError reports a required configuration value that is missing.
type ConfigError struct {
	Name string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s must be set in environment variables or passed as parameter", e.Name)
}

// OrgContext identifies the organization every query is scoped to. ID
// addresses the API; Slug is only used to build web links.
type OrgContext struct {
	ID   string
	Slug string
}

// RequireID fails when the organization id is missing.
func (o OrgContext) RequireID() error {
	if strings.TrimSpace(o.ID) == "" {
		return &ConfigError{Name: "SNYK_ORG_ID"}
	}
	return nil
}

// Require fails when either the organization id or slug is missing.
func (o OrgContext) Require() error {
	if err := o.RequireID(); err != nil {
		return err
	}
	if strings.TrimSpace(o.Slug) == "" {
		return &ConfigError{Name: "SNYK_ORG_SLUG"}
	}
	return nil
}
