package inventory

import (
	"fmt"
	"strings"

	tooltypes "github.com/roivaz/snyk-intelhub/internal/mcp/tools/types"
	"github.com/roivaz/snyk-intelhub/internal/snyk"
)

const DefaultAppURL = "https://app.snyk.io"

// Formatter turns raw issues into the public result shapes. It is pure: the
// same input always yields the same output.
type Formatter struct {
	AppURL string
}

// Format builds the list record for raw. projectName, when non-nil and
// non-empty, is used as the repository label; otherwise the raw project id is.
func (f Formatter) Format(raw snyk.Issue, orgSlug string, projectName *string) tooltypes.Issue {
	attrs := raw.Attributes
	if attrs == nil {
		attrs = &snyk.IssueAttributes{}
	}
	projectID := raw.ScanItemID()

	return tooltypes.Issue{
		ID:                     raw.ID,
		Title:                  attrs.Title,
		EffectiveSeverityLevel: attrs.EffectiveSeverityLevel,
		Status:                 attrs.Status,
		Type:                   attrs.Type,
		CreatedAt:              attrs.CreatedAt,
		UpdatedAt:              attrs.UpdatedAt,
		Ignored:                attrs.Ignored,
		Key:                    attrs.Key,
		Repository:             repositoryLabel(projectName, projectID),
		ProjectID:              optional(projectID),
		Locations:              locations(attrs.Coordinates),
		Dependencies:           dependencies(attrs.Coordinates),
		Problems:               orEmpty(attrs.Problems),
		Coordinates:            orEmpty(attrs.Coordinates),
		URL:                    f.issueURL(orgSlug, projectID, attrs.Key),
		ScanItemID:             optional(projectID),
	}
}

// Detail builds the single-issue record with remediation data. URL is nil
// when the issue has no project.
func (f Formatter) Detail(raw snyk.Issue, orgSlug string, projectName *string) tooltypes.DetailedIssue {
	attrs := raw.Attributes
	if attrs == nil {
		attrs = &snyk.IssueAttributes{}
	}
	projectID := raw.ScanItemID()

	var link *string
	if projectID != "" {
		u := f.issueURL(orgSlug, projectID, attrs.Key)
		link = &u
	}

	return tooltypes.DetailedIssue{
		ID:                     raw.ID,
		Title:                  attrs.Title,
		Description:            description(attrs.Problems),
		EffectiveSeverityLevel: attrs.EffectiveSeverityLevel,
		Status:                 attrs.Status,
		Type:                   attrs.Type,
		CreatedAt:              attrs.CreatedAt,
		UpdatedAt:              attrs.UpdatedAt,
		Key:                    attrs.Key,
		URL:                    link,
		ProjectID:              optional(projectID),
		Repository:             repositoryLabel(projectName, projectID),
		Problems:               orEmpty(attrs.Problems),
		Coordinates:            orEmpty(attrs.Coordinates),
		Remedies:               remedies(attrs.Coordinates),
		Upgrades:               upgrades(attrs.Coordinates),
		Classes:                orEmpty(attrs.Classes),
	}
}

// issueURL builds the web link. A missing project id is rendered as the
// literal "undefined" so existing links stay stable.
func (f Formatter) issueURL(orgSlug, projectID, key string) string {
	appURL := strings.TrimRight(f.AppURL, "/")
	if appURL == "" {
		appURL = DefaultAppURL
	}
	if projectID == "" {
		projectID = "undefined"
	}
	return fmt.Sprintf("%s/org/%s/project/%s#issue-%s", appURL, orgSlug, projectID, key)
}

// locations flattens source locations from the first coordinate only.
func locations(coords []snyk.Coordinate) []tooltypes.Location {
	out := make([]tooltypes.Location, 0)
	if len(coords) == 0 {
		return out
	}
	for _, rep := range coords[0].Representations {
		loc := rep.SourceLocation
		if loc == nil {
			continue
		}
		l := tooltypes.Location{Filepath: optional(loc.File)}
		if loc.Region != nil && loc.Region.Start != nil {
			l.Line = loc.Region.Start.Line
			l.Column = loc.Region.Start.Column
		}
		out = append(out, l)
	}
	return out
}

// dependencies flattens dependency references from the first coordinate only.
func dependencies(coords []snyk.Coordinate) []tooltypes.DependencyRef {
	out := make([]tooltypes.DependencyRef, 0)
	if len(coords) == 0 {
		return out
	}
	for _, rep := range coords[0].Representations {
		if rep.Dependency == nil {
			continue
		}
		out = append(out, tooltypes.DependencyRef{
			PackageName:    optional(rep.Dependency.PackageName),
			PackageVersion: optional(rep.Dependency.PackageVersion),
		})
	}
	return out
}

func remedies(coords []snyk.Coordinate) []tooltypes.Remedy {
	out := make([]tooltypes.Remedy, 0)
	for _, c := range coords {
		for _, r := range c.Remedies {
			out = append(out, tooltypes.Remedy{Type: r.Type, Description: r.Description, Details: r.Details})
		}
	}
	return out
}

func upgrades(coords []snyk.Coordinate) []tooltypes.Upgrade {
	out := make([]tooltypes.Upgrade, 0)
	for _, c := range coords {
		for _, rep := range c.Representations {
			dep := rep.Dependency
			if dep == nil {
				continue
			}
			u := tooltypes.Upgrade{
				PackageName:    optional(dep.PackageName),
				CurrentVersion: optional(dep.PackageVersion),
			}
			if len(dep.FixedIn) > 0 {
				u.RecommendedVersion = optional(dep.FixedIn[0])
			}
			out = append(out, u)
		}
	}
	return out
}

func description(problems []snyk.Problem) *string {
	if len(problems) == 0 || problems[0].DisclosedAt == "" {
		return nil
	}
	d := "Disclosed: " + problems[0].DisclosedAt
	return &d
}

func repositoryLabel(projectName *string, projectID string) *string {
	if projectName != nil && *projectName != "" {
		name := *projectName
		return &name
	}
	return optional(projectID)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
