package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/roivaz/snyk-intelhub/internal/snyk"
)

// ProjectRef is a project id with its display name, which may be empty.
type ProjectRef struct {
	ID   string
	Name string
}

// Resolver maps project names to ids using the projects API.
type Resolver struct {
	projects ProjectsAPI
	limit    int
}

func NewResolver(projects ProjectsAPI, limit int) *Resolver {
	return &Resolver{projects: projects, limit: limit}
}

// Resolve returns the projects whose name matches name exactly, as decided by
// the upstream name filter. No match is an empty result, not an error.
func (r *Resolver) Resolve(ctx context.Context, orgID, name string) ([]ProjectRef, error) {
	projects, err := r.projects.ListProjects(ctx, orgID, snyk.ListProjectsParams{
		Names: []string{name},
		Limit: r.limit,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve projects named %q: %w", name, err)
	}
	return toRefs(projects), nil
}

// Search lists the organization's projects once and keeps those whose name
// contains query, ignoring case.
func (r *Resolver) Search(ctx context.Context, orgID, query string) ([]ProjectRef, error) {
	projects, err := r.projects.ListProjects(ctx, orgID, snyk.ListProjectsParams{Limit: r.limit})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return MatchProjects(projects, query), nil
}

// MatchProjects filters projects by case-insensitive substring match on name,
// preserving input order. Projects without a name never match a non-empty
// query.
func MatchProjects(projects []snyk.Project, query string) []ProjectRef {
	needle := strings.ToLower(query)
	matches := make([]ProjectRef, 0)
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Name()), needle) {
			matches = append(matches, ProjectRef{ID: p.ID, Name: p.Name()})
		}
	}
	return matches
}

func toRefs(projects []snyk.Project) []ProjectRef {
	refs := make([]ProjectRef, 0, len(projects))
	for _, p := range projects {
		refs = append(refs, ProjectRef{ID: p.ID, Name: p.Name()})
	}
	return refs
}
