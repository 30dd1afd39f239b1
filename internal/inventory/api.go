package inventory

import (
	"context"

	"github.com/roivaz/snyk-intelhub/internal/snyk"
)

// IssuesAPI is the subset of the Snyk client used to read issues.
type IssuesAPI interface {
	ListIssues(ctx context.Context, orgID string, params snyk.ListIssuesParams) (*snyk.IssuePage, error)
	GetIssue(ctx context.Context, orgID, issueID string) (*snyk.Issue, error)
}

// ProjectsAPI is the subset of the Snyk client used to read projects.
type ProjectsAPI interface {
	ListProjects(ctx context.Context, orgID string, params snyk.ListProjectsParams) ([]snyk.Project, error)
	GetProject(ctx context.Context, orgID, projectID string) (*snyk.Project, error)
}

var (
	_ IssuesAPI   = (*snyk.Client)(nil)
	_ ProjectsAPI = (*snyk.Client)(nil)
)
