package inventory

import (
	"context"
	"fmt"

	"github.com/roivaz/snyk-intelhub/internal/snyk"
)

const DefaultPageLimit = 100

// Page is the first page of issues for one query.
type Page struct {
	Issues      []snyk.Issue
	HasNextPage bool
}

// Fetcher issues a single page request per call. Pagination is not followed.
type Fetcher struct {
	issues IssuesAPI
	limit  int
}

func NewFetcher(issues IssuesAPI, limit int) *Fetcher {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	return &Fetcher{issues: issues, limit: limit}
}

// Fetch returns the first page of issues matching filter, scoped to projectID
// when it is non-empty.
func (f *Fetcher) Fetch(ctx context.Context, orgID string, filter Filter, projectID string) (Page, error) {
	params := snyk.ListIssuesParams{
		Status: []string{filter.status()},
		Limit:  f.limit,
	}
	if filter.Severity != "" {
		params.Severity = []string{filter.Severity}
	}
	if projectID != "" {
		params.ScanItemID = projectID
		params.ScanItemType = "project"
	}

	page, err := f.issues.ListIssues(ctx, orgID, params)
	if err != nil {
		if projectID != "" {
			return Page{}, fmt.Errorf("list issues for project %s: %w", projectID, err)
		}
		return Page{}, fmt.Errorf("list issues: %w", err)
	}
	if page == nil {
		return Page{}, nil
	}
	return Page{Issues: page.Issues, HasNextPage: page.HasNext()}, nil
}
