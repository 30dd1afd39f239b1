package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/roivaz/snyk-intelhub/internal/logging"
	tooltypes "github.com/roivaz/snyk-intelhub/internal/mcp/tools/types"
	"github.com/roivaz/snyk-intelhub/internal/snyk"
)

type Options struct {
	AppURL            string
	PageLimit         int
	LookupConcurrency int
}

// IssueQuery selects issues for GetIssues. Repo is a project id, a project
// name, or empty for the whole organization.
type IssueQuery struct {
	Repo   string
	Filter Filter
}

// Service answers issue and project queries against one Snyk organization
// per call. It holds no state between calls.
type Service struct {
	issues    IssuesAPI
	projects  ProjectsAPI
	resolver  *Resolver
	fetcher   *Fetcher
	formatter Formatter
	opts      Options
	log       logging.Logger
}

// New constructs a Service. projects may be nil, in which case issues are
// reported without project names and name queries fail.
func New(issues IssuesAPI, projects ProjectsAPI, opts Options, log logging.Logger) *Service {
	if opts.PageLimit <= 0 {
		opts.PageLimit = DefaultPageLimit
	}
	if opts.LookupConcurrency <= 0 {
		opts.LookupConcurrency = DefaultLookupConcurrency
	}
	if opts.AppURL == "" {
		opts.AppURL = DefaultAppURL
	}
	s := &Service{
		issues:    issues,
		projects:  projects,
		fetcher:   NewFetcher(issues, opts.PageLimit),
		formatter: Formatter{AppURL: opts.AppURL},
		opts:      opts,
		log:       log.WithName("inventory.service"),
	}
	if projects != nil {
		s.resolver = NewResolver(projects, opts.PageLimit)
	}
	return s
}

// GetIssues returns the first page of issues for the organization, a single
// project id, or every project whose name matches query.Repo exactly.
func (s *Service) GetIssues(ctx context.Context, org OrgContext, query IssueQuery) (tooltypes.IssuesResponse, error) {
	if err := org.Require(); err != nil {
		return tooltypes.IssuesResponse{}, err
	}

	id := Classify(query.Repo)
	names := NewProjectNames(s.log)
	var (
		raw     []snyk.Issue
		hasMore bool
	)

	switch id.Kind {
	case IdentifierNone, IdentifierProjectID:
		s.log.Debug("fetching issues", "mode", id.Kind.String(), "projectId", id.Value, "status", query.Filter.status())
		page, err := s.fetcher.Fetch(ctx, org.ID, query.Filter, id.Value)
		if err != nil {
			return tooltypes.IssuesResponse{}, err
		}
		raw, hasMore = page.Issues, page.HasNextPage

	case IdentifierName:
		if s.resolver == nil {
			return tooltypes.IssuesResponse{}, ErrNoProjectCatalog
		}
		refs, err := s.resolver.Resolve(ctx, org.ID, id.Value)
		if err != nil {
			return tooltypes.IssuesResponse{}, err
		}
		if len(refs) == 0 {
			s.log.Info("no projects matched name", "name", id.Value)
			return tooltypes.NewIssuesResponse(nil, false), nil
		}
		s.log.Debug("resolved projects by name", "name", id.Value, "count", len(refs))
		for _, ref := range refs {
			names.Set(ref.ID, ref.Name)
			page, err := s.fetcher.Fetch(ctx, org.ID, query.Filter, ref.ID)
			if err != nil {
				return tooltypes.IssuesResponse{}, err
			}
			raw = append(raw, page.Issues...)
			hasMore = hasMore || page.HasNextPage
		}
	}

	return tooltypes.NewIssuesResponse(s.format(ctx, org, names, raw), hasMore), nil
}

// GetIssue returns one issue with remediation details.
func (s *Service) GetIssue(ctx context.Context, org OrgContext, issueID string) (tooltypes.DetailedIssue, error) {
	if err := org.Require(); err != nil {
		return tooltypes.DetailedIssue{}, err
	}
	issueID = strings.TrimSpace(issueID)
	if issueID == "" {
		return tooltypes.DetailedIssue{}, fmt.Errorf("issue id is required")
	}

	raw, err := s.issues.GetIssue(ctx, org.ID, issueID)
	if err != nil {
		return tooltypes.DetailedIssue{}, fmt.Errorf("get issue %s: %w", issueID, err)
	}
	if raw == nil {
		return tooltypes.DetailedIssue{}, fmt.Errorf("issue %s not found", issueID)
	}

	names := NewProjectNames(s.log)
	projectID := raw.ScanItemID()
	if projectID != "" {
		names.Ensure(ctx, s.projects, org.ID, []string{projectID}, 1)
	}
	name, _ := names.Name(projectID)
	return s.formatter.Detail(*raw, org.Slug, optional(name)), nil
}

// FindProjects lists projects whose name contains query, ignoring case.
func (s *Service) FindProjects(ctx context.Context, org OrgContext, query string) (tooltypes.FindProjectsResponse, error) {
	if err := org.RequireID(); err != nil {
		return tooltypes.FindProjectsResponse{}, err
	}
	if s.resolver == nil {
		return tooltypes.FindProjectsResponse{}, ErrNoProjectCatalog
	}

	refs, err := s.resolver.Search(ctx, org.ID, query)
	if err != nil {
		return tooltypes.FindProjectsResponse{}, err
	}
	return tooltypes.FindProjectsResponse{
		Total:    len(refs),
		Query:    query,
		Projects: projectMatches(refs),
	}, nil
}

// format resolves names for every project referenced by raw, then formats
// each issue in input order.
func (s *Service) format(ctx context.Context, org OrgContext, names *ProjectNames, raw []snyk.Issue) []tooltypes.Issue {
	if len(raw) == 0 {
		return nil
	}
	ids := make([]string, 0, len(raw))
	for _, issue := range raw {
		ids = append(ids, issue.ScanItemID())
	}
	names.Ensure(ctx, s.projects, org.ID, ids, s.opts.LookupConcurrency)

	out := make([]tooltypes.Issue, 0, len(raw))
	for _, issue := range raw {
		name, _ := names.Name(issue.ScanItemID())
		out = append(out, s.formatter.Format(issue, org.Slug, optional(name)))
	}
	return out
}

func projectMatches(refs []ProjectRef) []tooltypes.ProjectMatch {
	out := make([]tooltypes.ProjectMatch, 0, len(refs))
	for _, ref := range refs {
		out = append(out, tooltypes.ProjectMatch{ProjectID: ref.ID, ProjectName: ref.Name})
	}
	return out
}
