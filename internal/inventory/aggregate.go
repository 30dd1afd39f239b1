package inventory

import (
	"context"
	"strings"

	tooltypes "github.com/roivaz/snyk-intelhub/internal/mcp/tools/types"
)

// GetRepoIssues collects issues from every project whose name contains
// repositoryName, ignoring case. Projects are fetched one at a time and a
// project that fails is logged and left out of the result. Each issue carries
// the matched project's name; no per-issue name lookups are made. HasMore is
// always false: truncation of individual project pages is not reported.
func (s *Service) GetRepoIssues(ctx context.Context, org OrgContext, repositoryName string, filter Filter) (tooltypes.RepoIssuesResponse, error) {
	if err := org.Require(); err != nil {
		return tooltypes.RepoIssuesResponse{}, err
	}
	if s.resolver == nil {
		return tooltypes.RepoIssuesResponse{}, ErrNoProjectCatalog
	}
	repositoryName = strings.TrimSpace(repositoryName)

	refs, err := s.resolver.Search(ctx, org.ID, repositoryName)
	if err != nil {
		return tooltypes.RepoIssuesResponse{}, err
	}

	resp := tooltypes.RepoIssuesResponse{
		RepositoryName:   repositoryName,
		MatchingProjects: len(refs),
		Issues:           []tooltypes.Issue{},
	}
	if len(refs) == 0 {
		s.log.Info("no projects matched repository", "repository", repositoryName)
		return resp, nil
	}
	resp.Projects = projectMatches(refs)

	for _, ref := range refs {
		page, err := s.fetcher.Fetch(ctx, org.ID, filter, ref.ID)
		if err != nil {
			s.log.Error(err, "skipping project", "projectId", ref.ID, "projectName", ref.Name)
			continue
		}
		// Issues are labelled with the project they were fetched for.
		for _, issue := range page.Issues {
			resp.Issues = append(resp.Issues, s.formatter.Format(issue, org.Slug, optional(ref.Name)))
		}
	}

	resp.Total = len(resp.Issues)
	resp.Count = len(resp.Issues)
	return resp, nil
}
