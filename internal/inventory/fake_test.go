package inventory

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-logr/logr"

	"github.com/roivaz/snyk-intelhub/internal/logging"
	"github.com/roivaz/snyk-intelhub/internal/snyk"
)

const testOrgID = "org-1"

var testOrg = OrgContext{ID: testOrgID, Slug: "acme"}

func testLogger() logging.Logger {
	return logging.New(logr.Discard())
}

// fakeSnyk is an in-memory IssuesAPI and ProjectsAPI that records calls.
type fakeSnyk struct {
	mu sync.Mutex

	issues      map[string][]snyk.Issue // keyed by scan item id, "" for org-wide
	next        map[string]string
	listErrs    map[string]error
	projects    []snyk.Project
	projectErrs map[string]error
	listProjErr error
	issue       *snyk.Issue
	getIssueErr error

	listIssuesCalls   []snyk.ListIssuesParams
	listProjectsCalls []snyk.ListProjectsParams
	getProjectCalls   []string
	getIssueCalls     []string
}

func newFakeSnyk() *fakeSnyk {
	return &fakeSnyk{
		issues:      map[string][]snyk.Issue{},
		next:        map[string]string{},
		listErrs:    map[string]error{},
		projectErrs: map[string]error{},
	}
}

func (f *fakeSnyk) ListIssues(_ context.Context, _ string, params snyk.ListIssuesParams) (*snyk.IssuePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listIssuesCalls = append(f.listIssuesCalls, params)
	if err := f.listErrs[params.ScanItemID]; err != nil {
		return nil, err
	}
	return &snyk.IssuePage{Issues: f.issues[params.ScanItemID], Next: f.next[params.ScanItemID]}, nil
}

func (f *fakeSnyk) GetIssue(_ context.Context, _ string, issueID string) (*snyk.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getIssueCalls = append(f.getIssueCalls, issueID)
	if f.getIssueErr != nil {
		return nil, f.getIssueErr
	}
	return f.issue, nil
}

func (f *fakeSnyk) ListProjects(_ context.Context, _ string, params snyk.ListProjectsParams) ([]snyk.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listProjectsCalls = append(f.listProjectsCalls, params)
	if f.listProjErr != nil {
		return nil, f.listProjErr
	}
	if len(params.Names) == 0 {
		return f.projects, nil
	}
	var out []snyk.Project
	for _, p := range f.projects {
		for _, n := range params.Names {
			if p.Name() == n {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (f *fakeSnyk) GetProject(_ context.Context, _ string, projectID string) (*snyk.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getProjectCalls = append(f.getProjectCalls, projectID)
	if err := f.projectErrs[projectID]; err != nil {
		return nil, err
	}
	for _, p := range f.projects {
		if p.ID == projectID {
			return &p, nil
		}
	}
	return nil, &snyk.APIError{StatusCode: http.StatusNotFound, Body: fmt.Sprintf("project %s not found", projectID)}
}

func project(id, name string) snyk.Project {
	return snyk.Project{ID: id, Type: "project", Attributes: &snyk.ProjectAttributes{Name: name}}
}

func issueIn(id, projectID, key string) snyk.Issue {
	issue := snyk.Issue{
		ID:   id,
		Type: "issue",
		Attributes: &snyk.IssueAttributes{
			Title:                  "Issue " + id,
			EffectiveSeverityLevel: "high",
			Status:                 "open",
			Key:                    key,
		},
	}
	if projectID != "" {
		issue.Relationships = &snyk.IssueRelationships{
			ScanItem: &snyk.Relationship{Data: &snyk.RelationshipData{ID: projectID, Type: "project"}},
		}
	}
	return issue
}
