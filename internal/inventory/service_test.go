package inventory

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roivaz/snyk-intelhub/internal/snyk"
)

func acmeProjects() []snyk.Project {
	return []snyk.Project{
		project("p1", "github.com/acme/app:package.json"),
		project("p2", "github.com/acme/app:Dockerfile"),
		project("p3", "github.com/acme/other:pom.xml"),
	}
}

func newTestService(api *fakeSnyk) *Service {
	return New(api, api, Options{AppURL: "https://app.snyk.io"}, testLogger())
}

func TestGetIssuesOrgWide(t *testing.T) {
	api := newFakeSnyk()
	api.projects = acmeProjects()
	api.issues[""] = []snyk.Issue{issueIn("i1", "p1", "K1"), issueIn("i2", "p3", "K2"), issueIn("i3", "", "K3")}
	api.next[""] = "/orgs/org-1/issues?starting_after=abc"

	resp, err := newTestService(api).GetIssues(context.Background(), testOrg, IssueQuery{})
	require.NoError(t, err)

	require.Len(t, api.listIssuesCalls, 1)
	call := api.listIssuesCalls[0]
	assert.Equal(t, []string{"open"}, call.Status)
	assert.Empty(t, call.Severity)
	assert.Empty(t, call.ScanItemID)
	assert.Equal(t, 100, call.Limit)
	assert.Empty(t, api.listProjectsCalls)
	assert.ElementsMatch(t, []string{"p1", "p3"}, api.getProjectCalls)

	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 3, resp.Count)
	assert.True(t, resp.HasMore)
	assert.Equal(t, "github.com/acme/app:package.json", *resp.Issues[0].Repository)
	assert.Equal(t, "github.com/acme/other:pom.xml", *resp.Issues[1].Repository)
	assert.Nil(t, resp.Issues[2].Repository)
}

func TestGetIssuesByProjectIDSkipsResolver(t *testing.T) {
	const id = "12345678-1234-1234-1234-123456789012"
	api := newFakeSnyk()
	api.issues[id] = []snyk.Issue{issueIn("i1", id, "K1")}

	resp, err := newTestService(api).GetIssues(context.Background(), testOrg, IssueQuery{
		Repo:   id,
		Filter: Filter{Status: "resolved", Severity: "critical"},
	})
	require.NoError(t, err)

	require.Len(t, api.listIssuesCalls, 1)
	call := api.listIssuesCalls[0]
	assert.Equal(t, id, call.ScanItemID)
	assert.Equal(t, "project", call.ScanItemType)
	assert.Equal(t, []string{"resolved"}, call.Status)
	assert.Equal(t, []string{"critical"}, call.Severity)
	assert.Empty(t, api.listProjectsCalls)

	require.Len(t, resp.Issues, 1)
	assert.False(t, resp.HasMore)
	// Lookup failed with 404, so the raw id stands in for the name.
	assert.Equal(t, id, *resp.Issues[0].Repository)
}

func TestGetIssuesByName(t *testing.T) {
	api := newFakeSnyk()
	api.projects = append(acmeProjects(), project("p4", "github.com/acme/app:package.json"))
	api.issues["p1"] = []snyk.Issue{issueIn("i1", "p1", "K1")}
	api.issues["p4"] = []snyk.Issue{issueIn("i4", "p4", "K4")}
	api.next["p4"] = "next"

	resp, err := newTestService(api).GetIssues(context.Background(), testOrg, IssueQuery{Repo: "github.com/acme/app:package.json"})
	require.NoError(t, err)

	require.Len(t, api.listProjectsCalls, 1)
	assert.Equal(t, []string{"github.com/acme/app:package.json"}, api.listProjectsCalls[0].Names)
	require.Len(t, api.listIssuesCalls, 2)
	assert.Equal(t, "p1", api.listIssuesCalls[0].ScanItemID)
	assert.Equal(t, "p4", api.listIssuesCalls[1].ScanItemID)
	// Names came from the resolver, no extra lookups needed.
	assert.Empty(t, api.getProjectCalls)

	assert.Equal(t, 2, resp.Total)
	assert.True(t, resp.HasMore)
	assert.Equal(t, "github.com/acme/app:package.json", *resp.Issues[1].Repository)
}

func TestGetIssuesByNameNoMatch(t *testing.T) {
	api := newFakeSnyk()
	api.projects = acmeProjects()

	resp, err := newTestService(api).GetIssues(context.Background(), testOrg, IssueQuery{Repo: "unknown"})
	require.NoError(t, err)
	assert.Empty(t, api.listIssuesCalls)
	assert.Equal(t, 0, resp.Total)
	assert.NotNil(t, resp.Issues)
	assert.False(t, resp.HasMore)
}

func TestGetIssuesByNameWithoutCatalog(t *testing.T) {
	api := newFakeSnyk()
	svc := New(api, nil, Options{}, testLogger())

	_, err := svc.GetIssues(context.Background(), testOrg, IssueQuery{Repo: "acme"})
	assert.ErrorIs(t, err, ErrNoProjectCatalog)
	assert.Empty(t, api.listIssuesCalls)
}

func TestGetIssuesWithoutCatalogKeepsRawIDs(t *testing.T) {
	api := newFakeSnyk()
	api.issues[""] = []snyk.Issue{issueIn("i1", "p1", "K1")}

	resp, err := New(api, nil, Options{}, testLogger()).GetIssues(context.Background(), testOrg, IssueQuery{})
	require.NoError(t, err)
	assert.Equal(t, "p1", *resp.Issues[0].Repository)
	assert.Empty(t, api.getProjectCalls)
}

func TestGetIssuesNameLookupFailureKeepsIssues(t *testing.T) {
	api := newFakeSnyk()
	api.projects = acmeProjects()
	api.projectErrs["p2"] = errors.New("connection reset")
	api.issues[""] = []snyk.Issue{issueIn("i1", "p1", "K1"), issueIn("i2", "p2", "K2")}

	resp, err := newTestService(api).GetIssues(context.Background(), testOrg, IssueQuery{})
	require.NoError(t, err)
	require.Len(t, resp.Issues, 2)
	assert.Equal(t, "github.com/acme/app:package.json", *resp.Issues[0].Repository)
	assert.Equal(t, "p2", *resp.Issues[1].Repository)
}

func TestGetIssuesMissingOrg(t *testing.T) {
	api := newFakeSnyk()
	svc := newTestService(api)

	_, err := svc.GetIssues(context.Background(), OrgContext{Slug: "acme"}, IssueQuery{})
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "SNYK_ORG_ID", cfgErr.Name)

	_, err = svc.GetIssues(context.Background(), OrgContext{ID: "org"}, IssueQuery{})
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "SNYK_ORG_SLUG", cfgErr.Name)

	assert.Empty(t, api.listIssuesCalls)
	assert.Empty(t, api.listProjectsCalls)
}

func TestGetIssuesUpstreamError(t *testing.T) {
	api := newFakeSnyk()
	api.listErrs[""] = &snyk.APIError{StatusCode: http.StatusUnauthorized, Body: "unauthorized"}

	_, err := newTestService(api).GetIssues(context.Background(), testOrg, IssueQuery{})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, snyk.StatusCode(err))
}

func TestGetIssue(t *testing.T) {
	api := newFakeSnyk()
	api.projects = acmeProjects()
	issue := issueIn("i1", "p2", "K1")
	api.issue = &issue

	got, err := newTestService(api).GetIssue(context.Background(), testOrg, "i1")
	require.NoError(t, err)
	assert.Equal(t, []string{"i1"}, api.getIssueCalls)
	assert.Equal(t, []string{"p2"}, api.getProjectCalls)
	assert.Equal(t, "github.com/acme/app:Dockerfile", *got.Repository)
	assert.Equal(t, "https://app.snyk.io/org/acme/project/p2#issue-K1", *got.URL)
}

func TestGetIssueNotFound(t *testing.T) {
	api := newFakeSnyk()
	api.getIssueErr = &snyk.APIError{StatusCode: http.StatusNotFound}

	_, err := newTestService(api).GetIssue(context.Background(), testOrg, "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, snyk.StatusCode(err))
}

func TestFindProjects(t *testing.T) {
	api := newFakeSnyk()
	api.projects = acmeProjects()

	resp, err := newTestService(api).FindProjects(context.Background(), OrgContext{ID: testOrgID}, "ACME/APP")
	require.NoError(t, err)
	require.Len(t, api.listProjectsCalls, 1)
	assert.Empty(t, api.listProjectsCalls[0].Names)
	assert.Equal(t, 100, api.listProjectsCalls[0].Limit)

	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "ACME/APP", resp.Query)
	assert.Equal(t, "p1", resp.Projects[0].ProjectID)
	assert.Equal(t, "github.com/acme/app:Dockerfile", resp.Projects[1].ProjectName)
}
