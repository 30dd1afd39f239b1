package inventory

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roivaz/snyk-intelhub/internal/snyk"
)

const rawIssueJSON = `{
  "id": "issue-1",
  "type": "issue",
  "attributes": {
    "title": "Prototype Pollution",
    "effective_severity_level": "high",
    "status": "open",
    "type": "package_vulnerability",
    "created_at": "2024-01-01T00:00:00Z",
    "updated_at": "2024-02-01T00:00:00Z",
    "ignored": false,
    "key": "SNYK-JS-LODASH-1",
    "problems": [{"id": "CVE-2020-8203", "source": "NVD", "disclosed_at": "2020-07-15T00:00:00Z"}],
    "coordinates": [
      {
        "is_upgradeable": true,
        "remedies": [{"type": "indeterminate", "description": "Upgrade lodash"}],
        "representations": [
          {"dependency": {"package_name": "lodash", "package_version": "4.17.15", "fixed_in": ["4.17.19", "4.17.20"]}},
          {"sourceLocation": {"file": "src/app.js", "region": {"start": {"line": 10, "column": 4}, "end": {"line": 10, "column": 20}}}}
        ]
      },
      {
        "remedies": [{"type": "rule_result_message", "description": "Pin version"}],
        "representations": [
          {"dependency": {"package_name": "minimist", "package_version": "1.2.0"}},
          {"sourceLocation": {"file": "ignored.js"}}
        ]
      }
    ]
  },
  "relationships": {"scan_item": {"data": {"id": "p1", "type": "project"}}}
}`

func decodeIssue(t *testing.T, raw string) snyk.Issue {
	t.Helper()
	var issue snyk.Issue
	require.NoError(t, json.Unmarshal([]byte(raw), &issue))
	return issue
}

func TestFormatFullIssue(t *testing.T) {
	f := Formatter{AppURL: "https://app.snyk.io"}
	name := "github.com/acme/app:package.json"

	got := f.Format(decodeIssue(t, rawIssueJSON), "acme", &name)

	assert.Equal(t, "issue-1", got.ID)
	assert.Equal(t, "Prototype Pollution", got.Title)
	assert.JSONEq(t, `"package_vulnerability"`, string(got.Type))
	require.NotNil(t, got.Ignored)
	assert.False(t, *got.Ignored)
	assert.Equal(t, name, *got.Repository)
	assert.Equal(t, "p1", *got.ProjectID)
	assert.Equal(t, "p1", *got.ScanItemID)
	assert.Equal(t, "https://app.snyk.io/org/acme/project/p1#issue-SNYK-JS-LODASH-1", got.URL)

	// Only the first coordinate contributes locations and dependencies.
	require.Len(t, got.Locations, 1)
	assert.Equal(t, "src/app.js", *got.Locations[0].Filepath)
	assert.Equal(t, 10, *got.Locations[0].Line)
	assert.Equal(t, 4, *got.Locations[0].Column)
	require.Len(t, got.Dependencies, 1)
	assert.Equal(t, "lodash", *got.Dependencies[0].PackageName)
	assert.Equal(t, "4.17.15", *got.Dependencies[0].PackageVersion)

	assert.Len(t, got.Problems, 1)
	assert.Len(t, got.Coordinates, 2)
}

func TestFormatMissingFields(t *testing.T) {
	f := Formatter{AppURL: "https://app.snyk.io/"}
	got := f.Format(snyk.Issue{ID: "bare", Attributes: &snyk.IssueAttributes{Key: "K"}}, "acme", nil)

	assert.Nil(t, got.Repository)
	assert.Nil(t, got.ProjectID)
	assert.Nil(t, got.ScanItemID)
	assert.Equal(t, "https://app.snyk.io/org/acme/project/undefined#issue-K", got.URL)

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "bare", "title": "", "effective_severity_level": "", "status": "", "type": null,
		"created_at": "", "updated_at": "", "ignored": null, "key": "K",
		"repository": null, "project_id": null,
		"locations": [], "dependencies": [], "problems": [], "coordinates": [],
		"url": "https://app.snyk.io/org/acme/project/undefined#issue-K",
		"scan_item_id": null
	}`, string(out))
}

func TestFormatNilAttributes(t *testing.T) {
	got := Formatter{}.Format(snyk.Issue{ID: "x"}, "acme", nil)
	assert.Equal(t, "x", got.ID)
	assert.Equal(t, "https://app.snyk.io/org/acme/project/undefined#issue-", got.URL)
	assert.Empty(t, got.Locations)
}

func TestFormatLocationWithoutRegion(t *testing.T) {
	issue := decodeIssue(t, `{"id":"i","attributes":{"coordinates":[{"representations":[{"sourceLocation":{"file":"main.tf"}}]}]}}`)
	got := Formatter{}.Format(issue, "acme", nil)
	require.Len(t, got.Locations, 1)
	assert.Equal(t, "main.tf", *got.Locations[0].Filepath)
	assert.Nil(t, got.Locations[0].Line)
	assert.Nil(t, got.Locations[0].Column)
}

func TestFormatRepositoryFallsBackToProjectID(t *testing.T) {
	empty := ""
	got := Formatter{}.Format(issueIn("i", "p9", "K"), "acme", &empty)
	require.NotNil(t, got.Repository)
	assert.Equal(t, "p9", *got.Repository)
}

func TestFormatIsDeterministic(t *testing.T) {
	f := Formatter{AppURL: "https://app.snyk.io"}
	issue := decodeIssue(t, rawIssueJSON)
	name := "app"

	first, err := json.Marshal(f.Format(issue, "acme", &name))
	require.NoError(t, err)
	second, err := json.Marshal(f.Format(issue, "acme", &name))
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
}

func TestDetail(t *testing.T) {
	f := Formatter{AppURL: "https://app.snyk.io"}
	got := f.Detail(decodeIssue(t, rawIssueJSON), "acme", nil)

	require.NotNil(t, got.Description)
	assert.Equal(t, "Disclosed: 2020-07-15T00:00:00Z", *got.Description)
	require.NotNil(t, got.URL)
	assert.Equal(t, "https://app.snyk.io/org/acme/project/p1#issue-SNYK-JS-LODASH-1", *got.URL)
	assert.Equal(t, "p1", *got.Repository)

	require.Len(t, got.Remedies, 2)
	assert.Equal(t, "Upgrade lodash", got.Remedies[0].Description)
	assert.Equal(t, "Pin version", got.Remedies[1].Description)

	require.Len(t, got.Upgrades, 2)
	assert.Equal(t, "lodash", *got.Upgrades[0].PackageName)
	assert.Equal(t, "4.17.15", *got.Upgrades[0].CurrentVersion)
	assert.Equal(t, "4.17.19", *got.Upgrades[0].RecommendedVersion)
	assert.Equal(t, "minimist", *got.Upgrades[1].PackageName)
	assert.Nil(t, got.Upgrades[1].RecommendedVersion)
	assert.Empty(t, got.Classes)
}

func TestDetailWithoutProject(t *testing.T) {
	got := Formatter{}.Detail(snyk.Issue{ID: "i", Attributes: &snyk.IssueAttributes{Key: "K"}}, "acme", nil)
	assert.Nil(t, got.URL)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.Repository)
	assert.NotNil(t, got.Remedies)
	assert.NotNil(t, got.Upgrades)
}
