package types

import (
	"encoding/json"

	"github.com/roivaz/snyk-intelhub/internal/snyk"
)

type Location struct {
	Filepath *string `json:"filepath"`
	Line     *int    `json:"line"`
	Column   *int    `json:"column"`
}

type DependencyRef struct {
	PackageName    *string `json:"package_name"`
	PackageVersion *string `json:"package_version"`
}

type Remedy struct {
	Type        string          `json:"type,omitempty"`
	Description string          `json:"description,omitempty"`
	Details     json.RawMessage `json:"details,omitempty"`
}

type Upgrade struct {
	PackageName        *string `json:"package_name"`
	CurrentVersion     *string `json:"current_version"`
	RecommendedVersion *string `json:"recommended_version"`
}

// Issue is the public shape of one issue in list results.
type Issue struct {
	ID                     string            `json:"id"`
	Title                  string            `json:"title"`
	EffectiveSeverityLevel string            `json:"effective_severity_level"`
	Status                 string            `json:"status"`
	Type                   json.RawMessage   `json:"type"`
	CreatedAt              string            `json:"created_at"`
	UpdatedAt              string            `json:"updated_at"`
	Ignored                *bool             `json:"ignored"`
	Key                    string            `json:"key"`
	Repository             *string           `json:"repository"`
	ProjectID              *string           `json:"project_id"`
	Locations              []Location        `json:"locations"`
	Dependencies           []DependencyRef   `json:"dependencies"`
	Problems               []snyk.Problem    `json:"problems"`
	Coordinates            []snyk.Coordinate `json:"coordinates"`
	URL                    string            `json:"url"`
	ScanItemID             *string           `json:"scan_item_id"`
}

// DetailedIssue is returned by get_issue and adds remediation data.
type DetailedIssue struct {
	ID                     string            `json:"id"`
	Title                  string            `json:"title"`
	Description            *string           `json:"description"`
	EffectiveSeverityLevel string            `json:"effective_severity_level"`
	Status                 string            `json:"status"`
	Type                   json.RawMessage   `json:"type"`
	CreatedAt              string            `json:"created_at"`
	UpdatedAt              string            `json:"updated_at"`
	Key                    string            `json:"key"`
	URL                    *string           `json:"url"`
	ProjectID              *string           `json:"project_id"`
	Repository             *string           `json:"repository"`
	Problems               []snyk.Problem    `json:"problems"`
	Coordinates            []snyk.Coordinate `json:"coordinates"`
	Remedies               []Remedy          `json:"remedies"`
	Upgrades               []Upgrade         `json:"upgrades"`
	Classes                []json.RawMessage `json:"classes"`
}

// IssuesResponse is the envelope for get_issues. Total and Count always equal
// len(Issues).
type IssuesResponse struct {
	Total   int     `json:"total"`
	Count   int     `json:"count"`
	Issues  []Issue `json:"issues"`
	HasMore bool    `json:"has_more"`
}

// RepoIssuesResponse is the envelope for get_repo_issues.
type RepoIssuesResponse struct {
	Total            int            `json:"total"`
	Count            int            `json:"count"`
	RepositoryName   string         `json:"repositoryName"`
	MatchingProjects int            `json:"matching_projects"`
	Projects         []ProjectMatch `json:"projects,omitempty"`
	Issues           []Issue        `json:"issues"`
	HasMore          bool           `json:"has_more"`
}

func NewIssuesResponse(issues []Issue, hasMore bool) IssuesResponse {
	if issues == nil {
		issues = []Issue{}
	}
	return IssuesResponse{Total: len(issues), Count: len(issues), Issues: issues, HasMore: hasMore}
}
