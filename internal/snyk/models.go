package snyk

import "encoding/json"

// Issue is a JSON:API issue resource as returned by the REST API. Nested
// fields are optional upstream and modeled as pointers or slices.
type Issue struct {
	ID            string              `json:"id"`
	Type          string              `json:"type,omitempty"`
	Attributes    *IssueAttributes    `json:"attributes,omitempty"`
	Relationships *IssueRelationships `json:"relationships,omitempty"`
}

type IssueAttributes struct {
	Title                  string            `json:"title"`
	EffectiveSeverityLevel string            `json:"effective_severity_level"`
	Status                 string            `json:"status"`
	Type                   json.RawMessage   `json:"type,omitempty"` // string or {"id": ...}
	CreatedAt              string            `json:"created_at"`
	UpdatedAt              string            `json:"updated_at"`
	Ignored                *bool             `json:"ignored,omitempty"`
	Key                    string            `json:"key"`
	Problems               []Problem         `json:"problems,omitempty"`
	Coordinates            []Coordinate      `json:"coordinates,omitempty"`
	Classes                []json.RawMessage `json:"classes,omitempty"`
}

type Problem struct {
	ID           string `json:"id,omitempty"`
	Source       string `json:"source,omitempty"`
	Type         string `json:"type,omitempty"`
	URL          string `json:"url,omitempty"`
	DisclosedAt  string `json:"disclosed_at,omitempty"`
	DiscoveredAt string `json:"discovered_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

type Coordinate struct {
	IsFixableManually *bool            `json:"is_fixable_manually,omitempty"`
	IsFixableSnyk     *bool            `json:"is_fixable_snyk,omitempty"`
	IsFixableUpstream *bool            `json:"is_fixable_upstream,omitempty"`
	IsPatchable       *bool            `json:"is_patchable,omitempty"`
	IsUpgradeable     *bool            `json:"is_upgradeable,omitempty"`
	Reachability      string           `json:"reachability,omitempty"`
	Remedies          []Remedy         `json:"remedies,omitempty"`
	Representations   []Representation `json:"representations,omitempty"`
}

type Remedy struct {
	Type        string          `json:"type,omitempty"`
	Description string          `json:"description,omitempty"`
	Details     json.RawMessage `json:"details,omitempty"`
}

// Representation carries at most one of the location kinds below.
type Representation struct {
	Dependency     *Dependency     `json:"dependency,omitempty"`
	SourceLocation *SourceLocation `json:"sourceLocation,omitempty"`
	ResourcePath   string          `json:"resourcePath,omitempty"`
}

type Dependency struct {
	PackageName    string   `json:"package_name,omitempty"`
	PackageVersion string   `json:"package_version,omitempty"`
	FixedIn        []string `json:"fixed_in,omitempty"`
}

type SourceLocation struct {
	File   string  `json:"file,omitempty"`
	Region *Region `json:"region,omitempty"`
}

type Region struct {
	Start *Position `json:"start,omitempty"`
	End   *Position `json:"end,omitempty"`
}

type Position struct {
	Line   *int `json:"line,omitempty"`
	Column *int `json:"column,omitempty"`
}

type IssueRelationships struct {
	ScanItem *Relationship `json:"scan_item,omitempty"`
}

type Relationship struct {
	Data *RelationshipData `json:"data,omitempty"`
}

type RelationshipData struct {
	ID   string `json:"id"`
	Type string `json:"type,omitempty"`
}

// ScanItemID returns the id of the project the issue was found in, or "" when
// the relationship is absent.
func (i Issue) ScanItemID() string {
	if i.Relationships == nil || i.Relationships.ScanItem == nil || i.Relationships.ScanItem.Data == nil {
		return ""
	}
	return i.Relationships.ScanItem.Data.ID
}

type Project struct {
	ID         string             `json:"id"`
	Type       string             `json:"type,omitempty"`
	Attributes *ProjectAttributes `json:"attributes,omitempty"`
}

type ProjectAttributes struct {
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	TargetFile string `json:"target_file,omitempty"`
	Origin     string `json:"origin,omitempty"`
	Status     string `json:"status,omitempty"`
}

// Name returns the project display name or "" when attributes are missing.
func (p Project) Name() string {
	if p.Attributes == nil {
		return ""
	}
	return p.Attributes.Name
}

type Links struct {
	Self string `json:"self,omitempty"`
	Next string `json:"next,omitempty"`
	Prev string `json:"prev,omitempty"`
}

// IssuePage is one page of ListIssues results.
type IssuePage struct {
	Issues []Issue
	Next   string
}

// HasNext reports whether the upstream returned a next-page cursor.
func (p IssuePage) HasNext() bool { return p.Next != "" }

type ListIssuesParams struct {
	Status       []string
	Severity     []string
	ScanItemID   string
	ScanItemType string
	Limit        int
}

type ListProjectsParams struct {
	Names []string
	Limit int
}

type issueListDocument struct {
	Data  []Issue `json:"data"`
	Links *Links  `json:"links,omitempty"`
}

type issueDocument struct {
	Data *Issue `json:"data"`
}

type projectListDocument struct {
	Data  []Project `json:"data"`
	Links *Links    `json:"links,omitempty"`
}

type projectDocument struct {
	Data *Project `json:"data"`
}
