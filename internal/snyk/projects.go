package snyk

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ListProjects returns the first page of organization projects, optionally
// restricted to exact names.
func (c *Client) ListProjects(ctx context.Context, orgID string, params ListProjectsParams) ([]Project, error) {
	query := url.Values{}
	if len(params.Names) > 0 {
		query.Set("names", strings.Join(params.Names, ","))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}

	var doc projectListDocument
	if err := c.get(ctx, orgPath(orgID, "projects"), query, &doc); err != nil {
		return nil, err
	}
	if doc.Data == nil {
		return []Project{}, nil
	}
	return doc.Data, nil
}

func (c *Client) GetProject(ctx context.Context, orgID, projectID string) (*Project, error) {
	var doc projectDocument
	if err := c.get(ctx, orgPath(orgID, "projects", projectID), nil, &doc); err != nil {
		return nil, err
	}
	if doc.Data == nil {
		return nil, fmt.Errorf("project %s not found", projectID)
	}
	return doc.Data, nil
}
