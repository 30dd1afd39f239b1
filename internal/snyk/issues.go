package snyk

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ListIssues returns one page of organization issues.
func (c *Client) ListIssues(ctx context.Context, orgID string, params ListIssuesParams) (*IssuePage, error) {
	query := url.Values{}
	if len(params.Status) > 0 {
		query.Set("status", strings.Join(params.Status, ","))
	}
	if len(params.Severity) > 0 {
		query.Set("effective_severity_level", strings.Join(params.Severity, ","))
	}
	if params.ScanItemID != "" {
		query.Set("scan_item.id", params.ScanItemID)
		scanType := params.ScanItemType
		if scanType == "" {
			scanType = "project"
		}
		query.Set("scan_item.type", scanType)
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}

	var doc issueListDocument
	if err := c.get(ctx, orgPath(orgID, "issues"), query, &doc); err != nil {
		return nil, err
	}
	page := &IssuePage{Issues: doc.Data}
	if doc.Links != nil {
		page.Next = doc.Links.Next
	}
	return page, nil
}

// GetIssue returns a single issue by its UUID.
func (c *Client) GetIssue(ctx context.Context, orgID, issueID string) (*Issue, error) {
	var doc issueDocument
	if err := c.get(ctx, orgPath(orgID, "issues", issueID), nil, &doc); err != nil {
		return nil, err
	}
	if doc.Data == nil {
		return nil, fmt.Errorf("issue %s not found", issueID)
	}
	return doc.Data, nil
}
