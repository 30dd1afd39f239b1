package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/snyk-intelhub/internal/inventory"
	"github.com/roivaz/snyk-intelhub/internal/mcp/tools/types"
)

type IssuesService interface {
	GetIssues(ctx context.Context, org inventory.OrgContext, query inventory.IssueQuery) (types.IssuesResponse, error)
}

type GetIssuesHandler struct {
	Service IssuesService
	Org     inventory.OrgContext
}

func (h *GetIssuesHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	repo, err := stringArgument(args, "repo")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	projectID, err := stringArgument(args, "projectId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if projectID != "" {
		if !inventory.IsUUID(projectID) {
			return mcp.NewToolResultError(fmt.Sprintf("projectId %q is not a valid UUID", projectID)), nil
		}
		repo = projectID
	}
	filter, err := filterArguments(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := h.Service.GetIssues(ctx, h.Org, inventory.IssueQuery{Repo: repo, Filter: filter})
	if err != nil {
		return mcp.NewToolResultErrorFromErr("failed to get issues", err), nil
	}
	return jsonResult(resp), nil
}

func filterArguments(args map[string]any) (inventory.Filter, error) {
	status, err := stringArgument(args, "status")
	if err != nil {
		return inventory.Filter{}, err
	}
	severity, err := stringArgument(args, "severity")
	if err != nil {
		return inventory.Filter{}, err
	}
	return inventory.ParseFilter(status, severity)
}
