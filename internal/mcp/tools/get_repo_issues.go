package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/snyk-intelhub/internal/inventory"
	"github.com/roivaz/snyk-intelhub/internal/mcp/tools/types"
)

type RepoIssuesService interface {
	GetRepoIssues(ctx context.Context, org inventory.OrgContext, repositoryName string, filter inventory.Filter) (types.RepoIssuesResponse, error)
}

type GetRepoIssuesHandler struct {
	Service RepoIssuesService
	Org     inventory.OrgContext
}

func (h *GetRepoIssuesHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, err := stringArgument(args, "repositoryName")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if name == "" {
		return mcp.NewToolResultError("repositoryName is required"), nil
	}
	filter, err := filterArguments(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := h.Service.GetRepoIssues(ctx, h.Org, name, filter)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("failed to get repository issues", err), nil
	}
	return jsonResult(resp), nil
}
