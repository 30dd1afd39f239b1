package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/snyk-intelhub/internal/inventory"
	"github.com/roivaz/snyk-intelhub/internal/mcp/tools/types"
)

type ProjectSearchService interface {
	FindProjects(ctx context.Context, org inventory.OrgContext, query string) (types.FindProjectsResponse, error)
}

type FindProjectsHandler struct {
	Service ProjectSearchService
	Org     inventory.OrgContext
}

func (h *FindProjectsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := stringArgument(req.GetArguments(), "query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	resp, err := h.Service.FindProjects(ctx, h.Org, query)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("failed to find projects", err), nil
	}
	return jsonResult(resp), nil
}
