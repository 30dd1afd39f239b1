package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/snyk-intelhub/internal/inventory"
	"github.com/roivaz/snyk-intelhub/internal/mcp/tools/types"
)

type IssueDetailsService interface {
	GetIssue(ctx context.Context, org inventory.OrgContext, issueID string) (types.DetailedIssue, error)
}

type GetIssueHandler struct {
	Service IssueDetailsService
	Org     inventory.OrgContext
}

func (h *GetIssueHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	issueID, err := stringArgument(req.GetArguments(), "issue_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if issueID == "" {
		return mcp.NewToolResultError("issue_id is required"), nil
	}
	if !inventory.IsUUID(issueID) {
		return mcp.NewToolResultError(fmt.Sprintf("issue_id %q is not a valid UUID", issueID)), nil
	}

	issue, err := h.Service.GetIssue(ctx, h.Org, issueID)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("failed to get issue", err), nil
	}
	return jsonResult(issue), nil
}
