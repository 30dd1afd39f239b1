package mcp

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/snyk-intelhub/internal/inventory"
)

const (
	ServerName    = "snyk-intelhub"
	ServerVersion = "1.0.0"
)

type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler
}

// ToolDefinitions returns the schemas of every tool the server can expose.
func ToolDefinitions() map[string]mcp.Tool {
	statusOpt := mcp.WithString("status",
		mcp.Description("Issue status to filter by (default: open)"),
		mcp.Enum(inventory.Statuses...),
	)
	severityOpt := mcp.WithString("severity",
		mcp.Description("Optional: effective severity level to filter by"),
		mcp.Enum(inventory.Severities...),
	)

	return map[string]mcp.Tool{
		"get_issues": mcp.NewTool("get_issues",
			mcp.WithDescription("List security issues for the organization. Optionally scope to a project by UUID or by exact project name. Returns the first page of results."),
			mcp.WithString("repo",
				mcp.Description("Optional: project UUID or exact project name (e.g., 'github.com/acme/app:package.json')"),
			),
			mcp.WithString("projectId",
				mcp.Description("Optional: project UUID. Takes precedence over repo"),
			),
			statusOpt,
			severityOpt,
		),
		"get_repo_issues": mcp.NewTool("get_repo_issues",
			mcp.WithDescription("Collect issues from every project whose name contains the repository name (case-insensitive)."),
			mcp.WithString("repositoryName",
				mcp.Required(),
				mcp.Description("Repository name or fragment (e.g., 'acme/app')"),
			),
			statusOpt,
			severityOpt,
		),
		"get_issue": mcp.NewTool("get_issue",
			mcp.WithDescription("Retrieve one issue with problems, remedies and upgrade paths."),
			mcp.WithString("issue_id",
				mcp.Required(),
				mcp.Description("Issue UUID"),
			),
		),
		"find_projects": mcp.NewTool("find_projects",
			mcp.WithDescription("Find projects whose name contains the query (case-insensitive). Returns project ids and names."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Name fragment to search for (e.g., 'acme/app')"),
			),
		),
	}
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
	)

	toolDefinitions := ToolDefinitions()
	for name, adapter := range cfg.ToolAdapters {
		tool, ok := toolDefinitions[name]
		if !ok {
			continue
		}
		mcpServer.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return adapter.ToolAdapter(ctx, req)
		})
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	return &Server{
		MCP:     mcpServer,
		HTTP:    httpServer,
		Handler: httpServer,
	}
}
