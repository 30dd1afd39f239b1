package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/snyk-intelhub/internal/config"
	"github.com/roivaz/snyk-intelhub/internal/inventory"
	"github.com/roivaz/snyk-intelhub/internal/logging"
	"github.com/roivaz/snyk-intelhub/internal/mcp/tools"
	"github.com/roivaz/snyk-intelhub/internal/snyk"
)

const EndpointPath = "/mcp/jsonrpc"

type Config struct {
	ToolAdapters map[string]ToolAdapter
	Options      []server.StreamableHTTPOption
}

// NewService builds the inventory service from the loaded configuration.
func NewService(log logging.Logger) (*inventory.Service, error) {
	client, err := snyk.NewClient(snyk.Config{
		BaseURL:  config.APIURL(),
		Token:    config.APIKey(),
		Version:  config.APIVersion(),
		Timeout:  config.HTTPTimeout(),
		RetryMax: config.HTTPRetryMax(),
		Logger:   log,
	})
	if err != nil {
		return nil, fmt.Errorf("create snyk client: %w", err)
	}
	return inventory.New(client, client, inventory.Options{
		AppURL:            config.AppURL(),
		PageLimit:         config.PageLimit(),
		LookupConcurrency: config.LookupConcurrency(),
	}, log), nil
}

// Org returns the organization context from the loaded configuration.
func Org() inventory.OrgContext {
	return inventory.OrgContext{ID: config.OrgID(), Slug: config.OrgSlug()}
}

func DefaultConfig(log logging.Logger) (Config, error) {
	svc, err := NewService(log)
	if err != nil {
		return Config{}, err
	}
	return NewConfig(svc, Org()), nil
}

// NewConfig wires every tool to svc, scoped to org.
func NewConfig(svc *inventory.Service, org inventory.OrgContext) Config {
	return Config{
		ToolAdapters: map[string]ToolAdapter{
			"get_issues":      &tools.GetIssuesHandler{Service: svc, Org: org},
			"get_repo_issues": &tools.GetRepoIssuesHandler{Service: svc, Org: org},
			"get_issue":       &tools.GetIssueHandler{Service: svc, Org: org},
			"find_projects":   &tools.FindProjectsHandler{Service: svc, Org: org},
		},
		Options: []server.StreamableHTTPOption{
			server.WithEndpointPath(EndpointPath),
			server.WithStateLess(true),
		},
	}
}
