package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/roivaz/snyk-intelhub/internal/config"
	"github.com/roivaz/snyk-intelhub/internal/inventory"
	"github.com/roivaz/snyk-intelhub/internal/logging"
	"github.com/roivaz/snyk-intelhub/internal/mcp"
)

func main() {
	root := &cobra.Command{
		Use:          "snyk-cli",
		Short:        "Query the Snyk issue inventory from the command line",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("snyk-api-key", "", "Snyk API token")
	root.PersistentFlags().String("snyk-org-id", "", "Snyk organization id")
	root.PersistentFlags().String("snyk-org-slug", "", "Snyk organization slug, used in issue links")
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringP("output", "o", "json", "Output format: json or yaml")

	root.AddCommand(getIssuesCmd(), getRepoIssuesCmd(), getIssueCmd(), findProjectsCmd())

	config.Init(root)

	if err := root.Execute(); err != nil {
		log.Fatalf("snyk-cli: %v", err)
	}
}

func getIssuesCmd() *cobra.Command {
	var repo, status, severity string
	cmd := &cobra.Command{
		Use:   "get-issues",
		Short: "List issues for the organization, a project id or an exact project name",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := inventory.ParseFilter(status, severity)
			if err != nil {
				return err
			}
			svc, err := newService()
			if err != nil {
				return err
			}
			resp, err := svc.GetIssues(cmd.Context(), mcp.Org(), inventory.IssueQuery{Repo: repo, Filter: filter})
			if err != nil {
				return err
			}
			return output(cmd, resp)
		},
	}
	cmd.Flags().StringVar(&repo, "repo", "", "Project UUID or exact project name")
	addFilterFlags(cmd, &status, &severity)
	return cmd
}

func getRepoIssuesCmd() *cobra.Command {
	var name, status, severity string
	cmd := &cobra.Command{
		Use:   "get-repo-issues",
		Short: "Collect issues from every project whose name contains the repository name",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--repository is required")
			}
			filter, err := inventory.ParseFilter(status, severity)
			if err != nil {
				return err
			}
			svc, err := newService()
			if err != nil {
				return err
			}
			resp, err := svc.GetRepoIssues(cmd.Context(), mcp.Org(), name, filter)
			if err != nil {
				return err
			}
			return output(cmd, resp)
		},
	}
	cmd.Flags().StringVar(&name, "repository", "", "Repository name or fragment (e.g. acme/app)")
	addFilterFlags(cmd, &status, &severity)
	return cmd
}

func getIssueCmd() *cobra.Command {
	var issueID string
	cmd := &cobra.Command{
		Use:   "get-issue",
		Short: "Show one issue with remediation details",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !inventory.IsUUID(issueID) {
				return fmt.Errorf("--issue-id must be a UUID")
			}
			svc, err := newService()
			if err != nil {
				return err
			}
			resp, err := svc.GetIssue(cmd.Context(), mcp.Org(), issueID)
			if err != nil {
				return err
			}
			return output(cmd, resp)
		},
	}
	cmd.Flags().StringVar(&issueID, "issue-id", "", "Issue UUID")
	return cmd
}

func findProjectsCmd() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "find-projects",
		Short: "Find projects whose name contains the query",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return fmt.Errorf("--query is required")
			}
			svc, err := newService()
			if err != nil {
				return err
			}
			resp, err := svc.FindProjects(cmd.Context(), mcp.Org(), query)
			if err != nil {
				return err
			}
			return output(cmd, resp)
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "Name fragment to search for")
	return cmd
}

func addFilterFlags(cmd *cobra.Command, status, severity *string) {
	cmd.Flags().StringVar(status, "status", inventory.DefaultStatus, "Issue status: open, resolved or ignored")
	cmd.Flags().StringVar(severity, "severity", "", "Severity: low, medium, high or critical")
}

func newService() (*inventory.Service, error) {
	logger := logging.New(logging.NewLogger(config.LogLevel())).WithName("snyk-cli")
	return mcp.NewService(logger)
}

func output(cmd *cobra.Command, v any) error {
	format, _ := cmd.Flags().GetString("output")
	return write(cmd.OutOrStdout(), format, v)
}

func write(w io.Writer, format string, v any) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		return fmt.Errorf("unknown output format %q: must be json or yaml", format)
	}
}

