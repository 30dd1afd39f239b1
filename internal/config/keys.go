package config

const (
	KeyAPIKey            = "snyk_api_key"
	KeyOrgID             = "snyk_org_id"
	KeyOrgSlug           = "snyk_org_slug"
	KeyAPIURL            = "snyk_api_url"
	KeyAppURL            = "snyk_app_url"
	KeyAPIVersion        = "snyk_api_version"
	KeyPageLimit         = "snyk_page_limit"
	KeyHTTPTimeout       = "snyk_http_timeout"
	KeyHTTPRetryMax      = "snyk_http_retry_max"
	KeyLookupConcurrency = "project_lookup_concurrency"
	KeyLogLevel          = "log_level"
	KeyTransport         = "mcp_transport"
	KeyHTTPHost          = "mcp_http_host"
	KeyHTTPPort          = "mcp_http_port"
)
