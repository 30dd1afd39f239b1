package snyk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"

	"github.com/roivaz/snyk-intelhub/internal/logging"
)

const (
	DefaultBaseURL = "https://api.snyk.io/rest"
	DefaultVersion = "2024-11-05"

	jsonAPIMediaType = "application/vnd.api+json"
)

type Config struct {
	BaseURL  string
	Token    string
	Version  string
	Timeout  time.Duration
	RetryMax int
	Logger   logging.Logger
}

// Client talks to the Snyk REST API. Transient failures (connection errors,
// 429 and 5xx) are retried by the transport; callers see one result per call.
type Client struct {
	baseURL string
	version string
	http    *retryablehttp.Client
	log     logging.Logger
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, ErrMissingToken
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	version := cfg.Version
	if version == "" {
		version = DefaultVersion
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	log := cfg.Logger
	if log.Logr().GetSink() == nil {
		log = logging.New(logging.DefaultLogger())
	}
	log = log.WithName("snyk.client")

	rc := retryablehttp.NewClient()
	rc.RetryMax = max(cfg.RetryMax, 0)
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = retryLogger{log: log}

	// Snyk API tokens use the "token" authorization scheme rather than Bearer.
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "token"})
	rc.HTTPClient = &http.Client{
		Timeout:   timeout,
		Transport: &oauth2.Transport{Source: ts, Base: rc.HTTPClient.Transport},
	}

	return &Client{baseURL: baseURL, version: version, http: rc, log: log}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("version", c.version)
	endpoint := c.baseURL + path + "?" + query.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", jsonAPIMediaType)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	c.log.Debug("snyk request", "path", path, "status", resp.StatusCode, "elapsed", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func orgPath(orgID string, parts ...string) string {
	segments := []string{"", "orgs", url.PathEscape(orgID)}
	for _, p := range parts {
		segments = append(segments, url.PathEscape(p))
	}
	return strings.Join(segments, "/")
}

// retryLogger adapts logging.Logger to retryablehttp.LeveledLogger.
type retryLogger struct {
	log logging.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	err, rest := splitError(msg, keysAndValues)
	l.log.Error(err, msg, rest...)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Info(msg, keysAndValues...)
}

// splitError pulls the first error value out of keysAndValues so it is logged
// as the entry's error. Without one, msg becomes the error.
func splitError(msg string, keysAndValues []interface{}) (error, []interface{}) {
	for i := 1; i < len(keysAndValues); i += 2 {
		if err, ok := keysAndValues[i].(error); ok && err != nil {
			rest := make([]interface{}, 0, len(keysAndValues)-2)
			rest = append(rest, keysAndValues[:i-1]...)
			rest = append(rest, keysAndValues[i+1:]...)
			return err, rest
		}
	}
	return errors.New(msg), keysAndValues
}
