package inventory

import (
	"context"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sourcegraph/conc/pool"

	"github.com/roivaz/snyk-intelhub/internal/logging"
)

const DefaultLookupConcurrency = 10

// ProjectNames caches project id to display name for the duration of one
// request. Lookups that fail leave the id unresolved.
type ProjectNames struct {
	names *xsync.MapOf[string, string]
	log   logging.Logger
}

func NewProjectNames(log logging.Logger) *ProjectNames {
	return &ProjectNames{names: xsync.NewMapOf[string, string](), log: log}
}

// Set records a known name. Empty ids or names are ignored.
func (c *ProjectNames) Set(id, name string) {
	if id == "" || name == "" {
		return
	}
	c.names.Store(id, name)
}

// Name returns the cached name for id.
func (c *ProjectNames) Name(id string) (string, bool) {
	return c.names.Load(id)
}

// Repository returns the display value for a project: its name when known,
// the raw id otherwise, nil when id is empty.
func (c *ProjectNames) Repository(id string) *string {
	if id == "" {
		return nil
	}
	if name, ok := c.names.Load(id); ok {
		return &name
	}
	return &id
}

// Ensure looks up every id not already cached, at most concurrency at a time,
// and waits for all lookups to settle. Individual failures are logged and
// skipped.
func (c *ProjectNames) Ensure(ctx context.Context, projects ProjectsAPI, orgID string, ids []string, concurrency int) {
	if projects == nil {
		return
	}
	pending := c.missing(ids)
	if len(pending) == 0 {
		return
	}
	if concurrency < 1 {
		concurrency = DefaultLookupConcurrency
	}

	p := pool.New().WithMaxGoroutines(concurrency)
	for _, id := range pending {
		p.Go(func() {
			project, err := projects.GetProject(ctx, orgID, id)
			if err != nil {
				c.log.Error(err, "project name lookup failed", "projectId", id)
				return
			}
			if project == nil {
				return
			}
			c.Set(id, project.Name())
		})
	}
	p.Wait()
	c.log.Debug("project names resolved", "requested", len(pending), "cached", c.names.Size())
}

func (c *ProjectNames) missing(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := c.names.Load(id); ok {
			continue
		}
		out = append(out, id)
	}
	return out
}
