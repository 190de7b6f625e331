package preflight

import (
	"context"
	"strings"

	"vidscribe/internal/config"
	"vidscribe/internal/deps"
	"vidscribe/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// Kind classifies failures: services.ErrExternalTool for missing
	// binaries, services.ErrConfiguration for unusable paths.
	Kind error
}

// RunAll executes every preflight check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return []Result{{Name: "context", Detail: err.Error(), Kind: services.ErrExternalTool}}
	}

	var results []Result
	statuses := CheckSystemDeps(cfg)
	for _, status := range statuses {
		if status.Available {
			results = append(results, Result{Name: status.Name, Passed: true, Detail: status.Path})
		} else if status.Optional {
			results = append(results, Result{Name: status.Name, Passed: true, Detail: status.Detail})
		}
	}
	for _, status := range deps.Missing(statuses) {
		results = append(results, Result{Name: status.Name, Detail: status.Detail, Kind: services.ErrExternalTool})
	}

	dirCheck := CheckDirectoryAccess("Temp directory", cfg.TempDir())
	if !dirCheck.Passed {
		dirCheck.Kind = services.ErrConfiguration
	}
	results = append(results, dirCheck)
	return results
}

// Err summarizes failed results as a single error, or nil when every check
// passed. Missing tools take precedence over configuration failures.
func Err(results []Result) error {
	var failed []string
	var kind error
	for _, r := range results {
		if r.Passed {
			continue
		}
		failed = append(failed, r.Name+": "+r.Detail)
		if kind == nil || r.Kind == services.ErrExternalTool {
			kind = r.Kind
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return services.Wrap(kind, "preflight", "environment check", strings.Join(failed, "; "), nil)
}
