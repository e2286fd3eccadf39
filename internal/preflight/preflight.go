package preflight

import (
	"path/filepath"

	"miso/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// RunAll executes every check that applies to settings. settingsPath is the
// resolved settings file; its directory is checked for access.
func RunAll(settings *config.Settings, settingsPath string) []Result {
	if settings == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Settings directory", filepath.Dir(settingsPath)),
		CheckBinary(Requirement{
			Name:        "Engine",
			Command:     settings.EngineCommand(),
			Description: "Required for --run",
		}),
	}

	// The scheduler is only needed for --use-cluster, so a local-only
	// install does not fail the check.
	results = append(results, CheckBinary(Requirement{
		Name:        "Cluster submit",
		Command:     settings.Cluster.SubmitCommand,
		Description: "Required for --use-cluster",
		Optional:    true,
	}))

	return results
}

// Failed reports whether any required check did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}
