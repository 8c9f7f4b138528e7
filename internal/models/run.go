package models

import "time"

// CleanRun describes one invocation of the cleaner against a repository.
type CleanRun struct {
	ID             string        // Run identifier (UUID)
	Repository     string        // Absolute repository root
	StartedAt      time.Time     // When the run began
	Duration       time.Duration // Wall time of the traversal
	DeleteBuilds   bool          // Build deletion enabled
	DeleteVersions bool          // Version deletion enabled
	Skipped        bool          // Skipped by the execution probability gate
	Error          string        // Set when the run aborted before completing
	Stats          Stats         // Aggregated statistics, zero when skipped
}

// DryRun reports whether the run could not have deleted anything.
func (r CleanRun) DryRun() bool {
	return !r.DeleteBuilds && !r.DeleteVersions
}

// Status is a one-word summary of the run outcome.
func (r CleanRun) Status() string {
	switch {
	case r.Error != "":
		return "failed"
	case r.Skipped:
		return "skipped"
	case r.DryRun():
		return "dry-run"
	default:
		return "cleaned"
	}
}
