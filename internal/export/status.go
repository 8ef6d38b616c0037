// Package export implements the export driver: it precomputes the
// camera track at the output's own frame cadence, iterates frames
// through the frame composer, and reports progress and cancellation
// through an atomically-published Status, generalized from a println
// progress bar into a structured status record a UI thread can poll
// without a lock.
package export

// Status is ExportStatus.
type Status struct {
	IsRunning    bool
	Progress     float64
	Message      string
	OutputPath   string
	Error        string
	StartedAtMs  int64
	FinishedAtMs int64
}
