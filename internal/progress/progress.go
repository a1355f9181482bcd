// Package progress defines the callback surface through which extraction and
// generation publish their progress, plus a few reporters.
package progress

import (
	"log/slog"
	"sync/atomic"
)

// Step identifies a pipeline stage.
type Step string

const (
	StepScanning   Step = "scanning"
	StepExtracting Step = "extracting"
	StepGenerating Step = "generating"
	StepCaching    Step = "caching"
	StepFinalizing Step = "finalizing"
	StepCompleted  Step = "completed"
)

// Label returns a human-readable stage label.
func (s Step) Label() string {
	switch s {
	case StepScanning:
		return "Scanning files"
	case StepExtracting:
		return "Extracting chunks"
	case StepGenerating:
		return "Generating challenges"
	case StepCaching:
		return "Caching challenges"
	case StepFinalizing:
		return "Finalizing"
	case StepCompleted:
		return "Completed"
	}
	return string(s)
}

// Reporter receives progress updates. Implementations must be safe for
// concurrent use and must not block; callers never wait on them.
type Reporter interface {
	SetStep(step Step)

	// SetCurrentFile sets the file being worked on; "" clears it.
	SetCurrentFile(path string)

	SetFileCounts(step Step, processed, total int, currentFile string)
}

// Nop discards every update.
type Nop struct{}

func (Nop) SetStep(Step) {}

func (Nop) SetCurrentFile(string) {}

func (Nop) SetFileCounts(Step, int, int, string) {}

// OrNop returns r, or a Nop reporter when r is nil.
func OrNop(r Reporter) Reporter {
	if r == nil {
		return Nop{}
	}
	return r
}

// LogReporter writes updates as debug records.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a reporter writing to logger.
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger}
}

func (r *LogReporter) SetStep(step Step) {
	r.logger.Debug("progress step", "step", string(step))
}

func (r *LogReporter) SetCurrentFile(path string) {
	if path != "" {
		r.logger.Debug("progress file", "path", path)
	}
}

func (r *LogReporter) SetFileCounts(step Step, processed, total int, currentFile string) {
	r.logger.Debug("progress counts",
		"step", string(step),
		"processed", processed,
		"total", total,
		"file", currentFile)
}

// reportInterval is how many items pass between count reports.
const reportInterval = 10

// Tracker counts completed work items from many goroutines and forwards
// counts to a Reporter every reportInterval items and on the final item.
type Tracker struct {
	reporter Reporter
	step     Step
	total    int
	done     atomic.Int64
}

// NewTracker creates a tracker for total items of step.
func NewTracker(reporter Reporter, step Step, total int) *Tracker {
	return &Tracker{reporter: OrNop(reporter), step: step, total: total}
}

// Done marks one item finished and returns the new count.
func (t *Tracker) Done(currentFile string) int {
	n := int(t.done.Add(1))
	if n%reportInterval == 0 || n >= t.total {
		t.reporter.SetFileCounts(t.step, n, t.total, currentFile)
	}
	return n
}

// Count returns the number of finished items.
func (t *Tracker) Count() int {
	return int(t.done.Load())
}

// Finish reports the final count unconditionally.
func (t *Tracker) Finish() {
	t.reporter.SetFileCounts(t.step, t.Count(), t.total, "")
}
