package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// BarReporter renders one terminal progress bar per step.
type BarReporter struct {
	out io.Writer

	mu   sync.Mutex
	bar  *progressbar.ProgressBar
	step Step
}

// NewBarReporter creates a reporter drawing to out.
func NewBarReporter(out io.Writer) *BarReporter {
	return &BarReporter{out: out}
}

func (r *BarReporter) SetStep(step Step) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.step == step {
		return
	}
	r.finishLocked()
	r.step = step
}

func (r *BarReporter) SetCurrentFile(path string) {}

func (r *BarReporter) SetFileCounts(step Step, processed, total int, currentFile string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bar == nil || r.step != step {
		r.finishLocked()
		r.step = step
		r.bar = r.newBar(step, total)
	}
	_ = r.bar.Set(processed)
}

// Close completes the current bar, if any.
func (r *BarReporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finishLocked()
}

func (r *BarReporter) finishLocked() {
	if r.bar != nil {
		_ = r.bar.Finish()
		r.bar = nil
	}
}

func (r *BarReporter) newBar(step Step, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset]", step.Label())),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(r.out)
		}),
	)
}
