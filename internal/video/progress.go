// Package video renders export progress to the terminal: a redrawn
// text progress bar driven by polling an export.Driver's Status.
package video

import (
	"fmt"
	"strings"
	"time"

	"github.com/neurochelplus/NeuroScreenCaster/internal/export"
)

// ProgressBar is a simple terminal progress bar, redrawn in place via
// a carriage return.
type ProgressBar struct {
	width       int
	startTime   time.Time
	lastUpdate  time.Time
	description string
}

func NewProgressBar(description string) *ProgressBar {
	return &ProgressBar{
		width:       30,
		startTime:   time.Now(),
		lastUpdate:  time.Now(),
		description: description,
	}
}

// Report redraws the bar from an export.Status snapshot. It throttles
// redraws to once per 100ms so polling a Driver in a tight loop
// doesn't flood the terminal.
func (p *ProgressBar) Report(s export.Status) {
	if time.Since(p.lastUpdate) < 100*time.Millisecond && s.IsRunning {
		return
	}
	p.lastUpdate = time.Now()

	if s.Error != "" {
		p.ReportError(fmt.Errorf("%s", s.Error))
		return
	}

	completed := int(float64(p.width) * s.Progress)
	bar := strings.Repeat("=", completed) + strings.Repeat("-", p.width-completed)
	elapsed := time.Since(p.startTime)
	fmt.Printf("\r%s [%s] %.1f%% Elapsed: %v",
		p.description,
		bar,
		s.Progress*100,
		elapsed.Round(time.Second),
	)
	if !s.IsRunning {
		fmt.Println()
	}
}

func (p *ProgressBar) ReportError(err error) {
	fmt.Printf("\nError: %v\n", err)
}

func (p *ProgressBar) ReportComplete() {
	fmt.Println()
}
