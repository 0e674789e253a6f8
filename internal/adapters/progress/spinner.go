package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

// SpinnerProgressReporter shows action stages with a spinner on stderr
type SpinnerProgressReporter struct {
	mu      sync.Mutex
	spinner *spinner.Spinner
	out     io.Writer
	stages  []stageInfo
}

type stageInfo struct {
	Stage     string
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return newSpinnerProgressReporter(os.Stderr)
}

func newSpinnerProgressReporter(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     out,
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.advance(event.Stage)

	if event.Spinner {
		r.spinner.Suffix = " " + event.Message + r.trail()
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	if r.spinner.Active() {
		r.spinner.Stop()
	}
	switch event.Stage {
	case usecase.StageComplete:
		fmt.Fprintln(r.out, r.trail())
		r.stages = nil
	case usecase.StageFailed:
		r.stages = nil
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.printAround(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.printAround(color.New(color.FgRed), message)
}

func (r *SpinnerProgressReporter) printAround(c *color.Color, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Stop spinner temporarily
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

// advance completes the running stage and starts stage, unless it is already running
func (r *SpinnerProgressReporter) advance(stage string) {
	now := time.Now()
	if n := len(r.stages); n > 0 {
		last := &r.stages[n-1]
		if last.Stage == stage {
			return
		}
		last.EndTime = now
		last.Status = "completed"
	}
	status := "running"
	if stage == usecase.StageComplete {
		status = "completed"
	}
	r.stages = append(r.stages, stageInfo{Stage: stage, StartTime: now, EndTime: now, Status: status})
}

// trail renders the stages seen so far
func (r *SpinnerProgressReporter) trail() string {
	var display string

	for _, stage := range r.stages {
		var stageName string
		var icon string
		var stageColor *color.Color

		// Map stage names
		switch stage.Stage {
		case usecase.StageSubmitting:
			stageName = "Submitted"
		case usecase.StageAwaiting:
			stageName = "Mined"
		case usecase.StageRefreshing:
			stageName = "Refreshed"
		default:
			// Skip other stages in display
			continue
		}

		switch stage.Status {
		case "completed":
			icon = "✓"
			stageColor = color.New(color.FgGreen)
		default:
			icon = "●"
			stageColor = color.New(color.FgYellow)
		}

		duration := ""
		if stage.Status == "completed" {
			duration = fmt.Sprintf(" (%s)", stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond))
		}

		if display != "" {
			display += " → "
		}
		display += fmt.Sprintf("%s %s%s", icon, stageColor.Sprint(stageName), duration)
	}

	if display == "" {
		return ""
	}
	return "  " + display
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
