// Package display renders run results for the terminal.
package display

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/stagehand"
)

// Reporter writes per-task result lines and a run summary.
type Reporter struct {
	out   io.Writer
	quiet bool

	pass *color.Color
	fail *color.Color
	dim  *color.Color
}

// NewReporter creates a reporter writing to out. Color is used only when out
// is a terminal and noColor is false.
func NewReporter(out io.Writer, noColor, quiet bool) *Reporter {
	r := &Reporter{
		out:   out,
		quiet: quiet,
		pass:  color.New(color.FgGreen),
		fail:  color.New(color.FgRed),
		dim:   color.New(color.Faint),
	}
	if noColor || !writerIsTerminal(out) {
		r.pass.DisableColor()
		r.fail.DisableColor()
		r.dim.DisableColor()
	}
	return r
}

func writerIsTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// TaskResult prints one result line: status glyph, task id, duration, and
// the captured failure if any.
func (r *Reporter) TaskResult(result *stagehand.Result) {
	if r.quiet {
		return
	}
	if result.Success() {
		fmt.Fprintf(r.out, "%s %s %s\n",
			r.pass.Sprint("✓"),
			result.Task().ID(),
			r.dim.Sprintf("(%s)", round(result.Duration())))
		return
	}

	label := "failed"
	switch {
	case stagehand.IsShortCircuited(result.Err()):
		label = "short-circuited"
	case stagehand.IsTimeoutError(result.Err()):
		label = "timed out"
	}
	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.fail.Sprint("✗"),
		result.Task().ID(),
		r.fail.Sprintf("[%s]", label),
		r.dim.Sprintf("(%s)", round(result.Duration())))
	fmt.Fprintf(r.out, "    %v\n", result.Err())
}

// Summary prints the aggregate outcome of a run.
func (r *Reporter) Summary(runID string, planSize int, results []*stagehand.Result, elapsed time.Duration) {
	failed := 0
	for _, result := range results {
		if !result.Success() {
			failed++
		}
	}

	fmt.Fprintf(r.out, "\nRun %s\n", r.dim.Sprint(runID))
	fmt.Fprintf(r.out, "  Planned:   %d\n", planSize)
	fmt.Fprintf(r.out, "  Completed: %d\n", len(results))
	if failed > 0 {
		fmt.Fprintf(r.out, "  Failed:    %s\n", r.fail.Sprintf("%d", failed))
	} else {
		fmt.Fprintf(r.out, "  Failed:    0\n")
	}
	fmt.Fprintf(r.out, "  Duration:  %s\n", round(elapsed))
}

// RunAborted prints an infrastructure failure.
func (r *Reporter) RunAborted(runID string, err error) {
	fmt.Fprintf(r.out, "\nRun %s %s\n%v\n", r.dim.Sprint(runID), r.fail.Sprint("aborted"), err)
}

func round(d time.Duration) time.Duration {
	if d >= time.Second {
		return d.Round(10 * time.Millisecond)
	}
	return d.Round(time.Millisecond)
}
