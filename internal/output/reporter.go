package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tanq16/ytmp3/internal/runner"
)

// Reporter prints per-item progress and the end-of-run summary. It satisfies
// runner.Observer.
type Reporter struct {
	w      io.Writer
	failed []runner.JobResult
}

func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) Found(count int, source string) {
	fmt.Fprintln(r.w, infoStyle.Render(fmt.Sprintf("Found %d URLs in %s", count, source)))
}

func (r *Reporter) JobStarted(index, total int, item string) {
	if total == 1 {
		fmt.Fprintln(r.w, pendingStyle.Render(fmt.Sprintf("Downloading: %s", item)))
		return
	}
	fmt.Fprintln(r.w, pendingStyle.Render(fmt.Sprintf("Processing %d/%d: %s", index, total, item)))
}

func (r *Reporter) JobFinished(index, total int, result runner.JobResult) {
	pad := strings.Repeat(" ", basePadding)
	elapsed := debugStyle.Render(result.Duration.Round(time.Second).String())
	if result.Succeeded {
		fmt.Fprintf(r.w, "%s%s %s %s\n", pad, successStyle.Render(StyleSymbols["pass"]), elapsed,
			successStyle.Render(fmt.Sprintf("Successfully downloaded: %s", result.Item)))
		return
	}
	r.failed = append(r.failed, result)
	fmt.Fprintf(r.w, "%s%s %s %s\n", pad, errorStyle.Render(StyleSymbols["fail"]), elapsed,
		errorStyle.Render(fmt.Sprintf("Failed to download %s", result.Item)))
	for _, line := range wrapText(result.ErrorMessage, basePadding+4) {
		fmt.Fprintf(r.w, "%s%s\n", strings.Repeat(" ", basePadding+4), streamStyle.Render(line))
	}
}

// ShowSummary prints the aggregate count, a per-item table for multi-item
// runs and the collected errors.
func (r *Reporter) ShowSummary(summary runner.BatchSummary) {
	pad := strings.Repeat(" ", basePadding)
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, pad+success2Style.Render(fmt.Sprintf("Download complete: %d/%d successful", summary.Succeeded, summary.Total)))
	if summary.Failed() > 0 {
		fmt.Fprintln(r.w, pad+errorStyle.Render(fmt.Sprintf("Failed %d of %d", summary.Failed(), summary.Total)))
	}
	if len(summary.Results) > 1 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, resultsTable(summary.Results).String())
	}
	r.displayErrors()
	fmt.Fprintln(r.w)
}

func (r *Reporter) displayErrors() {
	if len(r.failed) == 0 {
		return
	}
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, strings.Repeat(" ", basePadding)+errorStyle.Bold(true).Render("Errors:"))
	for i, result := range r.failed {
		fmt.Fprintf(r.w, "%s%s %s %s\n",
			strings.Repeat(" ", basePadding+2),
			errorStyle.Render(fmt.Sprintf("%d.", i+1)),
			debugStyle.Render(fmt.Sprintf("[%s]", result.Kind)),
			errorStyle.Render(result.Item))
		for _, line := range wrapText(result.ErrorMessage, basePadding+4) {
			fmt.Fprintf(r.w, "%s%s\n", strings.Repeat(" ", basePadding+4), errorStyle.Render(line))
		}
	}
}

func resultsTable(results []runner.JobResult) *Table {
	t := NewTable("#", "Status", "URL", "Time")
	for i, result := range results {
		status := FSuccess(StyleSymbols["pass"])
		if !result.Succeeded {
			status = FError(StyleSymbols["fail"])
		}
		t.AddRow(fmt.Sprint(i+1), status, result.Item, result.Duration.Round(time.Second).String())
	}
	return t
}
