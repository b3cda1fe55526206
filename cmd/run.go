package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tanq16/ytmp3/internal/output"
	"github.com/tanq16/ytmp3/internal/runner"
	"github.com/tanq16/ytmp3/internal/source"
)

// run executes one invocation and returns the process exit code. Per-item
// failures keep the code at 0 unless FailOnError is set.
func run(ctx context.Context, w io.Writer, opts rootOptions) int {
	r := runner.New(opts.Tool)
	r.ExtraArgs = opts.ExtraArgs
	available, err := r.CheckTool()
	if err != nil {
		fmt.Fprintln(w, output.FError(fmt.Sprintf("Error: could not run yt-dlp: %v", err)))
		return 1
	}
	if !available {
		fmt.Fprintln(w, output.FError("Error: yt-dlp is not installed. Please install it with: pip install yt-dlp"))
		return 1
	}

	runID := uuid.NewString()
	logger := log.With().Str("op", "cmd/run").Str("run", runID).Logger()
	reporter := output.NewReporter(w)
	r.Observer = reporter
	r.StreamFunc = func(line string) {
		logger.Debug().Msg(line)
	}

	var items []string
	if opts.URL != "" {
		items = []string{strings.TrimSpace(opts.URL)}
	} else {
		items, err = source.Load(ctx, opts.File)
		if errors.Is(err, source.ErrNotFound) {
			fmt.Fprintln(w, output.FError(fmt.Sprintf("Error: File not found: %s", opts.File)))
			return 0
		}
		if err != nil {
			fmt.Fprintln(w, output.FError(fmt.Sprintf("Error: %v", err)))
			return 1
		}
		if len(items) == 0 {
			fmt.Fprintln(w, output.FWarning(fmt.Sprintf("No URLs found in %s", opts.File)))
			return 0
		}
		reporter.Found(len(items), opts.File)
	}

	if err := runner.EnsureOutputDirectory(opts.OutputDir); err != nil {
		fmt.Fprintln(w, output.FError(fmt.Sprintf("Error: %v", err)))
		return 1
	}

	logger.Debug().Msgf("Starting run with %d items into %s", len(items), opts.OutputDir)
	summary := r.RunBatch(items, opts.OutputDir)
	if opts.File != "" {
		reporter.ShowSummary(summary)
	}
	if opts.FailOnError && summary.Failed() > 0 {
		return 2
	}
	return 0
}
