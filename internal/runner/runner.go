package runner

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// OutputTemplate is handed to yt-dlp, which substitutes title and extension.
const OutputTemplate = "%(title)s.%(ext)s"

const maxLineSize = 1024 * 1024

type Runner struct {
	Tool       string
	ExtraArgs  []string
	StreamFunc func(line string)
	Observer   Observer
	streamMu   sync.Mutex
}

func New(tool string) *Runner {
	return &Runner{Tool: tool}
}

// EnsureOutputDirectory creates path and any missing parents. It is a no-op
// when the directory already exists.
func EnsureOutputDirectory(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("output path %s exists and is not a directory", path)
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error checking output directory: %w", err)
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	log.Info().Str("op", "runner/output-dir").Msgf("Created output directory: %s", path)
	return nil
}

func (r *Runner) Args(item, dir string) []string {
	args := []string{
		"--extract-audio",
		"--audio-format", "mp3",
		"--output", filepath.Join(dir, OutputTemplate),
	}
	args = append(args, r.ExtraArgs...)
	return append(args, item)
}

// RunOne invokes the tool once for item. Failures are reported in the result,
// never as an error.
func (r *Runner) RunOne(item, dir string) (result JobResult) {
	result = JobResult{ID: uuid.NewString(), Item: item, ExitCode: -1}
	start := time.Now()
	defer func() { result.Duration = time.Since(start) }()

	cmd := exec.Command(r.Tool, r.Args(item, dir)...)
	logger := log.With().Str("op", "runner/run-one").Str("job", result.ID).Logger()
	logger.Debug().Msgf("Executing yt-dlp command: %s", cmd.String())

	stdout, stdoutW, err := os.Pipe()
	if err != nil {
		return r.launchFailure(result, fmt.Errorf("error creating stdout pipe: %w", err))
	}
	defer stdout.Close()
	stderr, stderrW, err := os.Pipe()
	if err != nil {
		stdoutW.Close()
		return r.launchFailure(result, fmt.Errorf("error creating stderr pipe: %w", err))
	}
	defer stderr.Close()
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW
	err = cmd.Start()
	// the child holds its own copies; ours must go for the readers to see EOF
	stdoutW.Close()
	stderrW.Close()
	if err != nil {
		return r.launchFailure(result, fmt.Errorf("error starting %s: %w", r.Tool, err))
	}

	var errLines []string
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		r.processStream(stdout, nil)
	}()
	go func() {
		defer wg.Done()
		r.processStream(stderr, &errLines)
	}()
	wg.Wait()

	err = cmd.Wait()
	if err == nil {
		result.Succeeded = true
		result.ExitCode = 0
		logger.Debug().Msgf("yt-dlp download completed for %s", item)
		return result
	}

	result.Kind = FailureExit
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
	}
	result.ErrorMessage = strings.TrimSpace(strings.Join(errLines, "\n"))
	if result.ErrorMessage == "" {
		result.ErrorMessage = err.Error()
	}
	logger.Error().Int("exit", result.ExitCode).Msg("yt-dlp command failed")
	return result
}

func (r *Runner) launchFailure(result JobResult, err error) JobResult {
	result.Kind = FailureLaunch
	result.ErrorMessage = err.Error()
	log.Error().Str("op", "runner/run-one").Str("job", result.ID).Err(err).Msg("Error launching yt-dlp")
	return result
}

// RunBatch runs every item in order, one at a time, and never stops early.
func (r *Runner) RunBatch(items []string, dir string) BatchSummary {
	summary := BatchSummary{Total: len(items), Results: make([]JobResult, 0, len(items))}
	for i, item := range items {
		if r.Observer != nil {
			r.Observer.JobStarted(i+1, len(items), item)
		}
		result := r.RunOne(item, dir)
		if result.Succeeded {
			summary.Succeeded++
		}
		summary.Results = append(summary.Results, result)
		if r.Observer != nil {
			r.Observer.JobFinished(i+1, len(items), result)
		}
	}
	log.Debug().Str("op", "runner/run-batch").Msgf("Batch finished: %d/%d successful", summary.Succeeded, summary.Total)
	return summary
}

// CheckTool reports whether the tool can be launched. A missing executable is
// (false, nil); any other launch error is returned as is.
func (r *Runner) CheckTool() (bool, error) {
	_, err := r.Version()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// it started, which is all this check asks
		return true, nil
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Version runs the tool with --version and returns its trimmed stdout.
func (r *Runner) Version() (string, error) {
	out, err := exec.Command(r.Tool, "--version").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// processStream forwards every non-empty line of reader. yt-dlp redraws its
// progress with bare carriage returns, so those end a line as well. The reader
// is always drained to EOF so the child never blocks on a full pipe.
func (r *Runner) processStream(reader io.Reader, capture *[]string) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	scanner.Split(scanLinesOrCR)
	for scanner.Scan() {
		r.emit(strings.TrimSpace(scanner.Text()), capture)
	}
	if err := scanner.Err(); err != nil {
		log.Debug().Str("op", "runner/stream").Err(err).Msg("Discarding rest of yt-dlp output")
		r.emit(fmt.Sprintf("output line longer than %d bytes discarded", maxLineSize), capture)
		io.Copy(io.Discard, reader)
	}
}

func (r *Runner) emit(line string, capture *[]string) {
	if line == "" {
		return
	}
	if capture != nil {
		*capture = append(*capture, line)
	}
	if r.StreamFunc != nil {
		r.streamMu.Lock()
		r.StreamFunc(line)
		r.streamMu.Unlock()
	}
}

func scanLinesOrCR(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
