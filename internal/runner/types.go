package runner

import "time"

type FailureKind int

const (
	FailureNone FailureKind = iota
	// FailureLaunch means the tool process never started.
	FailureLaunch
	// FailureExit means the tool ran and exited non-zero.
	FailureExit
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureLaunch:
		return "launch"
	case FailureExit:
		return "exit"
	default:
		return "unknown"
	}
}

// JobResult is the outcome of a single tool invocation for one URL.
type JobResult struct {
	ID           string
	Item         string
	Succeeded    bool
	Kind         FailureKind
	ExitCode     int
	ErrorMessage string
	Duration     time.Duration
}

type BatchSummary struct {
	Total     int
	Succeeded int
	Results   []JobResult
}

func (s BatchSummary) Failed() int {
	return s.Total - s.Succeeded
}

// Observer is notified around every item of a batch. Index is 1-based.
type Observer interface {
	JobStarted(index, total int, item string)
	JobFinished(index, total int, result JobResult)
}
