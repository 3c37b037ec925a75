package export

import (
	"context"
	"errors"
	"fmt"
	"sort"

	kerrors "github.com/neo-th/iot-cache/internal/errors"
)

// Outcome is what a sink did with one key.
type Outcome int

const (
	// Failed means the sink returned an error.
	Failed Outcome = iota
	// Written means the value was stored remotely.
	Written
	// Skipped means the key already existed and overwrite was off.
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Written:
		return "written"
	case Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Sink receives exported key/value pairs.
type Sink interface {
	// Push stores value under key. Without overwrite an existing key is
	// left alone and Skipped is returned.
	Push(ctx context.Context, key, value string, overwrite bool) (Outcome, error)
}

// KeyResult is the outcome for a single key.
type KeyResult struct {
	Key     string
	Outcome Outcome
	Err     error
}

// Report aggregates per-key results of an export.
type Report struct {
	Results []KeyResult
}

// AllSucceeded is true when no key failed. An empty export succeeds.
func (r *Report) AllSucceeded() bool {
	return len(r.Failed()) == 0
}

// Failed returns the results that did not reach the sink.
func (r *Report) Failed() []KeyResult {
	return r.filter(Failed)
}

// Written returns the keys stored remotely.
func (r *Report) Written() []KeyResult {
	return r.filter(Written)
}

// Skipped returns the keys left untouched because they already existed.
func (r *Report) Skipped() []KeyResult {
	return r.filter(Skipped)
}

// Err joins every per-key failure, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Failed() {
		errs = append(errs, res.Err)
	}
	return errors.Join(errs...)
}

func (r *Report) filter(outcome Outcome) []KeyResult {
	var out []KeyResult
	for _, res := range r.Results {
		if res.Outcome == outcome {
			out = append(out, res)
		}
	}
	return out
}

// Export pushes every entry of snapshot to sink.
func Export(ctx context.Context, sink Sink, snapshot map[string]string, overwrite bool) *Report {
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	report := &Report{Results: make([]KeyResult, 0, len(keys))}
	for _, key := range keys {
		outcome, err := sink.Push(ctx, key, snapshot[key], overwrite)
		if err != nil {
			report.Results = append(report.Results, KeyResult{
				Key:     key,
				Outcome: Failed,
				Err:     fmt.Errorf("%s: %w: %w", key, kerrors.ErrSinkWriteFailure, err),
			})
			continue
		}
		report.Results = append(report.Results, KeyResult{Key: key, Outcome: outcome})
	}
	return report
}
