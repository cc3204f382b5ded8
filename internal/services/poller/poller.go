// Package poller drives long-running File Search operations to a terminal
// state with fixed-interval polling. There is no backoff, no jitter and no
// deduplication of concurrent polls: operations finish within minutes, the
// fetches are idempotent reads, and each Poll call runs its own independent
// sequence.
package poller

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/interfaces"
	"github.com/ternarybob/reperio/internal/models"
)

// State is the poller's view of an operation.
type State string

const (
	StatePending     State = "PENDING"
	StateDoneSuccess State = "DONE_SUCCESS"
	StateDoneError   State = "DONE_ERROR"
	StateTimedOut    State = "TIMED_OUT"
	StateStopped     State = "STOPPED"
)

// Terminal reports whether no further fetches will occur.
func (s State) Terminal() bool {
	return s != StatePending
}

const (
	// DefaultInterval is the fixed wait between status fetches.
	DefaultInterval = 3 * time.Second

	// DefaultCeiling is the wall-clock timeout for one polling sequence.
	DefaultCeiling = 5 * time.Minute

	// progressWindow scales the elapsed-time progress heuristic: a poll
	// reaches the pending cap after this much elapsed time.
	progressWindow = 30 * time.Second

	// maxPendingProgress caps the heuristic while the operation is pending;
	// only a terminal fetch reports 100.
	maxPendingProgress = 95
)

// Status is one snapshot of a polling sequence. Progress is a heuristic for
// UI feedback only: monotonically non-decreasing while pending, exactly 100
// at completion.
type Status struct {
	State        State             `json:"state"`
	Operation    *models.Operation `json:"operation,omitempty"`
	Progress     int               `json:"progress"`
	Fetches      int               `json:"fetches"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
}

// Poller polls operations through an OperationSource. Interval and ceiling
// are injectable for tests; production uses the fixed defaults.
type Poller struct {
	source   interfaces.OperationSource
	logger   arbor.ILogger
	interval time.Duration
	ceiling  time.Duration
}

// Option configures the Poller.
type Option func(*Poller)

// WithInterval overrides the fixed polling interval.
func WithInterval(interval time.Duration) Option {
	return func(p *Poller) {
		p.interval = interval
	}
}

// WithCeiling overrides the wall-clock timeout.
func WithCeiling(ceiling time.Duration) Option {
	return func(p *Poller) {
		p.ceiling = ceiling
	}
}

// New creates a Poller over the given operation source.
func New(source interfaces.OperationSource, logger arbor.ILogger, opts ...Option) *Poller {
	p := &Poller{
		source:   source,
		logger:   logger,
		interval: DefaultInterval,
		ceiling:  DefaultCeiling,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Poll runs one polling sequence for the named operation: wait the fixed
// interval, fetch a snapshot, repeat until the operation is done, the ceiling
// elapses, or ctx is cancelled. The ceiling check happens before each fetch,
// so a timed-out sequence makes exactly ceiling/interval fetches and no more.
// Each snapshot is offered to updates (best effort, never blocking); updates
// may be nil. Cancelling ctx yields StateStopped without forcing a terminal
// operation state.
func (p *Poller) Poll(ctx context.Context, operationName string, updates chan<- Status) Status {
	start := time.Now()
	status := Status{State: StatePending}

	if p.logger != nil {
		p.logger.Debug().
			Str("operation", operationName).
			Dur("interval", p.interval).
			Dur("ceiling", p.ceiling).
			Msg("Polling operation")
	}

	for {
		select {
		case <-ctx.Done():
			status.State = StateStopped
			p.emit(updates, status)
			return status
		case <-time.After(p.interval):
		}

		elapsed := time.Since(start)
		if elapsed > p.ceiling {
			status.State = StateTimedOut
			status.ErrorMessage = fmt.Sprintf("Operation timed out after %s", p.ceiling)
			p.emit(updates, status)

			if p.logger != nil {
				p.logger.Warn().
					Str("operation", operationName).
					Int("fetches", status.Fetches).
					Msg("Operation polling timed out")
			}
			return status
		}

		operation, err := p.source.GetOperation(ctx, operationName)
		if err != nil {
			status.State = StateDoneError
			status.ErrorMessage = err.Error()
			p.emit(updates, status)
			return status
		}

		status.Fetches++
		status.Operation = operation

		switch {
		case operation.Failed():
			status.State = StateDoneError
			status.Progress = 100
			status.ErrorMessage = operation.Error.Message
			p.emit(updates, status)

			if p.logger != nil {
				p.logger.Warn().
					Str("operation", operationName).
					Str("error", operation.Error.Message).
					Msg("Operation completed with error")
			}
			return status

		case operation.Done:
			status.State = StateDoneSuccess
			status.Progress = 100
			p.emit(updates, status)

			if p.logger != nil {
				p.logger.Info().
					Str("operation", operationName).
					Int("fetches", status.Fetches).
					Dur("elapsed", time.Since(start)).
					Msg("Operation completed")
			}
			return status

		default:
			status.Progress = PendingProgress(time.Since(start))
			p.emit(updates, status)
		}
	}
}

// WaitForOperation polls to completion and returns the terminal operation.
// Timeouts yield a timeout error; a failed operation surfaces its exact
// upstream message.
func (p *Poller) WaitForOperation(ctx context.Context, operationName string) (*models.Operation, error) {
	status := p.Poll(ctx, operationName, nil)

	switch status.State {
	case StateDoneSuccess:
		return status.Operation, nil
	case StateDoneError:
		return nil, models.NewUpstreamError(fmt.Sprintf("Operation failed: %s", status.ErrorMessage), 500, nil)
	case StateTimedOut:
		return nil, models.NewTimeoutError("Operation timed out after 5 minutes", map[string]string{"operationName": operationName})
	default:
		return nil, ctx.Err()
	}
}

// PendingProgress derives the elapsed-time progress heuristic for a pending
// operation. It carries no accuracy guarantee.
func PendingProgress(elapsed time.Duration) int {
	progress := int(elapsed.Milliseconds() * 100 / progressWindow.Milliseconds())
	if progress > maxPendingProgress {
		return maxPendingProgress
	}
	return progress
}

// SnapshotStatus shapes a single operation fetch into the status payload the
// operations endpoint returns, without starting a polling sequence. Progress
// comes from the operation's own metadata when the remote side reports it,
// snaps to 100 at completion, and is null otherwise.
func SnapshotStatus(operation *models.Operation) models.OperationStatus {
	var progress *int
	if pct, ok := metadataProgress(operation); ok {
		progress = &pct
	}
	if operation.Done {
		done := 100
		progress = &done
	}
	return models.OperationStatus{
		Operation: operation,
		Progress:  progress,
		IsDone:    operation.Done,
		HasError:  operation.Error != nil,
	}
}

func metadataProgress(operation *models.Operation) (int, bool) {
	if operation.Metadata == nil {
		return 0, false
	}
	if pct, ok := operation.Metadata["progressPercentage"].(float64); ok {
		return int(pct), true
	}
	return 0, false
}
