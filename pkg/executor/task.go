package executor

import (
	"context"
	"sync"
	"time"

	"github.com/rhuss/autobot/pkg/api"
)

// Task is a run executing in the background. Progress values arrive on
// Progress; Done closes once the result is final.
type Task struct {
	id       string
	req      api.RunRequest
	started  time.Time
	progress chan int
	done     chan struct{}
	cancel   context.CancelFunc

	mu      sync.Mutex
	percent int
	result  *api.RunResult
}

// ID returns the run ID.
func (t *Task) ID() string { return t.id }

// Progress delivers each progress value once and is closed when the
// task finishes. It is meant for a single consumer.
func (t *Task) Progress() <-chan int { return t.progress }

// Done is closed when the result is final.
func (t *Task) Done() <-chan struct{} { return t.done }

// Cancel stops the run. The subprocess is killed and the result status
// becomes cancelled. Cancelling a finished task has no effect.
func (t *Task) Cancel() { t.cancel() }

// Await blocks until the task finishes or ctx ends.
func (t *Task) Await(ctx context.Context) (*api.RunResult, error) {
	select {
	case <-t.done:
		return t.Snapshot(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Snapshot returns a copy of the current state: the final result once
// done, otherwise a running placeholder carrying the latest progress.
func (t *Task) Snapshot() *api.RunResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.result != nil {
		r := *t.result
		return &r
	}
	return &api.RunResult{
		ID:         t.id,
		Language:   t.req.Language,
		Filename:   t.req.Filename,
		Status:     api.RunStatusRunning,
		Progress:   t.percent,
		DurationMs: time.Since(t.started).Milliseconds(),
	}
}

func (t *Task) report(percent int) {
	t.mu.Lock()
	t.percent = percent
	t.mu.Unlock()
	select {
	case t.progress <- percent:
	default:
	}
}

// Orchestrator runs one task at a time and retains only the latest.
type Orchestrator struct {
	exec *Executor

	mu      sync.Mutex
	current *Task

	detectOnce sync.Once
	toolchains []Toolchain
}

// NewOrchestrator creates an Orchestrator around exec.
func NewOrchestrator(exec *Executor) *Orchestrator {
	return &Orchestrator{exec: exec}
}

// Start validates the request and launches it in a goroutine. Input
// errors are returned before the slot is taken. While another task is
// running Start returns ErrRunInProgress.
//
// The task outlives ctx: only its values are inherited. Use Cancel to
// stop it.
func (o *Orchestrator) Start(ctx context.Context, lang api.Language, source string) (*Task, error) {
	req, err := o.exec.Prepare(lang, source)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.current != nil {
		select {
		case <-o.current.done:
		default:
			return nil, ErrRunInProgress
		}
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	t := &Task{
		id:       api.NewRunID(),
		req:      req,
		started:  time.Now(),
		progress: make(chan int, 2),
		done:     make(chan struct{}),
		cancel:   cancel,
	}
	o.current = t

	go func() {
		defer cancel()
		result := o.exec.Run(runCtx, t.id, req, t.report)

		t.mu.Lock()
		t.result = result
		t.mu.Unlock()

		close(t.progress)
		close(t.done)
	}()

	return t, nil
}

// Current returns the most recent task, or nil if none was started.
func (o *Orchestrator) Current() *Task {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Lookup returns the task with the given ID if it is the current one.
func (o *Orchestrator) Lookup(id string) *Task {
	t := o.Current()
	if t == nil || t.id != id {
		return nil
	}
	return t
}

// Toolchains reports the toolchain commands of the underlying executor.
// Detection runs once; later calls return the cached result.
func (o *Orchestrator) Toolchains() []Toolchain {
	o.detectOnce.Do(func() {
		o.toolchains = o.exec.DetectToolchains()
	})
	return o.toolchains
}
