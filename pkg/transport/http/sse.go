package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/rhuss/autobot/pkg/api"
	"github.com/rhuss/autobot/pkg/executor"
)

// sseWriter writes run events in server-sent events format.
type sseWriter struct {
	w  http.ResponseWriter
	rc *http.ResponseController

	mu        sync.Mutex
	started   bool
	completed bool
}

func newSSEWriter(w http.ResponseWriter) *sseWriter {
	return &sseWriter{w: w, rc: http.NewResponseController(w)}
}

// WriteEvent sends a single SSE event. The event is formatted as:
//
//	event: {type}\n
//	data: {json}\n
//	\n
//
// After run.completed, it also sends:
//
//	data: [DONE]\n
//	\n
func (s *sseWriter) WriteEvent(event api.RunEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return errors.New("cannot write event: stream is completed")
	}

	if !s.started {
		s.w.Header().Set("Content-Type", "text/event-stream")
		s.w.Header().Set("Cache-Control", "no-cache")
		s.w.Header().Set("Connection", "keep-alive")
		s.w.WriteHeader(http.StatusOK)
		s.started = true
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event.Type, data); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	if event.Type == api.EventRunCompleted {
		if _, err := fmt.Fprint(s.w, "data: [DONE]\n\n"); err != nil {
			return fmt.Errorf("failed to write [DONE]: %w", err)
		}
		s.completed = true
	}

	if err := s.rc.Flush(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}
	return nil
}

// streamRunEvents forwards progress until the task finishes, then sends
// the final result. A client that connects late still receives the
// current progress and the completion event.
func streamRunEvents(ctx context.Context, s *sseWriter, task *executor.Task) {
	snap := task.Snapshot()
	if err := s.WriteEvent(api.RunEvent{Type: api.EventRunProgress, RunID: task.ID(), Progress: snap.Progress}); err != nil {
		return
	}

	progress := task.Progress()
	for progress != nil {
		select {
		case p, ok := <-progress:
			if !ok {
				progress = nil
				continue
			}
			if err := s.WriteEvent(api.RunEvent{Type: api.EventRunProgress, RunID: task.ID(), Progress: p}); err != nil {
				return
			}
		case <-task.Done():
			progress = nil
		case <-ctx.Done():
			return
		}
	}

	result, err := task.Await(ctx)
	if err != nil {
		return
	}
	s.WriteEvent(api.RunEvent{
		Type:     api.EventRunCompleted,
		RunID:    task.ID(),
		Progress: result.Progress,
		Result:   result,
	})
}
