package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rhuss/autobot/pkg/api"
	"github.com/rhuss/autobot/pkg/executor"
	"github.com/rhuss/autobot/pkg/relay"
	"github.com/rhuss/autobot/pkg/transport"
)

// Adapter routes API requests to the run manager and prompt relay.
type Adapter struct {
	runs   transport.RunManager
	relay  transport.PromptRelay // nil when no provider is configured
	mux    *http.ServeMux
	config Config
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	MaxBodySize int64
	Validation  api.ValidationConfig
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		MaxBodySize: 2 << 20, // 2 MB
		Validation:  api.DefaultValidationConfig(),
	}
}

// NewAdapter creates an HTTP adapter. The relay is optional; without it
// the generate and explain endpoints answer 503.
func NewAdapter(runs transport.RunManager, pr transport.PromptRelay, cfg Config) *Adapter {
	a := &Adapter{
		runs:   runs,
		relay:  pr,
		mux:    http.NewServeMux(),
		config: cfg,
	}

	a.mux.HandleFunc("POST /v1/runs", a.handleCreateRun)
	a.mux.HandleFunc("GET /v1/runs/{id}", a.handleGetRun)
	a.mux.HandleFunc("GET /v1/runs/{id}/events", a.handleRunEvents)
	a.mux.HandleFunc("DELETE /v1/runs/{id}", a.handleCancelRun)

	a.mux.HandleFunc("GET /v1/languages/{language}/template", a.handleTemplate)

	a.mux.HandleFunc("POST /v1/generate", a.handleGenerate)
	a.mux.HandleFunc("POST /v1/explain", a.handleExplain)
	a.mux.HandleFunc("POST /v1/sanitize", a.handleSanitize)

	a.mux.HandleFunc("GET /healthz", a.handleHealth)
	a.mux.HandleFunc("GET /readyz", a.handleReady)

	return a
}

// Handler returns the http.Handler for this adapter.
func (a *Adapter) Handler() http.Handler {
	return a.mux
}

// handleCreateRun handles POST /v1/runs.
func (a *Adapter) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req api.CreateRunRequest
	if !a.decode(w, r, &req) {
		return
	}

	lang, apiErr := api.ValidateRunRequest(&req, a.config.Validation)
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	task, err := a.runs.Start(r.Context(), lang, req.Source)
	if err != nil {
		transport.WriteError(w, err)
		return
	}

	if req.Async {
		w.Header().Set("Location", "/v1/runs/"+task.ID())
		writeJSON(w, http.StatusAccepted, task.Snapshot())
		return
	}

	result, err := task.Await(r.Context())
	if err != nil {
		// Client went away; nobody is left to read the result.
		task.Cancel()
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleTemplate handles GET /v1/languages/{language}/template.
func (a *Adapter) handleTemplate(w http.ResponseWriter, r *http.Request) {
	lang, err := api.ParseLanguage(r.PathValue("language"))
	if err != nil {
		transport.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.Template{
		Language: lang,
		Filename: lang.StarterFilename(),
		Source:   lang.StarterProgram(),
	})
}

// handleGetRun handles GET /v1/runs/{id}.
func (a *Adapter) handleGetRun(w http.ResponseWriter, r *http.Request) {
	task, ok := a.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, task.Snapshot())
}

// handleCancelRun handles DELETE /v1/runs/{id}. It waits for the run to
// stop and returns its final state.
func (a *Adapter) handleCancelRun(w http.ResponseWriter, r *http.Request) {
	task, ok := a.lookup(w, r)
	if !ok {
		return
	}
	task.Cancel()
	result, err := task.Await(r.Context())
	if err != nil {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleRunEvents handles GET /v1/runs/{id}/events.
func (a *Adapter) handleRunEvents(w http.ResponseWriter, r *http.Request) {
	task, ok := a.lookup(w, r)
	if !ok {
		return
	}
	streamRunEvents(r.Context(), newSSEWriter(w), task)
}

// handleGenerate handles POST /v1/generate.
func (a *Adapter) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if !a.requireRelay(w) {
		return
	}
	var req api.GenerateRequest
	if !a.decode(w, r, &req) {
		return
	}
	if apiErr := api.ValidatePromptSize(req.Prompt, a.config.Validation); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	text, err := a.relay.Generate(r.Context(), req.Prompt)
	if err != nil {
		transport.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.PromptExchange{Prompt: req.Prompt, Text: text})
}

// handleExplain handles POST /v1/explain.
func (a *Adapter) handleExplain(w http.ResponseWriter, r *http.Request) {
	if !a.requireRelay(w) {
		return
	}
	var req api.ExplainRequest
	if !a.decode(w, r, &req) {
		return
	}
	lang, err := api.ParseLanguage(req.Language)
	if err != nil {
		transport.WriteError(w, err)
		return
	}
	if apiErr := api.ValidatePromptSize(req.Source, a.config.Validation); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	text, err := a.relay.Explain(r.Context(), lang, req.Source)
	if err != nil {
		transport.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.PromptExchange{Prompt: req.Source, Text: text})
}

// handleSanitize handles POST /v1/sanitize. It needs no provider.
func (a *Adapter) handleSanitize(w http.ResponseWriter, r *http.Request) {
	var req api.SanitizeRequest
	if !a.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, api.SanitizeResponse{Text: relay.Sanitize(req.Text)})
}

func (a *Adapter) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady reports 200 when at least one language can run.
func (a *Adapter) handleReady(w http.ResponseWriter, r *http.Request) {
	tcs := a.runs.Toolchains()
	avail := make(map[string]bool, len(tcs))
	for _, tc := range tcs {
		avail[tc.Name] = tc.Available
	}

	languages := []api.Language{}
	if avail["python"] {
		languages = append(languages, api.LanguagePython)
	}
	if avail["javac"] && avail["java"] {
		languages = append(languages, api.LanguageJava)
	}

	status, code := "ready", http.StatusOK
	if len(languages) == 0 {
		status, code = "unavailable", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{
		"status":     status,
		"languages":  languages,
		"toolchains": tcs,
		"relay":      a.relay != nil,
	})
}

func (a *Adapter) lookup(w http.ResponseWriter, r *http.Request) (*executor.Task, bool) {
	id := r.PathValue("id")
	if !api.ValidateRunID(id) {
		transport.WriteAPIError(w, api.NewInvalidRequestError("id", fmt.Sprintf("malformed run ID %q", id)))
		return nil, false
	}
	task := a.runs.Lookup(id)
	if task == nil {
		transport.WriteAPIError(w, api.NewNotFoundError(fmt.Sprintf("run %q not found", id)))
		return nil, false
	}
	return task, true
}

func (a *Adapter) requireRelay(w http.ResponseWriter) bool {
	if a.relay != nil {
		return true
	}
	transport.WriteErrorResponse(w,
		api.NewServerError("prompt relay is not configured"),
		http.StatusServiceUnavailable,
	)
	return false
}

// decode validates Content-Type, limits the body size and decodes JSON
// into v. It writes the error response and returns false on failure.
func (a *Adapter) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct != "" && ct != "application/json" {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("content_type", "Content-Type must be application/json"),
			http.StatusUnsupportedMediaType,
		)
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			transport.WriteErrorResponse(w,
				api.NewInvalidRequestError("body", fmt.Sprintf("request body too large (max %d bytes)", a.config.MaxBodySize)),
				http.StatusRequestEntityTooLarge,
			)
			return false
		}
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("body", "invalid JSON: "+err.Error()),
			http.StatusBadRequest,
		)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
