package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	pythonAnswer = "Here is the program:\n\n```python\nprint(\"Hello, World!\")\n```\n"
	javaAnswer   = "Here is the program:\n\n```java\npublic class Main {\n    public static void main(String[] args) {\n        System.out.println(\"Hello, World!\");\n    }\n}\n```\n"
	explainReply = "Expected output:\n\nHello, World!\n\nExplanation: the program prints a greeting to standard output."
)

// answer picks a canned reply for prompt.
func answer(prompt string) string {
	lower := strings.ToLower(prompt)
	switch {
	case strings.HasPrefix(prompt, "I have written the following code in"):
		return explainReply
	case strings.Contains(lower, "java"):
		return javaAnswer
	default:
		return pythonAnswer
	}
}

// words approximates a token count.
func words(s string) int {
	return len(strings.Fields(s))
}

// --- Chat Completions ---

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

func handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Stream {
		writeError(w, http.StatusBadRequest, "streaming is not supported")
		return
	}

	var prompt string
	for _, m := range req.Messages {
		if m.Role == "user" {
			prompt = m.Content
		}
	}
	if prompt == "" {
		writeError(w, http.StatusBadRequest, "no user message")
		return
	}

	text := answer(prompt)
	slog.Info("chat completion", "model", req.Model, "prompt_len", len(prompt))

	writeJSON(w, chatResponse{
		ID:      fmt.Sprintf("chatcmpl-mock-%d", time.Now().UnixNano()),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []chatChoice{{
			Message:      chatMessage{Role: "assistant", Content: text},
			FinishReason: "stop",
		}},
		Usage: chatUsage{
			PromptTokens:     words(prompt),
			CompletionTokens: words(text),
			TotalTokens:      words(prompt) + words(text),
		},
	})
}

// --- Gemini generateContent ---

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

type geminiUsage struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type geminiResponse struct {
	Candidates    []geminiCandidate `json:"candidates"`
	UsageMetadata geminiUsage       `json:"usageMetadata"`
	ModelVersion  string            `json:"modelVersion"`
}

// handleGenerateContent serves POST /v1beta/models/{model}:generateContent.
func handleGenerateContent(w http.ResponseWriter, r *http.Request) {
	model, ok := strings.CutSuffix(r.PathValue("action"), ":generateContent")
	if !ok {
		writeError(w, http.StatusNotFound, "unknown method")
		return
	}
	if r.Header.Get("x-goog-api-key") == "" {
		writeError(w, http.StatusForbidden, "API key not valid")
		return
	}

	var req geminiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	var sb strings.Builder
	for _, c := range req.Contents {
		for _, p := range c.Parts {
			sb.WriteString(p.Text)
		}
	}
	prompt := sb.String()
	if prompt == "" {
		writeError(w, http.StatusBadRequest, "contents is empty")
		return
	}

	text := answer(prompt)
	slog.Info("generate content", "model", model, "prompt_len", len(prompt))

	writeJSON(w, geminiResponse{
		Candidates: []geminiCandidate{{
			Content:      geminiContent{Role: "model", Parts: []geminiPart{{Text: text}}},
			FinishReason: "STOP",
		}},
		UsageMetadata: geminiUsage{
			PromptTokenCount:     words(prompt),
			CandidatesTokenCount: words(text),
			TotalTokenCount:      words(prompt) + words(text),
		},
		ModelVersion: model,
	})
}

func handleModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"object": "list",
		"data": []map[string]any{
			{"id": "mock-model", "object": "model", "owned_by": "mock"},
			{"id": "gemini-pro", "object": "model", "owned_by": "mock"},
		},
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"message": msg, "code": status},
	})
}
