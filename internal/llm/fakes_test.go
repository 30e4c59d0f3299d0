package llm

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

// fakeLLM answers every call with the next queued reply, or the last one when the queue is exhausted
type fakeLLM struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   int
	prompts []string
}

func (f *fakeLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	for _, m := range messages {
		if m.Role != llms.ChatMessageTypeHuman {
			continue
		}
		for _, part := range m.Parts {
			if text, ok := part.(llms.TextContent); ok {
				f.prompts = append(f.prompts, text.Text)
			}
		}
	}

	if f.err != nil {
		return nil, f.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reply := ""
	if len(f.replies) > 0 {
		reply = f.replies[0]
		if len(f.replies) > 1 {
			f.replies = f.replies[1:]
		}
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{
		Content:        reply,
		GenerationInfo: map[string]any{"InputTokens": 30, "OutputTokens": 12},
	}}}, nil
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// ollamaServer fakes the Ollama endpoints the local provider uses
type ollamaServer struct {
	*httptest.Server

	mu        sync.Mutex
	models    []string
	reply     string
	status    int
	generates int
	lastReq   map[string]any
}

func newOllamaServer(t *testing.T, models ...string) *ollamaServer {
	t.Helper()
	s := &ollamaServer{models: models, reply: "Generierter Text", status: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		type model struct {
			Name  string `json:"name"`
			Model string `json:"model"`
		}
		var list []model
		for _, m := range s.models {
			list = append(list, model{Name: m, Model: m})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"models": list})
	})
	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.generates++
		s.lastReq = map[string]any{}
		_ = json.Unmarshal(body, &s.lastReq)
		status, reply := s.status, s.reply
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "model crashed"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":      "llama3.2:3b",
			"response":   reply,
			"done":       true,
			"eval_count": 42,
		})
	})

	mux.HandleFunc("/api/pull", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		s.models = append(s.models, req.Model)
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/x-ndjson")
		enc := json.NewEncoder(w)
		_ = enc.Encode(map[string]any{"status": "pulling manifest"})
		_ = enc.Encode(map[string]any{"status": "success"})
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *ollamaServer) generateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generates
}

func (s *ollamaServer) lastRequest() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReq
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const structuredJob = `Adressat: BWI GmbH Auf dem Steinbüchel 22 53340 Meckenheim Deutschland
Stelle: Senior DevOps Engineer (m/w/d)
Stellen-ID: 61383

Wir suchen Verstärkung für unser Plattform-Team.`

const companyOnlyJob = `Adressat: BWI GmbH Auf dem Steinbüchel 22 53340 Meckenheim Deutschland

Wir suchen Verstärkung für unser Plattform-Team.`

const freeTextJob = `Die Muster Solutions GmbH sucht ab sofort einen Cloud Engineer (m/w/d) in Berlin.`

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
