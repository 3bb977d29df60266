package engage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devagarwal07/guvi-honeypot/pkg/config"
	"github.com/devagarwal07/guvi-honeypot/pkg/session"
)

func stubGenerator(baseURL string) *Generator {
	return &Generator{
		client:      http.DefaultClient,
		provider:    config.ProviderOpenRouter,
		baseURL:     baseURL,
		apiKey:      "test-key",
		model:       "test-model",
		temperature: 0.7,
	}
}

func completionServer(t *testing.T, reply string, capture *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{{Message: chatMessage{Role: "assistant", Content: reply}}},
		})
	}))
}

func TestGeneratorProduce(t *testing.T) {
	var req chatRequest
	srv := completionServer(t, "  Which bank is this?  ", &req)
	defer srv.Close()

	g := stubGenerator(srv.URL)
	history := []session.Message{
		{Sender: session.SenderCounterparty, Text: "Your account will be blocked"},
		{Sender: session.SenderAgent, Text: "Why will my account be blocked?"},
	}
	got, err := g.Produce(context.Background(), "Verify now or lose access", history)
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if got != "Which bank is this?" {
		t.Errorf("reply = %q, want trimmed completion", got)
	}

	if len(req.Messages) != 2 {
		t.Fatalf("request carried %d messages, want system + user", len(req.Messages))
	}
	if req.Messages[0].Role != "system" {
		t.Errorf("first message role = %q, want system", req.Messages[0].Role)
	}
	user := req.Messages[1].Content
	if !strings.Contains(user, "Them: Your account will be blocked") {
		t.Error("prompt should label counterparty lines as Them")
	}
	if !strings.Contains(user, "You: Why will my account be blocked?") {
		t.Error("prompt should label persona lines as You")
	}
	if !strings.Contains(user, "Them: Verify now or lose access") {
		t.Error("prompt should end with the current message")
	}
}

func TestGeneratorHistoryWindow(t *testing.T) {
	var req chatRequest
	srv := completionServer(t, "ok", &req)
	defer srv.Close()

	history := make([]session.Message, 0, 12)
	for i := 0; i < 12; i++ {
		history = append(history, session.Message{
			Sender: session.SenderCounterparty,
			Text:   "message " + string(rune('a'+i)),
		})
	}
	g := stubGenerator(srv.URL)
	if _, err := g.Produce(context.Background(), "latest", history); err != nil {
		t.Fatalf("Produce: %v", err)
	}

	user := req.Messages[1].Content
	if strings.Contains(user, "message a") {
		t.Error("prompt should drop history beyond the recent window")
	}
	if !strings.Contains(user, "message l") {
		t.Error("prompt should keep the most recent history")
	}
}

func TestGeneratorProduceNormal(t *testing.T) {
	var req chatRequest
	srv := completionServer(t, "Thanks, noted!", &req)
	defer srv.Close()

	g := stubGenerator(srv.URL)
	got, err := g.ProduceNormal(context.Background(), "Meeting moved to 3pm")
	if err != nil {
		t.Fatalf("ProduceNormal: %v", err)
	}
	if got != "Thanks, noted!" {
		t.Errorf("reply = %q", got)
	}
	if !strings.Contains(req.Messages[1].Content, "Meeting moved to 3pm") {
		t.Error("prompt should quote the received message")
	}
	if strings.Contains(req.Messages[0].Content, "scam") {
		t.Error("normal prompt must not use the engagement persona")
	}
}

func TestGeneratorErrorPaths(t *testing.T) {
	t.Run("http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer srv.Close()
		g := stubGenerator(srv.URL)
		if _, err := g.Produce(context.Background(), "hi", nil); err == nil {
			t.Error("non-200 status should surface as an error")
		}
	})

	t.Run("empty completion", func(t *testing.T) {
		srv := completionServer(t, "   ", nil)
		defer srv.Close()
		g := stubGenerator(srv.URL)
		if _, err := g.Produce(context.Background(), "hi", nil); err == nil {
			t.Error("blank completion should surface as an error")
		}
	})

	t.Run("context cancelled", func(t *testing.T) {
		srv := completionServer(t, "ok", nil)
		defer srv.Close()
		g := stubGenerator(srv.URL)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := g.Produce(ctx, "hi", nil); err == nil {
			t.Error("cancelled context should surface as an error")
		}
	})
}

func TestNewGeneratorDisabled(t *testing.T) {
	if g := NewGenerator(&config.Config{LLMProvider: config.ProviderNone}); g != nil {
		t.Error("provider none should disable generation")
	}
	if g := NewGenerator(&config.Config{LLMProvider: config.ProviderOpenRouter}); g != nil {
		t.Error("cloud provider without a key should disable generation")
	}
}

func TestNewGeneratorOllamaNeedsNoKey(t *testing.T) {
	g := NewGenerator(&config.Config{LLMProvider: config.ProviderOllama})
	if g == nil {
		t.Fatal("ollama should not require an API key")
	}
	if g.model != "qwen2.5:7b" {
		t.Errorf("default local model = %q", g.model)
	}
}
