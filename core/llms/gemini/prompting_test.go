package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hirevox/screener/core/llms"
)

func TestPromptSendsInstructionsAndHistory(t *testing.T) {
	var received requestBody
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": " What is your experience with Go? "}]}}]
		}`))
	}))
	defer server.Close()

	reply, err := Prompt(context.Background(), "test-key", "gemini-1.5-flash", server.URL,
		llms.WithInstructions(llms.InterviewerInstructions([]string{"How are you today?"})),
		llms.WithHistory([]llms.Message{
			{Role: llms.RoleUser, Content: "Hello."},
			{Role: llms.RoleAssistant, Content: "Hi, how are you today?"},
			{Role: llms.RoleUser, Content: "Good, thanks."},
		}),
	)
	if err != nil {
		t.Fatalf("expected prompt to succeed, got %v", err)
	}

	if reply != "What is your experience with Go?" {
		t.Fatalf("expected trimmed reply, got %q", reply)
	}

	if len(received.Contents) != 4 {
		t.Fatalf("expected instructions plus three history turns, got %d contents", len(received.Contents))
	}
	if received.Contents[0].Role != contentRoleUser ||
		!strings.Contains(received.Contents[0].Parts[0].Text, "How are you today?") {
		t.Fatalf("expected first content to carry instructions with asked questions, got %+v", received.Contents[0])
	}
	if received.Contents[2].Role != contentRoleModel {
		t.Fatalf("expected assistant history mapped to model role, got %q", received.Contents[2].Role)
	}
}

func TestPromptFailsOnServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := Prompt(context.Background(), "test-key", "gemini-1.5-flash", server.URL)
	if err == nil {
		t.Fatalf("expected error on non-OK status")
	}
}

func TestPromptFailsWithoutCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	_, err := Prompt(context.Background(), "test-key", "gemini-1.5-flash", server.URL)
	if err == nil {
		t.Fatalf("expected error when response has no candidates")
	}
}
