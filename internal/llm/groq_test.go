package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GroqClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewGroqClient("test-key", time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.baseURL = srv.URL
	return client
}

func completionBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(b)
}

func TestNewGroqClient_RequiresKey(t *testing.T) {
	if _, err := NewGroqClient("", time.Second); err == nil {
		t.Fatal("expected error for empty api key")
	}
}

func TestCompleteStructured_RequestShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing bearer auth, got %q", got)
		}
		var req struct {
			Model          string            `json:"model"`
			ResponseFormat map[string]string `json:"response_format"`
			Messages       []struct {
				Role    string `json:"role"`
				Content any    `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "test-model" || req.ResponseFormat["type"] != "json_object" {
			t.Errorf("unexpected request: %+v", req)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		w.Write([]byte(completionBody(`{"ok":true}`)))
	})

	raw, err := client.CompleteStructured(context.Background(), Options{Model: "test-model"}, "sys", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"ok":true}` {
		t.Fatalf("unexpected content: %s", raw)
	}
}

func TestCompleteStructured_RejectsNonJSONContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody("sorry, I cannot do that")))
	})

	if _, err := client.CompleteStructured(context.Background(), Options{Model: "m"}, "s", "u"); err == nil {
		t.Fatal("expected error for non-JSON completion content")
	}
}

func TestSend_RateLimitClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"status 429", http.StatusTooManyRequests, `{"error":"slow down"}`},
		{"marker in body", http.StatusBadRequest, `{"error":{"code":"rate_limit_exceeded"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})
			_, err := client.CompleteText(context.Background(), Options{Model: "m"}, "", "hello")
			if !IsRateLimit(err) {
				t.Fatalf("expected rate-limit error, got %v", err)
			}
		})
	}
}

func TestSend_OtherErrorsAreNotRateLimits(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})
	_, err := client.CompleteText(context.Background(), Options{Model: "m"}, "", "hello")
	if err == nil || IsRateLimit(err) {
		t.Fatalf("expected plain provider error, got %v", err)
	}
}

func TestDescribeImage_SendsDataURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string          `json:"role"`
				Content json.RawMessage `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		user := string(req.Messages[len(req.Messages)-1].Content)
		if !strings.Contains(user, "data:image/png;base64,") {
			t.Errorf("expected base64 data URL in user content: %s", user)
		}
		w.Write([]byte(completionBody("A blue cotton shirt.")))
	})

	desc, err := client.DescribeImage(context.Background(), Options{Model: "vision"}, "Describe this image:", "image/png", []byte{0x89, 0x50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc != "A blue cotton shirt." {
		t.Fatalf("unexpected description: %q", desc)
	}
}

func TestSend_EmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})
	if _, err := client.CompleteText(context.Background(), Options{Model: "m"}, "", "hi"); err != ErrEmptyCompletion {
		t.Fatalf("expected ErrEmptyCompletion, got %v", err)
	}
}
