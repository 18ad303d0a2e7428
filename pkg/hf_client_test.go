package pkg

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(url string, timeout time.Duration) *HFClient {
	return NewHFClient("test-key", "test-model", url, GenerateOptions{}, timeout)
}

func generationErrorFrom(t *testing.T, err error) *GenerationError {
	t.Helper()
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %T: %v", err, err)
	}
	return genErr
}

func TestGenerate_ArrayResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		opts, _ := req["options"].(map[string]interface{})
		if opts["use_cache"] != false {
			t.Errorf("expected use_cache=false, got %v", opts["use_cache"])
		}
		json.NewEncoder(w).Encode([]map[string]string{{"generated_text": "Paris is the capital of France."}})
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	result, err := client.Generate(context.Background(), "What is the capital of France?", GenerateOptions{})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if result.Answer != "Paris is the capital of France." {
		t.Errorf("unexpected answer: %q", result.Answer)
	}
	if result.Metadata.Model != "test-model" {
		t.Errorf("unexpected model: %q", result.Metadata.Model)
	}
	if result.Metadata.TokensUsed != (len(result.Answer)+3)/4 {
		t.Errorf("unexpected token estimate: %d", result.Metadata.TokensUsed)
	}
}

func TestGenerate_SingleObjectResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"generated_text": "Forty-two."})
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	result, err := client.Generate(context.Background(), "q", GenerateOptions{})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if result.Answer != "Forty-two." {
		t.Errorf("unexpected answer: %q", result.Answer)
	}
}

func TestGenerate_EmptyOutputGetsFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{{"generated_text": "   "}})
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	result, err := client.Generate(context.Background(), "q", GenerateOptions{})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if result.Answer != fallbackAnswer {
		t.Errorf("expected fallback answer, got %q", result.Answer)
	}
}

func TestGenerate_NoAPIKey(t *testing.T) {
	client := NewHFClient("", "test-model", "http://unused", GenerateOptions{}, 0)
	_, err := client.Generate(context.Background(), "q", GenerateOptions{})
	genErr := generationErrorFrom(t, err)
	if genErr.Kind != FailureConfiguration {
		t.Errorf("expected configuration failure, got %s", genErr.Kind)
	}
	if genErr.Retryable {
		t.Error("configuration failure must not be retryable")
	}
}

func TestGenerate_EmptyPrompt(t *testing.T) {
	client := newTestClient("http://unused", 0)
	_, err := client.Generate(context.Background(), "  ", GenerateOptions{})
	genErr := generationErrorFrom(t, err)
	if genErr.Kind != FailureBadRequest {
		t.Errorf("expected bad_request, got %s", genErr.Kind)
	}
}

func TestGenerate_StatusClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		headers    map[string]string
		body       string
		wantKind   FailureKind
		wantRetry  bool
		wantWait   time.Duration
	}{
		{
			name:      "rate limited honors retry-after",
			status:    http.StatusTooManyRequests,
			headers:   map[string]string{"Retry-After": "17"},
			wantKind:  FailureRateLimit,
			wantRetry: true,
			wantWait:  17 * time.Second,
		},
		{
			name:      "rate limited defaults to 60s",
			status:    http.StatusTooManyRequests,
			wantKind:  FailureRateLimit,
			wantRetry: true,
			wantWait:  60 * time.Second,
		},
		{
			name:      "model loading",
			status:    http.StatusServiceUnavailable,
			wantKind:  FailureModelLoading,
			wantRetry: true,
			wantWait:  30 * time.Second,
		},
		{
			name:     "invalid credential",
			status:   http.StatusUnauthorized,
			wantKind: FailureAuthentication,
		},
		{
			name:     "bad request with message",
			status:   http.StatusBadRequest,
			body:     `{"error":"inputs too long"}`,
			wantKind: FailureBadRequest,
		},
		{
			name:     "other status",
			status:   http.StatusBadGateway,
			wantKind: FailureAPIError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
				if tt.body != "" {
					w.Write([]byte(tt.body))
				}
			}))
			defer server.Close()

			client := newTestClient(server.URL, 0)
			_, err := client.Generate(context.Background(), "q", GenerateOptions{})
			genErr := generationErrorFrom(t, err)

			if genErr.Kind != tt.wantKind {
				t.Errorf("kind: got %s, want %s", genErr.Kind, tt.wantKind)
			}
			if genErr.Retryable != tt.wantRetry {
				t.Errorf("retryable: got %v, want %v", genErr.Retryable, tt.wantRetry)
			}
			if tt.wantWait != 0 && genErr.RetryAfter != tt.wantWait {
				t.Errorf("retry after: got %s, want %s", genErr.RetryAfter, tt.wantWait)
			}
			if genErr.Status != tt.status {
				t.Errorf("status: got %d, want %d", genErr.Status, tt.status)
			}
			if tt.body != "" && genErr.Message != "inputs too long" {
				t.Errorf("message not extracted from body: %q", genErr.Message)
			}
		})
	}
}

func TestGenerate_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		json.NewEncoder(w).Encode([]map[string]string{{"generated_text": "too late"}})
	}))
	defer server.Close()

	client := newTestClient(server.URL, 50*time.Millisecond)
	_, err := client.Generate(context.Background(), "q", GenerateOptions{})
	genErr := generationErrorFrom(t, err)
	if genErr.Kind != FailureTimeout {
		t.Errorf("expected timeout, got %s", genErr.Kind)
	}
	if !genErr.Retryable {
		t.Error("timeout should be retryable")
	}
}

func TestCleanResponse(t *testing.T) {
	prompt := "Context: x\n\nQuestion: y\n\nAnswer: Based on the provided context, "

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"echoed prompt stripped", prompt + "the sky is blue.", "the sky is blue."},
		{"answer prefix stripped", "Answer: the sky is blue.", "the sky is blue."},
		{"response prefix stripped", "Response: the sky is blue.", "the sky is blue."},
		{"boilerplate stripped", "Based on the provided context, the sky is blue.", "the sky is blue."},
		{"punctuation appended", "the sky is blue", "the sky is blue."},
		{"question mark kept", "is it blue?", "is it blue?"},
		{"empty replaced", "", fallbackAnswer},
		{"whitespace replaced", "  \n ", fallbackAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanResponse(tt.raw, prompt)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanResponse_Idempotent(t *testing.T) {
	prompt := "Context: c\n\nQuestion: q\n\nAnswer: Based on the provided context, "
	inputs := []string{
		"Answer: the sky is blue",
		prompt + "Response: something happened",
		"",
		"already clean.",
	}
	for _, raw := range inputs {
		once := CleanResponse(raw, prompt)
		twice := CleanResponse(once, prompt)
		if once != twice {
			t.Errorf("cleaning not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{"12345678", 2},
	}
	for _, tt := range tests {
		if got := EstimateTokens(tt.text); got != tt.want {
			t.Errorf("EstimateTokens(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
