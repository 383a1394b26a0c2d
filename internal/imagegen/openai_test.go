package imagegen

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenAIProviderRequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(OpenAIConfig{}); err == nil {
		t.Error("expected error for missing API key")
	}

	provider, err := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.model != "dall-e-3" {
		t.Errorf("default model = %q, want dall-e-3", provider.model)
	}
}

func TestGenerateRejectsEmptyPrompt(t *testing.T) {
	provider, err := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := provider.Generate(context.Background(), ""); err == nil {
		t.Error("expected error for empty prompt")
	}
}

func TestGenerateDecodesB64Response(t *testing.T) {
	payload := []byte("not-really-a-png-but-bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("invalid request body: %v", err)
		}
		if req["prompt"] != "a lighthouse at dusk" {
			t.Errorf("prompt = %v", req["prompt"])
		}
		if req["response_format"] != "b64_json" {
			t.Errorf("response_format = %v", req["response_format"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"created": 1700000000,
			"data": []map[string]string{
				{"b64_json": base64.StdEncoding.EncodeToString(payload)},
			},
		})
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := provider.Generate(context.Background(), "a lighthouse at dusk")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("Generate() = %q, want %q", data, payload)
	}
}

func TestGenerateSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := provider.Generate(context.Background(), "anything"); err == nil {
		t.Error("expected error from API failure")
	}
}
