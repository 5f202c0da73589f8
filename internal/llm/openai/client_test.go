package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"docclassify-backend/internal/llm"
)

func TestParseClassificationTolerantFields(t *testing.T) {
	tests := []struct {
		name           string
		raw            string
		wantType       string
		wantConfidence float64
		wantMetaKey    string
	}{
		{
			name:           "clean object",
			raw:            `{"document_type":"W-2","confidence_score":0.9,"metadata":{"tax_year":"2023"},"reasoning":"wage statement"}`,
			wantType:       "W-2",
			wantConfidence: 0.9,
			wantMetaKey:    "tax_year",
		},
		{
			name:           "string confidence",
			raw:            `{"document_type":"Passport","confidence_score":"0.75","metadata":{}}`,
			wantType:       "Passport",
			wantConfidence: 0.75,
		},
		{
			name:           "metadata as json string",
			raw:            `{"document_type":"Pay Stub","confidence_score":1,"metadata":"{\"pay_period\":\"Jan\"}"}`,
			wantType:       "Pay Stub",
			wantConfidence: 1,
			wantMetaKey:    "pay_period",
		},
		{
			name:           "garbage confidence and metadata",
			raw:            `{"document_type":"Other","confidence_score":"high","metadata":[1,2]}`,
			wantType:       "Other",
			wantConfidence: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseClassification(json.RawMessage(tt.raw))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if result.DocumentType != tt.wantType {
				t.Fatalf("document_type = %q, want %q", result.DocumentType, tt.wantType)
			}
			if result.ConfidenceScore != tt.wantConfidence {
				t.Fatalf("confidence = %v, want %v", result.ConfidenceScore, tt.wantConfidence)
			}
			if result.Metadata == nil {
				t.Fatalf("metadata must never be nil")
			}
			if tt.wantMetaKey != "" {
				if _, ok := result.Metadata[tt.wantMetaKey]; !ok {
					t.Fatalf("expected metadata key %q in %#v", tt.wantMetaKey, result.Metadata)
				}
			}
		})
	}
}

func TestParseClassificationMissingType(t *testing.T) {
	if _, err := parseClassification(json.RawMessage(`{"confidence_score":0.5}`)); err == nil {
		t.Fatal("expected error for missing document_type")
	}
}

func TestClassifyAgainstStubServer(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{
					"role":    "assistant",
					"content": `{"document_type":"Bank Statement","confidence_score":0.88,"metadata":{"bank_name":"Sample Bank"},"reasoning":"account summary"}`,
				}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := &Client{
		apiKey:     "sk-test",
		model:      "gpt-4o",
		apiURL:     server.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}

	result, err := client.Classify(context.Background(), llm.ClassifyInput{
		Text:       "Account summary for checking account",
		Categories: []string{"Bank Statement", "Other"},
	})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}

	if result.DocumentType != "Bank Statement" {
		t.Fatalf("unexpected type %q", result.DocumentType)
	}
	if result.ConfidenceScore != 0.88 {
		t.Fatalf("unexpected confidence %v", result.ConfidenceScore)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotBody.ResponseFormat.Type != "json_object" {
		t.Fatalf("expected json_object response format, got %q", gotBody.ResponseFormat.Type)
	}
	if len(gotBody.Messages) == 0 || !strings.Contains(gotBody.Messages[len(gotBody.Messages)-1].Content, "Bank Statement") {
		t.Fatalf("expected taxonomy in prompt, got %#v", gotBody.Messages)
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "gpt-4o"); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewClient("sk-x", ""); err == nil {
		t.Fatal("expected error for missing model")
	}
}

func TestTruncateText(t *testing.T) {
	long := strings.Repeat("a", maxPromptChars+10)
	got := TruncateText(long)
	if len([]rune(got)) != maxPromptChars+3 {
		t.Fatalf("unexpected truncated length %d", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix")
	}
	if TruncateText("short") != "short" {
		t.Fatalf("short text must pass through unchanged")
	}
}
