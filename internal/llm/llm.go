package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers for document classification.
type Client interface {
	Classify(ctx context.Context, input ClassifyInput) (Classification, error)
}

// ClassifyInput captures the inputs needed to classify one document.
type ClassifyInput struct {
	Text          string
	Filename      string
	FileExtension string
	MimeType      string
	Categories    []string
}

// Classification is the provider-agnostic classification outcome.
type Classification struct {
	DocumentType    string
	ConfidenceScore float64
	Metadata        map[string]any
	Reasoning       string
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Classify returns ErrNotImplemented.
func (PlaceholderClient) Classify(_ context.Context, _ ClassifyInput) (Classification, error) {
	return Classification{}, ErrNotImplemented
}
