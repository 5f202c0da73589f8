package classify

import (
	"context"

	"github.com/google/uuid"

	"docclassify-backend/internal/extract"
	"docclassify-backend/internal/llm"
)

// Service runs the extract-then-classify pipeline for one upload at a time.
type Service struct {
	Processor *extract.Processor
	LLM       llm.Client
}

// ClassifyUpload extracts the upload's text and classifies it. The returned
// record's metadata always carries the source filename, extension and mime
// type alongside whatever the provider extracted.
func (s *Service) ClassifyUpload(ctx context.Context, up extract.Upload) (ClassificationResult, error) {
	doc, err := s.Processor.Process(ctx, up)
	if err != nil {
		return ClassificationResult{}, err
	}

	classification, err := s.LLM.Classify(ctx, llm.ClassifyInput{
		Text:          doc.TextContent,
		Filename:      doc.Filename,
		FileExtension: doc.FileExtension,
		MimeType:      doc.MimeType,
		Categories:    DocumentTypes,
	})
	if err != nil {
		return ClassificationResult{}, err
	}

	metadata := classification.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["filename"] = doc.Filename
	metadata["file_extension"] = doc.FileExtension
	metadata["mime_type"] = doc.MimeType

	return ClassificationResult{
		DocumentID:      uuid.NewString(),
		DocumentName:    doc.Filename,
		DocumentType:    classification.DocumentType,
		ConfidenceScore: classification.ConfidenceScore,
		Metadata:        metadata,
	}, nil
}
