package llm

import (
	"context"
	"strings"
)

// MockClient returns canned classifications derived from the filename.
// It backs debug mode and demo API keys so the service stays usable
// without a provider account.
type MockClient struct{}

// Classify guesses a document type from the filename, mirroring the kinds
// of results the real provider produces.
func (MockClient) Classify(ctx context.Context, input ClassifyInput) (Classification, error) {
	if err := ctx.Err(); err != nil {
		return Classification{}, err
	}

	filename := strings.ToLower(input.Filename)
	docType := "Other"
	confidence := 0.95
	metadata := map[string]any{}

	switch {
	case strings.Contains(filename, "w4") || strings.Contains(filename, "w-4"):
		docType = "W-4"
		metadata["form_year"] = "2023"
		metadata["employee_name"] = "Sample Employee"
	case strings.Contains(filename, "w2") || strings.Contains(filename, "w-2"):
		docType = "W-2"
		metadata["tax_year"] = "2023"
		metadata["employer_id"] = "12-3456789"
	case strings.Contains(filename, "i9") || strings.Contains(filename, "i-9"):
		docType = "I-9"
		metadata["form_version"] = "10/21/2019"
	case strings.Contains(filename, "passport"):
		docType = "Passport"
		metadata["issue_date"] = "2020-01-01"
		metadata["expiry_date"] = "2030-01-01"
	case strings.Contains(filename, "license") || strings.Contains(filename, "dl"):
		docType = "Driver License"
		metadata["state"] = "California"
		metadata["issue_date"] = "2021-05-15"
	case strings.Contains(filename, "contract"):
		docType = "Legal Contract"
		metadata["parties"] = []string{"Company A", "Company B"}
		metadata["date"] = "2023-09-01"
	case strings.Contains(filename, "bank") || strings.Contains(filename, "statement"):
		docType = "Bank Statement"
		metadata["bank_name"] = "Sample Bank"
		metadata["account_type"] = "Checking"
	case strings.Contains(filename, "pay") || strings.Contains(filename, "stub"):
		docType = "Pay Stub"
		metadata["pay_period"] = "Jan 1-15, 2023"
	default:
		switch input.FileExtension {
		case ".jpg", ".jpeg", ".png":
			docType = "ID Document"
			confidence = 0.75
		}
	}

	return Classification{
		DocumentType:    docType,
		ConfidenceScore: confidence,
		Metadata:        metadata,
		Reasoning:       "Mock classification generated in debug mode.",
	}, nil
}

var _ Client = MockClient{}
