package classify

// DocumentTypes is the fixed taxonomy a document can be classified into.
// "Other" is the catch-all and must stay last.
var DocumentTypes = []string{
	"I-9",
	"W-4",
	"W-2",
	"1099",
	"Driver License",
	"Passport",
	"Social Security Card",
	"Birth Certificate",
	"Marriage Certificate",
	"Divorce Decree",
	"Legal Contract",
	"NDA",
	"Employment Contract",
	"Medical Record",
	"Insurance Card",
	"Pay Stub",
	"Bank Statement",
	"Utility Bill",
	"Rental Agreement",
	"Mortgage Document",
	"Other",
}

// ClassificationResult is the outward-facing classification of one document.
type ClassificationResult struct {
	DocumentID      string         `json:"document_id"`
	DocumentName    string         `json:"document_name"`
	DocumentType    string         `json:"document_type"`
	ConfidenceScore float64        `json:"confidence_score"`
	Metadata        map[string]any `json:"metadata"`
}
