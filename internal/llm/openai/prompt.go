package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"docclassify-backend/internal/llm"
)

// Message represents an OpenAI chat message.
type Message struct {
	Role    string
	Content string
}

// maxPromptChars caps how much extracted text goes into the prompt; larger
// documents are truncated with an ellipsis marker.
const maxPromptChars = 15000

const systemPrompt = "You are an expert document classifier for a document management platform. " +
	"Respond with JSON only. The object must contain the keys document_type, confidence_score, metadata and reasoning."

// BuildPrompt creates the chat messages for a classification request.
func BuildPrompt(input llm.ClassifyInput) []Message {
	var b strings.Builder
	b.WriteString("Your task is to analyze document content and classify it into exactly one of the following categories:\n")
	for _, category := range input.Categories {
		b.WriteString("- ")
		b.WriteString(category)
		b.WriteString("\n")
	}
	b.WriteString("\nBelow is the text content extracted from a document. Analyze it carefully and determine which category it belongs to.\n\n")
	b.WriteString("DOCUMENT CONTENT:\n")
	b.WriteString(TruncateText(input.Text))
	b.WriteString("\n\nReturn confidence_score as a number between 0.0 and 1.0. ")
	b.WriteString("Include any relevant extracted information in the metadata object (dates, names, ID numbers, etc).")

	return []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: b.String()},
	}
}

func buildFixPrompt(raw json.RawMessage) []Message {
	return []Message{
		{Role: "system", Content: "You are a JSON repair tool. Return only a valid JSON object with the keys document_type, confidence_score, metadata and reasoning."},
		{Role: "user", Content: fmt.Sprintf("Repair the following output into valid JSON:\n%s", string(raw))},
	}
}

// TruncateText bounds the document text fed into the prompt.
func TruncateText(text string) string {
	runes := []rune(text)
	if len(runes) <= maxPromptChars {
		return text
	}
	return string(runes[:maxPromptChars]) + "..."
}
