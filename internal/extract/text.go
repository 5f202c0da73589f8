package extract

import (
	"context"
	"strings"
	"unicode/utf8"
)

// readText decodes the bytes as UTF-8, replacing invalid sequences with
// U+FFFD. It never fails: plain-text ingestion stays maximally permissive.
func (p *Processor) readText(_ context.Context, data []byte, doc *DocumentContent) error {
	text := decodeLossy(data)
	doc.TextContent = text
	doc.Pages = []string{text}
	return nil
}

func decodeLossy(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	var b strings.Builder
	b.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(utf8.RuneError)
		} else {
			b.WriteRune(r)
		}
		data = data[size:]
	}
	return b.String()
}
