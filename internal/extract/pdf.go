package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// readPDF parses the byte stream as a PDF, extracts text page by page in
// document order, and copies the truthy entries of the document info
// dictionary into metadata. Malformed PDF bytes surface as an error.
func (p *Processor) readPDF(ctx context.Context, data []byte, doc *DocumentContent) (err error) {
	// The pdf library panics on some malformed inputs; report those as
	// parse failures instead of taking the request down.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf parse: %v", rec)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("pdf parse: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return fmt.Errorf("pdf page %d: %w", pageNum, err)
		}
		pages = append(pages, text)
	}

	doc.Pages = pages
	doc.TextContent = joinPages(pages)

	readPDFInfo(reader, doc)
	return nil
}

// readPDFInfo copies non-empty document info fields (Title, Author, ...)
// into metadata. Info access can panic on odd Value types, so failures
// here never abort the extraction itself.
func readPDFInfo(reader *pdf.Reader, doc *DocumentContent) {
	defer func() {
		_ = recover()
	}()

	trailer := reader.Trailer()
	if trailer.IsNull() {
		return
	}
	info := trailer.Key("Info")
	if info.IsNull() {
		return
	}

	for _, key := range info.Keys() {
		value := info.Key(key)
		if value.IsNull() {
			continue
		}
		var text string
		switch value.Kind() {
		case pdf.String:
			text = value.Text()
		case pdf.Name:
			text = value.Name()
		default:
			text = value.String()
		}
		doc.setMetadata(key, strings.TrimSpace(text))
	}
}
