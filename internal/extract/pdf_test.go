package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// buildPDF assembles a minimal uncompressed PDF with one page per entry of
// pageTexts and an optional Info dictionary. Offsets are computed while
// writing so the xref table is always exact.
func buildPDF(t *testing.T, pageTexts []string, info map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	numPages := len(pageTexts)
	// Object numbering: 1 catalog, 2 pages, then page/content pairs,
	// then font, then optional info.
	fontObj := 2 + 2*numPages + 1
	infoObj := 0
	if len(info) > 0 {
		infoObj = fontObj + 1
	}
	totalObjs := fontObj
	if infoObj > 0 {
		totalObjs = infoObj
	}

	offsets := make([]int, totalObjs+1)
	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")

	var kids []string
	for i := 0; i < numPages; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+2*i))
	}
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), numPages))

	for i, text := range pageTexts {
		pageNum := 3 + 2*i
		contentNum := pageNum + 1
		writeObj(pageNum, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontObj, contentNum))
		stream := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
		writeObj(contentNum, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	writeObj(fontObj, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	if infoObj > 0 {
		var entries strings.Builder
		for key, value := range info {
			fmt.Fprintf(&entries, "/%s (%s) ", key, value)
		}
		writeObj(infoObj, fmt.Sprintf("<< %s>>", entries.String()))
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", totalObjs+1)
	buf.WriteString("0000000000 65535 f \n")
	for num := 1; num <= totalObjs; num++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[num])
	}
	buf.WriteString("trailer\n")
	if infoObj > 0 {
		fmt.Fprintf(&buf, "<< /Size %d /Root 1 0 R /Info %d 0 R >>\n", totalObjs+1, infoObj)
	} else {
		fmt.Fprintf(&buf, "<< /Size %d /Root 1 0 R >>\n", totalObjs+1)
	}
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xrefStart)

	return buf.Bytes()
}

func TestPDFMultiPageJoinsWithBlankLine(t *testing.T) {
	data := buildPDF(t, []string{"A", "B"}, nil)
	proc := NewProcessor(stubOCR{})

	doc, err := proc.Process(context.Background(), Upload{
		Filename:    "two-pages.pdf",
		ContentType: "application/pdf",
		File:        bytes.NewReader(data),
	})
	if err != nil {
		t.Fatalf("process pdf: %v", err)
	}

	if len(doc.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d: %#v", len(doc.Pages), doc.Pages)
	}
	if doc.Pages[0] != "A" || doc.Pages[1] != "B" {
		t.Fatalf("unexpected pages: %#v", doc.Pages)
	}
	if doc.TextContent != "A\n\nB" {
		t.Fatalf("expected joined text %q, got %q", "A\n\nB", doc.TextContent)
	}
}

func TestPDFInfoDropsEmptyValues(t *testing.T) {
	data := buildPDF(t, []string{"hello"}, map[string]string{
		"Title":  "W-2 Form",
		"Author": "",
	})
	proc := NewProcessor(stubOCR{})

	doc, err := proc.Process(context.Background(), Upload{
		Filename:    "form.pdf",
		ContentType: "application/pdf",
		File:        bytes.NewReader(data),
	})
	if err != nil {
		t.Fatalf("process pdf: %v", err)
	}

	if got := doc.Metadata["Title"]; got != "W-2 Form" {
		t.Fatalf("expected Title metadata, got %v", got)
	}
	if _, ok := doc.Metadata["Author"]; ok {
		t.Fatalf("empty Author value must not appear in metadata: %#v", doc.Metadata)
	}
}

func TestPDFMalformedPropagatesExtractionError(t *testing.T) {
	proc := NewProcessor(stubOCR{})

	_, err := proc.Process(context.Background(), Upload{
		Filename:    "broken.pdf",
		ContentType: "application/pdf",
		File:        bytes.NewReader([]byte("%PDF-1.4 this is not a real pdf")),
	})
	if err == nil {
		t.Fatal("expected error for malformed pdf")
	}
	var extractErr *ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected *ExtractionError, got %T: %v", err, err)
	}
	if extractErr.Extension != ".pdf" {
		t.Fatalf("unexpected extension in error: %s", extractErr.Extension)
	}
}

func TestPDFExtensionIsCaseInsensitive(t *testing.T) {
	data := buildPDF(t, []string{"upper"}, nil)
	proc := NewProcessor(stubOCR{})

	doc, err := proc.Process(context.Background(), Upload{
		Filename:    "LOUD.PDF",
		ContentType: "application/pdf",
		File:        bytes.NewReader(data),
	})
	if err != nil {
		t.Fatalf("process pdf: %v", err)
	}
	if doc.FileExtension != ".pdf" {
		t.Fatalf("expected lower-cased extension, got %s", doc.FileExtension)
	}
	if doc.TextContent != "upper" {
		t.Fatalf("unexpected text: %q", doc.TextContent)
	}
}
