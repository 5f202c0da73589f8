package extract

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

const (
	placeholderOffice      = "Document content extraction not implemented for this type"
	placeholderUnsupported = "Unsupported file type"
)

var (
	imageExtensions  = []string{".jpg", ".jpeg", ".png", ".tiff", ".bmp"}
	textExtensions   = []string{".txt", ".csv", ".md", ".html"}
	officeExtensions = []string{".doc", ".docx"}
)

// Upload is the minimal view of an uploaded file the processor needs.
type Upload struct {
	Filename    string
	ContentType string
	File        io.ReadSeeker
}

// readerFunc turns raw bytes into text and metadata on the given record.
type readerFunc func(ctx context.Context, data []byte, doc *DocumentContent) error

// Processor dispatches uploads to format-specific readers by file extension.
type Processor struct {
	ocr     OCR
	readers map[string]readerFunc
}

// NewProcessor builds a Processor with the default extension registry.
// Passing a nil OCR engine falls back to the Tesseract-backed default.
func NewProcessor(ocr OCR) *Processor {
	if ocr == nil {
		ocr = NewTesseractOCR("eng")
	}
	p := &Processor{ocr: ocr}
	p.readers = map[string]readerFunc{
		".pdf": p.readPDF,
	}
	for _, ext := range imageExtensions {
		p.readers[ext] = p.readImage
	}
	for _, ext := range textExtensions {
		p.readers[ext] = p.readText
	}
	return p
}

// Process reads the whole upload, routes it to the matching reader, and
// returns the normalized record. The stream position is restored to the
// start afterwards even when a reader fails, so later steps can re-read
// the same upload.
//
// Known-but-unimplemented formats (office documents) and unrecognized
// extensions do not fail: they yield a well-formed record carrying a
// placeholder message. Genuine reader failures return an *ExtractionError.
func (p *Processor) Process(ctx context.Context, up Upload) (DocumentContent, error) {
	if err := ctx.Err(); err != nil {
		return DocumentContent{}, err
	}

	defer func() {
		_, _ = up.File.Seek(0, io.SeekStart)
	}()

	data, err := io.ReadAll(up.File)
	if err != nil {
		return DocumentContent{}, fmt.Errorf("read upload %s: %w", up.Filename, err)
	}

	ext := strings.ToLower(filepath.Ext(up.Filename))
	doc := DocumentContent{
		Filename:      up.Filename,
		MimeType:      up.ContentType,
		FileExtension: ext,
		Metadata:      map[string]any{},
	}

	reader, ok := p.readers[ext]
	if !ok {
		msg := placeholderUnsupported
		if isOfficeExtension(ext) {
			msg = placeholderOffice
		}
		doc.TextContent = msg
		doc.Pages = []string{msg}
		return doc, nil
	}

	if err := reader(ctx, data, &doc); err != nil {
		return DocumentContent{}, &ExtractionError{
			Filename:  up.Filename,
			Extension: ext,
			Err:       err,
		}
	}
	return doc, nil
}

// Supported reports whether the extension maps to a real reader.
func (p *Processor) Supported(ext string) bool {
	_, ok := p.readers[strings.ToLower(ext)]
	return ok
}

func isOfficeExtension(ext string) bool {
	for _, known := range officeExtensions {
		if ext == known {
			return true
		}
	}
	return false
}
