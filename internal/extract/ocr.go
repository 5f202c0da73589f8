package extract

import (
	"context"

	"github.com/otiai10/gosseract/v2"
)

// OCR turns raster image bytes into recognized text.
type OCR interface {
	ImageText(ctx context.Context, data []byte) (string, error)
}

// TesseractOCR runs OCR through the Tesseract engine.
type TesseractOCR struct {
	language string
}

// NewTesseractOCR constructs a Tesseract-backed OCR engine for the given
// language code (e.g. "eng").
func NewTesseractOCR(language string) *TesseractOCR {
	if language == "" {
		language = "eng"
	}
	return &TesseractOCR{language: language}
}

// ImageText recognizes text in the image. A fresh client per call keeps the
// engine state request-scoped.
func (t *TesseractOCR) ImageText(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return "", err
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", err
	}
	return client.Text()
}

var _ OCR = (*TesseractOCR)(nil)
