package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// readImage decodes the bytes as a raster image, records its dimensions,
// format and color mode, and runs OCR for the text content. Decode and OCR
// failures surface as errors.
func (p *Processor) readImage(ctx context.Context, data []byte, doc *DocumentContent) error {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("image decode: %w", err)
	}

	bounds := img.Bounds()
	doc.setMetadata("width", bounds.Dx())
	doc.setMetadata("height", bounds.Dy())
	doc.setMetadata("format", strings.ToUpper(format))
	doc.setMetadata("mode", colorMode(img))

	text, err := p.ocr.ImageText(ctx, data)
	if err != nil {
		return fmt.Errorf("ocr: %w", err)
	}

	doc.TextContent = text
	doc.Pages = []string{text}
	return nil
}

// colorMode names the decoded image's pixel layout.
func colorMode(img image.Image) string {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return "grayscale"
	case *image.Paletted:
		return "palette"
	case *image.CMYK:
		return "cmyk"
	case *image.NRGBA, *image.NRGBA64, *image.RGBA, *image.RGBA64:
		return "rgba"
	case *image.YCbCr:
		return "ycbcr"
	default:
		return "rgb"
	}
}
