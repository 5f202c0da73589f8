package extract

import "strings"

// DocumentContent is the normalized extraction result for one uploaded file.
// It lives for the duration of a single request and is never persisted.
type DocumentContent struct {
	Filename      string         `json:"filename"`
	MimeType      string         `json:"mimeType"`
	FileExtension string         `json:"fileExtension"`
	TextContent   string         `json:"textContent"`
	Pages         []string       `json:"pages"`
	Metadata      map[string]any `json:"metadata"`
}

// pageSeparator joins per-page text into TextContent. Joining Pages with it
// must reproduce TextContent for any successful multi-page extraction.
const pageSeparator = "\n\n"

func joinPages(pages []string) string {
	return strings.Join(pages, pageSeparator)
}

// setMetadata stores a key/value pair, dropping empty values so the metadata
// map only ever holds fields actually present in the source document.
func (d *DocumentContent) setMetadata(key string, value any) {
	if key == "" {
		return
	}
	switch v := value.(type) {
	case nil:
		return
	case string:
		if strings.TrimSpace(v) == "" {
			return
		}
	case int:
		if v == 0 {
			return
		}
	}
	if d.Metadata == nil {
		d.Metadata = map[string]any{}
	}
	d.Metadata[key] = value
}
