package platforms

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"docclassify-backend/internal/shared/config"
)

// Platform describes one supported document management platform.
type Platform struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	APIURL      string `json:"-"`
}

// ClassificationSummary is the slice of a classification result a platform
// push needs. Kept local so this package does not depend on the HTTP layer.
type ClassificationSummary struct {
	DocumentType    string         `json:"document_type"`
	ConfidenceScore float64        `json:"confidence_score"`
	Metadata        map[string]any `json:"classification_metadata"`
}

// PushRequest carries one classified document to a platform.
type PushRequest struct {
	Platform    string
	DocumentID  string
	Filename    string
	ContentType string
	Data        []byte
	Result      ClassificationSummary
	CallbackURL string
}

// PushResult reports the outcome of a platform push.
type PushResult struct {
	Success            bool   `json:"success"`
	Platform           string `json:"platform"`
	PlatformDocumentID string `json:"platform_document_id,omitempty"`
	Error              string `json:"error,omitempty"`
	DebugMode          bool   `json:"debug_mode,omitempty"`
}

// pusher is a platform-specific push implementation.
type pusher interface {
	Push(ctx context.Context, apiURL string, req PushRequest) (PushResult, error)
}

// Connector routes classification results to document management platforms.
type Connector struct {
	platforms  []Platform
	byID       map[string]Platform
	overrides  map[string]pusher
	httpClient *http.Client
	debug      bool
}

// NewConnector builds the platform registry. API URLs can be overridden per
// platform through environment variables.
func NewConnector(cfg config.Config) *Connector {
	platforms := []Platform{
		{
			ID:          "doccloud",
			Name:        "DocCloud",
			Description: "Native document management platform",
			APIURL:      cfg.DocCloudAPIURL,
		},
		{
			ID:          "sharepoint",
			Name:        "Microsoft SharePoint",
			Description: "Microsoft's document management and storage system",
			APIURL:      getEnv("SHAREPOINT_API_URL", ""),
		},
		{
			ID:          "box",
			Name:        "Box",
			Description: "Cloud content management platform",
			APIURL:      getEnv("BOX_API_URL", "https://api.box.com/2.0"),
		},
		{
			ID:          "dropbox",
			Name:        "Dropbox",
			Description: "File hosting service",
			APIURL:      getEnv("DROPBOX_API_URL", "https://api.dropboxapi.com/2"),
		},
		{
			ID:          "google_drive",
			Name:        "Google Drive",
			Description: "Google's file storage and synchronization service",
			APIURL:      getEnv("GDRIVE_API_URL", "https://www.googleapis.com/drive/v3"),
		},
		{
			ID:          "onedrive",
			Name:        "Microsoft OneDrive",
			Description: "Microsoft's file hosting service",
			APIURL:      getEnv("ONEDRIVE_API_URL", "https://graph.microsoft.com/v1.0/me/drive"),
		},
	}

	byID := make(map[string]Platform, len(platforms))
	for _, p := range platforms {
		byID[p.ID] = p
	}

	conn := &Connector{
		platforms: platforms,
		byID:      byID,
		overrides: map[string]pusher{},
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		debug: cfg.Debug,
	}

	if dc, err := newDocCloudPusher(cfg, conn.httpClient); err == nil {
		conn.overrides["doccloud"] = dc
	}

	return conn
}

// SupportedPlatforms lists the platforms this service can push to.
func (c *Connector) SupportedPlatforms() []Platform {
	out := make([]Platform, len(c.platforms))
	copy(out, c.platforms)
	return out
}

// Known reports whether the platform ID is registered.
func (c *Connector) Known(platformID string) bool {
	_, ok := c.byID[platformID]
	return ok
}

// Push uploads a classified document to the named platform and notifies the
// callback URL when one is given. Failures are reported in the result, not
// as an error, so background pushes never crash the caller.
func (c *Connector) Push(ctx context.Context, req PushRequest) PushResult {
	if c.debug {
		return PushResult{
			Success:            true,
			Platform:           req.Platform,
			PlatformDocumentID: "mock-" + req.DocumentID,
			DebugMode:          true,
		}
	}

	platform, ok := c.byID[req.Platform]
	if !ok {
		return PushResult{
			Success:  false,
			Platform: req.Platform,
			Error:    fmt.Sprintf("unsupported platform: %s", req.Platform),
		}
	}

	impl := pusher(genericPusher{client: c.httpClient})
	if override, ok := c.overrides[req.Platform]; ok {
		impl = override
	}

	result, err := impl.Push(ctx, platform.APIURL, req)
	if err != nil {
		return PushResult{
			Success:  false,
			Platform: req.Platform,
			Error:    err.Error(),
		}
	}
	return result
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
