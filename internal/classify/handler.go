package classify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"docclassify-backend/internal/extract"
	"docclassify-backend/internal/platforms"
	"docclassify-backend/internal/shared/server/respond"
	"docclassify-backend/internal/shared/telemetry"
	"docclassify-backend/internal/shared/util"
)

const pushTimeout = 60 * time.Second

// Handler wires the classification endpoints to the service.
type Handler struct {
	Svc            *Service
	Connector      *platforms.Connector
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, connector *platforms.Connector, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, Connector: connector, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches classification routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/classify", h.classify)
	rg.GET("/document-types", h.documentTypes)
}

// classify accepts a multipart batch of files, classifies each one, and
// optionally pushes results to a document management platform in the
// background. One extraction failure aborts the whole batch.
func (h *Handler) classify(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid multipart request", nil)
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No files provided", nil)
		return
	}

	platform := c.PostForm("platform")
	callbackURL := c.PostForm("callback_url")
	if platform != "" && !h.Connector.Known(platform) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unsupported platform: "+platform, nil)
		return
	}

	results := make([]ClassificationResult, 0, len(files))
	for _, fileHeader := range files {
		fileName, err := util.SanitizeFileName(fileHeader.Filename)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file "+fileName, nil)
			return
		}

		result, err := h.Svc.ClassifyUpload(c.Request.Context(), extract.Upload{
			Filename:    fileName,
			ContentType: fileHeader.Header.Get("Content-Type"),
			File:        file,
		})
		if err != nil {
			_ = file.Close()
			var extractErr *extract.ExtractionError
			switch {
			case errors.As(err, &extractErr):
				respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed",
					"failed to extract "+fileName, extractErr.Error())
			default:
				respond.Error(c, http.StatusBadGateway, "classification_failed",
					"failed to classify "+fileName, nil)
			}
			return
		}

		results = append(results, result)

		if platform != "" && callbackURL != "" {
			// The processor reset the stream, so the upload can be
			// re-read for the platform push.
			data, err := io.ReadAll(file)
			if err != nil {
				telemetry.Error("classify.push_read_failed", map[string]any{
					"document_id": result.DocumentID,
					"filename":    fileName,
					"error":       err.Error(),
				})
			} else {
				go h.pushInBackground(platforms.PushRequest{
					Platform:    platform,
					DocumentID:  result.DocumentID,
					Filename:    fileName,
					ContentType: fileHeader.Header.Get("Content-Type"),
					Data:        data,
					Result: platforms.ClassificationSummary{
						DocumentType:    result.DocumentType,
						ConfidenceScore: result.ConfidenceScore,
						Metadata:        result.Metadata,
					},
					CallbackURL: callbackURL,
				})
			}
		}
		_ = file.Close()
	}

	c.Set("documentCount", len(results))
	if platform != "" {
		c.Set("platform", platform)
	}

	respond.JSON(c, http.StatusOK, results)
}

// pushInBackground runs a platform push detached from the request lifetime.
func (h *Handler) pushInBackground(req platforms.PushRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	result := h.Connector.Push(ctx, req)
	fields := map[string]any{
		"document_id": req.DocumentID,
		"platform":    req.Platform,
		"success":     result.Success,
	}
	if result.Error != "" {
		fields["error"] = result.Error
		telemetry.Error("platform.push_failed", fields)
		return
	}
	fields["platform_document_id"] = result.PlatformDocumentID
	telemetry.Info("platform.push_complete", fields)
}

func (h *Handler) documentTypes(c *gin.Context) {
	respond.OK(c, gin.H{"document_types": DocumentTypes})
}
