package platforms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"docclassify-backend/internal/shared/telemetry"
)

// genericPusher implements the default upload protocol shared by platforms
// without a dedicated integration: a multipart POST of the file plus a
// metadata JSON part, followed by an optional callback notification.
type genericPusher struct {
	client *http.Client
}

type uploadMetadata struct {
	DocumentID             string         `json:"document_id"`
	Filename               string         `json:"filename"`
	ContentType            string         `json:"content_type"`
	DocumentType           string         `json:"document_type"`
	ClassificationMetadata map[string]any `json:"classification_metadata"`
	ConfidenceScore        float64        `json:"confidence_score"`
}

type uploadResponse struct {
	ID string `json:"id"`
}

func (g genericPusher) Push(ctx context.Context, apiURL string, req PushRequest) (PushResult, error) {
	if apiURL == "" {
		return PushResult{}, fmt.Errorf("platform %s has no API URL configured", req.Platform)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fileWriter, err := writer.CreateFormFile("file", req.Filename)
	if err != nil {
		return PushResult{}, err
	}
	if _, err := fileWriter.Write(req.Data); err != nil {
		return PushResult{}, err
	}

	metadata := uploadMetadata{
		DocumentID:             req.DocumentID,
		Filename:               req.Filename,
		ContentType:            req.ContentType,
		DocumentType:           req.Result.DocumentType,
		ClassificationMetadata: req.Result.Metadata,
		ConfidenceScore:        req.Result.ConfidenceScore,
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return PushResult{}, err
	}
	if err := writer.WriteField("metadata", string(metadataJSON)); err != nil {
		return PushResult{}, err
	}
	if err := writer.Close(); err != nil {
		return PushResult{}, err
	}

	uploadURL := apiURL + "/documents"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, body)
	if err != nil {
		return PushResult{}, err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return PushResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		errText, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return PushResult{}, fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, errText)
	}

	var uploaded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return PushResult{}, fmt.Errorf("decode upload response: %w", err)
	}

	if req.CallbackURL != "" {
		notifyCallback(ctx, g.client, req, uploaded.ID)
	}

	return PushResult{
		Success:            true,
		Platform:           req.Platform,
		PlatformDocumentID: uploaded.ID,
	}, nil
}

// notifyCallback posts the push outcome to the caller-supplied URL. The
// callback is best-effort; a failed notification does not fail the push.
func notifyCallback(ctx context.Context, client *http.Client, req PushRequest, platformDocID string) {
	payload := map[string]any{
		"document_id":          req.DocumentID,
		"platform":             req.Platform,
		"status":               "success",
		"platform_document_id": platformDocID,
		"classification":       req.Result.DocumentType,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	callbackReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.CallbackURL, bytes.NewReader(data))
	if err != nil {
		return
	}
	callbackReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(callbackReq)
	if err != nil {
		telemetry.Error("platform.callback_failed", map[string]any{
			"document_id": req.DocumentID,
			"platform":    req.Platform,
			"error":       err.Error(),
		})
		return
	}
	_ = resp.Body.Close()
}
