package platforms

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"docclassify-backend/internal/shared/config"
)

// docCloudPusher is the dedicated DocCloud integration. It speaks the same
// upload protocol as the generic pusher but authenticates with the platform
// credentials from configuration.
type docCloudPusher struct {
	apiKey       string
	clientID     string
	clientSecret string
	generic      genericPusher
}

func newDocCloudPusher(cfg config.Config, client *http.Client) (*docCloudPusher, error) {
	if strings.TrimSpace(cfg.DocCloudAPIKey) == "" ||
		strings.TrimSpace(cfg.DocCloudClientID) == "" ||
		strings.TrimSpace(cfg.DocCloudClientSecret) == "" {
		return nil, errors.New("missing DocCloud API credentials")
	}
	return &docCloudPusher{
		apiKey:       cfg.DocCloudAPIKey,
		clientID:     cfg.DocCloudClientID,
		clientSecret: cfg.DocCloudClientSecret,
		generic:      genericPusher{client: authClient(client, cfg.DocCloudAPIKey, cfg.DocCloudClientID)},
	}, nil
}

func (d *docCloudPusher) Push(ctx context.Context, apiURL string, req PushRequest) (PushResult, error) {
	return d.generic.Push(ctx, apiURL, req)
}

// authClient wraps the shared HTTP client with a transport that attaches the
// DocCloud credential headers to every request.
func authClient(base *http.Client, apiKey, clientID string) *http.Client {
	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Timeout: base.Timeout,
		Transport: authTransport{
			base:     transport,
			apiKey:   apiKey,
			clientID: clientID,
		},
	}
}

type authTransport struct {
	base     http.RoundTripper
	apiKey   string
	clientID string
}

func (t authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+t.apiKey)
	cloned.Header.Set("X-Client-Id", t.clientID)
	return t.base.RoundTrip(cloned)
}
