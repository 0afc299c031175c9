package vendors

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

const VendorRemoveBG = "removebg"

// RemoveBGProvider calls the remove.bg API with an image URL and returns the cut-out PNG
type RemoveBGProvider struct {
	client *http.Client
	url    string
	apiKey string
}

// NewRemoveBGProvider creates a provider posting to url
func NewRemoveBGProvider(client *http.Client, url, apiKey string) *RemoveBGProvider {
	return &RemoveBGProvider{client: client, url: url, apiKey: apiKey}
}

func (p *RemoveBGProvider) Name() string  { return VendorRemoveBG }
func (p *RemoveBGProvider) Model() string { return "" }

func (p *RemoveBGProvider) RemoveBackground(ctx context.Context, imageURL string) ([]byte, error) {
	if p.apiKey == "" {
		return nil, newVendorError(VendorRemoveBG, "", ErrMissingAPIKey)
	}

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	if err := writer.WriteField("image_url", imageURL); err != nil {
		return nil, newVendorError(VendorRemoveBG, "failed to encode request", err)
	}
	if err := writer.WriteField("size", "auto"); err != nil {
		return nil, newVendorError(VendorRemoveBG, "failed to encode request", err)
	}
	if err := writer.Close(); err != nil {
		return nil, newVendorError(VendorRemoveBG, "failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, &form)
	if err != nil {
		return nil, newVendorError(VendorRemoveBG, "failed to build request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "image/png")
	req.Header.Set("X-Api-Key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, newVendorError(VendorRemoveBG, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(VendorRemoveBG, resp)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &VendorError{Vendor: VendorRemoveBG, StatusCode: resp.StatusCode, Message: "failed to read response", Cause: err}
	}
	if len(data) == 0 {
		return nil, newVendorError(VendorRemoveBG, "empty response body", ErrEmptyResult)
	}

	if contentType := http.DetectContentType(data); !strings.HasPrefix(contentType, "image/") {
		return nil, &VendorError{
			Vendor:     VendorRemoveBG,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected content type %q", contentType),
		}
	}

	return data, nil
}
