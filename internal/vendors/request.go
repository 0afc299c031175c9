package vendors

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// maxResponseSize bounds upstream response bodies read into memory
const maxResponseSize = 32 << 20

// postJSON sends payload as JSON and decodes a 2xx response into out
func postJSON(ctx context.Context, client *http.Client, vendor, url string, headers map[string]string, payload, out interface{}) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return newVendorError(vendor, "failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return newVendorError(vendor, "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return newVendorError(vendor, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(vendor, resp)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(out); err != nil {
		return &VendorError{Vendor: vendor, StatusCode: resp.StatusCode, Message: "invalid response body", Cause: err}
	}
	return nil
}

func bearer(apiKey string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + apiKey}
}
