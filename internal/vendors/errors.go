package vendors

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aashari/go-ai-proxy-server/internal/utils"
)

// maxErrorBodySize bounds how much of an upstream error body is kept for logs
const maxErrorBodySize = 512

var (
	// ErrMissingAPIKey is returned without any network call when a vendor has no credential
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrEmptyResult is returned when the vendor answered but the payload lacks the expected record
	ErrEmptyResult = errors.New("vendor returned no result")
)

// VendorError describes a failed upstream call. Its text may contain vendor
// detail and is meant for logs only, never for client responses.
type VendorError struct {
	Vendor     string
	StatusCode int
	Message    string
	Cause      error
}

func (e *VendorError) Error() string {
	var b strings.Builder
	b.WriteString(e.Vendor)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *VendorError) Unwrap() error {
	return e.Cause
}

func newVendorError(vendor, message string, cause error) *VendorError {
	return &VendorError{Vendor: vendor, Message: message, Cause: cause}
}

// newStatusError builds a VendorError from a non-2xx response, keeping a
// truncated and masked copy of the body.
func newStatusError(vendor string, resp *http.Response) *VendorError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize+1))
	message := utils.MaskSecrets(utils.TruncateString(strings.TrimSpace(string(body)), maxErrorBodySize))
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return &VendorError{Vendor: vendor, StatusCode: resp.StatusCode, Message: message}
}
