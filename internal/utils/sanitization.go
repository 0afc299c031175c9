package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// secretPatterns match credentials that upstream vendors sometimes echo back in error bodies
var secretPatterns = []struct {
	regex       *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`sk-[A-Za-z0-9_-]{8,}`), "sk-***MASKED***"},
	{regexp.MustCompile(`AIza[0-9A-Za-z_-]{20,}`), "AIza***MASKED***"},
	{regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._~+/-]+=*`), "Bearer ***MASKED***"},
	{regexp.MustCompile(`(?i)(x-api-key|api[_-]?key)(["']?\s*[:=]\s*["']?)[^\s"'&,}]+`), "${1}${2}***MASKED***"},
	{regexp.MustCompile(`(?i)([?&]key=)[^&\s"']+`), "${1}***MASKED***"},
}

var (
	dataURLRegex = regexp.MustCompile(`(?i)(data:[^;,"]+;base64,)([A-Za-z0-9+/]{100,}={0,2})`)
	base64Regex  = regexp.MustCompile(`"([A-Za-z0-9+/]{100,}={0,2})"`)
)

// MaskSecrets replaces API keys and bearer tokens in s
func MaskSecrets(s string) string {
	for _, p := range secretPatterns {
		s = p.regex.ReplaceAllString(s, p.replacement)
	}
	return s
}

// TruncateString cuts s to at most max bytes, marking the cut
func TruncateString(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "...[truncated]"
}

// TruncateBase64InData shortens base64 payloads inside strings, maps and slices.
// Values of any other type are returned unchanged.
func TruncateBase64InData(data interface{}) interface{} {
	switch v := data.(type) {
	case string:
		return truncateBase64String(v)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, item := range v {
			out[k] = TruncateBase64InData(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = TruncateBase64InData(item)
		}
		return out
	case []string:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = truncateBase64String(item)
		}
		return out
	default:
		return data
	}
}

func truncateBase64String(s string) string {
	if len(s) < 100 {
		return s
	}

	s = dataURLRegex.ReplaceAllStringFunc(s, func(match string) string {
		sub := dataURLRegex.FindStringSubmatch(match)
		if len(sub) != 3 {
			return match
		}
		return sub[1] + shorten(sub[2])
	})

	return base64Regex.ReplaceAllStringFunc(s, func(match string) string {
		return `"` + shorten(match[1:len(match)-1]) + `"`
	})
}

func shorten(payload string) string {
	if len(payload) <= 100 {
		return payload
	}
	return payload[:50] + "...[" + fmt.Sprintf("%d chars truncated", len(payload)-100) + "]..." + payload[len(payload)-50:]
}

// IsSensitiveHeader reports whether a header carries credentials
func IsSensitiveHeader(name string) bool {
	switch strings.ToLower(name) {
	case "authorization", "x-api-key", "x-goog-api-key", "cookie", "set-cookie", "proxy-authorization":
		return true
	default:
		return false
	}
}
