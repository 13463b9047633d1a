package workflow

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// quotedPayload matches the first double-quoted segment inside a debug-style
// object representation, tolerating escaped quotes.
var quotedPayload = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)

// NormalizeText unwraps provider-specific structural text from a single-shot
// collaborator output so callers always receive a plain string.
//
// Some providers hand back the payload embedded in a larger structure: a JSON
// object with a text/content/message field, or a debug representation that
// quotes the actual payload. Plain text passes through untouched apart from
// whitespace trimming.
func NormalizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}

	if gjson.Valid(trimmed) {
		parsed := gjson.Parse(trimmed)
		for _, path := range []string{"text", "content", "message", "output"} {
			if v := parsed.Get(path); v.Exists() && v.Type == gjson.String {
				return strings.TrimSpace(v.String())
			}
		}
		if parsed.Type == gjson.String {
			return strings.TrimSpace(parsed.String())
		}
		return trimmed
	}

	// Debug representations like Event(text="WEATHER_ROUTE", ...) quote the
	// payload; a bare plain string contains no quotes and falls through.
	if strings.Contains(trimmed, `"`) {
		if m := quotedPayload.FindStringSubmatch(trimmed); m != nil && m[1] != "" {
			return strings.TrimSpace(m[1])
		}
	}

	return trimmed
}
