package format

import (
	"fmt"
	"strings"
)

// ByteLen returns the display length of s: Latin-1 characters count 1,
// other characters in the Basic Multilingual Plane count 2 and characters
// beyond it count 4.
func ByteLen(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case r <= 0xff:
			n++
		case r <= 0xffff:
			n += 2
		default:
			n += 4
		}
	}
	return n
}

// TrimQueryParams returns a copy of params with string values trimmed and
// nil or empty values removed.
func TrimQueryParams(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		if s, ok := v.(string); ok {
			v = strings.TrimSpace(s)
			if v == "" {
				continue
			}
		}
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}

// PageTitle joins a page title and the application name. An empty title
// yields the application name alone.
func PageTitle(title, app string) string {
	if title == "" {
		return app
	}
	return fmt.Sprintf("%s - %s", title, app)
}
