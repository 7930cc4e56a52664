package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/vnykmshr/shellkit/pkg/format"
	"github.com/vnykmshr/shellkit/pkg/loader"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// ResourceSummary is the printable view of a loaded resource.
type ResourceSummary struct {
	URL         string `json:"url" yaml:"url"`
	Bytes       int    `json:"bytes" yaml:"bytes"`
	ContentType string `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	Checksum    string `json:"checksum" yaml:"checksum"`
	Source      string `json:"source" yaml:"source"`
	LoadedAt    string `json:"loaded_at" yaml:"loaded_at"`
}

// Summarize builds the summary of res. The key query parameter is masked.
func Summarize(res *loader.Resource) ResourceSummary {
	s := ResourceSummary{
		URL:         maskKey(res.URL),
		Bytes:       res.Size(),
		ContentType: res.ContentType,
		Checksum:    res.Checksum,
		Source:      string(res.Source),
	}
	if !res.LoadedAt.IsZero() {
		s.LoadedAt = format.FormatTimeIn(res.LoadedAt.UnixMilli(), format.DefaultLayout, time.Local)
	}
	return s
}

// WriteResource renders res to w.
func WriteResource(w io.Writer, f Format, res *loader.Resource) error {
	s := Summarize(res)

	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	default:
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"Field", "Value"})
		t.AppendRows([]table.Row{
			{"URL", s.URL},
			{"Bytes", format.FormatInt(int64(s.Bytes), format.DefaultGroup, format.DefaultDelimiter)},
			{"Content-Type", s.ContentType},
			{"Checksum", s.Checksum},
			{"Source", s.Source},
			{"Loaded at", s.LoadedAt},
		})
		t.Render()
		return nil
	}
}

func maskKey(raw string) string {
	i := strings.Index(raw, "key=")
	if i < 0 || (i > 0 && raw[i-1] != '?' && raw[i-1] != '&') {
		return raw
	}
	end := strings.IndexByte(raw[i:], '&')
	if end < 0 {
		return raw[:i] + "key=***"
	}
	return raw[:i] + "key=***" + raw[i+end:]
}
