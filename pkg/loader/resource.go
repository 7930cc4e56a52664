package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Source records where a Resource came from.
type Source string

const (
	// SourceFetch means the resource was fetched from its endpoint.
	SourceFetch Source = "fetch"

	// SourceCache means the resource was read from a Cache.
	SourceCache Source = "cache"

	// SourceProvided means the resource was handed to Loader.Provide.
	SourceProvided Source = "provided"
)

// Resource is a loaded external resource.
type Resource struct {
	URL         string
	Body        []byte
	ContentType string
	Checksum    string // hex SHA-256 of Body
	LoadedAt    time.Time
	Source      Source
}

// NewResource builds a Resource and computes its checksum.
func NewResource(url string, body []byte, contentType string, source Source, loadedAt time.Time) *Resource {
	return &Resource{
		URL:         url,
		Body:        body,
		ContentType: contentType,
		Checksum:    checksum(body),
		LoadedAt:    loadedAt,
		Source:      source,
	}
}

// Size returns the body length in bytes.
func (r *Resource) Size() int {
	return len(r.Body)
}

// Verify reports an error if Checksum does not match Body.
func (r *Resource) Verify() error {
	if got := checksum(r.Body); got != r.Checksum {
		return fmt.Errorf("checksum mismatch for %s: have %s, body hashes to %s", r.URL, r.Checksum, got)
	}
	return nil
}

func checksum(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
