package loader

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"

	"github.com/vnykmshr/shellkit/pkg/common/validation"
)

// Defaults for the map SDK endpoint.
const (
	DefaultBaseURL  = "https://webapi.amap.com/maps"
	DefaultVersion  = "1.4.15"
	DefaultCallback = "initAMap"
)

// ErrCallbackMissing is returned by a ReadyCheck when the script never
// references its ready callback.
var ErrCallbackMissing = errors.New("ready callback not referenced by resource")

// Endpoint describes where an external script lives and how it announces
// readiness. It is the only place that knows about the global callback name.
type Endpoint struct {
	BaseURL  string
	Version  string
	Key      string
	Callback string
}

// DefaultEndpoint returns the map SDK endpoint without an API key.
func DefaultEndpoint() Endpoint {
	return Endpoint{
		BaseURL:  DefaultBaseURL,
		Version:  DefaultVersion,
		Callback: DefaultCallback,
	}
}

// Validate checks that BaseURL is an absolute http(s) URL.
func (e Endpoint) Validate() error {
	return validation.ValidateURL(module, "base_url", e.BaseURL)
}

// URL renders the request URL. Empty fields are left out of the query, and
// query parameters already present on BaseURL are kept.
func (e Endpoint) URL() string {
	u, err := url.Parse(e.BaseURL)
	if err != nil {
		return e.BaseURL
	}
	q := u.Query()
	if e.Version != "" {
		q.Set("v", e.Version)
	}
	if e.Callback != "" {
		q.Set("callback", e.Callback)
	}
	if e.Key != "" {
		q.Set("key", e.Key)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// ReadyCheck returns a Config.Validate function that rejects a resource whose
// body does not reference the ready callback. It returns nil when no callback
// is configured.
func (e Endpoint) ReadyCheck() func(*Resource) error {
	if e.Callback == "" {
		return nil
	}
	name := []byte(e.Callback)
	return func(res *Resource) error {
		if !bytes.Contains(res.Body, name) {
			return fmt.Errorf("%w: %q", ErrCallbackMissing, e.Callback)
		}
		return nil
	}
}
